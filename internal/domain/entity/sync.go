package entity

import "time"

type SyncKind string

const (
	SyncLottery   SyncKind = "lottery"
	SyncCommodity SyncKind = "commodity"
	SyncWorkshop  SyncKind = "workshop"
)

// SyncRecord describes one write of generated config into the local project.
type SyncRecord struct {
	ID          int64     `json:"id" db:"id"`
	Kind        SyncKind  `json:"kind" db:"kind"`
	Target      string    `json:"target" db:"target"`
	Path        string    `json:"path" db:"path"`
	Added       int       `json:"added" db:"added"`
	Changed     int       `json:"changed" db:"changed"`
	Removed     int       `json:"removed" db:"removed"`
	TriggeredBy string    `json:"triggeredBy" db:"triggered_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
