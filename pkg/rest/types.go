// HTTP request and response models.
package rest

import (
	jsoniter "github.com/json-iterator/go"
)

// WikiFormat is the output format of wiki reports.
type WikiFormat string

const (
	WikiFormatWiki     WikiFormat = "wiki"
	WikiFormatMarkdown WikiFormat = "markdown"
	WikiFormatCSV      WikiFormat = "csv"
	WikiFormatJSON     WikiFormat = "json"
)

// WikiRequest builds wiki reports. Uploaded files are passed as is and
// extend the Notion data.
type WikiRequest struct {
	Format   WikiFormat          `json:"format" validate:"omitempty,oneof=wiki markdown csv json"`
	Configs  jsoniter.RawMessage `json:"configs,omitempty"`
	Language jsoniter.RawMessage `json:"language,omitempty"`
	Killer   jsoniter.RawMessage `json:"killer,omitempty"`
}

// WorkshopSyncRequest selects the changes to sync.
type WorkshopSyncRequest struct {
	Keys  []string `json:"keys"`
	Merge bool     `json:"merge"`
}

// SyncJobRequest enqueues a background sync.
type SyncJobRequest struct {
	Kind   string   `json:"kind" validate:"required,oneof=lottery commodity workshop"`
	Target string   `json:"target" validate:"required_unless=Kind commodity"`
	Keys   []string `json:"keys"`
	Merge  bool     `json:"merge"`
}

type SyncJob struct {
	TaskID string `json:"taskId"`
}

// CommodityDiff is the commodity catalog diff.
type CommodityDiff struct {
	IsEqual       bool  `json:"isEqual"`
	AddedItems    []any `json:"addedItems"`
	DeletedItems  []any `json:"deletedItems"`
	ModifiedItems []any `json:"modifiedItems"`
	CommonItems   []any `json:"commonItems"`
}

// WorkshopChange is the change of one workshop item.
type WorkshopChange struct {
	Key  string `json:"key"`
	Mode string `json:"mode"`
	From any    `json:"from,omitempty"`
	To   any    `json:"to,omitempty"`
}

type WorkshopDiff struct {
	TypeID  string           `json:"typeId"`
	Changes []WorkshopChange `json:"changes"`
}

// SyncRecord describes an applied sync.
type SyncRecord struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	Target      string `json:"target"`
	Path        string `json:"path"`
	Added       int    `json:"added"`
	Changed     int    `json:"changed"`
	Removed     int    `json:"removed"`
	TriggeredBy string `json:"triggeredBy"`
	CreatedAt   string `json:"createdAt"`
}

// Error is the error reply.
type Error struct {
	// Code is the error code.
	Code ErrorCode `json:"code"`

	// Message is a human readable description.
	Message string `json:"message"`

	// SupportID is the request trace id.
	SupportID string `json:"supportId"`
}

// ErrorCode is an error code.
type ErrorCode string
