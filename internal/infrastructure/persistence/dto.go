package persistence

import (
	"time"

	"notion-config-tool/internal/domain/entity"
)

// syncRecordSchema maps a row of sync_history.
type syncRecordSchema struct {
	ID          int64     `db:"id"`
	Kind        string    `db:"kind"`
	Target      string    `db:"target"`
	Path        string    `db:"path"`
	Added       int       `db:"added"`
	Changed     int       `db:"changed"`
	Removed     int       `db:"removed"`
	TriggeredBy string    `db:"triggered_by"`
	CreatedAt   time.Time `db:"created_at"`
}

func fromSyncRecord(r entity.SyncRecord) syncRecordSchema {
	return syncRecordSchema{
		ID:          r.ID,
		Kind:        string(r.Kind),
		Target:      r.Target,
		Path:        r.Path,
		Added:       r.Added,
		Changed:     r.Changed,
		Removed:     r.Removed,
		TriggeredBy: r.TriggeredBy,
		CreatedAt:   r.CreatedAt,
	}
}

func (s syncRecordSchema) toDomain() entity.SyncRecord {
	return entity.SyncRecord{
		ID:          s.ID,
		Kind:        entity.SyncKind(s.Kind),
		Target:      s.Target,
		Path:        s.Path,
		Added:       s.Added,
		Changed:     s.Changed,
		Removed:     s.Removed,
		TriggeredBy: s.TriggeredBy,
		CreatedAt:   s.CreatedAt,
	}
}
