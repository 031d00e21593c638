// Package history records applied syncs and announces them.
package history

import (
	"context"
	"fmt"

	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/pkg/contextx"
	"notion-config-tool/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Repository interface {
	Create(ctx context.Context, record entity.SyncRecord) (entity.SyncRecord, error)
	List(ctx context.Context, kind entity.SyncKind, limit, offset int) ([]entity.SyncRecord, error)
}

type Notifier interface {
	SendSyncReport(ctx context.Context, record entity.SyncRecord) error
}

// Reporter stores every sync and notifies about it. Both sinks are optional.
type Reporter struct {
	repo     Repository
	notifier Notifier
}

func NewReporter() *Reporter {
	return &Reporter{}
}

func (r *Reporter) WithRepository(repo Repository) *Reporter {
	r.repo = repo

	return r
}

func (r *Reporter) WithNotifier(notifier Notifier) *Reporter {
	r.notifier = notifier

	return r
}

// Report fills the user of the request and hands the record to the sinks.
// A failed notification is logged only.
func (r *Reporter) Report(ctx context.Context, record entity.SyncRecord) error {
	if record.TriggeredBy == "" {
		if userID, err := contextx.UserIDFromContext(ctx); err == nil {
			record.TriggeredBy = userID.String()
		}
	}

	if r.repo != nil {
		stored, err := r.repo.Create(ctx, record)
		if err != nil {
			return fmt.Errorf("store sync record: %w", err)
		}

		record = stored
	}

	if r.notifier != nil {
		if err := r.notifier.SendSyncReport(ctx, record); err != nil {
			logger(ctx).Error("send sync report", logx.Error(err))
		}
	}

	return nil
}

// List returns recent syncs, newest first. Without a repository it is empty.
func (r *Reporter) List(ctx context.Context, kind entity.SyncKind, limit, offset int) ([]entity.SyncRecord, error) {
	if r.repo == nil {
		return []entity.SyncRecord{}, nil
	}

	return r.repo.List(ctx, kind, limit, offset)
}
