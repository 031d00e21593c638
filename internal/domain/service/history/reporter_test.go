package history_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/service/history"
	"notion-config-tool/pkg/contextx"
)

type repo struct {
	records []entity.SyncRecord
	err     error
}

func (r *repo) Create(_ context.Context, record entity.SyncRecord) (entity.SyncRecord, error) {
	if r.err != nil {
		return entity.SyncRecord{}, r.err
	}

	record.ID = int64(len(r.records) + 1)
	r.records = append(r.records, record)

	return record, nil
}

func (r *repo) List(context.Context, entity.SyncKind, int, int) ([]entity.SyncRecord, error) {
	return r.records, nil
}

type notifier struct {
	sent []entity.SyncRecord
	err  error
}

func (n *notifier) SendSyncReport(_ context.Context, record entity.SyncRecord) error {
	n.sent = append(n.sent, record)

	return n.err
}

func TestReport(t *testing.T) {
	rq := require.New(t)

	r := &repo{}
	n := &notifier{err: errors.New("telegram down")}
	reporter := history.NewReporter().WithRepository(r).WithNotifier(n)

	ctx := contextx.WithUserID(context.Background(), "alice")

	rq.NoError(reporter.Report(ctx, entity.SyncRecord{Kind: entity.SyncCommodity, Target: "commodity"}))
	rq.Len(r.records, 1)
	rq.Equal("alice", r.records[0].TriggeredBy)
	rq.Len(n.sent, 1)
	rq.Equal(int64(1), n.sent[0].ID)

	rq.NoError(reporter.Report(context.Background(), entity.SyncRecord{Target: "x", TriggeredBy: "worker"}))
	rq.Equal("worker", r.records[1].TriggeredBy)

	list, err := reporter.List(ctx, "", 10, 0)
	rq.NoError(err)
	rq.Len(list, 2)
}

func TestReportRepositoryError(t *testing.T) {
	rq := require.New(t)

	n := &notifier{}
	reporter := history.NewReporter().WithRepository(&repo{err: errors.New("db down")}).WithNotifier(n)

	rq.Error(reporter.Report(context.Background(), entity.SyncRecord{}))
	rq.Empty(n.sent)
}

func TestReportWithoutSinks(t *testing.T) {
	rq := require.New(t)

	reporter := history.NewReporter()
	rq.NoError(reporter.Report(context.Background(), entity.SyncRecord{}))

	list, err := reporter.List(context.Background(), "", 10, 0)
	rq.NoError(err)
	rq.Empty(list)
}
