package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/service/workshop"
	"notion-config-tool/internal/worker"
	"notion-config-tool/pkg/contextx"
)

type syncer struct {
	calls  []string
	user   string
	err    error
	merged bool
}

func (s *syncer) record(ctx context.Context, kind entity.SyncKind, target string) (entity.SyncRecord, error) {
	s.calls = append(s.calls, string(kind)+":"+target)

	if userID, err := contextx.UserIDFromContext(ctx); err == nil {
		s.user = userID.String()
	}

	return entity.SyncRecord{Kind: kind, Target: target}, s.err
}

type lotterySyncer struct{ *syncer }

func (s lotterySyncer) Sync(ctx context.Context, key string) (entity.SyncRecord, error) {
	return s.record(ctx, entity.SyncLottery, key)
}

type commoditySyncer struct{ *syncer }

func (s commoditySyncer) Sync(ctx context.Context) (entity.SyncRecord, error) {
	return s.record(ctx, entity.SyncCommodity, "commodity")
}

type workshopSyncer struct{ *syncer }

func (s workshopSyncer) Sync(ctx context.Context, typeID string, req workshop.SyncRequest) (entity.SyncRecord, error) {
	s.merged = req.Merge

	return s.record(ctx, entity.SyncWorkshop, typeID)
}

func newHandler(s *syncer) *worker.SyncHandler {
	return worker.NewSyncHandler(lotterySyncer{s}, commoditySyncer{s}, workshopSyncer{s})
}

func TestSyncHandler(t *testing.T) {
	testCases := []struct {
		name    string
		payload worker.SyncPayload
		call    string
	}{
		{name: "lottery", payload: worker.SyncPayload{Kind: entity.SyncLottery, Target: "exc_lottery_box"}, call: "lottery:exc_lottery_box"},
		{name: "commodity", payload: worker.SyncPayload{Kind: entity.SyncCommodity}, call: "commodity:commodity"},
		{name: "workshop", payload: worker.SyncPayload{Kind: entity.SyncWorkshop, Target: "pet", Merge: true, TriggeredBy: "bob"}, call: "workshop:pet"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			s := &syncer{}

			task, err := worker.NewSyncTask(tc.payload)
			rq.NoError(err)
			rq.Equal(worker.TypeSync, task.Type())

			rq.NoError(newHandler(s).Handle(context.Background(), task))
			rq.Equal([]string{tc.call}, s.calls)
			rq.Equal(tc.payload.TriggeredBy, s.user)
			rq.Equal(tc.payload.Merge, s.merged)
		})
	}
}

func TestSyncHandlerSkipsRetry(t *testing.T) {
	testCases := []struct {
		name string
		task *asynq.Task
		err  error
		skip bool
	}{
		{name: "bad payload", task: asynq.NewTask(worker.TypeSync, []byte("{")), skip: true},
		{name: "lottery without target", task: asynq.NewTask(worker.TypeSync, []byte(`{"kind":"lottery"}`)), skip: true},
		{name: "unknown kind", task: asynq.NewTask(worker.TypeSync, []byte(`{"kind":"other","target":"x"}`)), skip: true},
		{
			name: "unknown type",
			task: asynq.NewTask(worker.TypeSync, []byte(`{"kind":"workshop","target":"nope"}`)),
			err:  domain.ErrUnknownType.Wrapf("type nope"),
			skip: true,
		},
		{
			name: "misconfigured pity",
			task: asynq.NewTask(worker.TypeSync, []byte(`{"kind":"lottery","target":"exc_lottery_box_broken"}`)),
			err:  fmt.Errorf("box b2: %w", domain.ErrPityMisconfigured.Wrapf("0 pity rows")),
			skip: true,
		},
		{
			name: "transient",
			task: asynq.NewTask(worker.TypeSync, []byte(`{"kind":"commodity"}`)),
			err:  errors.New("notion down"),
			skip: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			err := newHandler(&syncer{err: tc.err}).Handle(context.Background(), tc.task)
			rq.Error(err)
			rq.Equal(tc.skip, errors.Is(err, asynq.SkipRetry))
		})
	}
}

func TestSyncHandlerUnknownKind(t *testing.T) {
	_, err := newHandler(&syncer{}).Run(context.Background(), worker.SyncPayload{Kind: "other"})
	require.Error(t, err)
}

func TestNameRefresher(t *testing.T) {
	rq := require.New(t)

	var good, bad atomic.Int32

	refresher := worker.NewNameRefresher(time.Hour).
		WithSource("good", func(context.Context) (map[string]string, error) {
			good.Add(1)

			return map[string]string{"a": "b"}, nil
		}).
		WithSource("bad", func(context.Context) (map[string]string, error) {
			bad.Add(1)

			return nil, errors.New("boom")
		})

	rq.Equal(1, refresher.RefreshAll(context.Background()))

	rq.NoError(refresher.Start(context.Background()))
	rq.Error(refresher.Start(context.Background()))
	rq.Eventually(func() bool { return good.Load() == 2 && bad.Load() == 2 }, time.Second, 10*time.Millisecond)
	rq.True(refresher.IsRunning())

	refresher.Stop()
	rq.False(refresher.IsRunning())
}
