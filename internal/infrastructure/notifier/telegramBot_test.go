package notifier_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/infrastructure/notifier"
)

func TestSyncReportText(t *testing.T) {
	testCases := []struct {
		name     string
		record   entity.SyncRecord
		contains []string
	}{
		{
			name:     "user",
			record:   entity.SyncRecord{Kind: entity.SyncWorkshop, Target: "pet", Path: "types/pet.json", Added: 1, Changed: 2, TriggeredBy: "alice"},
			contains: []string{"workshop", "<code>types/pet.json</code>", "➕ 1  ✏️ 2  ➖ 0", "alice"},
		},
		{
			name:     "escaped and system",
			record:   entity.SyncRecord{Kind: entity.SyncLottery, Target: "<box>"},
			contains: []string{"&lt;box&gt;", "<b>By:</b> system"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			text := notifier.SyncReportText(tc.record)
			for _, s := range tc.contains {
				rq.Contains(text, s)
			}
		})
	}
}
