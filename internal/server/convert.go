package server

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"notion-config-tool/internal/domain/diff"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/service/lottery"
	"notion-config-tool/internal/domain/service/wiki"
	"notion-config-tool/internal/domain/service/workshop"
	"notion-config-tool/internal/worker"
	"notion-config-tool/pkg/rest"
)

func toAny[T any](items []T) []any {
	return lo.Map(items, func(item T, _ int) any { return item })
}

func newRESTCommodityDiff(d diff.CommodityDiff) rest.CommodityDiff {
	return rest.CommodityDiff{
		IsEqual:       d.Equal(),
		AddedItems:    toAny(d.Added),
		DeletedItems:  toAny(d.Deleted),
		ModifiedItems: toAny(d.Modified),
		CommonItems:   toAny(d.Common),
	}
}

func newRESTWorkshopDiff(typeID string, changes []diff.WorkshopChange) rest.WorkshopDiff {
	return rest.WorkshopDiff{
		TypeID: typeID,
		Changes: lo.Map(changes, func(c diff.WorkshopChange, _ int) rest.WorkshopChange {
			return rest.WorkshopChange{Key: c.Key, Mode: string(c.Mode), From: c.From, To: c.To}
		}),
	}
}

func newRESTSyncRecord(r entity.SyncRecord) rest.SyncRecord {
	return rest.SyncRecord{
		ID:          r.ID,
		Kind:        string(r.Kind),
		Target:      r.Target,
		Path:        r.Path,
		Added:       r.Added,
		Changed:     r.Changed,
		Removed:     r.Removed,
		TriggeredBy: r.TriggeredBy,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

func newDomainUpload(request rest.WikiRequest) lottery.Upload {
	return lottery.Upload{
		Configs:  request.Configs,
		Language: request.Language,
		Killer:   request.Killer,
	}
}

func newDomainWorkshopSync(request rest.WorkshopSyncRequest) workshop.SyncRequest {
	return workshop.SyncRequest{Keys: request.Keys, Merge: request.Merge}
}

func newDomainSyncPayload(request rest.SyncJobRequest, triggeredBy string) worker.SyncPayload {
	return worker.SyncPayload{
		Kind:        entity.SyncKind(request.Kind),
		Target:      request.Target,
		Keys:        request.Keys,
		Merge:       request.Merge,
		TriggeredBy: triggeredBy,
	}
}

// renderReports joins the rendered reports of every box.
func renderReports(reports []wiki.Report, render func(wiki.Report) string) string {
	return strings.Join(lo.Map(reports, func(r wiki.Report, _ int) string { return render(r) }), "\n")
}
