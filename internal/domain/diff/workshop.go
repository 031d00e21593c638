package diff

import (
	"cmp"
	"maps"
	"reflect"
	"slices"

	"notion-config-tool/internal/domain/entity"
)

type ChangeMode string

const (
	ChangeAdd     ChangeMode = "add"
	ChangeChanged ChangeMode = "changed"
	ChangeRemove  ChangeMode = "remove"
)

// WorkshopChange is the difference of one item key. From is the local item,
// To the remote one.
type WorkshopChange struct {
	Key  string     `json:"key"`
	Mode ChangeMode `json:"mode"`
	From any        `json:"from,omitempty"`
	To   any        `json:"to,omitempty"`
}

// Workshop lists per-key changes ordered by key. Items are compared as
// decoded JSON values, so key order and number formatting do not matter.
func Workshop(local, remote entity.WorkshopFile) []WorkshopChange {
	changes := make([]WorkshopChange, 0)

	for _, key := range slices.Sorted(maps.Keys(remote.Items)) {
		to := remote.Items[key]

		from, ok := local.Items[key]

		switch {
		case !ok:
			changes = append(changes, WorkshopChange{Key: key, Mode: ChangeAdd, To: to})
		case !reflect.DeepEqual(from, to):
			changes = append(changes, WorkshopChange{Key: key, Mode: ChangeChanged, From: from, To: to})
		}
	}

	for _, key := range slices.Sorted(maps.Keys(local.Items)) {
		if _, ok := remote.Items[key]; !ok {
			changes = append(changes, WorkshopChange{Key: key, Mode: ChangeRemove, From: local.Items[key]})
		}
	}

	slices.SortStableFunc(changes, func(a, b WorkshopChange) int {
		return cmp.Compare(a.Key, b.Key)
	})

	return changes
}

// MergeWorkshop takes every remote item and keeps local items the remote
// side does not know.
func MergeWorkshop(local, remote entity.WorkshopFile) entity.WorkshopFile {
	items := make(map[string]any, len(remote.Items)+len(local.Items))
	maps.Copy(items, remote.Items)

	for key, item := range local.Items {
		if _, ok := items[key]; !ok {
			items[key] = item
		}
	}

	return entity.WorkshopFile{Comment: remote.Comment, TypeID: remote.TypeID, Items: items}
}

// ApplyWorkshop starts from the local items and applies the selected
// changes: add and changed take the remote item, remove deletes the key.
// An empty selection applies every change. It returns the new file and the
// changes that were applied.
func ApplyWorkshop(local, remote entity.WorkshopFile, keys []string) (entity.WorkshopFile, []WorkshopChange) {
	out := entity.WorkshopFile{
		Comment: remote.Comment,
		TypeID:  remote.TypeID,
		Items:   maps.Clone(local.Items),
	}

	if out.Items == nil {
		out.Items = make(map[string]any)
	}

	applied := make([]WorkshopChange, 0)

	for _, change := range Workshop(local, remote) {
		if len(keys) > 0 && !slices.Contains(keys, change.Key) {
			continue
		}

		switch change.Mode {
		case ChangeAdd, ChangeChanged:
			out.Items[change.Key] = remote.Items[change.Key]
		case ChangeRemove:
			delete(out.Items, change.Key)
		}

		applied = append(applied, change)
	}

	return out, applied
}

// Count tallies changes per mode.
func Count(changes []WorkshopChange) (added, changed, removed int) {
	for _, c := range changes {
		switch c.Mode {
		case ChangeAdd:
			added++
		case ChangeChanged:
			changed++
		case ChangeRemove:
			removed++
		}
	}

	return added, changed, removed
}
