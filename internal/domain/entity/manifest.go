package entity

import (
	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"notion-config-tool/internal/domain"
)

// Manifest lists the configuration entries present in the local project.
type Manifest struct {
	Types []string `json:"types"`
}

func (m Manifest) Has(name string) bool {
	return lo.Contains(m.Types, name)
}

// ParseManifest reads the types array of a manifest. Entries are either
// plain strings or objects with a typeId, as in commodity.json.
func ParseManifest(data []byte) (Manifest, error) {
	if !gjson.ValidBytes(data) {
		return Manifest{}, domain.ErrInvalidManifest
	}

	types := make([]string, 0)

	for _, entry := range gjson.GetBytes(data, "types").Array() {
		name := entry.String()
		if entry.IsObject() {
			name = entry.Get("typeId").String()
		}

		if name != "" {
			types = append(types, name)
		}
	}

	return Manifest{Types: lo.Uniq(types)}, nil
}
