package workshop

import (
	_ "embed"
	"fmt"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"notion-config-tool/internal/domain/entity"
)

//go:embed types.yaml
var typesYAML []byte

// TypeDef selects the rows of one workshop type: rows related to TypePage,
// optionally narrowed by ornament part or idItem prefix.
type TypeDef struct {
	TypeID       string        `yaml:"typeId"`
	TypePage     string        `yaml:"typePage"`
	OrnamentPart string        `yaml:"ornamentPart"`
	IDItemPrefix string        `yaml:"idItemPrefix"`
	Sorts        []entity.Sort `yaml:"sorts"`
}

type typeTable struct {
	DefaultSorts []entity.Sort `yaml:"defaultSorts"`
	Types        []TypeDef     `yaml:"types"`
}

// Registry holds the known workshop types in declaration order.
type Registry struct {
	defs []TypeDef
}

// LoadRegistry parses a type table. Types without sorts get the default
// sorts.
func LoadRegistry(data []byte) (*Registry, error) {
	var table typeTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	seen := make(map[string]bool, len(table.Types))

	for i, def := range table.Types {
		if def.TypeID == "" || def.TypePage == "" {
			return nil, fmt.Errorf("type %d: typeId and typePage are required", i)
		}

		if seen[def.TypeID] {
			return nil, fmt.Errorf("type %s declared twice", def.TypeID)
		}

		seen[def.TypeID] = true

		if len(def.Sorts) == 0 {
			table.Types[i].Sorts = table.DefaultSorts
		}
	}

	return &Registry{defs: table.Types}, nil
}

// DefaultRegistry returns the built-in type table.
func DefaultRegistry() *Registry {
	return lo.Must(LoadRegistry(typesYAML))
}

func (r *Registry) TypeIDs() []string {
	return lo.Map(r.defs, func(d TypeDef, _ int) string { return d.TypeID })
}

func (r *Registry) Lookup(typeID string) (TypeDef, bool) {
	return lo.Find(r.defs, func(d TypeDef) bool { return d.TypeID == typeID })
}

// Query builds the Notion database query for the type.
func (d TypeDef) Query() entity.Query {
	base := map[string]any{
		"property": "类型",
		"relation": map[string]any{"contains": d.TypePage},
	}

	var extra map[string]any

	switch {
	case d.OrnamentPart != "":
		extra = map[string]any{
			"property": "4D装扮部位",
			"select":   map[string]any{"equals": d.OrnamentPart},
		}
	case d.IDItemPrefix != "":
		extra = map[string]any{
			"property":  "idItem",
			"rich_text": map[string]any{"starts_with": d.IDItemPrefix},
		}
	}

	filter := base
	if extra != nil {
		filter = map[string]any{"and": []any{base, extra}}
	}

	return entity.Query{Filter: filter, Sorts: d.Sorts}
}
