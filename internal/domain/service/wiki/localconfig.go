package wiki

import (
	"github.com/tidwall/gjson"

	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/value"
)

// ParseLocalConfigs reads an uploaded lottery config object keyed by exchange
// key into wiki results. Every box is displayed under its own key. Gain
// entries are references (subExchanges or exc), merchandise lists (first
// entry only), coin or exp rewards; anything else is ignored.
func ParseLocalConfigs(data []byte) entity.WikiTable {
	table := make(entity.WikiTable)

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return table
	}

	root.ForEach(func(key, cfg gjson.Result) bool {
		exc := key.String()
		wiki := entity.WikiResult{
			Name:          exc,
			Exc:           exc,
			Display:       true,
			FallbackTimes: int(cfg.Get("fallbackTimes").Int()),
			Gain:          []entity.WikiGainItem{},
		}

		for _, g := range cfg.Get("gain").Array() {
			if item, ok := parseLocalGain(g); ok {
				wiki.Gain = append(wiki.Gain, item)
			}
		}

		table[exc] = wiki

		return true
	})

	return table
}

func parseLocalGain(g gjson.Result) (entity.WikiGainItem, bool) {
	weight := g.Get("weight").Float()

	sub := g.Get("subExchanges").String()
	if sub == "" {
		sub = g.Get("exc").String()
	}

	merch := g.Get("merchandises")

	switch {
	case sub != "":
		return entity.WikiGainItem{Weight: weight, Exc: sub, Fallback: g.Get("fallback").Bool()}, true
	case merch.IsArray() && len(merch.Array()) > 0:
		name, data := value.SplitMerchandise(merch.Array()[0].String())

		return entity.WikiGainItem{Weight: weight, Name: name, Data: data}, true
	case g.Get("coin").Exists():
		return entity.WikiGainItem{Weight: weight, Name: "coin", Data: g.Get("coin").Float()}, true
	case g.Get("exp").Exists():
		return entity.WikiGainItem{Weight: weight, Name: "exp", Data: g.Get("exp").Float()}, true
	}

	return entity.WikiGainItem{}, false
}

// ParseLanguage reads a language table: an array of {key, zh, zh_TW, en}
// objects. The first non-empty of zh, zh_TW and en is used.
func ParseLanguage(data []byte) map[string]string {
	names := make(map[string]string)

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return names
	}

	root.ForEach(func(_, item gjson.Result) bool {
		key := item.Get("key").String()
		if key == "" {
			return true
		}

		for _, field := range []string{"zh", "zh_TW", "en"} {
			if v := item.Get(field); v.Type == gjson.String && v.Str != "" {
				names[key] = v.Str

				break
			}
		}

		return true
	})

	return names
}

// ParseKillerMerchandise reads an object whose values are arrays of
// {merchandise, name} objects.
func ParseKillerMerchandise(data []byte) map[string]string {
	names := make(map[string]string)

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return names
	}

	root.ForEach(func(_, group gjson.Result) bool {
		if !group.IsArray() {
			return true
		}

		for _, item := range group.Array() {
			key := item.Get("merchandise").String()
			name := item.Get("name").String()

			if key != "" && name != "" {
				names[key] = name
			}
		}

		return true
	})

	return names
}
