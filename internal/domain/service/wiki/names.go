package wiki

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"notion-config-tool/internal/domain/property"
	"notion-config-tool/internal/domain/value"
)

const (
	shopPrefix    = "shop."
	langBoxPrefix = "lobby.lottery."
	permanent     = "永久"
)

//nolint:gochecknoglobals
var (
	colorCode   = regexp.MustCompile(`§.`)
	placeholder = regexp.MustCompile(`\{[^}]*\}`)
	letterDigit = regexp.MustCompile(`([a-zA-Z])(\d)`)

	durationPrefixes = []string{"ornament.", "pet.", "prefix.", "attack-eff.", "deathshow.", "weaponskin."}

	durationUnits = []struct {
		seconds int64
		label   string
	}{
		{31104000, "年"},
		{2592000, "月"},
		{86400, "天"},
		{3600, "小时"},
		{60, "分钟"},
		{1, "秒"},
	}
)

// MergeNameMaps layers name maps by priority. A later map only fills keys
// the earlier ones left empty.
func MergeNameMaps(maps ...map[string]string) map[string]string {
	out := make(map[string]string)

	for _, m := range maps {
		for k, v := range m {
			if out[k] == "" {
				out[k] = v
			}
		}
	}

	return out
}

// Translate looks an item id up in the name map, then under shop.<id>, and
// falls back to the id. The result is cleaned for display.
func Translate(names map[string]string, id string) string {
	name := names[id]
	if name == "" {
		name = names[shopPrefix+id]
	}

	if name == "" {
		name = id
	}

	return Clean(name)
}

// Clean strips color codes and counter placeholders.
func Clean(s string) string {
	s = colorCode.ReplaceAllString(s, "")
	s = placeholder.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}

// FormatQuantity renders the quantity of an item. Time limited categories
// store a duration in seconds.
func FormatQuantity(id string, data float64) string {
	for _, prefix := range durationPrefixes {
		if strings.HasPrefix(id, prefix) {
			return FormatDuration(data)
		}
	}

	return property.FormatNumber(data)
}

// FormatDuration renders seconds in the largest whole unit. 0 and 1 mean
// permanent.
func FormatDuration(seconds float64) string {
	if seconds == 0 || seconds == 1 {
		return permanent
	}

	whole := int64(math.Floor(seconds))

	for _, unit := range durationUnits {
		if whole >= unit.seconds {
			return strconv.FormatInt(whole/unit.seconds, 10) + unit.label
		}
	}

	return property.FormatNumber(seconds) + "秒"
}

// BoxName resolves the display name of a box from its canonical key. The box
// name map is tried with several spellings of the key, then the language
// table, then the wiki name.
func BoxName(key, wikiName string, boxNames, lang map[string]string) string {
	noPrefix := value.TrimLotteryKey(key)
	firstDot := strings.Replace(noPrefix, "_", ".", 1)
	allDot := strings.ReplaceAll(noPrefix, "_", ".")

	for _, candidate := range []string{allDot, firstDot, noPrefix, key} {
		if name := boxNames[candidate]; name != "" {
			return name
		}
	}

	base := strings.ReplaceAll(noPrefix, "_", "-")
	hyphenated := letterDigit.ReplaceAllString(base, "$1-$2")

	for _, candidate := range []string{langBoxPrefix + hyphenated, langBoxPrefix + base, langBoxPrefix + noPrefix} {
		if name := lang[candidate]; name != "" {
			return name
		}
	}

	return wikiName
}
