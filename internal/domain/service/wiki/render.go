package wiki

import (
	"fmt"
	"strings"
	"time"
)

const (
	headerItem     = "奖励内容"
	headerQuantity = "奖励数量"
	headerChance   = "概率"
	csvPityTimes   = "保底次数"

	pityNoteFormat = `抽取 %d 次后触发抽奖保底，会按照玩家商品拥有情况给予某一个保底奖励（保底商品会在"概率"一列中标注"保底"）。`
)

type Row struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Chance   string `json:"chance"`
}

// Report is the display ready probability table of one box.
type Report struct {
	Key           string    `json:"key"`
	Name          string    `json:"name"`
	FallbackTimes int       `json:"fallbackTimes"`
	Rows          []Row     `json:"rows"`
	Sum           float64   `json:"sum"`
	Valid         bool      `json:"valid"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

func pityNote(times int) string {
	return fmt.Sprintf(pityNoteFormat, times)
}

// RenderWiki renders a MediaWiki sortable table.
func RenderWiki(r Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "= %s =\n", r.Name)

	if r.FallbackTimes > 0 {
		b.WriteString(pityNote(r.FallbackTimes) + "\n")
	}

	b.WriteString("{| class=\"wikitable sortable\"\n!" + headerItem + "\n!" + headerQuantity + "\n!" + headerChance + "\n")

	for _, row := range r.Rows {
		b.WriteString("|-\n")
		fmt.Fprintf(&b, "|%s\n|%s\n|%s\n", wikiEscape(row.Name), wikiEscape(row.Quantity), wikiEscape(row.Chance))
	}

	b.WriteString("}|\n")

	return b.String()
}

func wikiEscape(s string) string {
	return strings.ReplaceAll(s, "|", "{{!}}")
}

// RenderMarkdown renders a heading, an optional generation time, the pity
// note and a table.
func RenderMarkdown(r Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", r.Name)

	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "> 生成时间: %s\n", r.GeneratedAt.Format(time.DateTime))
	}

	b.WriteString("\n")

	if r.FallbackTimes > 0 {
		b.WriteString(pityNote(r.FallbackTimes) + "\n\n")
	}

	fmt.Fprintf(&b, "| %s | %s | %s |\n", headerItem, headerQuantity, headerChance)
	b.WriteString("| --- | --- | --- |\n")

	for _, row := range r.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", markdownEscape(row.Name), markdownEscape(row.Quantity), markdownEscape(row.Chance))
	}

	return b.String()
}

func markdownEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderCSV renders the table as CSV lines joined by "\n", preceded by the
// pity threshold when there is one.
func RenderCSV(r Report) string {
	lines := make([]string, 0, len(r.Rows)+2) //nolint:mnd // header lines

	if r.FallbackTimes > 0 {
		lines = append(lines, CSVEscape(csvPityTimes)+","+CSVEscape(fmt.Sprint(r.FallbackTimes)))
	}

	lines = append(lines, strings.Join([]string{CSVEscape(headerItem), CSVEscape(headerQuantity), CSVEscape(headerChance)}, ","))

	for _, row := range r.Rows {
		lines = append(lines, strings.Join([]string{CSVEscape(row.Name), CSVEscape(row.Quantity), CSVEscape(row.Chance)}, ","))
	}

	return strings.Join(lines, "\n")
}

// CSVEscape quotes values holding a quote, comma or line break. Values
// starting with = + - @ get an apostrophe prefix and are quoted so
// spreadsheets do not evaluate them.
func CSVEscape(s string) string {
	formula := s != "" && strings.ContainsAny(s[:1], "=+-@")
	quote := formula || strings.ContainsAny(s, "\",\r\n")

	if formula {
		s = "'" + s
	}

	s = strings.ReplaceAll(s, `"`, `""`)

	if quote {
		return `"` + s + `"`
	}

	return s
}
