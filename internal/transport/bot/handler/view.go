package handler

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"notion-config-tool/internal/domain/diff"
	"notion-config-tool/internal/domain/entity"
)

const (
	typesPagePrefix = "types_page"
	typesPageSize   = 10
	historyLimit    = 10
	diffKeysShown   = 15

	startMessage = "🛠 <b>Notion config tool</b>\n\n" +
		"/status – состояние фоновых задач\n" +
		"/refresh – обновить кэш названий\n" +
		"/types – типы мастерской\n" +
		"/diff <code>typeId</code> – изменения мастерской\n" +
		"/sync <code>kind</code> [<code>target</code>] [<code>keys…</code>] [merge] – фоновая синхронизация\n" +
		"/history [<code>kind</code>] – последние синхронизации"
	syncUsage = "❌ Использование: /sync <code>lottery|commodity|workshop</code> [<code>target</code>] [<code>keys…</code>] [merge]"
	diffUsage = "❌ Использование: /diff <code>typeId</code>"
)

// page clamps a 1-based page number and returns the slice bounds.
func page(total, requested, size int) (current, pages, start, end int) {
	pages = max((total+size-1)/size, 1)
	current = min(max(requested, 1), pages)
	start = min((current-1)*size, total)
	end = min(start+size, total)

	return current, pages, start, end
}

func renderTypes(types []entity.WorkshopType, current, pages int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📚 <b>Типы мастерской</b> (Стр. %d/%d)\n\n", current, pages)

	for _, t := range types {
		state := "🆕"
		if t.Exists {
			state = "✅"
		}

		fmt.Fprintf(&sb, "%s <code>%s</code>\n", state, html.EscapeString(t.TypeID))
	}

	return sb.String()
}

func paginationKeyboard(current, pages int) *telego.InlineKeyboardMarkup {
	var buttons []telego.InlineKeyboardButton

	if current > 1 {
		buttons = append(buttons, tu.InlineKeyboardButton("⬅️").
			WithCallbackData(fmt.Sprintf("%s:%d", typesPagePrefix, current-1)))
	}

	buttons = append(buttons, tu.InlineKeyboardButton(fmt.Sprintf("%d / %d", current, pages)).
		WithCallbackData("noop"))

	if current < pages {
		buttons = append(buttons, tu.InlineKeyboardButton("➡️").
			WithCallbackData(fmt.Sprintf("%s:%d", typesPagePrefix, current+1)))
	}

	return tu.InlineKeyboard(tu.InlineKeyboardRow(buttons...))
}

func renderDiff(typeID string, changes []diff.WorkshopChange) string {
	if len(changes) == 0 {
		return fmt.Sprintf("✅ <code>%s</code> совпадает с локальным файлом", html.EscapeString(typeID))
	}

	added, changed, removed := diff.Count(changes)

	var sb strings.Builder

	fmt.Fprintf(&sb, "🔀 <b>%s</b>: ➕ %d  ✏️ %d  ➖ %d\n\n", html.EscapeString(typeID), added, changed, removed)

	for i, c := range changes {
		if i == diffKeysShown {
			fmt.Fprintf(&sb, "… и ещё %d\n", len(changes)-diffKeysShown)

			break
		}

		fmt.Fprintf(&sb, "%s <code>%s</code>\n", changeIcon(c.Mode), html.EscapeString(c.Key))
	}

	return sb.String()
}

func changeIcon(mode diff.ChangeMode) string {
	switch mode {
	case diff.ChangeAdd:
		return "➕"
	case diff.ChangeRemove:
		return "➖"
	default:
		return "✏️"
	}
}

func renderHistory(records []entity.SyncRecord) string {
	if len(records) == 0 {
		return "📋 История синхронизаций пуста"
	}

	var sb strings.Builder

	sb.WriteString("📋 <b>Последние синхронизации</b>\n\n")

	for _, r := range records {
		fmt.Fprintf(&sb, "%s %s <code>%s</code> ➕%d ✏️%d ➖%d\n",
			r.CreatedAt.Format(time.DateTime),
			html.EscapeString(string(r.Kind)),
			html.EscapeString(r.Target),
			r.Added, r.Changed, r.Removed,
		)
	}

	return sb.String()
}

func boolToStatus(b bool) string {
	if b {
		return "🟢 работает"
	}

	return "🔴 остановлен"
}
