package notifier

import (
	"context"
	"fmt"
	"html"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SyncReportText renders the message sent after a sync.
func SyncReportText(record entity.SyncRecord) string {
	by := record.TriggeredBy
	if by == "" {
		by = "system"
	}

	return fmt.Sprintf(
		"📦 <b>Config synced</b>\n\n"+
			"<b>Kind:</b> %s\n"+
			"<b>Target:</b> %s\n"+
			"<b>File:</b> <code>%s</code>\n"+
			"➕ %d  ✏️ %d  ➖ %d\n"+
			"<b>By:</b> %s",
		html.EscapeString(string(record.Kind)),
		html.EscapeString(record.Target),
		html.EscapeString(record.Path),
		record.Added,
		record.Changed,
		record.Removed,
		html.EscapeString(by),
	)
}

func (b *TelegramBot) SendSyncReport(ctx context.Context, record entity.SyncRecord) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		SyncReportText(record),
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	logger(ctx).Debug("sync report sent", "target", record.Target)

	return nil
}

// SendText sends a plain text message.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
