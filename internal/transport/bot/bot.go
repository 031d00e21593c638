package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"notion-config-tool/internal/transport/bot/handler"
	"notion-config-tool/pkg/contextx"
	"notion-config-tool/pkg/logx"
)

const longPollingTimeout = 60

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Bot serves admin commands in Telegram.
type Bot struct {
	botHandler *th.BotHandler
}

// New connects to Telegram via long polling and registers the commands.
func New(ctx context.Context, token string, adminIDs []int64, h *handler.Handler) (*Bot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	updates, err := bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: longPollingTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(bot, updates)
	if err != nil {
		return nil, fmt.Errorf("th.NewBotHandler: %w", err)
	}

	h.RegisterRoutes(botHandler, adminIDs)

	return &Bot{botHandler: botHandler}, nil
}

// Run handles updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	go func() {
		if err := b.botHandler.Start(); err != nil {
			logger(ctx).Error("botHandler.Start", logx.Error(err))
		}
	}()

	logger(ctx).Info("telegram bot started")

	<-ctx.Done()

	if err := b.botHandler.Stop(); err != nil {
		logger(ctx).Error("botHandler.Stop", logx.Error(err))
	}

	logger(ctx).Info("telegram bot stopped")

	return nil
}
