package middleware

import (
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	"github.com/samber/lo"

	"notion-config-tool/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// AdminOnly passes messages and button presses from admins only.
func AdminOnly(adminIDs ...int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		userID, ok := SenderID(update)
		if !ok {
			return nil
		}

		if lo.Contains(adminIDs, userID) {
			return ctx.Next(update)
		}

		logger(ctx).Warn("telegram update from non admin ignored", slog.Int64("user-id", userID))

		return nil
	}
}

// SenderID returns the author of a message or a callback query.
func SenderID(update telego.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, true
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID, true
	default:
		return 0, false
	}
}
