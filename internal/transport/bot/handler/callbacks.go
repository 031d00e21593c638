package handler

import (
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"notion-config-tool/pkg/logx"
)

func (h *Handler) OnTypesCallback(ctx *th.Context, query telego.CallbackQuery) error {
	var requested int
	if _, err := fmt.Sscanf(query.Data, typesPagePrefix+":%d", &requested); err != nil {
		requested = 1
	}

	types, err := h.workshop.Types(ctx)
	if err != nil {
		_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText("❌ Ошибка получения данных").WithShowAlert())

		return fmt.Errorf("workshop.Types: %w", err)
	}

	current, pages, start, end := page(len(types), requested, typesPageSize)

	if query.Message != nil {
		_, err = ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
			ChatID:      tu.ID(query.Message.GetChat().ID),
			MessageID:   query.Message.GetMessageID(),
			Text:        renderTypes(types[start:end], current, pages),
			ParseMode:   telego.ModeHTML,
			ReplyMarkup: paginationKeyboard(current, pages),
		})
		// Telegram rejects edits that leave the message unchanged.
		if err != nil {
			logger(ctx).Debug("EditMessageText", logx.Error(err))
		}
	}

	_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))

	return nil
}
