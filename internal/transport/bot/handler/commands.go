package handler

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/worker"
	"notion-config-tool/pkg/logx"
)

const mergeFlag = "merge"

var errSyncUsage = errors.New("sync usage")

// ParseSyncArgs reads "/sync kind [target] [keys...] [merge]". Commodity
// syncs take no target.
func ParseSyncArgs(text string) (worker.SyncPayload, error) {
	args := strings.Fields(text)
	if len(args) < 2 { //nolint:mnd
		return worker.SyncPayload{}, errSyncUsage
	}

	payload := worker.SyncPayload{Kind: entity.SyncKind(args[1])}

	switch payload.Kind {
	case entity.SyncCommodity:
		return payload, nil
	case entity.SyncLottery, entity.SyncWorkshop:
	default:
		return worker.SyncPayload{}, errSyncUsage
	}

	if len(args) < 3 { //nolint:mnd
		return worker.SyncPayload{}, errSyncUsage
	}

	payload.Target = args[2]

	if payload.Kind == entity.SyncLottery {
		return payload, nil
	}

	for _, arg := range args[3:] {
		if arg == mergeFlag {
			payload.Merge = true

			continue
		}

		payload.Keys = append(payload.Keys, arg)
	}

	return payload, nil
}

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, startMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	text := fmt.Sprintf("📊 <b>Статус</b>\n\n🔄 <b>Обновление названий:</b> %s",
		boolToStatus(h.refresher.IsRunning()))

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

func (h *Handler) OnRefresh(ctx *th.Context, msg telego.Message) error {
	refreshed := h.refresher.RefreshAll(ctx)

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf("✅ Обновлено источников: %d", refreshed))
}

func (h *Handler) OnTypes(ctx *th.Context, msg telego.Message) error {
	types, err := h.workshop.Types(ctx)
	if err != nil {
		logger(ctx).Error("workshop.Types", logx.Error(err))

		return h.sendHTML(ctx, msg.Chat.ID, "❌ Ошибка получения типов")
	}

	current, pages, start, end := page(len(types), 1, typesPageSize)

	_, err = ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: msg.Chat.ID},
		Text:        renderTypes(types[start:end], current, pages),
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: paginationKeyboard(current, pages),
	})

	return err
}

func (h *Handler) OnDiff(ctx *th.Context, msg telego.Message) error {
	args := strings.Fields(msg.Text)
	if len(args) < 2 { //nolint:mnd
		return h.sendHTML(ctx, msg.Chat.ID, diffUsage)
	}

	changes, err := h.workshop.Diff(ctx, args[1])
	if err != nil {
		logger(ctx).Error("workshop.Diff", logx.Error(err))

		return h.sendHTML(ctx, msg.Chat.ID, "❌ "+html.EscapeString(err.Error()))
	}

	return h.sendHTML(ctx, msg.Chat.ID, renderDiff(args[1], changes))
}

func (h *Handler) OnSync(ctx *th.Context, msg telego.Message) error {
	payload, err := ParseSyncArgs(msg.Text)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, syncUsage)
	}

	if msg.From != nil {
		payload.TriggeredBy = "tg:" + strconv.FormatInt(msg.From.ID, 10)
	}

	taskID, err := h.enqueuer.EnqueueSync(ctx, payload)
	if err != nil {
		logger(ctx).Error("enqueuer.EnqueueSync", logx.Error(err))

		return h.sendHTML(ctx, msg.Chat.ID, "❌ Не удалось поставить задачу")
	}

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf("⏳ Задача <code>%s</code> поставлена", html.EscapeString(taskID)))
}

func (h *Handler) OnHistory(ctx *th.Context, msg telego.Message) error {
	var kind entity.SyncKind

	if args := strings.Fields(msg.Text); len(args) > 1 {
		kind = entity.SyncKind(args[1])
	}

	records, err := h.history.List(ctx, kind, historyLimit, 0)
	if err != nil {
		logger(ctx).Error("history.List", logx.Error(err))

		return h.sendHTML(ctx, msg.Chat.ID, "❌ Ошибка получения истории")
	}

	return h.sendHTML(ctx, msg.Chat.ID, renderHistory(records))
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}
