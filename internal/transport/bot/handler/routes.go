package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"notion-config-tool/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminIDs []int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminIDs...))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnRefresh, th.CommandEqual("refresh"))
	adminGroup.HandleMessage(h.OnTypes, th.CommandEqual("types"))
	adminGroup.HandleMessage(h.OnDiff, th.CommandEqual("diff"))
	adminGroup.HandleMessage(h.OnSync, th.CommandEqual("sync"))
	adminGroup.HandleMessage(h.OnHistory, th.CommandEqual("history"))

	cbGroup := bh.Group(th.AnyCallbackQuery())
	cbGroup.Use(middleware.AdminOnly(adminIDs...))

	cbGroup.HandleCallbackQuery(h.OnTypesCallback, th.CallbackDataPrefix(typesPagePrefix))
}
