package server

import (
	"context"
	"errors"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"notion-config-tool/internal/domain"
	"notion-config-tool/pkg/errcodes"
	"notion-config-tool/pkg/httpx/reply"
)

//nolint:gochecknoglobals
var statusByCode = map[failure.ErrorCode]int{
	errcodes.ValidationError:        http.StatusBadRequest,
	errcodes.InvalidUpload:          http.StatusBadRequest,
	errcodes.InvalidExportFormat:    http.StatusBadRequest,
	errcodes.NotFound:               http.StatusNotFound,
	errcodes.UnknownLotteryKey:      http.StatusNotFound,
	errcodes.UnknownWorkshopType:    http.StatusNotFound,
	errcodes.LocalFileNotFound:      http.StatusNotFound,
	errcodes.LocalPathForbidden:     http.StatusForbidden,
	errcodes.Forbidden:              http.StatusForbidden,
	errcodes.LocalFileInvalid:       http.StatusUnprocessableEntity,
	errcodes.PityMisconfigured:      http.StatusUnprocessableEntity,
	errcodes.WorkshopItemIDRequired: http.StatusUnprocessableEntity,
	errcodes.NoLotteryData:          http.StatusUnprocessableEntity,
	errcodes.PropertyMismatch:       http.StatusUnprocessableEntity,
	errcodes.NotionUnauthorized:     http.StatusBadGateway,
	errcodes.NotionTokenMissing:     http.StatusBadGateway,
	errcodes.NotionUnavailable:      http.StatusBadGateway,
	errcodes.TimeoutExceeded:        http.StatusGatewayTimeout,
}

// writeError replies with the status of a domain error code; other errors
// go through the generic failure mapping.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		reply.Error(ctx, w, err)

		return
	}

	status, ok := statusByCode[appErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}

	reply.Coded(ctx, w, status, appErr.Code, appErr.Message, err)
}
