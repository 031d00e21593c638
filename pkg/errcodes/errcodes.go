package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Notion source
	NotionUnauthorized failure.ErrorCode = "NotionUnauthorized"
	NotionUnavailable  failure.ErrorCode = "NotionUnavailable"
	NotionTokenMissing failure.ErrorCode = "NotionTokenMissing"
	PropertyMismatch   failure.ErrorCode = "PropertyMismatch"

	// Local project
	LocalFileNotFound  failure.ErrorCode = "LocalFileNotFound"
	LocalPathForbidden failure.ErrorCode = "LocalPathForbidden"
	LocalFileInvalid   failure.ErrorCode = "LocalFileInvalid"

	// Generation
	PityMisconfigured      failure.ErrorCode = "PityMisconfigured"
	NoLotteryData          failure.ErrorCode = "NoLotteryData"
	UnknownLotteryKey      failure.ErrorCode = "UnknownLotteryKey"
	UnknownWorkshopType    failure.ErrorCode = "UnknownWorkshopType"
	WorkshopItemIDRequired failure.ErrorCode = "WorkshopItemIDRequired"
	InvalidUpload          failure.ErrorCode = "InvalidUpload"
	InvalidExportFormat    failure.ErrorCode = "InvalidExportFormat"
)
