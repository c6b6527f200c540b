package handlers

import (
	"context"
	"errors"
	"net/http"

	"brandkit/internal/domain"
	"brandkit/internal/generation"
	"brandkit/internal/providers/genapi"
)

const (
	codeBadRequest       = "bad_request"
	codeTimeout          = "generation_timeout"
	codeFailed           = "generation_failed"
	codeSubmissionFailed = "submission_failed"
	codeEmptyResult      = "empty_result"
	codeMissingImage     = "missing_image"
	codeUnavailable      = "provider_unavailable"
	codeNotFound         = "not_found"
	codeInternal         = "internal"
)

var messages = map[string]map[string]string{
	codeBadRequest: {
		"ru": "Некорректный запрос",
		"en": "Invalid request",
	},
	codeTimeout: {
		"ru": "Генерация заняла слишком много времени, попробуйте ещё раз",
		"en": "Generation took too long, please try again",
	},
	codeFailed: {
		"ru": "Сервис генерации не смог выполнить запрос",
		"en": "The generation service could not complete the request",
	},
	codeSubmissionFailed: {
		"ru": "Не удалось отправить запрос в сервис генерации",
		"en": "The request could not be submitted to the generation service",
	},
	codeEmptyResult: {
		"ru": "Сервис генерации вернул пустой результат",
		"en": "The generation service returned an empty result",
	},
	codeMissingImage: {
		"ru": "Сервис генерации не вернул изображение",
		"en": "The generation service did not return an image",
	},
	codeUnavailable: {
		"ru": "Сервис генерации временно недоступен",
		"en": "The generation service is temporarily unavailable",
	},
	codeNotFound: {
		"ru": "Не найдено",
		"en": "Not found",
	},
	codeInternal: {
		"ru": "Внутренняя ошибка сервера",
		"en": "Internal server error",
	},
}

func message(code, locale string) string {
	byLocale, ok := messages[code]
	if !ok {
		byLocale = messages[codeInternal]
	}
	if msg, ok := byLocale[locale]; ok {
		return msg
	}
	return byLocale["ru"]
}

// classify maps a requester or repository error onto an HTTP status and code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrPersistenceDisabled):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, generation.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, codeTimeout
	case errors.Is(err, generation.ErrProviderFailure):
		return http.StatusBadGateway, codeFailed
	case errors.Is(err, generation.ErrSubmissionFailure):
		return http.StatusBadGateway, codeSubmissionFailed
	case errors.Is(err, generation.ErrDecodeFailure), errors.Is(err, generation.ErrEmptyResult):
		return http.StatusBadGateway, codeEmptyResult
	case errors.Is(err, generation.ErrMissingImageURL):
		return http.StatusBadGateway, codeMissingImage
	case errors.Is(err, genapi.ErrUnexpectedStatus):
		return http.StatusBadGateway, codeUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func (a *App) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, code := classify(err)
	event := a.Logger.Warn()
	if status >= http.StatusInternalServerError && status != http.StatusGatewayTimeout && status != http.StatusBadGateway {
		event = a.Logger.Error()
	}
	event.Err(err).
		Str("op", op).
		Str("code", code).
		Msg("handlers: request failed")
	a.error(w, r, status, code)
}
