package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-ferrari-store/internal/app"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
)

type errorResponse struct {
	status  int
	message string
}

// errorResponses is checked in order; the first match wins. The message is
// the plain-text body the terminal client maps back to typed errors.
var errorResponses = []struct {
	target error
	errorResponse
}{
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrWrongPassword, errorResponse{http.StatusUnauthorized, app.MsgInvalidEmailPassword}},
	{service.ErrTokenIsExpired, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpired}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{service.ErrCannotModifySelf, errorResponse{http.StatusConflict, app.MsgCannotModifySelf}},
	{service.ErrCategoryCycle, errorResponse{http.StatusConflict, app.MsgCategoryCycle}},
	{service.ErrEmptyCart, errorResponse{http.StatusConflict, app.MsgEmptyCart}},
	{service.ErrInvalidStatusTransition, errorResponse{http.StatusConflict, app.MsgInvalidStatusTransition}},
	{service.ErrOrderNotCancellable, errorResponse{http.StatusConflict, app.MsgOrderNotCancellable}},

	{store.ErrEmailAlreadyExists, errorResponse{http.StatusConflict, app.MsgEmailAlreadyExists}},
	{store.ErrUserNotFound, errorResponse{http.StatusNotFound, app.MsgUserNotFound}},
	{store.ErrProductNotFound, errorResponse{http.StatusNotFound, app.MsgProductNotFound}},
	{store.ErrCategoryNotFound, errorResponse{http.StatusNotFound, app.MsgCategoryNotFound}},
	{store.ErrOrderNotFound, errorResponse{http.StatusNotFound, app.MsgOrderNotFound}},
	{store.ErrCartItemNotFound, errorResponse{http.StatusNotFound, app.MsgCartItemNotFound}},
	{store.ErrSlugAlreadyExists, errorResponse{http.StatusConflict, app.MsgSlugAlreadyExists}},
	{store.ErrProductInUse, errorResponse{http.StatusConflict, app.MsgProductInUse}},
	{store.ErrCategoryInUse, errorResponse{http.StatusConflict, app.MsgCategoryInUse}},
	{store.ErrInsufficientStock, errorResponse{http.StatusConflict, app.MsgInsufficientStock}},
	{store.ErrOrderStatusConflict, errorResponse{http.StatusConflict, app.MsgOrderStatusConflict}},

	{store.ErrImageStorageDisabled, errorResponse{http.StatusServiceUnavailable, app.MsgImageStorageDisabled}},
	{store.ErrUnsupportedImageType, errorResponse{http.StatusUnsupportedMediaType, app.MsgUnsupportedImageType}},
	{store.ErrImageTooLarge, errorResponse{http.StatusRequestEntityTooLarge, app.MsgImageTooLarge}},
}

func responseFromError(err error) errorResponse {
	for _, candidate := range errorResponses {
		if errors.Is(err, candidate.target) {
			return candidate.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

// writeServiceError logs err with the request logger and answers with the
// status and message registered for it.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	resp := responseFromError(err)

	log := logger.FromRequest(r)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Msg(msg)
	} else {
		log.Debug().Err(err).Int("status", resp.status).Msg(msg)
	}

	http.Error(w, resp.message, resp.status)
}
