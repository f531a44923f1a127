package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
)

type HTTPError struct {
	Code    string         `json:"error_code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func WriteDetails(c *gin.Context, status int, code, message string, details map[string]any) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// FromDomain writes the response for an error returned by a use case.
// Storage failures are logged and reported without internal detail.
func FromDomain(c *gin.Context, err error) {
	var (
		verr *domain.ValidationError
		oh   *domain.OutOfHoursError
		su   *domain.SlotUnavailableError
		terr *domain.InvalidTransitionError
		nf   *domain.NotFoundError
		be   BusinessError
	)

	switch {
	case errors.As(err, &verr):
		BadRequest(c, verr.Code, verr.Message)

	case errors.As(err, &oh):
		details := map[string]any{
			"date":    oh.Date,
			"weekday": oh.Weekday,
			"closed":  oh.Closed,
		}
		if !oh.Closed {
			details["open"] = oh.Open
			details["close"] = oh.Close
		}
		WriteDetails(c, http.StatusUnprocessableEntity, "outside_business_hours", oh.Error(), details)

	case errors.As(err, &su):
		alts := su.Alternatives
		if alts == nil {
			alts = []string{}
		}
		WriteDetails(c, http.StatusConflict, "slot_unavailable", su.Error(), map[string]any{
			"date":         su.Date,
			"time":         su.Time,
			"service":      su.Service,
			"alternatives": alts,
		})

	case errors.As(err, &terr):
		WriteDetails(c, http.StatusConflict, "invalid_transition", terr.Error(), map[string]any{
			"from": terr.From,
			"to":   terr.To,
		})

	case errors.As(err, &nf):
		NotFound(c, nf.Entity+"_not_found", nf.Error())

	case errors.As(err, &be):
		status := be.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		Write(c, status, be.Code, be.Code)

	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		Write(c, http.StatusServiceUnavailable, "service_unavailable", "The scheduling service is temporarily unavailable.")
	}
}
