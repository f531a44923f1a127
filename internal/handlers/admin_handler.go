package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/receptionist/internal/audit"
	"github.com/BruksfildServices01/receptionist/internal/calendar"
	"github.com/BruksfildServices01/receptionist/internal/dto"
	"github.com/BruksfildServices01/receptionist/internal/httperr"
	"github.com/BruksfildServices01/receptionist/internal/httpresp"
	"github.com/BruksfildServices01/receptionist/internal/middleware"
	"github.com/BruksfildServices01/receptionist/internal/usecase/appointment"
)

type AdminHandler struct {
	holder *calendar.Holder
	audit  appointment.AuditSink
}

func NewAdminHandler(holder *calendar.Holder, sink appointment.AuditSink) *AdminHandler {
	return &AdminHandler{holder: holder, audit: sink}
}

// ReloadConfig re-reads the business calendar file and swaps it in. A bad
// file leaves the running calendar in place.
func (h *AdminHandler) ReloadConfig(c *gin.Context) {
	cal, err := h.holder.Reload()
	if err != nil {
		log.Warn().Err(err).Msg("calendar reload rejected")
		httperr.BadRequest(c, "invalid_business_config", err.Error())
		return
	}

	log.Info().Str("business", cal.BusinessName).Int("services", len(cal.Services)).Msg("calendar reloaded")
	if h.audit != nil {
		h.audit.Dispatch(audit.Event{
			Actor:  middleware.Actor(c, "unknown"),
			Action: audit.ActionCalendarReloaded,
			Entity: "calendar",
		})
	}

	httpresp.OK(c, dto.BusinessConfig(cal))
}
