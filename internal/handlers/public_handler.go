package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/receptionist/internal/dto"
	"github.com/BruksfildServices01/receptionist/internal/httperr"
	"github.com/BruksfildServices01/receptionist/internal/httpresp"
	"github.com/BruksfildServices01/receptionist/internal/middleware"
	"github.com/BruksfildServices01/receptionist/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the caller-facing surface used by the voice agent.
type PublicHandler struct {
	cal   appointment.CalendarProvider
	avail *appointment.GetAvailability
	book  *appointment.BookAppointment
}

func NewPublicHandler(
	cal appointment.CalendarProvider,
	avail *appointment.GetAvailability,
	book *appointment.BookAppointment,
) *PublicHandler {
	return &PublicHandler{cal: cal, avail: avail, book: book}
}

// ======================================================
// CATALOG
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	httpresp.List(c, dto.Services(h.cal.Current()))
}

func (h *PublicHandler) GetConfig(c *gin.Context) {
	httpresp.OK(c, dto.BusinessConfig(h.cal.Current()))
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	var q dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	out, err := h.avail.Execute(c.Request.Context(), appointment.GetAvailabilityInput{
		Date:    q.Date,
		Service: q.Service,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// BOOK
// ======================================================

func (h *PublicHandler) Book(c *gin.Context) {
	var req dto.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), appointment.BookAppointmentInput{
		CallerPhone: req.CallerPhone,
		CallerName:  req.CallerName,
		Service:     req.Service,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
		Actor:       middleware.Actor(c, "public"),
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.Created(c, dto.Appointment(ap))
}
