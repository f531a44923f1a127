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

type AppointmentHandler struct {
	list   *appointment.ListAppointments
	get    *appointment.GetAppointment
	update *appointment.UpdateStatus
	stats  *appointment.GetStats
}

func NewAppointmentHandler(
	list *appointment.ListAppointments,
	get *appointment.GetAppointment,
	update *appointment.UpdateStatus,
	stats *appointment.GetStats,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:   list,
		get:    get,
		update: update,
		stats:  stats,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	var q dto.ListAppointmentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.list.Execute(c.Request.Context(), appointment.ListAppointmentsInput{
		Date:        q.Date,
		Status:      q.Status,
		CallerPhone: q.CallerPhone,
		Page:        q.Page,
		Limit:       q.Limit,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.Page(c, dto.Appointments(page.Data), page.Total, page.Page, page.Limit)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, dto.Appointment(ap))
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), appointment.UpdateStatusInput{
		ID:     id,
		Status: req.Status,
		Actor:  middleware.Actor(c, "unknown"),
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, dto.Appointment(ap))
}

// ======================================================
// STATS
// ======================================================

func (h *AppointmentHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Execute(c.Request.Context())
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, stats)
}
