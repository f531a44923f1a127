package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/receptionist/internal/dto"
	"github.com/BruksfildServices01/receptionist/internal/httperr"
	"github.com/BruksfildServices01/receptionist/internal/httpresp"
	"github.com/BruksfildServices01/receptionist/internal/usecase/appointment"
)

type CallerHandler struct {
	callers *appointment.GetCaller
	calls   *appointment.CallLog
}

func NewCallerHandler(callers *appointment.GetCaller, calls *appointment.CallLog) *CallerHandler {
	return &CallerHandler{callers: callers, calls: calls}
}

func (h *CallerHandler) GetCaller(c *gin.Context) {
	history, err := h.callers.Execute(c.Request.Context(), c.Param("phone"))
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"caller":       history.Caller,
		"appointments": dto.Appointments(history.Appointments),
	})
}

// --------------------------------------------------
// Calls
// --------------------------------------------------

func (h *CallerHandler) StartCall(c *gin.Context) {
	var req dto.StartCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	call, err := h.calls.Start(c.Request.Context(), appointment.StartCallInput{
		CallSID:     req.CallSID,
		CallerPhone: req.CallerPhone,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.Created(c, call)
}

func (h *CallerHandler) UpdateCall(c *gin.Context) {
	var req dto.UpdateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	call, err := h.calls.Update(c.Request.Context(), appointment.UpdateCallInput{
		CallSID:            c.Param("sid"),
		Status:             req.Status,
		Transcript:         req.Transcript,
		AppointmentCreated: req.AppointmentCreated,
		AppointmentID:      req.AppointmentID,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, call)
}

func (h *CallerHandler) ListCalls(c *gin.Context) {
	var q struct {
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	calls, err := h.calls.List(c.Request.Context(), q.Limit)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.List(c, calls)
}
