package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/receptionist/internal/httperr"
	"github.com/BruksfildServices01/receptionist/internal/validators"
)

// bindError answers a failed ShouldBind* with the offending fields.
func bindError(c *gin.Context, err error) {
	if fields := validators.Describe(err); len(fields) > 0 {
		details := make(map[string]any, len(fields))
		for _, f := range fields {
			details[f.Field] = f.Message
		}
		httperr.WriteDetails(c, http.StatusBadRequest, "invalid_request", "Request validation failed.", details)
		return
	}
	httperr.BadRequest(c, "invalid_request", "Malformed request body.")
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.FromDomain(c, httperr.ErrBusiness("invalid_id"))
		return 0, false
	}
	return uint(id), true
}
