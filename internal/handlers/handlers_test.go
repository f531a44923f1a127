package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/receptionist/internal/audit"
	"github.com/BruksfildServices01/receptionist/internal/calendar"
	"github.com/BruksfildServices01/receptionist/internal/config"
)

type captured struct{ events []audit.Event }

func (c *captured) Dispatch(ev audit.Event) { c.events = append(c.events, ev) }

func serve(h gin.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, "/", h)

	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	h := NewAuthHandler(&config.Config{
		JWTSecret:         "k",
		AdminEmail:        "Admin@Example.com",
		AdminPasswordHash: string(hash),
	})

	w := serve(h.Login, http.MethodPost, `{"email":"admin@example.com","password":"s3cret"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)

	w = serve(h.Login, http.MethodPost, `{"email":"admin@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":"invalid_credentials"`)

	w = serve(h.Login, http.MethodPost, `{"email":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

const calendarFile = `{
  "business_name": "%s",
  "timezone": "Asia/Karachi",
  "working_hours": {"monday": "9:00 AM - 6:00 PM", "sunday": "Closed"},
  "services": [{"name": "Haircut", "price": "10.00", "duration": 30}]
}`

func TestReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "business_config.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(calendarFile, "%s", "Before", 1)), 0o600))

	cal, err := calendar.Load(path)
	require.NoError(t, err)
	holder := calendar.NewHolder(cal, path)
	sink := &captured{}
	h := NewAdminHandler(holder, sink)

	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(calendarFile, "%s", "After", 1)), 0o600))
	w := serve(h.ReloadConfig, http.MethodPost, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"business_name":"After"`)
	assert.Equal(t, "After", holder.Current().BusinessName)
	require.Len(t, sink.events, 1)
	assert.Equal(t, audit.ActionCalendarReloaded, sink.events[0].Action)

	require.NoError(t, os.WriteFile(path, []byte(`{"business_name": "Broken", "timezone": "Mars/Olympus"}`), 0o600))
	w = serve(h.ReloadConfig, http.MethodPost, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_business_config")
	assert.Equal(t, "After", holder.Current().BusinessName)
}
