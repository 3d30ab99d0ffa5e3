package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{name: "member not found", err: fmt.Errorf("loading: %w", apperrors.ErrMemberNotFound), status: 404, code: dto.ErrorCodeResourceNotFound, message: "Member not found"},
		{name: "custom not found", err: apperrors.NewResourceNotFoundError("No such checklist"), status: 404, code: dto.ErrorCodeResourceNotFound, message: "No such checklist"},
		{name: "duplicate email", err: apperrors.ErrEmailAlreadyExists, status: 409, code: dto.ErrorCodeResourceAlreadyExists, message: "Email already exists"},
		{name: "duplicate team", err: apperrors.ErrTeamAlreadyExists, status: 409, code: dto.ErrorCodeResourceAlreadyExists, message: "Resource already exists"},
		{name: "conflict", err: apperrors.ErrDepartmentHasRelations, status: 409, code: dto.ErrorCodeConflict, message: "Request conflicts with existing data"},
		{name: "validation", err: apperrors.NewValidationError("name is required"), status: 400, code: dto.ErrorCodeValidationFailed, message: "name is required"},
		{name: "invalid role", err: apperrors.ErrInvalidRole, status: 400, code: dto.ErrorCodeValidationFailed, message: "Validation failed"},
		{name: "bad request", err: apperrors.NewBadRequestError("no PIN for members"), status: 400, code: dto.ErrorCodeBadRequest, message: "no PIN for members"},
		{name: "unknown", err: errors.New("connection reset"), status: 500, code: dto.ErrorCodeInternalServer, message: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serveError(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}

func TestInternalErrorsDoNotLeakDetails(t *testing.T) {
	_, body := serveError(t, errors.New("pq: password authentication failed"))
	assert.Nil(t, body.Error.Details)
}

type bindTarget struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		ok     bool
		field  string
		detail string
	}{
		{name: "valid", body: `{"name":"Thandi","email":"thandi@example.org"}`, ok: true},
		{name: "malformed", body: `{"name":`, ok: false},
		{name: "bad email", body: `{"name":"Thandi","email":"nope"}`, ok: false, field: "Email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var target bindTarget
			ok := BindJSON(c, &target)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, "Thandi", target.Name)
				return
			}

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
			assert.Equal(t, tt.field, body.Error.Field)
		})
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	var buf strings.Builder
	router := gin.New()
	router.Use(RequestLogger(zerolog.New(&buf)))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusTeapot, "pong") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?x=1", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/ping?x=1"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	h := CORS([]string{"http://localhost:5173"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

type optionalTarget struct {
	Reason *string `json:"reason,omitempty" binding:"omitempty,max=5"`
}

func TestBindOptionalJSON(t *testing.T) {
	newContext := func(body string, contentLength int64) (*gin.Context, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Request.ContentLength = contentLength
		return c, w
	}

	t.Run("no body", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		var target optionalTarget
		assert.True(t, BindOptionalJSON(c, &target))
		assert.Nil(t, target.Reason)
	})

	t.Run("empty chunked body", func(t *testing.T) {
		c, w := newContext("", -1)

		var target optionalTarget
		assert.True(t, BindOptionalJSON(c, &target))
		assert.Nil(t, target.Reason)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("chunked body with content", func(t *testing.T) {
		c, _ := newContext(`{"reason":"sick"}`, -1)

		var target optionalTarget
		require.True(t, BindOptionalJSON(c, &target))
		require.NotNil(t, target.Reason)
		assert.Equal(t, "sick", *target.Reason)
	})

	t.Run("invalid body still rejected", func(t *testing.T) {
		c, w := newContext(`{"reason":"much too long"}`, -1)

		var target optionalTarget
		assert.False(t, BindOptionalJSON(c, &target))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
