package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
	"github.com/Keavors/MyFanBoard/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// ============================================================================
// Request validation tests — не требуют реальных сервисов:
// handler возвращает 400 до вызова сервиса
// ============================================================================

func TestRegister_ValidationErrors(t *testing.T) {
	handler := &AuthHandler{}

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "empty body",
			body:       nil,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing email",
			body:       map[string]string{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid email format",
			body:       map[string]string{"email": "not-an-email"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/auth/register", tt.body)
			handler.Register(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Equal(t, "invalid_request", resp["error_type"])
		})
	}
}

func TestVerifyRegistration_ValidationErrors(t *testing.T) {
	handler := &AuthHandler{}

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "empty body",
			body:       nil,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing code",
			body:       map[string]string{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "code too short",
			body:       map[string]string{"code": "123"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "code too long",
			body:       map[string]string{"code": "1234567"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "code not numeric",
			body:       map[string]string{"code": "12a456"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/auth/register/verify", tt.body)
			handler.VerifyRegistration(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Equal(t, "invalid_request", resp["error_type"])
		})
	}
}

func TestRequestLoginCode_ValidationErrors(t *testing.T) {
	handler := &AuthHandler{}

	c, w := newTestGinContext("POST", "/api/auth/login", map[string]string{"email": "broken"})
	handler.RequestLoginCode(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyLogin_ValidationErrors(t *testing.T) {
	handler := &AuthHandler{}

	c, w := newTestGinContext("POST", "/api/auth/login/verify", map[string]string{"code": "абвгде"})
	handler.VerifyLogin(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ============================================================================
// Тесты маппинга ошибок сервисов в HTTP-ответы
// ============================================================================

func TestRespondError_Mapping(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantStatus    int
		wantErrorType string
	}{
		{
			name:          "duplicate email",
			err:           service.ErrDuplicateEmail,
			wantStatus:    http.StatusConflict,
			wantErrorType: "duplicate_email",
		},
		{
			name:          "account not found or inactive",
			err:           service.ErrAccountNotFoundOrInactive,
			wantStatus:    http.StatusNotFound,
			wantErrorType: "account_not_found_or_inactive",
		},
		{
			name:          "missing session",
			err:           service.ErrMissingSession,
			wantStatus:    http.StatusBadRequest,
			wantErrorType: "missing_session",
		},
		{
			name:          "invalid or expired code",
			err:           service.ErrInvalidOrExpiredCode,
			wantStatus:    http.StatusBadRequest,
			wantErrorType: "invalid_or_expired_code",
		},
		{
			name:          "validation",
			err:           apperrors.ErrValidation,
			wantStatus:    http.StatusBadRequest,
			wantErrorType: "validation_error",
		},
		{
			name:          "unauthorized",
			err:           apperrors.ErrUnauthorized,
			wantStatus:    http.StatusUnauthorized,
			wantErrorType: "unauthorized",
		},
		{
			name:          "forbidden",
			err:           apperrors.ErrForbidden,
			wantStatus:    http.StatusForbidden,
			wantErrorType: "forbidden",
		},
		{
			name:          "not found",
			err:           apperrors.ErrNotFound,
			wantStatus:    http.StatusNotFound,
			wantErrorType: "not_found",
		},
		{
			name:          "conflict",
			err:           apperrors.ErrConflict,
			wantStatus:    http.StatusConflict,
			wantErrorType: "conflict",
		},
		{
			name:          "unknown error",
			err:           errors.New("boom"),
			wantStatus:    http.StatusInternalServerError,
			wantErrorType: "internal_server_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("GET", "/test", nil)
			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Equal(t, tt.wantErrorType, resp["error_type"])
		})
	}
}

func TestRespondError_WrappedErrors(t *testing.T) {
	// Обернутые ошибки распознаются через errors.Is
	c, w := newTestGinContext("GET", "/test", nil)

	respondError(c, errors.Join(errors.New("context"), apperrors.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
