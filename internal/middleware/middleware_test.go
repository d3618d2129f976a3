package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/services/invoices"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandlerMapsErrors(t *testing.T) {
	tests := []struct {
		err      error
		status   int
		wantType string
	}{
		{fmt.Errorf("%w: \"x\"", invoices.ErrInvalidID), http.StatusBadRequest, "validation_error"},
		{invoices.ErrBadCSV, http.StatusBadRequest, "validation_error"},
		{ErrInvalidRequest, http.StatusBadRequest, "validation_error"},
		{repository.ErrNotFound, http.StatusNotFound, "not_found"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/x", func(c *gin.Context) { AbortWithError(c, tt.err) })

			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.status, resp.Code)
			assert.Contains(t, resp.Body.String(), `"type":"`+tt.wantType+`"`)
		})
	}
}

func TestErrorHandlerLeavesWrittenResponses(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/x", func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("logged only"))
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusAccepted, resp.Code)
}

func TestRequestLoggerAssignsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/dashboard/invoices/:id/edit", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/dashboard/invoices/abc/edit", nil))

	requestID := resp.Header().Get(RequestIDHeader)
	require.NotEmpty(t, requestID)

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, requestID, fields["request_id"])
	assert.Equal(t, "/dashboard/invoices/:id/edit", fields["route"])
}

func TestRequestLoggerKeepsIncomingRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, "req-123", resp.Header().Get(RequestIDHeader))
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
}
