package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "budgethub/internal/errors"
	"budgethub/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusForKind(t *testing.T) {
	cases := map[apperrors.Kind]int{
		apperrors.KindValidation:        http.StatusBadRequest,
		apperrors.KindInsufficientFunds: http.StatusBadRequest,
		apperrors.KindNotFound:          http.StatusNotFound,
		apperrors.KindStoreFailure:      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := StatusForKind(kind); got != want {
			t.Errorf("StatusForKind(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestWriteError_LogsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/boom", func(c *gin.Context) {
		WriteError(c, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("connection reset")))
	})
	r.GET("/plain", func(c *gin.Context) {
		WriteError(c, errors.New("unexpected"))
	})

	for _, path := range []string{"/boom", "/plain"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(requestIDHeader, "req-"+path[1:])
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", path, rec.Code)
		}

		found := false
		for _, entry := range logs.FilterField(zap.String("request_id", "req-"+path[1:])).All() {
			if entry.Level == zapcore.ErrorLevel {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: expected an error log entry carrying the request id", path)
		}
	}
}

func TestWriteError_ClientErrorsAreNotLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	r := gin.New()
	r.GET("/missing", func(c *gin.Context) {
		WriteError(c, apperrors.ErrBudgetNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if logs.Len() != 0 {
		t.Errorf("expected no error logs for a not-found error, got %d", logs.Len())
	}
}
