package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/spotshare/internal/domain"
)

func TestWriteErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation",
			err:        domain.NewValidationError("name", "is required"),
			wantStatus: http.StatusBadRequest,
			wantError:  "validation failed: name is required",
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("failed to update spot 1: %w", domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantError:  "not found",
		},
		{
			name:       "storage failure hides detail",
			err:        fmt.Errorf("%w: disk full", domain.ErrStorage),
			wantStatus: http.StatusInternalServerError,
			wantError:  retryMessage,
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  retryMessage,
		},
	}

	s := &Server{logger: slog.Default()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.writeError(rec, httptest.NewRequest(http.MethodGet, "/api/spots", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

func TestSessionToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", sessionToken(r))

	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", sessionToken(r))

	r.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", sessionToken(r))
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	h := securityHeaders(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
