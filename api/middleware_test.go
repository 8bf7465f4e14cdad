package api

import (
	"chat-relay/auth"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestRequireToken(t *testing.T) {
	req := require.New(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	app := &Application{tokens: tokens, log: logs.GetLoggerFromLevel(slog.LevelDebug)}

	var seenUserID string
	protected := app.requireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = userIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	token, err := tokens.GenerateToken("u-alice")
	req.NoError(err)

	tests := []struct {
		description string
		header      string
		wantStatus  int
	}{
		{"Should pass a valid bearer token", "Bearer " + token, http.StatusOK},
		{"Should reject a missing header", "", http.StatusUnauthorized},
		{"Should reject a non-bearer scheme", "Basic " + token, http.StatusUnauthorized},
		{"Should reject a forged token", "Bearer not.a.token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			seenUserID = ""
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, r)
			req.Equal(tt.wantStatus, rec.Code, tt.description)
			if tt.wantStatus == http.StatusOK {
				req.Equal("u-alice", seenUserID)
			}
		})
	}
}
