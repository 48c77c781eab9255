package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fortune_wheel/internal/middleware"
	"fortune_wheel/internal/model"
	"fortune_wheel/pkg/token"

	"go.uber.org/zap"
)

func TestAuth(t *testing.T) {
	secret := []byte("secret")
	valid, err := token.GenerateAccessToken(model.Player{ID: 5}, secret, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var gotID int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = middleware.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := middleware.Auth(secret, zap.NewNop())(next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "Bearer " + valid, want: http.StatusNoContent},
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, want: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer abc", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID = 0
			r := httptest.NewRequest(http.MethodPost, "/wheels/1/spin", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
			if tt.want == http.StatusNoContent && gotID != 5 {
				t.Fatalf("expected player 5 in context, got %d", gotID)
			}
		})
	}
}
