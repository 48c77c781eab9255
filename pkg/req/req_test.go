package req_test

import (
	"strings"
	"testing"

	"fortune_wheel/pkg/req"
)

type payload struct {
	Winner *int    `json:"winner"`
	Angle  float64 `json:"angle"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		check   func(p payload) bool
	}{
		{name: "full", body: `{"winner": 2, "angle": 3875.5}`, check: func(p payload) bool {
			return p.Winner != nil && *p.Winner == 2 && p.Angle == 3875.5
		}},
		{name: "empty body", body: ``, check: func(p payload) bool { return p.Winner == nil }},
		{name: "null winner", body: `{"winner": null}`, check: func(p payload) bool { return p.Winner == nil }},
		{name: "fractional winner", body: `{"winner": 1.5}`, wantErr: true},
		{name: "unknown field", body: `{"bet": 10}`, wantErr: true},
		{name: "broken json", body: `{"angle":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := req.Decode[payload](strings.NewReader(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", p)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(p) {
				t.Fatalf("unexpected payload %+v", p)
			}
		})
	}
}
