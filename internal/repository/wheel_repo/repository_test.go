package wheel_repo

import (
	"reflect"
	"testing"

	"fortune_wheel/internal/model"
	"fortune_wheel/pkg/wheel"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

func TestInsertWheelQuery(t *testing.T) {
	def := model.WheelDefinition{
		Name:         "promo",
		InnerRadius:  100,
		OuterRadius:  180,
		PaddingAngle: 0.5,
		DurationMs:   8000,
		KnobSize:     20,
	}

	sqlStr, args, err := insertWheelQuery(def).ToSql()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSQL := "INSERT INTO wheels (name,colors,inner_radius,outer_radius,padding_angle,duration_ms,knob_size) " +
		"VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id"
	if sqlStr != wantSQL {
		t.Fatalf("unexpected sql:\n%s\nwant:\n%s", sqlStr, wantSQL)
	}

	wantArgs := []any{"promo", []string{}, 100.0, 180.0, 0.5, 8000.0, 20.0}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("unexpected args %#v", args)
	}
}

func TestInsertRewardsQuery(t *testing.T) {
	rewards := []wheel.Reward{
		{Kind: wheel.RewardText, Value: "10%", Amount: decimal.RequireFromString("10.50")},
		{Kind: wheel.RewardImage, Value: "https://cdn.example.com/gift.png"},
	}

	sqlStr, args, err := insertRewardsQuery(7, rewards).ToSql()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSQL := "INSERT INTO wheel_rewards (wheel_id,position,kind,value,amount) VALUES ($1,$2,$3,$4,$5),($6,$7,$8,$9,$10)"
	if sqlStr != wantSQL {
		t.Fatalf("unexpected sql:\n%s\nwant:\n%s", sqlStr, wantSQL)
	}

	wantArgs := []any{
		int64(7), 0, "text", "10%", "10.5",
		int64(7), 1, "image", "https://cdn.example.com/gift.png", "0",
	}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("unexpected args %#v", args)
	}
}

func TestSelectQueries(t *testing.T) {
	columns := "id, name, colors, inner_radius, outer_radius, padding_angle, duration_ms, knob_size"

	tests := []struct {
		name     string
		query    sq.SelectBuilder
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "get",
			query:    selectWheelsQuery().Where(sq.Eq{colID: int64(3)}),
			wantSQL:  "SELECT " + columns + " FROM wheels WHERE id = $1",
			wantArgs: []any{int64(3)},
		},
		{
			name:    "list",
			query:   selectWheelsQuery().OrderBy(colID),
			wantSQL: "SELECT " + columns + " FROM wheels ORDER BY id",
		},
		{
			name:     "rewards",
			query:    selectRewardsQuery(1, 2),
			wantSQL:  "SELECT wheel_id, kind, value, amount::text FROM wheel_rewards WHERE wheel_id IN ($1,$2) ORDER BY wheel_id, position",
			wantArgs: []any{int64(1), int64(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqlStr, args, err := tt.query.ToSql()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sqlStr != tt.wantSQL {
				t.Fatalf("unexpected sql:\n%s\nwant:\n%s", sqlStr, tt.wantSQL)
			}
			if len(args) != len(tt.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tt.wantArgs)) {
				t.Fatalf("unexpected args %#v", args)
			}
		})
	}
}
