package wheel_repo

import (
	"context"
	"errors"
	"fmt"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"
	"fortune_wheel/pkg/wheel"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	wheelsTable     = "wheels"
	colID           = "id"
	colName         = "name"
	colColors       = "colors"
	colInnerRadius  = "inner_radius"
	colOuterRadius  = "outer_radius"
	colPaddingAngle = "padding_angle"
	colDurationMs   = "duration_ms"
	colKnobSize     = "knob_size"

	rewardsTable = "wheel_rewards"
	colWheelID   = "wheel_id"
	colPosition  = "position"
	colKind      = "kind"
	colValue     = "value"
	colAmount    = "amount"
)

var wheelColumns = []string{colID, colName, colColors, colInnerRadius, colOuterRadius, colPaddingAngle, colDurationMs, colKnobSize}

type repo struct {
	dbc *pgxpool.Pool
}

func NewWheelRepository(dbc *pgxpool.Pool) repository.WheelRepository {
	return &repo{
		dbc: dbc,
	}
}

// Create - сохраняет колесо и его призы.
// Вызывать внутри txManager.Do, иначе колесо и призы пишутся разными запросами без транзакции.
func (r *repo) Create(ctx context.Context, def model.WheelDefinition) (int64, error) {
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	sqlStr, args, err := insertWheelQuery(def).ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err = conn.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert wheel: %w", err)
	}

	if len(def.Rewards) == 0 {
		return id, nil
	}

	sqlStr, args, err = insertRewardsQuery(id, def.Rewards).ToSql()
	if err != nil {
		return 0, err
	}
	if _, err = conn.Exec(ctx, sqlStr, args...); err != nil {
		return 0, fmt.Errorf("insert wheel rewards: %w", err)
	}

	return id, nil
}

// Get - колесо с призами по id
func (r *repo) Get(ctx context.Context, id int64) (*model.WheelDefinition, error) {
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	sqlStr, args, err := selectWheelsQuery().Where(sq.Eq{colID: id}).ToSql()
	if err != nil {
		return nil, err
	}

	def, err := scanWheel(conn.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrWheelNotFound
		}
		return nil, err
	}

	rewards, err := r.rewards(ctx, id)
	if err != nil {
		return nil, err
	}
	def.Rewards = rewards[id]

	return &def, nil
}

// List - все колеса по возрастанию id
func (r *repo) List(ctx context.Context) ([]model.WheelDefinition, error) {
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	sqlStr, args, err := selectWheelsQuery().OrderBy(colID).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []model.WheelDefinition
	for rows.Next() {
		def, err := scanWheel(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return defs, nil
	}

	ids := lo.Map(defs, func(d model.WheelDefinition, _ int) int64 { return d.ID })
	rewards, err := r.rewards(ctx, ids...)
	if err != nil {
		return nil, err
	}
	for i := range defs {
		defs[i].Rewards = rewards[defs[i].ID]
	}

	return defs, nil
}

// rewards - призы колес, сгруппированные по id колеса
func (r *repo) rewards(ctx context.Context, ids ...int64) (map[int64][]wheel.Reward, error) {
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	sqlStr, args, err := selectRewardsQuery(ids...).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]wheel.Reward, len(ids))
	for rows.Next() {
		var (
			wheelID int64
			kind    string
			reward  wheel.Reward
			amount  string
		)
		if err = rows.Scan(&wheelID, &kind, &reward.Value, &amount); err != nil {
			return nil, err
		}
		reward.Kind = wheel.RewardKind(kind)
		reward.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("wheel %d: invalid amount %q: %w", wheelID, amount, err)
		}
		result[wheelID] = append(result[wheelID], reward)
	}

	return result, rows.Err()
}

func insertWheelQuery(def model.WheelDefinition) sq.InsertBuilder {
	// NULL в colors не пишем
	colors := def.Colors
	if colors == nil {
		colors = []string{}
	}

	return sq.Insert(wheelsTable).
		Columns(colName, colColors, colInnerRadius, colOuterRadius, colPaddingAngle, colDurationMs, colKnobSize).
		Values(def.Name, colors, def.InnerRadius, def.OuterRadius, def.PaddingAngle, def.DurationMs, def.KnobSize).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)
}

// insertRewardsQuery Призы одним запросом, позиция - индекс сегмента
func insertRewardsQuery(wheelID int64, rewards []wheel.Reward) sq.InsertBuilder {
	query := sq.Insert(rewardsTable).
		Columns(colWheelID, colPosition, colKind, colValue, colAmount).
		PlaceholderFormat(sq.Dollar)
	for i, reward := range rewards {
		query = query.Values(wheelID, i, string(reward.Kind), reward.Value, reward.Amount.String())
	}
	return query
}

func selectWheelsQuery() sq.SelectBuilder {
	return sq.Select(wheelColumns...).
		From(wheelsTable).
		PlaceholderFormat(sq.Dollar)
}

// selectRewardsQuery amount читается текстом, чтобы не терять точность numeric
func selectRewardsQuery(ids ...int64) sq.SelectBuilder {
	return sq.Select(colWheelID, colKind, colValue, colAmount+"::text").
		From(rewardsTable).
		Where(sq.Eq{colWheelID: ids}).
		OrderBy(colWheelID, colPosition).
		PlaceholderFormat(sq.Dollar)
}

func scanWheel(row pgx.Row) (model.WheelDefinition, error) {
	var def model.WheelDefinition
	err := row.Scan(
		&def.ID,
		&def.Name,
		&def.Colors,
		&def.InnerRadius,
		&def.OuterRadius,
		&def.PaddingAngle,
		&def.DurationMs,
		&def.KnobSize,
	)
	return def, err
}
