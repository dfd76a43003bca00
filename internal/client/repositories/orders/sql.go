package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/common"
	"github.com/dmitrijs2005/ganfan/internal/dbx"
	"github.com/google/uuid"
)

var columns = []string{"id", "dinner_id", "dish_id", "user_id", "created_at"}

type SQLRepository struct {
	db dbx.DBTX
	sb sq.StatementBuilderType
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, sb: dialect.Builder()}
}

func (r *SQLRepository) ListByDinner(ctx context.Context, dinnerID string) ([]models.Order, error) {
	query, args, err := r.sb.
		Select("o.id", "o.dinner_id", "o.dish_id", "o.user_id", "o.created_at", "COALESCE(u.nickname, '')").
		From("orders o").
		LeftJoin("users u ON u.id = o.user_id").
		Where(sq.Eq{"o.dinner_id": dinnerID}).
		OrderBy("o.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders of dinner[%s]: %w", dinnerID, err)
	}
	defer rows.Close()

	result := make([]models.Order, 0)
	for rows.Next() {
		var o models.Order
		var created int64
		if err := rows.Scan(&o.ID, &o.DinnerID, &o.DishID, &o.UserID, &created, &o.Nickname); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		o.CreatedAt = time.UnixMilli(created)
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order rows: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) Find(ctx context.Context, dinnerID, dishID, userID string) (*models.Order, error) {
	query, args, err := r.sb.Select(columns...).From("orders").
		Where(sq.Eq{"dinner_id": dinnerID, "dish_id": dishID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var o models.Order
	var created int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&o.ID, &o.DinnerID, &o.DishID, &o.UserID, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	o.CreatedAt = time.UnixMilli(created)
	return &o, nil
}

func (r *SQLRepository) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	query, args, err := r.sb.Insert("orders").Columns(columns...).
		Values(o.ID, o.DinnerID, o.DishID, o.UserID, o.CreatedAt.UnixMilli()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("order: %w", common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return o, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("orders").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order[%s]: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) DeleteByDinner(ctx context.Context, dinnerID string) error {
	query, args, err := r.sb.Delete("orders").Where(sq.Eq{"dinner_id": dinnerID}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete orders of dinner[%s]: %w", dinnerID, err)
	}
	return nil
}
