package reviews

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/common"
	"github.com/dmitrijs2005/ganfan/internal/dbx"
	"github.com/google/uuid"
)

type SQLRepository struct {
	db dbx.DBTX
	sb sq.StatementBuilderType
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, sb: dialect.Builder()}
}

func (r *SQLRepository) ListByDinner(ctx context.Context, dinnerID string) ([]models.Review, error) {
	query, args, err := r.sb.
		Select("r.id", "r.dinner_id", "r.user_id", "r.rating", "r.comment", "r.created_at", "COALESCE(u.nickname, '')").
		From("reviews r").
		LeftJoin("users u ON u.id = r.user_id").
		Where(sq.Eq{"r.dinner_id": dinnerID}).
		OrderBy("r.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of dinner[%s]: %w", dinnerID, err)
	}
	defer rows.Close()

	result := make([]models.Review, 0)
	for rows.Next() {
		var rv models.Review
		var created int64
		if err := rows.Scan(&rv.ID, &rv.DinnerID, &rv.UserID, &rv.Rating, &rv.Comment, &created, &rv.Nickname); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		rv.CreatedAt = time.UnixMilli(created)
		result = append(result, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review rows: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) Create(ctx context.Context, rv *models.Review) (*models.Review, error) {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now()
	}

	query, args, err := r.sb.Insert("reviews").
		Columns("id", "dinner_id", "user_id", "rating", "comment", "created_at").
		Values(rv.ID, rv.DinnerID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt.UnixMilli()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("review: %w", common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return rv, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("reviews").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete review[%s]: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) DeleteByDinner(ctx context.Context, dinnerID string) error {
	query, args, err := r.sb.Delete("reviews").Where(sq.Eq{"dinner_id": dinnerID}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete reviews of dinner[%s]: %w", dinnerID, err)
	}
	return nil
}
