package dinners

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

var columns = []string{"id", "title", "dining_time", "order_deadline", "allow_modify", "status", "created_by", "created_at"}

type SQLRepository struct {
	db dbx.DBTX
	sb sq.StatementBuilderType
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, sb: dialect.Builder()}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDinner(row rowScanner) (*models.Dinner, error) {
	var d models.Dinner
	var status string
	var dining, deadline, created int64
	if err := row.Scan(&d.ID, &d.Title, &dining, &deadline, &d.AllowModify, &status, &d.CreatedBy, &created); err != nil {
		return nil, err
	}
	d.DiningTime = time.UnixMilli(dining)
	d.OrderDeadline = time.UnixMilli(deadline)
	d.Status = models.DinnerStatus(status)
	d.CreatedAt = time.UnixMilli(created)
	return &d, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Dinner, error) {
	query, args, err := r.sb.Select(columns...).From("dinners").OrderBy("dining_time DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list dinners: %w", err)
	}
	defer rows.Close()

	result := make([]models.Dinner, 0)
	for rows.Next() {
		d, err := scanDinner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dinner row: %w", err)
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dinner rows: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Dinner, error) {
	query, args, err := r.sb.Select(columns...).From("dinners").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	d, err := scanDinner(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get dinner[%s]: %w", id, err)
	}
	return d, nil
}

func (r *SQLRepository) Create(ctx context.Context, d *models.Dinner) (*models.Dinner, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	if d.Status == "" {
		d.Status = models.DinnerActive
	}

	query, args, err := r.sb.Insert("dinners").Columns(columns...).
		Values(d.ID, d.Title, d.DiningTime.UnixMilli(), d.OrderDeadline.UnixMilli(), d.AllowModify,
			string(d.Status), d.CreatedBy, d.CreatedAt.UnixMilli()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create dinner: %w", err)
	}
	return d, nil
}

func (r *SQLRepository) Update(ctx context.Context, d *models.Dinner) error {
	query, args, err := r.sb.Update("dinners").
		Set("title", d.Title).
		Set("dining_time", d.DiningTime.UnixMilli()).
		Set("order_deadline", d.OrderDeadline.UnixMilli()).
		Set("allow_modify", d.AllowModify).
		Set("status", string(d.Status)).
		Where(sq.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, d.ID, "update", query, args)
}

func (r *SQLRepository) SetAllowModify(ctx context.Context, id string, allow bool) error {
	query, args, err := r.sb.Update("dinners").Set("allow_modify", allow).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, id, "set allow_modify of", query, args)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("dinners").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, id, "delete", query, args)
}

func (r *SQLRepository) execOne(ctx context.Context, id, op, query string, args []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s dinner[%s]: %w", op, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s dinner[%s]: %w", op, id, err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
