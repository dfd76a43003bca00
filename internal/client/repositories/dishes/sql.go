package dishes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/common"
	"github.com/dmitrijs2005/ganfan/internal/dbx"
	"github.com/google/uuid"
)

var columns = []string{"id", "title", "description", "images", "status", "created_by", "created_at"}

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

func scanDish(row rowScanner) (*models.Dish, error) {
	var (
		d       models.Dish
		images  string
		status  string
		created int64
	)
	if err := row.Scan(&d.ID, &d.Title, &d.Description, &images, &status, &d.CreatedBy, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(images), &d.Images); err != nil {
		return nil, fmt.Errorf("decode images of dish[%s]: %w", d.ID, err)
	}
	d.Status = models.DishStatus(status)
	d.CreatedAt = time.UnixMilli(created)
	return &d, nil
}

func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("encode images: %w", err)
	}
	return string(b), nil
}

func (r *SQLRepository) List(ctx context.Context, status models.DishStatus) ([]models.Dish, error) {
	b := r.sb.Select(columns...).From("dishes").OrderBy("created_at DESC")
	if status != "" {
		b = b.Where(sq.Eq{"status": string(status)})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	defer rows.Close()

	result := make([]models.Dish, 0)
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dish row: %w", err)
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dish rows: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Dish, error) {
	query, args, err := r.sb.Select(columns...).From("dishes").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	d, err := scanDish(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get dish[%s]: %w", id, err)
	}
	return d, nil
}

func (r *SQLRepository) Create(ctx context.Context, d *models.Dish) (*models.Dish, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	if d.Status == "" {
		d.Status = models.DishActive
	}
	images, err := encodeImages(d.Images)
	if err != nil {
		return nil, err
	}

	query, args, err := r.sb.Insert("dishes").Columns(columns...).
		Values(d.ID, d.Title, d.Description, images, string(d.Status), d.CreatedBy, d.CreatedAt.UnixMilli()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}
	return d, nil
}

func (r *SQLRepository) Update(ctx context.Context, d *models.Dish) error {
	images, err := encodeImages(d.Images)
	if err != nil {
		return err
	}
	query, args, err := r.sb.Update("dishes").
		Set("title", d.Title).
		Set("description", d.Description).
		Set("images", images).
		Set("status", string(d.Status)).
		Where(sq.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, d.ID, "update", query, args)
}

func (r *SQLRepository) SetStatus(ctx context.Context, id string, status models.DishStatus) error {
	query, args, err := r.sb.Update("dishes").Set("status", string(status)).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, id, "set status of", query, args)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("dishes").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, id, "delete", query, args)
}

func (r *SQLRepository) execOne(ctx context.Context, id, op, query string, args []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s dish[%s]: %w", op, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s dish[%s]: %w", op, id, err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
