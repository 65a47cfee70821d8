// Package labels provides SQL statements for the label table.
package labels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/dbx"
	"github.com/dmitrijs2005/blogkeeper/internal/mapper"
	"github.com/dmitrijs2005/blogkeeper/internal/models"
)

const (
	selectSQL = `SELECT id, name, status FROM label
		WHERE (status IS NULL OR status <> 'DELETED')`

	getAllSQL  = selectSQL + ` ORDER BY id`
	getByIDSQL = selectSQL + ` AND id = ?`
)

// SQLRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Insert stores the label and returns the identity assigned by the store.
func (r *SQLRepository) Insert(ctx context.Context, label *models.Label) (int64, error) {
	query := `INSERT INTO label (name, status) VALUES (?, ?) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, label.Name, string(label.Status.OrActive())).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNoGeneratedKey
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// Update rewrites name and status. Zero rows affected is ErrorNotFound.
func (r *SQLRepository) Update(ctx context.Context, label *models.Label) error {
	query := `UPDATE label SET name = ?, status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, label.Name, string(label.Status.OrActive()), label.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res, label.ID)
}

// GetByID returns the label, or nil when no non-deleted label has that id.
func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Label, error) {
	rows, err := r.db.QueryContext(ctx, getByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to select label: %w", err)
	}
	defer rows.Close()

	scanned, err := mapper.ScanLabelRows(rows)
	if err != nil {
		return nil, err
	}
	return mapper.Label(scanned)
}

func (r *SQLRepository) GetAll(ctx context.Context) ([]*models.Label, error) {
	rows, err := r.db.QueryContext(ctx, getAllSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to select labels: %w", err)
	}
	defer rows.Close()

	scanned, err := mapper.ScanLabelRows(rows)
	if err != nil {
		return nil, err
	}
	return mapper.Labels(scanned)
}

func (r *SQLRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM label WHERE (status IS NULL OR status <> 'DELETED')`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count labels: %w", err)
	}
	return n, nil
}

// SoftDelete marks the label DELETED. It expects exactly one row affected.
func (r *SQLRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE label SET status = 'DELETED'
		WHERE id = ? AND (status IS NULL OR status <> 'DELETED')`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return expectOne(res, id)
}

// HardDelete removes the row. Association rows must be gone already.
func (r *SQLRepository) HardDelete(ctx context.Context, id int64) error {
	query := `DELETE FROM label WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return expectOne(res, id)
}

func expectOne(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("label %d: %w", id, common.ErrorNotFound)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
