// Package writers provides SQL statements for the writer table.
package writers

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
	selectSQL = `SELECT w.id AS writer_id, w.firstname, w.lastname, w.status,
			p.id AS post_id, p.content, p.created, p.updated, p.status AS post_status,
			l.id AS label_id, l.name AS label_name, l.status AS label_status
		FROM writer w
		LEFT JOIN post p ON p.writer_id = w.id AND p.status <> 'DELETED'
		LEFT JOIN post_label pl ON pl.post_id = p.id
		LEFT JOIN label l ON l.id = pl.label_id AND (l.status IS NULL OR l.status <> 'DELETED')
		WHERE w.status <> 'DELETED'`

	getAllSQL  = selectSQL + ` ORDER BY w.id, p.id, pl.label_id`
	getByIDSQL = selectSQL + ` AND w.id = ? ORDER BY p.id, pl.label_id`

	findByNameSQL = selectSQL + ` AND w.id = (
			SELECT id FROM writer
			WHERE firstname = ? AND lastname = ? AND status <> 'DELETED'
			ORDER BY id LIMIT 1)
		ORDER BY p.id, pl.label_id`
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Insert stores the writer row only; posts are written separately.
func (r *SQLRepository) Insert(ctx context.Context, writer *models.Writer) (int64, error) {
	query := `INSERT INTO writer (firstname, lastname, status) VALUES (?, ?, ?) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		writer.FirstName, writer.LastName, string(writer.Status.OrActive()),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNoGeneratedKey
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *SQLRepository) Update(ctx context.Context, writer *models.Writer) error {
	query := `UPDATE writer SET firstname = ?, lastname = ?, status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		writer.FirstName, writer.LastName, string(writer.Status.OrActive()), writer.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res, writer.ID)
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Writer, error) {
	return r.one(ctx, getByIDSQL, id)
}

func (r *SQLRepository) FindByName(ctx context.Context, firstName, lastName string) (*models.Writer, error) {
	return r.one(ctx, findByNameSQL, firstName, lastName)
}

func (r *SQLRepository) one(ctx context.Context, query string, args ...any) (*models.Writer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select writer: %w", err)
	}
	defer rows.Close()

	scanned, err := mapper.ScanWriterRows(rows)
	if err != nil {
		return nil, err
	}
	return mapper.Writer(scanned)
}

func (r *SQLRepository) GetAll(ctx context.Context) ([]*models.Writer, error) {
	rows, err := r.db.QueryContext(ctx, getAllSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to select writers: %w", err)
	}
	defer rows.Close()

	scanned, err := mapper.ScanWriterRows(rows)
	if err != nil {
		return nil, err
	}
	return mapper.Writers(scanned)
}

func (r *SQLRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM writer WHERE status <> 'DELETED'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count writers: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE writer SET status = 'DELETED' WHERE id = ? AND status <> 'DELETED'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete writer: %w", err)
	}
	return expectOne(res, id)
}

// HardDelete removes the writer row. Posts referencing it must be gone.
func (r *SQLRepository) HardDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM writer WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete writer: %w", err)
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
		return fmt.Errorf("writer %d: %w", id, common.ErrorNotFound)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
