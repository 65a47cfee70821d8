// Package posts provides SQL statements for the post table.
package posts

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
	selectSQL = `SELECT p.id, p.content, p.created, p.updated, p.status, p.writer_id,
			l.id AS label_id, l.name AS label_name, l.status AS label_status
		FROM post p
		LEFT JOIN post_label pl ON pl.post_id = p.id
		LEFT JOIN label l ON l.id = pl.label_id AND (l.status IS NULL OR l.status <> 'DELETED')
		WHERE p.status <> 'DELETED'`

	getAllSQL  = selectSQL + ` ORDER BY p.id, pl.label_id`
	getByIDSQL = selectSQL + ` AND p.id = ? ORDER BY pl.label_id`
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Insert stores the post row only. Labels are written by the caller in the
// same transaction once the id is known.
func (r *SQLRepository) Insert(ctx context.Context, post *models.Post) (int64, error) {
	query := `INSERT INTO post (content, created, updated, status, writer_id)
		VALUES (?, ?, ?, ?, ?) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		post.Content, post.Created, updatedArg(post), string(post.Status.OrActive()), post.WriterID(),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNoGeneratedKey
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// Update rewrites content, updated, status and writer_id. created is never
// touched.
func (r *SQLRepository) Update(ctx context.Context, post *models.Post) error {
	query := `UPDATE post SET content = ?, updated = ?, status = ?, writer_id = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		post.Content, updatedArg(post), string(post.Status.OrActive()), post.WriterID(), post.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res, post.ID)
}

// UpdateOwned rewrites content, updated and status of a post that belongs
// to writerID. A post owned by another writer is not found.
func (r *SQLRepository) UpdateOwned(ctx context.Context, post *models.Post, writerID int64) error {
	query := `UPDATE post SET content = ?, updated = ?, status = ? WHERE id = ? AND writer_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		post.Content, updatedArg(post), string(post.Status.OrActive()), post.ID, writerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res, post.ID)
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, getByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to select post: %w", err)
	}
	defer rows.Close()

	scanned, err := mapper.ScanPostRows(rows)
	if err != nil {
		return nil, err
	}
	return mapper.Post(scanned)
}

func (r *SQLRepository) GetAll(ctx context.Context) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, getAllSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to select posts: %w", err)
	}
	defer rows.Close()

	scanned, err := mapper.ScanPostRows(rows)
	if err != nil {
		return nil, err
	}
	return mapper.Posts(scanned)
}

// Count returns the number of non-deleted posts.
func (r *SQLRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM post WHERE status <> 'DELETED'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE post SET status = 'DELETED' WHERE id = ? AND status <> 'DELETED'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return expectOne(res, id)
}

// HardDelete removes the post row. Its post_label rows must be gone already.
func (r *SQLRepository) HardDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM post WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return expectOne(res, id)
}

// HardDeleteByWriter removes every post of the writer, deleted ones included.
func (r *SQLRepository) HardDeleteByWriter(ctx context.Context, writerID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM post WHERE writer_id = ?`, writerID)
	if err != nil {
		return fmt.Errorf("failed to delete writer posts: %w", err)
	}
	return nil
}

func updatedArg(post *models.Post) any {
	if post.Updated == nil {
		return nil
	}
	return *post.Updated
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
		return fmt.Errorf("post %d: %w", id, common.ErrorNotFound)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
