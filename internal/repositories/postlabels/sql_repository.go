// Package postlabels provides SQL statements for the post_label table.
package postlabels

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogkeeper/internal/dbx"
)

var columns = []string{"post_id", "label_id"}

// SQLRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// LabelIDs returns the stored label ids of a post ordered by label id.
func (r *SQLRepository) LabelIDs(ctx context.Context, postID int64) ([]int64, error) {
	query := `SELECT label_id FROM post_label WHERE post_id = ? ORDER BY label_id`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to select post labels: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// InsertBatch writes all pairs with a single multi-row INSERT.
func (r *SQLRepository) InsertBatch(ctx context.Context, postID int64, labelIDs []int64) error {
	if len(labelIDs) == 0 {
		return nil
	}

	args := make([]any, 0, len(labelIDs)*2)
	for _, id := range labelIDs {
		args = append(args, postID, id)
	}

	query := dbx.BatchInsertSQL("post_label", columns, len(labelIDs))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert post labels: %w", err)
	}
	return nil
}

func (r *SQLRepository) DeleteByPost(ctx context.Context, postID int64) error {
	query := `DELETE FROM post_label WHERE post_id = ?`
	if _, err := r.db.ExecContext(ctx, query, postID); err != nil {
		return fmt.Errorf("failed to delete post labels: %w", err)
	}
	return nil
}

func (r *SQLRepository) DeleteLabels(ctx context.Context, postID int64, labelIDs []int64) error {
	if len(labelIDs) == 0 {
		return nil
	}

	args := make([]any, 0, len(labelIDs)+1)
	args = append(args, postID)
	for _, id := range labelIDs {
		args = append(args, id)
	}

	query := `DELETE FROM post_label WHERE post_id = ? AND label_id IN (` + dbx.Placeholders(len(labelIDs)) + `)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete post labels: %w", err)
	}
	return nil
}

func (r *SQLRepository) DeleteByLabel(ctx context.Context, labelID int64) error {
	query := `DELETE FROM post_label WHERE label_id = ?`
	if _, err := r.db.ExecContext(ctx, query, labelID); err != nil {
		return fmt.Errorf("failed to delete label associations: %w", err)
	}
	return nil
}

func (r *SQLRepository) DeleteByWriter(ctx context.Context, writerID int64) error {
	query := `DELETE FROM post_label WHERE post_id IN (SELECT id FROM post WHERE writer_id = ?)`
	if _, err := r.db.ExecContext(ctx, query, writerID); err != nil {
		return fmt.Errorf("failed to delete writer post labels: %w", err)
	}
	return nil
}
