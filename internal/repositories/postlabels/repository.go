package postlabels

import "context"

// Repository covers the post_label association table. It has no identity of
// its own: a row is a (post_id, label_id) pair.
type Repository interface {
	LabelIDs(ctx context.Context, postID int64) ([]int64, error)
	InsertBatch(ctx context.Context, postID int64, labelIDs []int64) error
	DeleteByPost(ctx context.Context, postID int64) error
	DeleteLabels(ctx context.Context, postID int64, labelIDs []int64) error
	DeleteByLabel(ctx context.Context, labelID int64) error
	DeleteByWriter(ctx context.Context, writerID int64) error
}
