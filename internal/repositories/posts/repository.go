package posts

import (
	"context"

	"github.com/dmitrijs2005/blogkeeper/internal/models"
)

// Repository covers the post table. Reads join post_label and label so that
// each post comes back with its labels.
type Repository interface {
	Insert(ctx context.Context, post *models.Post) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	UpdateOwned(ctx context.Context, post *models.Post, writerID int64) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetAll(ctx context.Context) ([]*models.Post, error)
	Count(ctx context.Context) (int64, error)
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
	HardDeleteByWriter(ctx context.Context, writerID int64) error
}
