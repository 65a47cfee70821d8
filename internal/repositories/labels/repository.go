package labels

import (
	"context"

	"github.com/dmitrijs2005/blogkeeper/internal/models"
)

type Repository interface {
	Insert(ctx context.Context, label *models.Label) (int64, error)
	Update(ctx context.Context, label *models.Label) error
	GetByID(ctx context.Context, id int64) (*models.Label, error)
	GetAll(ctx context.Context) ([]*models.Label, error)
	Count(ctx context.Context) (int64, error)
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
}
