package writers

import (
	"context"

	"github.com/dmitrijs2005/blogkeeper/internal/models"
)

type Repository interface {
	Insert(ctx context.Context, writer *models.Writer) (int64, error)
	Update(ctx context.Context, writer *models.Writer) error
	GetByID(ctx context.Context, id int64) (*models.Writer, error)
	GetAll(ctx context.Context) ([]*models.Writer, error)
	// FindByName returns the first non-deleted writer with exactly these
	// names, or nil.
	FindByName(ctx context.Context, firstName, lastName string) (*models.Writer, error)
	Count(ctx context.Context) (int64, error)
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
}
