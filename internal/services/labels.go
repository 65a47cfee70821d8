package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/models"
)

type LabelService struct {
	base
	policy models.DeletePolicy
}

func NewLabelService(d Deps, policy models.DeletePolicy) *LabelService {
	return &LabelService{base: newBase(d, "label"), policy: policy}
}

func (s *LabelService) GetByID(ctx context.Context, id int64) (*models.Label, error) {
	if err := requireID("label", id); err != nil {
		return nil, err
	}

	var label *models.Label
	err := s.read(ctx, fmt.Sprintf("failed to get label %d", id), func(ctx context.Context, r repos) error {
		var err error
		label, err = r.labels.GetByID(ctx, id)
		return err
	})
	return label, err
}

func (s *LabelService) GetAll(ctx context.Context) ([]*models.Label, error) {
	var all []*models.Label
	err := s.read(ctx, "failed to get labels", func(ctx context.Context, r repos) error {
		var err error
		all, err = r.labels.GetAll(ctx)
		return err
	})
	return all, err
}

func (s *LabelService) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.read(ctx, "failed to count labels", func(ctx context.Context, r repos) error {
		var err error
		n, err = r.labels.Count(ctx)
		return err
	})
	return n, err
}

func (s *LabelService) Save(ctx context.Context, label *models.Label) (*models.Label, error) {
	if label == nil {
		return nil, common.Invalid("label is nil")
	}
	if label.ID != 0 {
		return nil, common.Invalid("new label already has id %d", label.ID)
	}

	status := label.Status.OrActive()
	row := models.Label{Name: label.Name, Status: status}

	var id int64
	err := s.inTx(ctx, fmt.Sprintf("failed to save label %q", label.Name), func(ctx context.Context, r repos) error {
		var err error
		id, err = r.labels.Insert(ctx, &row)
		return err
	})
	if err != nil {
		return nil, err
	}

	label.ID, label.Status = id, status
	return label, nil
}

// Update rewrites name and status and returns label as sent.
func (s *LabelService) Update(ctx context.Context, label *models.Label) (*models.Label, error) {
	if label == nil {
		return nil, common.Invalid("label is nil")
	}
	if err := requireID("label", label.ID); err != nil {
		return nil, err
	}

	label.Status = label.Status.OrActive()
	err := s.inTx(ctx, fmt.Sprintf("failed to update label %d", label.ID), func(ctx context.Context, r repos) error {
		return r.labels.Update(ctx, label)
	})
	if err != nil {
		return nil, err
	}
	return label, nil
}

// DeleteByID retires the label. A hard delete first detaches it from every
// post.
func (s *LabelService) DeleteByID(ctx context.Context, id int64) error {
	if err := requireID("label", id); err != nil {
		return err
	}

	return s.inTx(ctx, fmt.Sprintf("failed to delete label %d", id), func(ctx context.Context, r repos) error {
		if s.policy == models.DeleteHard {
			if err := r.postLabels.DeleteByLabel(ctx, id); err != nil {
				return err
			}
			return r.labels.HardDelete(ctx, id)
		}
		return r.labels.SoftDelete(ctx, id)
	})
}
