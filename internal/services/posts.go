package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/models"
)

type PostService struct {
	base
	policy models.DeletePolicy
}

func NewPostService(d Deps, policy models.DeletePolicy) *PostService {
	return &PostService{base: newBase(d, "post"), policy: policy}
}

// GetByID returns the post with its labels, or nil when no non-deleted post
// has that id.
func (s *PostService) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	if err := requireID("post", id); err != nil {
		return nil, err
	}

	var post *models.Post
	err := s.read(ctx, fmt.Sprintf("failed to get post %d", id), func(ctx context.Context, r repos) error {
		var err error
		post, err = r.posts.GetByID(ctx, id)
		return err
	})
	return post, err
}

func (s *PostService) GetAll(ctx context.Context) ([]*models.Post, error) {
	var all []*models.Post
	err := s.read(ctx, "failed to get posts", func(ctx context.Context, r repos) error {
		var err error
		all, err = r.posts.GetAll(ctx)
		return err
	})
	return all, err
}

func (s *PostService) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.read(ctx, "failed to count posts", func(ctx context.Context, r repos) error {
		var err error
		n, err = r.posts.Count(ctx)
		return err
	})
	return n, err
}

// Save inserts the post and its label associations in one unit of work.
// The post must reference a persisted writer. On success post.ID is set and
// post is returned.
func (s *PostService) Save(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := validateNewPost(post); err != nil {
		return nil, err
	}

	row := *post
	if row.Created.IsZero() {
		row.Created = s.clock()
	} else {
		row.Created = normalize(row.Created)
	}
	row.Status = row.Status.OrActive()

	op := fmt.Sprintf("failed to save post (writer %d, labels %v)", row.WriterID(), row.LabelIDs())
	var id int64
	err := s.inTx(ctx, op, func(ctx context.Context, r repos) error {
		var err error
		id, err = insertPost(ctx, r, &row)
		return err
	})
	if err != nil {
		return nil, err
	}

	post.ID, post.Created, post.Status = id, row.Created, row.Status
	return post, nil
}

// Update rewrites the post's scalar fields, refreshes its updated timestamp
// and reconciles its labels in one unit of work. The caller's post is
// returned as sent, apart from Updated.
func (s *PostService) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := validateExistingPost(post); err != nil {
		return nil, err
	}

	row := *post
	updated := s.clock()
	row.Updated = &updated
	row.Status = row.Status.OrActive()

	op := fmt.Sprintf("failed to update post %d", post.ID)
	err := s.inTx(ctx, op, func(ctx context.Context, r repos) error {
		return s.updatePost(ctx, r, &row)
	})
	if err != nil {
		return nil, err
	}

	post.Updated, post.Status = row.Updated, row.Status
	return post, nil
}

// DeleteByID retires the post under the configured policy. A missing or
// already deleted post is ErrorNotFound.
func (s *PostService) DeleteByID(ctx context.Context, id int64) error {
	if err := requireID("post", id); err != nil {
		return err
	}

	op := fmt.Sprintf("failed to delete post %d", id)
	return s.inTx(ctx, op, func(ctx context.Context, r repos) error {
		if s.policy == models.DeleteHard {
			if err := r.postLabels.DeleteByPost(ctx, id); err != nil {
				return err
			}
			return r.posts.HardDelete(ctx, id)
		}
		return r.posts.SoftDelete(ctx, id)
	})
}

// insertPost writes the post row, then its label rows as one batch once the
// generated id is known.
func insertPost(ctx context.Context, r repos, post *models.Post) (int64, error) {
	id, err := r.posts.Insert(ctx, post)
	if err != nil {
		return 0, err
	}
	if err := r.postLabels.InsertBatch(ctx, id, post.LabelIDs()); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *base) updatePost(ctx context.Context, r repos, post *models.Post) error {
	if err := r.posts.Update(ctx, post); err != nil {
		return err
	}
	return b.syncLabels(ctx, r, post)
}

// syncLabels reconciles the stored label rows of post with post.Labels.
func (b *base) syncLabels(ctx context.Context, r repos, post *models.Post) error {
	plan, err := b.reconciler.Sync(ctx, r.postLabels, post.ID, post.LabelIDs())
	if err != nil {
		return err
	}
	b.log.Debug(ctx, "labels reconciled",
		"post_id", post.ID,
		"policy", b.reconciler.Policy(),
		"delete_all", plan.DeleteAll,
		"deleted", plan.Delete,
		"inserted", plan.Insert,
	)
	return nil
}

func validateNewPost(post *models.Post) error {
	if post == nil {
		return common.Invalid("post is nil")
	}
	if post.ID != 0 {
		return common.Invalid("new post already has id %d", post.ID)
	}
	if post.WriterID() <= 0 {
		return common.Invalid("post must reference a persisted writer")
	}
	return nil
}

func validateExistingPost(post *models.Post) error {
	if post == nil {
		return common.Invalid("post is nil")
	}
	if err := requireID("post", post.ID); err != nil {
		return err
	}
	if post.WriterID() <= 0 {
		return common.Invalid("post %d must reference a persisted writer", post.ID)
	}
	return nil
}
