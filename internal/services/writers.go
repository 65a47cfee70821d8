package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/models"
)

type WriterService struct {
	base
	policy models.DeletePolicy
}

func NewWriterService(d Deps, policy models.DeletePolicy) *WriterService {
	return &WriterService{base: newBase(d, "writer"), policy: policy}
}

// GetByID returns the writer with its non-deleted posts and their labels,
// or nil.
func (s *WriterService) GetByID(ctx context.Context, id int64) (*models.Writer, error) {
	if err := requireID("writer", id); err != nil {
		return nil, err
	}

	var writer *models.Writer
	err := s.read(ctx, fmt.Sprintf("failed to get writer %d", id), func(ctx context.Context, r repos) error {
		var err error
		writer, err = r.writers.GetByID(ctx, id)
		return err
	})
	return writer, err
}

func (s *WriterService) GetAll(ctx context.Context) ([]*models.Writer, error) {
	var all []*models.Writer
	err := s.read(ctx, "failed to get writers", func(ctx context.Context, r repos) error {
		var err error
		all, err = r.writers.GetAll(ctx)
		return err
	})
	return all, err
}

func (s *WriterService) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.read(ctx, "failed to count writers", func(ctx context.Context, r repos) error {
		var err error
		n, err = r.writers.Count(ctx)
		return err
	})
	return n, err
}

// Save inserts the writer together with its posts and their labels. Nil
// posts and posts without content are skipped.
func (s *WriterService) Save(ctx context.Context, writer *models.Writer) (*models.Writer, error) {
	if writer == nil {
		return nil, common.Invalid("writer is nil")
	}
	if writer.ID != 0 {
		return nil, common.Invalid("new writer already has id %d", writer.ID)
	}
	owned := ownedPosts(writer)
	for _, p := range owned {
		if p.ID != 0 {
			return nil, common.Invalid("new writer carries persisted post %d", p.ID)
		}
	}

	status := writer.Status.OrActive()
	row := models.Writer{FirstName: writer.FirstName, LastName: writer.LastName, Status: status}
	created := s.clock()
	postRows := make([]models.Post, len(owned))

	op := fmt.Sprintf("failed to save writer %q %q", writer.FirstName, writer.LastName)
	err := s.inTx(ctx, op, func(ctx context.Context, r repos) error {
		id, err := r.writers.Insert(ctx, &row)
		if err != nil {
			return err
		}
		row.ID = id

		for i, p := range owned {
			postRows[i] = ownedRow(p, id, created)
			postRows[i].ID, err = insertPost(ctx, r, &postRows[i])
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	writer.ID, writer.Status = row.ID, status
	for i, p := range owned {
		p.ID, p.Writer, p.Created, p.Status = postRows[i].ID, &models.Writer{ID: row.ID}, postRows[i].Created, postRows[i].Status
	}
	return writer, nil
}

// Update rewrites the writer's names and status. When Posts is non-nil, new
// posts (id 0) are inserted and existing ones are updated, all in the same
// unit of work. An existing post must already belong to the writer, otherwise
// it is not found. Its labels are reconciled only when Labels is non-nil.
// Posts missing from the slice are left alone.
func (s *WriterService) Update(ctx context.Context, writer *models.Writer) (*models.Writer, error) {
	if writer == nil {
		return nil, common.Invalid("writer is nil")
	}
	if err := requireID("writer", writer.ID); err != nil {
		return nil, err
	}
	owned := ownedPosts(writer)
	for _, p := range owned {
		if id := p.WriterID(); id != 0 && id != writer.ID {
			return nil, common.Invalid("post %d belongs to writer %d, not %d", p.ID, id, writer.ID)
		}
	}

	status := writer.Status.OrActive()
	row := models.Writer{ID: writer.ID, FirstName: writer.FirstName, LastName: writer.LastName, Status: status}
	now := s.clock()
	postRows := make([]models.Post, len(owned))

	op := fmt.Sprintf("failed to update writer %d", writer.ID)
	err := s.inTx(ctx, op, func(ctx context.Context, r repos) error {
		if err := r.writers.Update(ctx, &row); err != nil {
			return err
		}

		for i, p := range owned {
			if p.ID == 0 {
				postRows[i] = ownedRow(p, writer.ID, now)
				id, err := insertPost(ctx, r, &postRows[i])
				if err != nil {
					return err
				}
				postRows[i].ID = id
				continue
			}

			postRows[i] = *p
			postRows[i].Writer = &models.Writer{ID: writer.ID}
			postRows[i].Status = p.Status.OrActive()
			postRows[i].Updated = &now
			if err := r.posts.UpdateOwned(ctx, &postRows[i], writer.ID); err != nil {
				return err
			}
			if p.Labels != nil {
				if err := s.syncLabels(ctx, r, &postRows[i]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	writer.Status = status
	for i, p := range owned {
		if p.ID == 0 {
			p.ID, p.Created = postRows[i].ID, postRows[i].Created
		}
		p.Writer, p.Updated, p.Status = &models.Writer{ID: writer.ID}, postRows[i].Updated, postRows[i].Status
	}
	return writer, nil
}

// DeleteByID retires the writer. A hard delete also removes the writer's
// posts and their label rows.
func (s *WriterService) DeleteByID(ctx context.Context, id int64) error {
	if err := requireID("writer", id); err != nil {
		return err
	}

	return s.inTx(ctx, fmt.Sprintf("failed to delete writer %d", id), func(ctx context.Context, r repos) error {
		if s.policy == models.DeleteHard {
			if err := r.postLabels.DeleteByWriter(ctx, id); err != nil {
				return err
			}
			if err := r.posts.HardDeleteByWriter(ctx, id); err != nil {
				return err
			}
			return r.writers.HardDelete(ctx, id)
		}
		return r.writers.SoftDelete(ctx, id)
	})
}

// FindOrCreate returns the first non-deleted writer with exactly these
// names, creating an ACTIVE one when there is none. Lookup and insert share
// one unit of work.
func (s *WriterService) FindOrCreate(ctx context.Context, firstName, lastName string) (*models.Writer, error) {
	if firstName == "" && lastName == "" {
		return nil, common.Invalid("writer first name and last name are both empty")
	}

	var writer *models.Writer
	created := false
	op := fmt.Sprintf("failed to find or create writer %q %q", firstName, lastName)
	err := s.inTx(ctx, op, func(ctx context.Context, r repos) error {
		found, err := r.writers.FindByName(ctx, firstName, lastName)
		if err != nil {
			return err
		}
		if found != nil {
			writer = found
			return nil
		}

		w := &models.Writer{FirstName: firstName, LastName: lastName, Status: models.StatusActive, Posts: []*models.Post{}}
		if w.ID, err = r.writers.Insert(ctx, w); err != nil {
			return err
		}
		writer, created = w, true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "find or create", "writer_id", writer.ID, "created", created)
	return writer, nil
}

// ownedPosts returns the writer's posts that are persisted with it.
func ownedPosts(writer *models.Writer) []*models.Post {
	var owned []*models.Post
	for _, p := range writer.Posts {
		if p == nil || p.Content == "" {
			continue
		}
		owned = append(owned, p)
	}
	return owned
}

// ownedRow copies a new post p for insertion under writerID. created is used
// when p has no creation time yet.
func ownedRow(p *models.Post, writerID int64, created time.Time) models.Post {
	row := *p
	row.Writer = &models.Writer{ID: writerID}
	row.Status = row.Status.OrActive()
	if row.Created.IsZero() {
		row.Created = created
	} else {
		row.Created = normalize(row.Created)
	}
	return row
}
