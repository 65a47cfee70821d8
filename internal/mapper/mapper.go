// Package mapper rebuilds aggregates from the flat rows a LEFT JOIN returns.
//
// Every row repeats the root columns and carries nullable child columns. The
// fold keeps one aggregate per root id, in the order ids are first seen, and
// appends a child for every row whose child id came back non-NULL. A root
// without children therefore maps to one aggregate with an empty child list.
// Children are not deduplicated, except that writer rows repeating the same
// post for each of its labels extend that post instead of adding another.
//
// The package is independent of any driver: it works on row structs, so the
// fold can be tested with literal fixtures.
package mapper

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/models"
)

var errNull = errors.New("unexpected NULL")

// group folds rows into aggregates keyed by root id, preserving first-seen
// order of the ids.
func group[R any, A any](
	rows []R,
	rootID func(*R) (int64, error),
	newRoot func(*R) (A, error),
	addChild func(A, *R) error,
) ([]A, error) {
	index := make(map[int64]A, len(rows))
	result := make([]A, 0, len(rows))

	for i := range rows {
		r := &rows[i]

		id, err := rootID(r)
		if err != nil {
			return nil, err
		}

		agg, seen := index[id]
		if !seen {
			agg, err = newRoot(r)
			if err != nil {
				return nil, err
			}
			index[id] = agg
			result = append(result, agg)
		}

		if err := addChild(agg, r); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// single returns the only aggregate, nil for no rows, and a MappingError when
// the rows belong to more than one root.
func single[A any](entity string, all []*A) (*A, error) {
	switch len(all) {
	case 0:
		return nil, nil
	case 1:
		return all[0], nil
	default:
		return nil, &common.MappingError{Entity: entity, Column: "id", Err: fmt.Errorf("expected one root, got %d", len(all))}
	}
}

func requireID(entity, column string, v NullInt64) (int64, error) {
	if !v.Present {
		return 0, &common.MappingError{Entity: entity, Column: column}
	}
	if !v.Valid {
		return 0, &common.MappingError{Entity: entity, Column: column, Err: errNull}
	}
	return v.Int64, nil
}

func requireString(entity, column string, v NullString) (string, error) {
	if !v.Present {
		return "", &common.MappingError{Entity: entity, Column: column}
	}
	if !v.Valid {
		return "", &common.MappingError{Entity: entity, Column: column, Err: errNull}
	}
	return v.String, nil
}

func requireTime(entity, column string, v NullTime) (NullTime, error) {
	if !v.Present {
		return v, &common.MappingError{Entity: entity, Column: column}
	}
	if !v.Valid {
		return v, &common.MappingError{Entity: entity, Column: column, Err: errNull}
	}
	return v, nil
}

func status(entity, column string, v NullString, required bool) (models.Status, error) {
	if required {
		if _, err := requireString(entity, column, v); err != nil {
			return "", err
		}
	}
	s, err := models.ParseStatus(v.String)
	if err != nil {
		return "", &common.MappingError{Entity: entity, Column: column, Err: err}
	}
	return s, nil
}

// Writers folds writer LEFT JOIN post LEFT JOIN label rows into writers with
// their posts, each post carrying its labels.
func Writers(rows []WriterRow) ([]*models.Writer, error) {
	return group(rows,
		func(r *WriterRow) (int64, error) {
			return requireID("writer", "writer_id", r.WriterID)
		},
		newWriter,
		addWriterPost,
	)
}

// Writer is Writers restricted to a single root. It returns nil, nil when
// rows is empty.
func Writer(rows []WriterRow) (*models.Writer, error) {
	all, err := Writers(rows)
	if err != nil {
		return nil, err
	}
	return single("writer", all)
}

func newWriter(r *WriterRow) (*models.Writer, error) {
	first, err := requireString("writer", "firstname", r.FirstName)
	if err != nil {
		return nil, err
	}
	last, err := requireString("writer", "lastname", r.LastName)
	if err != nil {
		return nil, err
	}
	st, err := status("writer", "status", r.Status, true)
	if err != nil {
		return nil, err
	}
	return &models.Writer{
		ID:        r.WriterID.Int64,
		FirstName: first,
		LastName:  last,
		Status:    st,
		Posts:     []*models.Post{},
	}, nil
}

// addWriterPost appends the row's post, or extends the last post when the
// row repeats it with another label. Rows must be ordered by post id within
// a writer.
func addWriterPost(w *models.Writer, r *WriterRow) error {
	if !r.PostID.has() {
		return nil
	}
	if n := len(w.Posts); n > 0 && w.Posts[n-1].ID == r.PostID.Int64 {
		return addLabel(w.Posts[n-1], r.LabelID, r.LabelName, r.LabelStatus)
	}

	content, err := requireString("post", "content", r.PostContent)
	if err != nil {
		return err
	}
	created, err := requireTime("post", "created", r.PostCreated)
	if err != nil {
		return err
	}
	st, err := status("post", "post_status", r.PostStatus, false)
	if err != nil {
		return err
	}
	p := &models.Post{
		ID:      r.PostID.Int64,
		Content: content,
		Created: created.Time,
		Updated: r.PostUpdated.Ptr(),
		Status:  st,
		Writer:  &models.Writer{ID: w.ID},
		Labels:  []*models.Label{},
	}
	w.Posts = append(w.Posts, p)
	return addLabel(p, r.LabelID, r.LabelName, r.LabelStatus)
}

// Posts folds post LEFT JOIN label rows into posts with their labels.
func Posts(rows []PostRow) ([]*models.Post, error) {
	return group(rows,
		func(r *PostRow) (int64, error) {
			return requireID("post", "id", r.ID)
		},
		newPost,
		addPostLabel,
	)
}

// Post is Posts restricted to a single root. It returns nil, nil when rows
// is empty.
func Post(rows []PostRow) (*models.Post, error) {
	all, err := Posts(rows)
	if err != nil {
		return nil, err
	}
	return single("post", all)
}

func newPost(r *PostRow) (*models.Post, error) {
	content, err := requireString("post", "content", r.Content)
	if err != nil {
		return nil, err
	}
	created, err := requireTime("post", "created", r.Created)
	if err != nil {
		return nil, err
	}
	st, err := status("post", "status", r.Status, true)
	if err != nil {
		return nil, err
	}
	writerID, err := requireID("post", "writer_id", r.WriterID)
	if err != nil {
		return nil, err
	}
	return &models.Post{
		ID:      r.ID.Int64,
		Content: content,
		Created: created.Time,
		Updated: r.Updated.Ptr(),
		Status:  st,
		Writer:  &models.Writer{ID: writerID},
		Labels:  []*models.Label{},
	}, nil
}

func addPostLabel(p *models.Post, r *PostRow) error {
	return addLabel(p, r.LabelID, r.LabelName, r.LabelStatus)
}

func addLabel(p *models.Post, id NullInt64, name, labelStatus NullString) error {
	if !id.has() {
		return nil
	}
	st, err := status("label", "label_status", labelStatus, false)
	if err != nil {
		return err
	}
	p.Labels = append(p.Labels, &models.Label{
		ID:     id.Int64,
		Name:   name.String,
		Status: st,
	})
	return nil
}

// Labels maps flat label rows. Labels have no children, so this is a plain
// row-per-entity mapping with the same column checks.
func Labels(rows []LabelRow) ([]*models.Label, error) {
	result := make([]*models.Label, 0, len(rows))
	for i := range rows {
		l, err := newLabel(&rows[i])
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, nil
}

// Label is Labels restricted to a single row. It returns nil, nil when rows
// is empty.
func Label(rows []LabelRow) (*models.Label, error) {
	all, err := Labels(rows)
	if err != nil {
		return nil, err
	}
	return single("label", all)
}

func newLabel(r *LabelRow) (*models.Label, error) {
	id, err := requireID("label", "id", r.ID)
	if err != nil {
		return nil, err
	}
	name, err := requireString("label", "name", r.Name)
	if err != nil {
		return nil, err
	}
	st, err := status("label", "status", r.Status, false)
	if err != nil {
		return nil, err
	}
	return &models.Label{ID: id, Name: name, Status: st}, nil
}
