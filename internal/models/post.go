package models

import "time"

// Post holds a weak reference to its writer (only Writer.ID is meaningful on
// write) and a set of labels, unique by label id.
type Post struct {
	ID      int64
	Content string
	Created time.Time
	// Updated is nil until the first update.
	Updated *time.Time
	Status  Status
	Writer  *Writer
	Labels  []*Label
}

// WriterID returns the referenced writer id, or 0 when unset.
func (p *Post) WriterID() int64 {
	if p.Writer == nil {
		return 0
	}
	return p.Writer.ID
}

// LabelIDs returns the ids of persisted labels in slice order. Nil labels and
// labels without an id are skipped.
func (p *Post) LabelIDs() []int64 {
	ids := make([]int64, 0, len(p.Labels))
	for _, l := range p.Labels {
		if l == nil || l.ID == 0 {
			continue
		}
		ids = append(ids, l.ID)
	}
	return ids
}
