package mapper

import (
	"database/sql"
	"fmt"
	"time"
)

// NullInt64 is an int64 column that remembers whether the column was part of
// the result set at all (Present) and whether it held a value (Valid).
type NullInt64 struct {
	sql.NullInt64
	Present bool
}

// NullString is the string counterpart of NullInt64.
type NullString struct {
	sql.NullString
	Present bool
}

// NullTime is a timestamp column. Besides time.Time it accepts the textual
// forms some drivers hand back for TIMESTAMP columns.
type NullTime struct {
	Time    time.Time
	Valid   bool
	Present bool
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (n *NullTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		n.Time, n.Valid = time.Time{}, false
		return nil
	case time.Time:
		n.Time, n.Valid = v, true
		return nil
	case []byte:
		return n.parse(string(v))
	case string:
		return n.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into NullTime", value)
	}
}

func (n *NullTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			n.Time, n.Valid = t, true
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as timestamp", s)
}

func (n NullTime) Ptr() *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

// has reports whether a child column came back with a value, as opposed to
// the SQL NULL a LEFT JOIN produces for a root without children.
func (n NullInt64) has() bool { return n.Present && n.Valid }

// WriterRow is one row of writer LEFT JOIN post LEFT JOIN post_label LEFT
// JOIN label.
type WriterRow struct {
	WriterID  NullInt64
	FirstName NullString
	LastName  NullString
	Status    NullString

	PostID      NullInt64
	PostContent NullString
	PostCreated NullTime
	PostUpdated NullTime
	PostStatus  NullString

	LabelID     NullInt64
	LabelName   NullString
	LabelStatus NullString
}

func (r *WriterRow) columns() map[string]any {
	return map[string]any{
		"writer_id":   &r.WriterID,
		"firstname":   &r.FirstName,
		"lastname":    &r.LastName,
		"status":      &r.Status,
		"post_id":     &r.PostID,
		"content":     &r.PostContent,
		"created":     &r.PostCreated,
		"updated":     &r.PostUpdated,
		"post_status": &r.PostStatus,

		"label_id":     &r.LabelID,
		"label_name":   &r.LabelName,
		"label_status": &r.LabelStatus,
	}
}

// PostRow is one row of post LEFT JOIN post_label LEFT JOIN label.
type PostRow struct {
	ID       NullInt64
	Content  NullString
	Created  NullTime
	Updated  NullTime
	Status   NullString
	WriterID NullInt64

	LabelID     NullInt64
	LabelName   NullString
	LabelStatus NullString
}

func (r *PostRow) columns() map[string]any {
	return map[string]any{
		"id":           &r.ID,
		"content":      &r.Content,
		"created":      &r.Created,
		"updated":      &r.Updated,
		"status":       &r.Status,
		"writer_id":    &r.WriterID,
		"label_id":     &r.LabelID,
		"label_name":   &r.LabelName,
		"label_status": &r.LabelStatus,
	}
}

// LabelRow is one row of the label table.
type LabelRow struct {
	ID     NullInt64
	Name   NullString
	Status NullString
}

func (r *LabelRow) columns() map[string]any {
	return map[string]any{
		"id":     &r.ID,
		"name":   &r.Name,
		"status": &r.Status,
	}
}
