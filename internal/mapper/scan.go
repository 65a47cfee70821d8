package mapper

import (
	"strings"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
)

// Rows is the part of *sql.Rows the scanners need.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type presence interface {
	markPresent()
}

func (n *NullInt64) markPresent()  { n.Present = true }
func (n *NullString) markPresent() { n.Present = true }
func (n *NullTime) markPresent()   { n.Present = true }

type row[R any] interface {
	*R
	columns() map[string]any
}

var (
	writerRequired = []string{"writer_id", "firstname", "lastname", "status"}
	postRequired   = []string{"id", "content", "created", "status", "writer_id"}
	labelRequired  = []string{"id", "name"}
)

// ScanWriterRows reads writer LEFT JOIN post rows, optionally extended with
// label columns. Post and label columns are optional; when absent every
// writer maps with an empty post list and every post with no labels.
func ScanWriterRows(rows Rows) ([]WriterRow, error) {
	return scanAll[WriterRow](rows, "writer", writerRequired)
}

// ScanPostRows reads post LEFT JOIN label rows.
func ScanPostRows(rows Rows) ([]PostRow, error) {
	return scanAll[PostRow](rows, "post", postRequired)
}

// ScanLabelRows reads plain label rows.
func ScanLabelRows(rows Rows) ([]LabelRow, error) {
	return scanAll[LabelRow](rows, "label", labelRequired)
}

// scanAll binds result columns to row fields by name. Columns the row type
// does not know are discarded; a required column missing from the result set
// is a MappingError.
func scanAll[R any, P row[R]](rows Rows, entity string, required []string) ([]R, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for i := range cols {
		cols[i] = strings.ToLower(cols[i])
	}

	returned := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		returned[c] = struct{}{}
	}
	for _, c := range required {
		if _, ok := returned[c]; !ok {
			return nil, &common.MappingError{Entity: entity, Column: c}
		}
	}

	var result []R
	for rows.Next() {
		var r R
		fields := P(&r).columns()

		dest := make([]any, len(cols))
		for i, c := range cols {
			f, ok := fields[c]
			if !ok {
				dest[i] = new(any)
				continue
			}
			f.(presence).markPresent()
			dest[i] = f
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
