package dbx

import (
	"strings"
)

// BatchInsertSQL builds one multi-row INSERT so a whole batch is submitted in
// a single round trip:
//
//	INSERT INTO post_label (post_id, label_id) VALUES (?, ?), (?, ?)
//
// rows must be positive.
func BatchInsertSQL(table string, columns []string, rows int) string {
	tuple := "(" + Placeholders(len(columns)) + ")"

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES ")
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tuple)
	}
	return b.String()
}

// Placeholders returns n comma-separated '?' markers, e.g. for IN lists.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
