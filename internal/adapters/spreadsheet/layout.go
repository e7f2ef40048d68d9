package spreadsheet

import (
	"fmt"
	"milk-delivery-service/internal/domain"
	"strings"
)

type sheetTab struct {
	id    int64
	title string
}

func (t sheetTab) quotedTitle() string {
	return "'" + strings.ReplaceAll(t.title, "'", "''") + "'"
}

// Whole-sheet A1 range.
func (t sheetTab) rangeRef() string { return t.quotedTitle() }

func (t sheetTab) headerRef() string { return t.quotedTitle() + "!1:1" }

// cellRef returns the A1 reference of a 0-based column in a 1-based row.
func (t sheetTab) cellRef(col int, row int64) string {
	return fmt.Sprintf("%s!%s%d", t.quotedTitle(), columnLetters(col), row)
}

// columnLetters converts a 0-based column index to A, B, ..., Z, AA, AB, ...
func columnLetters(col int) string {
	var b []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

type field struct {
	name string
	get  func(domain.DeliveryRecord) string
	set  func(*domain.DeliveryRecord, string)
}

var knownFields = []field{
	{"user", func(r domain.DeliveryRecord) string { return r.User }, func(r *domain.DeliveryRecord, v string) { r.User = v }},
	{"address", func(r domain.DeliveryRecord) string { return r.Address }, func(r *domain.DeliveryRecord, v string) { r.Address = v }},
	{"milk", func(r domain.DeliveryRecord) string { return r.Milk }, func(r *domain.DeliveryRecord, v string) { r.Milk = v }},
	{"partner", func(r domain.DeliveryRecord) string { return r.Partner }, func(r *domain.DeliveryRecord, v string) { r.Partner = v }},
	{"quantity", func(r domain.DeliveryRecord) string { return r.Quantity }, func(r *domain.DeliveryRecord, v string) { r.Quantity = v }},
	{"date", func(r domain.DeliveryRecord) string { return r.Date }, func(r *domain.DeliveryRecord, v string) { r.Date = v }},
}

// Header name (trimmed, lower-cased) -> 0-based column index.
// The first occurrence of a duplicated header wins.
type columns map[string]int

func newColumns(header []interface{}) columns {
	c := make(columns, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(cellString(h)))
		if name == "" {
			continue
		}
		if _, ok := c[name]; ok {
			continue
		}
		c[name] = i
	}
	return c
}

func (c columns) width() int {
	w := 0
	for _, idx := range c {
		if idx+1 > w {
			w = idx + 1
		}
	}
	return w
}

func (c columns) record(row []interface{}) domain.DeliveryRecord {
	var rec domain.DeliveryRecord
	for _, f := range knownFields {
		idx, ok := c[f.name]
		if !ok || idx >= len(row) {
			continue
		}
		f.set(&rec, cellString(row[idx]))
	}
	return rec
}

// row lays rec out in header order; unknown columns are left empty.
func (c columns) row(rec domain.DeliveryRecord) []interface{} {
	out := make([]interface{}, c.width())
	for i := range out {
		out[i] = ""
	}
	for _, f := range knownFields {
		if idx, ok := c[f.name]; ok {
			out[idx] = f.get(rec)
		}
	}
	return out
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func isBlank(row []interface{}) bool {
	for _, v := range row {
		if strings.TrimSpace(cellString(v)) != "" {
			return false
		}
	}
	return true
}
