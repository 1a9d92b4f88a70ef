package store

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/muhammadolammi/resumestatus/internal/review"
)

// Column order of the record table. Row 1 is always the header.
const (
	colStudentCode = iota
	colAuthCode
	colResumeLink
	colStatus
	colFeedback
	columnCount
)

// Header is the header row written to new tables.
var Header = []string{"Student Code", "Auth Code", "Resume Link", "Status", "Feedback"}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// RecordFromRow maps a table row to a record. Short rows are padded with "".
func RecordFromRow(row []string) review.Record {
	return review.Record{
		StudentCode: cell(row, colStudentCode),
		AuthCode:    cell(row, colAuthCode),
		ResumeLink:  cell(row, colResumeLink),
		Status:      review.Status(cell(row, colStatus)),
		Feedback:    cell(row, colFeedback),
	}
}

// RowFromRecord is the inverse of RecordFromRow.
func RowFromRecord(rec review.Record) []string {
	return []string{rec.StudentCode, rec.AuthCode, rec.ResumeLink, string(rec.Status), rec.Feedback}
}

type matcher func(review.Record) bool

func byCode(studentCode string) matcher {
	return func(r review.Record) bool { return r.StudentCode == studentCode }
}

func byCodeAndAuth(studentCode, authCode string) matcher {
	return func(r review.Record) bool { return r.StudentCode == studentCode && r.AuthCode == authCode }
}

// match is the outcome of a scan over a full table (header included).
type match struct {
	index   int // index into rows of the first match, -1 when none
	record  review.Record
	matches int
}

// sheetRow is the 1-based spreadsheet row number of the first match.
func (m match) sheetRow() int {
	return m.index + 1
}

// scan walks every data row. The first match wins; later matches are only counted.
func scan(rows [][]string, fn matcher) match {
	m := match{index: -1}
	for i := 1; i < len(rows); i++ {
		rec := RecordFromRow(rows[i])
		if !fn(rec) {
			continue
		}
		if m.index < 0 {
			m.index = i
			m.record = rec
		}
		m.matches++
	}
	return m
}

// DuplicateCodes lists student codes that appear on more than one data row,
// in order of first appearance.
func DuplicateCodes(rows [][]string) []string {
	seen := make(map[string]int)
	var order []string
	for i := 1; i < len(rows); i++ {
		code := cell(rows[i], colStudentCode)
		if code == "" {
			continue
		}
		seen[code]++
		if seen[code] == 2 {
			order = append(order, code)
		}
	}
	return order
}

// a1 builds an A1 range on a tab, quoting tab names that need it.
func a1(tab, rng string) string {
	needsQuote := false
	for _, r := range tab {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			needsQuote = true
			break
		}
	}
	if needsQuote {
		tab = "'" + strings.ReplaceAll(tab, "'", "''") + "'"
	}
	return fmt.Sprintf("%s!%s", tab, rng)
}
