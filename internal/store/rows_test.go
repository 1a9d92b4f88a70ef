package store

import (
	"testing"

	"github.com/muhammadolammi/resumestatus/internal/review"
	"github.com/stretchr/testify/assert"
)

func TestRecordFromRow_PadsShortRows(t *testing.T) {
	rec := RecordFromRow([]string{"S010", "A1"})
	assert.Equal(t, review.Record{StudentCode: "S010", AuthCode: "A1"}, rec)
}

func TestRowFromRecord_RoundTripsColumns(t *testing.T) {
	rec := review.Record{
		StudentCode: "S1",
		AuthCode:    "A",
		ResumeLink:  "https://drive.google.com/a",
		Status:      review.StatusNotCleared,
		Feedback:    "fix typos",
	}
	assert.Equal(t, []string{"S1", "A", "https://drive.google.com/a", "Not Cleared", "fix typos"}, RowFromRecord(rec))
	assert.Equal(t, rec, RecordFromRow(RowFromRecord(rec)))
}

func TestScan_FirstMatchWinsAndCountsDuplicates(t *testing.T) {
	rows := [][]string{
		Header,
		{"S1", "A", "link-1", "Cleared", "first"},
		{"S2", "B", "link-2", "Not Cleared", ""},
		{"S1", "C", "link-3", "Not Cleared", "second"},
	}

	m := scan(rows, byCode("S1"))
	assert.Equal(t, 1, m.index)
	assert.Equal(t, 2, m.sheetRow())
	assert.Equal(t, 2, m.matches)
	assert.Equal(t, "first", m.record.Feedback)

	m = scan(rows, byCodeAndAuth("S1", "C"))
	assert.Equal(t, 3, m.index)
	assert.Equal(t, 1, m.matches)

	m = scan(rows, byCode("nobody"))
	assert.Equal(t, -1, m.index)
	assert.Zero(t, m.matches)
}

func TestScan_SkipsHeader(t *testing.T) {
	rows := [][]string{{"Student Code", "Auth Code"}}
	m := scan(rows, byCodeAndAuth("Student Code", "Auth Code"))
	assert.Equal(t, -1, m.index)
}

func TestDuplicateCodes(t *testing.T) {
	rows := [][]string{
		Header,
		{"S1"}, {"S2"}, {"S1"}, {""}, {""}, {"S2"}, {"S1"}, {"S3"},
	}
	assert.Equal(t, []string{"S1", "S2"}, DuplicateCodes(rows))
	assert.Empty(t, DuplicateCodes([][]string{Header, {"S1"}}))
}

func TestA1(t *testing.T) {
	assert.Equal(t, "ResumeData!A:E", a1("ResumeData", "A:E"))
	assert.Equal(t, "'Resume Data'!C4:E4", a1("Resume Data", "C4:E4"))
	assert.Equal(t, "'Bob''s'!F1", a1("Bob's", "F1"))
}
