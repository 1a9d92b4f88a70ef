package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/muhammadolammi/resumestatus/internal/store"
	"github.com/stretchr/testify/assert"
)

func plainColors(t *testing.T) {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
}

var sheetRows = [][]string{
	{"Student Code", "Auth Code", "Resume Link", "Status", "Feedback"},
	{"S001", "AUTH123", "https://drive.google.com/a", "Cleared", "Great resume"},
	{"S002", "AUTH456", "https://drive.google.com/b", "Not Cleared"},
}

func TestRenderRows(t *testing.T) {
	plainColors(t)
	var buf bytes.Buffer
	renderRows(&buf, sheetRows)

	out := buf.String()
	assert.Contains(t, out, "S001")
	assert.Contains(t, out, "Great resume")
	assert.Contains(t, out, "Not Cleared")
	assert.NotContains(t, out, "AUTH999")
}

func TestReportStudent(t *testing.T) {
	plainColors(t)

	t.Run("found", func(t *testing.T) {
		var buf bytes.Buffer
		reportStudent(&buf, sheetRows, "S002")
		assert.Contains(t, buf.String(), "Status: Not Cleared")
		assert.Contains(t, buf.String(), "Feedback: Not set")
	})

	t.Run("missing lists available codes", func(t *testing.T) {
		var buf bytes.Buffer
		reportStudent(&buf, sheetRows, "S404")
		assert.Contains(t, buf.String(), "Student S404 not found in sheet")
		assert.Contains(t, buf.String(), "- S001\n- S002\n")
	})
}

func TestSheetsHints(t *testing.T) {
	cfg := store.SheetsConfig{SpreadsheetID: "sheet-1", Tab: "ResumeData", ServiceAccountEmail: "svc@example.iam.gserviceaccount.com"}

	tests := []struct {
		name string
		err  string
		want string
	}{
		{"api disabled", "googleapi: Error 403: Google Sheets API has not been used in project 1", "Enable the Google Sheets API"},
		{"not shared", "googleapi: Error 403: The caller does not have permission", "Share it with svc@example.iam.gserviceaccount.com"},
		{"bad tab", "googleapi: Error 400: Unable to parse range: ResumeData!A:E", `tab named "ResumeData"`},
		{"other", "oauth2: cannot fetch token", "Check the service account credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hints := sheetsHints(errors.New(tt.err), cfg)
			var buf bytes.Buffer
			plainColors(t)
			printHints(&buf, hints)
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "1. ")
		})
	}
}
