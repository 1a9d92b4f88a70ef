package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/muhammadolammi/resumestatus/internal/review"
	"github.com/muhammadolammi/resumestatus/internal/store"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	checkStudent   string
	checkWriteTest bool
)

// checkSheetCmd verifies the service account can reach the spreadsheet.
var checkSheetCmd = &cobra.Command{
	Use:   "check-sheet",
	Short: "Read the record sheet and report what the service will see",
	Long: `Reads every row of the configured sheet tab with the service account,
prints it as a table and reports duplicate student codes.

With --write-test a marker is written to F1 and column F is cleared again,
which confirms the account has editor access.`,
	RunE: runCheckSheet,
}

func init() {
	checkSheetCmd.Flags().StringVar(&checkStudent, "student", "", "look up one student code")
	checkSheetCmd.Flags().BoolVar(&checkWriteTest, "write-test", false, "probe write access on column F")
}

func runCheckSheet(cmd *cobra.Command, args []string) error {
	cfg, err := loadSheetsConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	fmt.Fprintln(out, "Sheet ID:", cfg.SpreadsheetID)
	fmt.Fprintln(out, "Service Account Email:", cfg.ServiceAccountEmail)

	svc, err := store.NewSheetsService(ctx, cfg)
	if err != nil {
		return err
	}
	sheet := store.NewSheets(svc, cfg.SpreadsheetID, cfg.Tab, logger)

	rows, err := sheet.Rows(ctx)
	if err != nil {
		printHints(out, sheetsHints(err, cfg))
		return fmt.Errorf("reading sheet: %w", err)
	}
	if len(rows) == 0 {
		color.New(color.FgRed).Fprintln(out, "No data found in sheet")
		return nil
	}

	color.New(color.FgGreen).Fprintf(out, "Successfully read %d rows from sheet\n", len(rows))
	renderRows(out, rows)

	if dups := store.DuplicateCodes(rows); len(dups) > 0 {
		color.New(color.FgYellow).Fprintf(out, "Duplicate student codes (first row wins): %s\n", strings.Join(dups, ", "))
	}

	if checkStudent != "" {
		reportStudent(out, rows, checkStudent)
	}

	if checkWriteTest {
		marker := "Test Write Access - " + time.Now().UTC().Format(time.RFC3339)
		if err := sheet.ProbeWrite(ctx, marker); err != nil {
			printHints(out, sheetsHints(err, cfg))
			return fmt.Errorf("write probe: %w", err)
		}
		color.New(color.FgGreen).Fprintln(out, "Write access successful")
		if err := sheet.ClearProbe(ctx); err != nil {
			return fmt.Errorf("clearing write probe: %w", err)
		}
		fmt.Fprintln(out, "Test data cleaned up")
	}

	return nil
}

func statusColor(status review.Status) *color.Color {
	switch status {
	case review.StatusCleared:
		return color.New(color.FgGreen)
	case review.StatusNotCleared:
		return color.New(color.FgRed)
	case review.StatusGradingPending:
		return color.New(color.FgYellow)
	}
	return color.New(color.Reset)
}

// renderRows prints the data rows under the header; rows are padded to the
// five record columns.
func renderRows(w io.Writer, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{"Row"}, store.Header...))
	table.SetAutoWrapText(false)
	for i := 1; i < len(rows); i++ {
		line := store.RowFromRecord(store.RecordFromRow(rows[i]))
		line[3] = statusColor(review.Status(line[3])).Sprint(line[3])
		table.Append(append([]string{fmt.Sprint(i + 1)}, line...))
	}
	table.Render()
}

func reportStudent(w io.Writer, rows [][]string, code string) {
	fmt.Fprintf(w, "\nLooking for student: %s\n", code)
	for i := 1; i < len(rows); i++ {
		rec := store.RecordFromRow(rows[i])
		if rec.StudentCode != code {
			continue
		}
		fmt.Fprintln(w, "Student Code:", rec.StudentCode)
		fmt.Fprintln(w, "Auth Code:", rec.AuthCode)
		fmt.Fprintln(w, "Resume Link:", orNotSet(rec.ResumeLink))
		fmt.Fprintln(w, "Status:", orNotSet(string(rec.Status)))
		fmt.Fprintln(w, "Feedback:", orNotSet(rec.Feedback))
		return
	}
	color.New(color.FgRed).Fprintf(w, "Student %s not found in sheet\n", code)
	fmt.Fprintln(w, "Available student codes:")
	for i := 1; i < len(rows); i++ {
		if c := store.RecordFromRow(rows[i]).StudentCode; c != "" {
			fmt.Fprintln(w, "-", c)
		}
	}
}

func orNotSet(s string) string {
	if s == "" {
		return "Not set"
	}
	return s
}

// sheetsHints turns common Sheets API failures into next steps.
func sheetsHints(err error, cfg store.SheetsConfig) []string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "has not been used") || strings.Contains(msg, "disabled"):
		return []string{
			"Enable the Google Sheets API for the service account's project in the Cloud console",
			"Wait a few minutes and try again",
		}
	case strings.Contains(msg, "permission") || strings.Contains(msg, "PERMISSION_DENIED") || strings.Contains(msg, "403"):
		return []string{
			"Open https://docs.google.com/spreadsheets/d/" + cfg.SpreadsheetID,
			"Share it with " + cfg.ServiceAccountEmail,
			`Give the account "Editor" access`,
		}
	case strings.Contains(msg, "Unable to parse range") || strings.Contains(msg, "404"):
		return []string{
			"Verify the sheet ID is correct",
			fmt.Sprintf("Make sure the sheet has a tab named %q", cfg.Tab),
		}
	}
	return []string{
		"Check the service account credentials",
		"Verify the sheet ID is correct",
		fmt.Sprintf("Make sure the sheet has a tab named %q", cfg.Tab),
	}
}

func printHints(w io.Writer, hints []string) {
	color.New(color.FgCyan).Fprintln(w, "\nTo fix this:")
	for i, h := range hints {
		fmt.Fprintf(w, "%d. %s\n", i+1, h)
	}
}
