package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadolammi/resumestatus/internal/review"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultTab is the spreadsheet tab holding the record table.
const DefaultTab = "ResumeData"

// SheetsConfig identifies a spreadsheet and the service account used to reach it.
type SheetsConfig struct {
	SpreadsheetID       string
	Tab                 string
	ServiceAccountEmail string
	PrivateKey          string
}

// NewSheetsService authenticates as the service account with its raw PEM key.
func NewSheetsService(ctx context.Context, cfg SheetsConfig, opts ...option.ClientOption) (*sheets.Service, error) {
	if cfg.ServiceAccountEmail == "" || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("service account email and private key are required")
	}
	conf := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	opts = append([]option.ClientOption{option.WithTokenSource(conf.TokenSource(ctx))}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets client: %w", err)
	}
	return svc, nil
}

// valuesClient is the slice of the Sheets values API the backend needs.
type valuesClient interface {
	Get(ctx context.Context, readRange string) ([][]interface{}, error)
	Update(ctx context.Context, writeRange string, values [][]interface{}) error
	Clear(ctx context.Context, clearRange string) error
}

type sheetsValues struct {
	svc           *sheets.Service
	spreadsheetID string
}

func (v sheetsValues) Get(ctx context.Context, readRange string) ([][]interface{}, error) {
	resp, err := v.svc.Spreadsheets.Values.Get(v.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (v sheetsValues) Update(ctx context.Context, writeRange string, values [][]interface{}) error {
	_, err := v.svc.Spreadsheets.Values.
		Update(v.spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (v sheetsValues) Clear(ctx context.Context, clearRange string) error {
	_, err := v.svc.Spreadsheets.Values.
		Clear(v.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return err
}

// Sheets is a Backend over a Google Sheets tab with columns A:E.
type Sheets struct {
	tabular
	values valuesClient
	tab    string
}

func NewSheets(svc *sheets.Service, spreadsheetID, tab string, log *zap.Logger) *Sheets {
	return newSheets(sheetsValues{svc: svc, spreadsheetID: spreadsheetID}, tab, log)
}

func newSheets(values valuesClient, tab string, log *zap.Logger) *Sheets {
	if tab == "" {
		tab = DefaultTab
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sheets{values: values, tab: tab}
	s.tabular = tabular{name: "sheets", t: s, log: log}
	return s
}

// Rows returns the whole table, header included.
func (s *Sheets) Rows(ctx context.Context) ([][]string, error) {
	return s.readRows(ctx)
}

func (s *Sheets) readRows(ctx context.Context) ([][]string, error) {
	raw, err := s.values.Get(ctx, a1(s.tab, "A:E"))
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(raw))
	for i, r := range raw {
		row := make([]string, len(r))
		for j, v := range r {
			if str, ok := v.(string); ok {
				row[j] = str
			} else {
				row[j] = fmt.Sprint(v)
			}
		}
		rows[i] = row
	}
	return rows, nil
}

func (s *Sheets) writeRow(ctx context.Context, sheetRow int, u review.Update) error {
	rng := a1(s.tab, fmt.Sprintf("C%d:E%d", sheetRow, sheetRow))
	return s.values.Update(ctx, rng, [][]interface{}{{u.ResumeLink, string(u.Status), u.Feedback}})
}

// ProbeWrite writes a marker to F1 to confirm the service account can edit.
func (s *Sheets) ProbeWrite(ctx context.Context, marker string) error {
	return s.values.Update(ctx, a1(s.tab, "F1"), [][]interface{}{{marker}})
}

// ClearProbe removes anything ProbeWrite left in column F.
func (s *Sheets) ClearProbe(ctx context.Context) error {
	return s.values.Clear(ctx, a1(s.tab, "F:F"))
}

// NormalizePrivateKey expands literal "\n" sequences, the form private keys
// usually take inside .env files.
func NormalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
