package store

import (
	"context"
	"fmt"

	"github.com/muhammadolammi/resumestatus/internal/review"
	"go.uber.org/zap"
)

// table is raw access to a spreadsheet-shaped record table.
type table interface {
	// readRows returns every row, header first.
	readRows(ctx context.Context) ([][]string, error)
	// writeRow overwrites the resume link, status and feedback columns of a
	// 1-based sheet row.
	writeRow(ctx context.Context, sheetRow int, u review.Update) error
}

// tabular implements Backend over any table by scanning all rows.
type tabular struct {
	name string
	t    table
	log  *zap.Logger
}

func (b *tabular) Name() string { return b.name }

func (b *tabular) lookup(ctx context.Context, studentCode string, fn matcher) (match, error) {
	rows, err := b.t.readRows(ctx)
	if err != nil {
		return match{}, fmt.Errorf("reading %s rows: %w", b.name, err)
	}
	m := scan(rows, fn)
	if m.matches > 1 {
		b.log.Warn("duplicate student code, first row wins",
			zap.String("backend", b.name),
			zap.String("student_code", studentCode),
			zap.Int("rows", m.matches),
			zap.Int("used_row", m.sheetRow()),
		)
	}
	return m, nil
}

func (b *tabular) FindByCodeAndAuth(ctx context.Context, studentCode, authCode string) (review.Record, error) {
	m, err := b.lookup(ctx, studentCode, byCodeAndAuth(studentCode, authCode))
	if err != nil {
		return review.Record{}, err
	}
	if m.index < 0 {
		return review.Record{}, review.ErrNotFound
	}
	return m.record, nil
}

func (b *tabular) FindByCode(ctx context.Context, studentCode string) (review.Record, error) {
	m, err := b.lookup(ctx, studentCode, byCode(studentCode))
	if err != nil {
		return review.Record{}, err
	}
	if m.index < 0 {
		return review.Record{}, review.ErrNotFound
	}
	return m.record, nil
}

func (b *tabular) WriteUpdate(ctx context.Context, studentCode string, u review.Update) error {
	m, err := b.lookup(ctx, studentCode, byCode(studentCode))
	if err != nil {
		return err
	}
	if m.index < 0 {
		return review.ErrNotFound
	}
	if err := b.t.writeRow(ctx, m.sheetRow(), u); err != nil {
		return fmt.Errorf("writing %s row %d: %w", b.name, m.sheetRow(), err)
	}
	return nil
}
