// Package store reads and rewrites student records kept in a tabular
// backend and degrades to an in-memory table when that backend fails.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/muhammadolammi/resumestatus/internal/review"
	"go.uber.org/zap"
)

// Backend is one concrete record table. Absence is reported as
// review.ErrNotFound; every other error means the backend itself failed.
type Backend interface {
	Name() string
	FindByCodeAndAuth(ctx context.Context, studentCode, authCode string) (review.Record, error)
	FindByCode(ctx context.Context, studentCode string) (review.Record, error)
	WriteUpdate(ctx context.Context, studentCode string, u review.Update) error
}

// Adapter serves reads and writes from a primary backend and repeats an
// operation on the fallback when the primary fails. A NotFound from the
// primary is an answer, not a failure, and is returned as-is.
type Adapter struct {
	primary  Backend
	fallback Backend
	log      *zap.Logger
}

// NewAdapter wires primary and fallback. A nil fallback disables fallback.
func NewAdapter(primary, fallback Backend, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{primary: primary, fallback: fallback, log: log}
}

func (a *Adapter) shouldFallBack(err error) bool {
	return err != nil && !errors.Is(err, review.ErrNotFound) && a.fallback != nil
}

func (a *Adapter) warn(op string, err error) {
	a.log.Warn("record store unavailable, using fallback",
		zap.String("op", op),
		zap.String("backend", a.primary.Name()),
		zap.String("fallback", a.fallback.Name()),
		zap.Error(err),
	)
}

func (a *Adapter) FindByCodeAndAuth(ctx context.Context, studentCode, authCode string) (review.Record, error) {
	rec, err := a.primary.FindByCodeAndAuth(ctx, studentCode, authCode)
	if !a.shouldFallBack(err) {
		return rec, err
	}
	a.warn("find_by_code_and_auth", err)
	return a.fallback.FindByCodeAndAuth(ctx, studentCode, authCode)
}

// FindByCode also returns the name of the backend that answered, so the
// follow-up write can be sent back to it.
func (a *Adapter) FindByCode(ctx context.Context, studentCode string) (review.Record, string, error) {
	rec, err := a.primary.FindByCode(ctx, studentCode)
	if !a.shouldFallBack(err) {
		return rec, a.primary.Name(), err
	}
	a.warn("find_by_code", err)
	rec, err = a.fallback.FindByCode(ctx, studentCode)
	return rec, a.fallback.Name(), err
}

func (a *Adapter) servedByFallback(source string) bool {
	return a.fallback != nil && source == a.fallback.Name() && source != a.primary.Name()
}

// WriteUpdate writes to source, the backend that served the read. A row read
// from the fallback is written there only; a failed primary write is repeated
// on the fallback. It returns the name of the backend that took the write and
// only fails when no backend could apply it.
func (a *Adapter) WriteUpdate(ctx context.Context, source, studentCode string, u review.Update) (string, error) {
	if a.servedByFallback(source) {
		if err := a.fallback.WriteUpdate(ctx, studentCode, u); err != nil {
			return "", fmt.Errorf("%s: %w", a.fallback.Name(), err)
		}
		return a.fallback.Name(), nil
	}

	err := a.primary.WriteUpdate(ctx, studentCode, u)
	if err == nil {
		return a.primary.Name(), nil
	}
	if !a.shouldFallBack(err) {
		return "", fmt.Errorf("%s: %w", a.primary.Name(), err)
	}
	a.warn("write_update", err)
	if ferr := a.fallback.WriteUpdate(ctx, studentCode, u); ferr != nil {
		return "", errors.Join(
			fmt.Errorf("%s: %w", a.primary.Name(), err),
			fmt.Errorf("%s: %w", a.fallback.Name(), ferr),
		)
	}
	return a.fallback.Name(), nil
}
