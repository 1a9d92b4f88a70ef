package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/resumestatus/internal/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingSink struct {
	name string
	fail int // number of leading calls that fail

	mu     sync.Mutex
	calls  int
	events []review.Resubmission
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Deliver(_ context.Context, ev review.Resubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.fail {
		return errors.New("sink unavailable")
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) snapshot() (int, []review.Resubmission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls, append([]review.Resubmission(nil), s.events...)
}

func noRetryDelay(t *testing.T) {
	t.Helper()
	old := retryDelay
	retryDelay = 0
	t.Cleanup(func() { retryDelay = old })
}

func sampleEvent(code string) review.Resubmission {
	return review.Resubmission{
		ID:           uuid.New(),
		StudentCode:  code,
		PreviousLink: "https://drive.google.com/old",
		NewLink:      "https://drive.google.com/new",
		Feedback:     "Fix formatting",
		Backend:      "memory",
		At:           time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestDispatcher_DeliversToEverySink(t *testing.T) {
	noRetryDelay(t)
	journal := &recordingSink{name: "journal"}
	archive := &recordingSink{name: "archive"}

	d := NewDispatcher(zap.NewNop(), 8, journal, archive)
	d.Start(2)

	events := []review.Resubmission{sampleEvent("S002"), sampleEvent("S003")}
	for _, ev := range events {
		d.ResumeResubmitted(context.Background(), ev)
	}
	d.Close()

	for _, sink := range []*recordingSink{journal, archive} {
		_, got := sink.snapshot()
		assert.ElementsMatch(t, events, got, sink.name)
	}
}

func TestDispatcher_RetriesFailingSink(t *testing.T) {
	noRetryDelay(t)
	flaky := &recordingSink{name: "broker", fail: 2}

	d := NewDispatcher(zap.NewNop(), 1, flaky)
	d.Start(1)
	d.ResumeResubmitted(context.Background(), sampleEvent("S002"))
	d.Close()

	calls, got := flaky.snapshot()
	assert.Equal(t, 3, calls)
	require.Len(t, got, 1)
}

func TestDispatcher_LogsWhenRetriesExhausted(t *testing.T) {
	noRetryDelay(t)
	core, logs := observer.New(zapcore.InfoLevel)
	broken := &recordingSink{name: "archive", fail: 10}
	healthy := &recordingSink{name: "journal"}

	d := NewDispatcher(zap.New(core), 1, broken, healthy)
	d.Start(1)
	d.ResumeResubmitted(context.Background(), sampleEvent("S002"))
	d.Close()

	calls, _ := broken.snapshot()
	assert.Equal(t, deliverAttempts, calls)
	_, delivered := healthy.snapshot()
	assert.Len(t, delivered, 1, "one failing sink must not block the others")

	failures := logs.FilterMessage("failed to deliver resubmission").All()
	require.Len(t, failures, 1)
	assert.Equal(t, "archive", failures[0].ContextMap()["sink"])
}

func TestDispatcher_DropsWhenFullOrClosed(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := &recordingSink{name: "journal"}

	// no workers started, so the single buffered slot fills immediately
	d := NewDispatcher(zap.New(core), 1, sink)
	d.ResumeResubmitted(context.Background(), sampleEvent("S001"))
	d.ResumeResubmitted(context.Background(), sampleEvent("S002"))
	assert.Equal(t, 1, logs.FilterMessage("dispatch queue full, dropping resubmission event").Len())

	d.Close()
	d.ResumeResubmitted(context.Background(), sampleEvent("S003"))
	assert.Equal(t, 1, logs.FilterMessage("dispatcher closed, dropping resubmission event").Len())

	// closing twice is harmless
	d.Close()
}

func TestNewDispatcher_Defaults(t *testing.T) {
	d := NewDispatcher(nil, 0)
	assert.Equal(t, defaultDispatchBuffer, cap(d.events))
	assert.NotNil(t, d.log)
}
