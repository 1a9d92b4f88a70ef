package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResubmit_NotClearedScenario(t *testing.T) {
	store := newFakeStore(sampleRecords()...)
	listener := &recordingListener{}
	svc := NewService(store, WithListener(listener))
	ctx := context.Background()

	receipt, err := svc.Resubmit(ctx, "S002", "https://drive.google.com/x")
	require.NoError(t, err)
	assert.Contains(t, receipt.Message, "Grading Pending")
	assert.Equal(t, "fake", receipt.Backend)

	view, err := svc.CheckStatus(ctx, "S002", "AUTH456")
	require.NoError(t, err)
	assert.Equal(t, StatusGradingPending, view.Status)
	assert.Equal(t, "Grading Pending", view.Feedback)
	assert.Equal(t, "https://drive.google.com/x", view.ResumeLink)

	stored := store.get("S002")
	assert.Equal(t, "Please improve the formatting and add more details to experience section.", stored.Feedback)

	require.Len(t, listener.events, 1)
	ev := listener.events[0]
	assert.Equal(t, receipt.EventID, ev.ID)
	assert.Equal(t, "S002", ev.StudentCode)
	assert.Equal(t, "https://drive.google.com/file/d/2DEF456GHI789/view?usp=sharing", ev.PreviousLink)
	assert.Equal(t, "https://drive.google.com/x", ev.NewLink)
}

func TestResubmit_SecondCallFails(t *testing.T) {
	store := newFakeStore(sampleRecords()...)
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.Resubmit(ctx, "S002", "https://drive.google.com/x")
	require.NoError(t, err)

	_, err = svc.Resubmit(ctx, "S002", "https://drive.google.com/again")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, "https://drive.google.com/x", store.get("S002").ResumeLink)
}

func TestResubmit_IneligibleStatusLeavesRecord(t *testing.T) {
	for _, code := range []string{"S001", "S003"} {
		t.Run(code, func(t *testing.T) {
			store := newFakeStore(sampleRecords()...)
			before := store.get(code)
			svc := NewService(store)

			_, err := svc.Resubmit(context.Background(), code, "https://drive.google.com/y")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadRequest)
			assert.Equal(t, `Resume can only be updated when status is "Not Cleared"`, err.Error())
			assert.Equal(t, before, store.get(code))
			assert.Zero(t, store.writes)
		})
	}
}

func TestResubmit_LinkPrefixCheckedBeforeStatus(t *testing.T) {
	for _, code := range []string{"S001", "S002", "S003", "UNKNOWN"} {
		t.Run(code, func(t *testing.T) {
			store := newFakeStore(sampleRecords()...)
			svc := NewService(store)

			_, err := svc.Resubmit(context.Background(), code, "https://dropbox.com/resume.pdf")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadRequest)
			assert.Equal(t, "Please provide a valid Google Drive link", err.Error())
			assert.Zero(t, store.writes)
		})
	}
}

func TestResubmit_CustomPrefix(t *testing.T) {
	svc := NewService(newFakeStore(sampleRecords()...), WithLinkPrefix("https://files.example.edu/"))

	_, err := svc.Resubmit(context.Background(), "S002", "https://drive.google.com/x")
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Resubmit(context.Background(), "S002", "https://files.example.edu/cv.pdf")
	assert.NoError(t, err)
}

func TestResubmit_MissingInput(t *testing.T) {
	svc := NewService(newFakeStore(sampleRecords()...))

	_, err := svc.Resubmit(context.Background(), "", "https://drive.google.com/x")
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Resubmit(context.Background(), "S002", "")
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, "Student Code and new Resume Link are required", err.Error())
}

func TestResubmit_UnknownStudent(t *testing.T) {
	svc := NewService(newFakeStore(sampleRecords()...))

	_, err := svc.Resubmit(context.Background(), "S404", "https://drive.google.com/x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Student not found", err.Error())
}

func TestResubmit_WriteFailureStillSucceeds(t *testing.T) {
	store := newFakeStore(sampleRecords()...)
	store.WriteFunc = func(ctx context.Context, source, studentCode string, u Update) (string, error) {
		return "", errors.New("every backend is down")
	}
	listener := &recordingListener{}
	svc := NewService(store, WithListener(listener))

	receipt, err := svc.Resubmit(context.Background(), "S002", "https://drive.google.com/x")
	require.NoError(t, err)
	assert.Contains(t, receipt.Message, "Grading Pending")
	assert.Empty(t, listener.events)
}

func TestResubmit_WritesToTheBackendThatServedTheRead(t *testing.T) {
	store := newFakeStore(sampleRecords()...)
	var gotSource string
	store.WriteFunc = func(ctx context.Context, source, studentCode string, u Update) (string, error) {
		gotSource = source
		return source, nil
	}
	svc := NewService(store)

	receipt, err := svc.Resubmit(context.Background(), "S002", "https://drive.google.com/x")
	require.NoError(t, err)
	assert.Equal(t, "fake", gotSource)
	assert.Equal(t, "fake", receipt.Backend)
}
