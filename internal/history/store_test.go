package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"curator/internal/history"
	"curator/internal/testsupport"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordRunRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	run := &history.Run{
		Trigger:      history.TriggerManual,
		StartedAt:    started,
		FinishedAt:   started.Add(250 * time.Millisecond),
		ProjectCount: 4,
		Success:      true,
	}
	skips := []history.Skip{
		{Folder: "Drafts", Reason: "no metadata"},
		{Folder: "Broken", Reason: "metadata parse error", Detail: "unexpected end of input"},
	}
	if err := store.RecordRun(ctx, run, skips); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if run.ID == "" {
		t.Fatal("run was not assigned an id")
	}

	got, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got == nil {
		t.Fatal("run not found after insert")
	}
	if got.Trigger != history.TriggerManual || got.ProjectCount != 4 || got.SkipCount != 2 || !got.Success {
		t.Errorf("unexpected run: %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, started)
	}

	gotSkips, err := store.SkipsForRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("SkipsForRun: %v", err)
	}
	if diff := cmp.Diff(skips, gotSkips); diff != "" {
		t.Errorf("skips (-want +got):\n%s", diff)
	}
}

func TestRecentRunsNewestFirstAndLimited(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := &history.Run{
			Trigger:    history.TriggerWatch,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
			Success:    true,
		}
		if err := store.RecordRun(ctx, run, nil); err != nil {
			t.Fatalf("RecordRun %d: %v", i, err)
		}
	}

	runs, err := store.RecentRuns(ctx, 3)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].StartedAt.After(runs[i-1].StartedAt) {
			t.Errorf("runs out of order: %v before %v", runs[i-1].StartedAt, runs[i].StartedAt)
		}
	}
}

func TestGetRunMissingReturnsNil(t *testing.T) {
	store := openStore(t)
	run, err := store.GetRun(context.Background(), "no-such-run")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run != nil {
		t.Errorf("got %+v, want nil", run)
	}
}

func TestRecordFailedRunKeepsErrorMessage(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	run := &history.Run{
		Trigger:      history.TriggerManual,
		StartedAt:    now,
		FinishedAt:   now,
		Success:      false,
		ErrorMessage: "content directory missing",
	}
	if err := store.RecordRun(ctx, run, nil); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	got, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Success {
		t.Error("failed run recorded as success")
	}
	if got.ErrorMessage != "content directory missing" {
		t.Errorf("ErrorMessage = %q", got.ErrorMessage)
	}
}
