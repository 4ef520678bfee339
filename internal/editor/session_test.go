package editor

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"curator/internal/logging"
	"curator/internal/meta"
	"curator/internal/testsupport"
)

// scriptPrompter replays canned answers and fails the test if the session
// asks for more input than the script provides.
type scriptPrompter struct {
	t       *testing.T
	answers []string
	next    int
}

func (p *scriptPrompter) Ask(prompt string) (string, error) {
	if p.next >= len(p.answers) {
		p.t.Fatalf("unexpected prompt %q after %d answers", prompt, p.next)
	}
	answer := p.answers[p.next]
	p.next++
	return answer, nil
}

func newTestStore() *meta.Store {
	return meta.NewStore("_meta.json", []string{".jpg", ".jpeg", ".png", ".webp"})
}

func newSession(t *testing.T, root string, answers ...string) *Session {
	t.Helper()
	prompter := &scriptPrompter{t: t, answers: answers}
	return NewSession(root, newTestStore(), prompter, io.Discard, logging.NewNop())
}

func TestSessionEditsSelectedFoldersOnly(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteProject(t, root, "Alpha", nil, "a.jpg")
	testsupport.WriteProject(t, root, "Beta", &meta.Record{
		Title:      "Beta Title",
		Categories: []string{"Nature"},
		Cover:      "b.jpg",
	}, "b.jpg")
	testsupport.WriteProject(t, root, "Gamma", &meta.Record{
		Title:      "Gamma Title",
		Categories: []string{"Nature"},
		Cover:      "g.jpg",
	}, "g.jpg")

	session := newSession(t, root,
		"1,3",            // folders Alpha and Gamma
		"2",              // categories only
		"Events, Wedding",
		"n",
	)
	if err := session.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	store := newTestStore()
	alpha, err := store.Read(filepath.Join(root, "Alpha"))
	if err != nil {
		t.Fatalf("read Alpha: %v", err)
	}
	if diff := cmp.Diff([]string{"Events", "Wedding"}, alpha.Categories); diff != "" {
		t.Errorf("Alpha categories (-want +got):\n%s", diff)
	}
	if alpha.Title != "Alpha" {
		t.Errorf("Alpha title = %q, want folder-name fallback", alpha.Title)
	}
	if alpha.Cover != "a.jpg" {
		t.Errorf("Alpha cover = %q, want reconciled a.jpg", alpha.Cover)
	}

	gamma, err := store.Read(filepath.Join(root, "Gamma"))
	if err != nil {
		t.Fatalf("read Gamma: %v", err)
	}
	if diff := cmp.Diff([]string{"Events", "Wedding"}, gamma.Categories); diff != "" {
		t.Errorf("Gamma categories (-want +got):\n%s", diff)
	}
	if gamma.Title != "Gamma Title" {
		t.Errorf("Gamma title = %q, existing title must survive", gamma.Title)
	}

	beta, err := store.Read(filepath.Join(root, "Beta"))
	if err != nil {
		t.Fatalf("read Beta: %v", err)
	}
	if diff := cmp.Diff([]string{"Nature"}, beta.Categories); diff != "" {
		t.Errorf("unselected Beta was modified (-want +got):\n%s", diff)
	}
}

func TestSessionEmptyInputPreservesExistingValues(t *testing.T) {
	root := t.TempDir()
	order := 2.0
	testsupport.WriteProject(t, root, "Keep", &meta.Record{
		Title:        "Kept Title",
		Categories:   []string{"Travel"},
		Cover:        "k.jpg",
		Location:     "Reykjavik",
		Date:         "2024-06",
		Description:  "long weekend",
		Order:        &order,
		GalleryGroup: "Iceland",
	}, "k.jpg", "other.jpg")

	session := newSession(t, root,
		"1",
		"0",  // every field
		"",   // title
		"",   // categories
		"",   // gallery group
		"",   // location
		"",   // date
		"",   // description
		"",   // order
		"",   // cover keeps current
		"n",
	)
	if err := session.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := newTestStore().Read(filepath.Join(root, "Keep"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := &meta.Record{
		Title:        "Kept Title",
		Categories:   []string{"Travel"},
		Cover:        "k.jpg",
		Location:     "Reykjavik",
		Date:         "2024-06",
		Description:  "long weekend",
		Order:        &order,
		GalleryGroup: "Iceland",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record changed by empty inputs (-want +got):\n%s", diff)
	}
}

func TestSessionRejectsFolderWithoutCategories(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteProject(t, root, "Bare", nil, "x.jpg")
	testsupport.WriteProject(t, root, "Ok", &meta.Record{Categories: []string{"Street"}}, "y.jpg")

	session := newSession(t, root,
		"all",
		"1",        // title only, so Bare still has no categories
		"New Name",
		"n",
	)
	if err := session.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	store := newTestStore()
	if _, err := store.Read(filepath.Join(root, "Bare")); !errors.Is(err, meta.ErrNotFound) {
		t.Errorf("Bare must not be written without categories, got err=%v", err)
	}
	ok, err := store.Read(filepath.Join(root, "Ok"))
	if err != nil {
		t.Fatalf("read Ok: %v", err)
	}
	if ok.Title != "New Name" {
		t.Errorf("Ok title = %q, batch must continue past rejected folders", ok.Title)
	}
}

func TestSessionExitTokenLeavesCleanly(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteProject(t, root, "Solo", nil, "s.jpg")

	for _, token := range []string{"exit", "quit", "q", "Q"} {
		session := newSession(t, root, token)
		if err := session.Run(); err != nil {
			t.Errorf("Run with token %q: %v", token, err)
		}
	}
}

func TestSessionSyncModeRewritesStaleCoversOnly(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteProject(t, root, "Stale", &meta.Record{
		Categories: []string{"Nature"},
		Cover:      "gone.jpg",
	}, "cover-shot.jpg", "a.jpg")
	testsupport.WriteProject(t, root, "Fresh", &meta.Record{
		Categories: []string{"Nature"},
		Cover:      "f.jpg",
	}, "f.jpg")

	session := newSession(t, root,
		"all",
		"7", // sync covers
		"n",
	)
	if err := session.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	store := newTestStore()
	stale, err := store.Read(filepath.Join(root, "Stale"))
	if err != nil {
		t.Fatalf("read Stale: %v", err)
	}
	if stale.Cover != "cover-shot.jpg" {
		t.Errorf("Stale cover = %q, want cover-shot.jpg", stale.Cover)
	}
	fresh, err := store.Read(filepath.Join(root, "Fresh"))
	if err != nil {
		t.Fatalf("read Fresh: %v", err)
	}
	if fresh.Cover != "f.jpg" {
		t.Errorf("Fresh cover = %q, want unchanged", fresh.Cover)
	}
}

func TestSyncCovers(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteProject(t, root, "Broken", &meta.Record{
		Categories: []string{"Nature"},
		Cover:      "missing.jpg",
	}, "first.jpg", "second.jpg")
	testsupport.WriteProject(t, root, "Good", &meta.Record{
		Categories: []string{"Nature"},
		Cover:      "g.jpg",
	}, "g.jpg")
	testsupport.WriteProject(t, root, "NoMeta", nil, "n.jpg")

	changes, err := SyncCovers(root, newTestStore())
	if err != nil {
		t.Fatalf("SyncCovers: %v", err)
	}
	want := []CoverChange{{Folder: "Broken", Cover: "first.jpg"}}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Errorf("changes (-want +got):\n%s", diff)
	}

	broken, err := newTestStore().Read(filepath.Join(root, "Broken"))
	if err != nil {
		t.Fatalf("read Broken: %v", err)
	}
	if broken.Cover != "first.jpg" {
		t.Errorf("Broken cover = %q, want first.jpg", broken.Cover)
	}
}

func TestSyncCoversFillsMissingCover(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteProject(t, root, "Unset", &meta.Record{
		Categories: []string{"Nature"},
	}, "cover-a.jpg", "b.jpg")

	changes, err := SyncCovers(root, newTestStore())
	if err != nil {
		t.Fatalf("SyncCovers: %v", err)
	}
	want := []CoverChange{{Folder: "Unset", Cover: "cover-a.jpg"}}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Errorf("changes (-want +got):\n%s", diff)
	}

	record, err := newTestStore().Read(filepath.Join(root, "Unset"))
	if err != nil {
		t.Fatalf("read Unset: %v", err)
	}
	if record.Cover != "cover-a.jpg" {
		t.Errorf("cover = %q, want cover-a.jpg", record.Cover)
	}
}

func TestSessionSyncModeFillsMissingCover(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteProject(t, root, "Unset", &meta.Record{
		Categories: []string{"Nature"},
	}, "a.jpg", "b.jpg")

	session := newSession(t, root,
		"all",
		"7", // sync covers
		"n",
	)
	if err := session.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	record, err := newTestStore().Read(filepath.Join(root, "Unset"))
	if err != nil {
		t.Fatalf("read Unset: %v", err)
	}
	if record.Cover != "a.jpg" {
		t.Errorf("cover = %q, want a.jpg", record.Cover)
	}
}

func TestSessionRestartLoopsBackToFolderSelection(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteProject(t, root, "Alpha", &meta.Record{
		Categories: []string{"Nature"},
	}, "a.jpg")

	session := newSession(t, root,
		"1",
		"1", // title
		"First Title",
		"restart",
		"1",
		"1", // title
		"Second Title",
		"n",
	)
	if err := session.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	record, err := newTestStore().Read(filepath.Join(root, "Alpha"))
	if err != nil {
		t.Fatalf("read Alpha: %v", err)
	}
	if record.Title != "Second Title" {
		t.Errorf("title = %q, want value from second pass", record.Title)
	}
}
