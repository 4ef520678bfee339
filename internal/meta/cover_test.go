package meta_test

import (
	"testing"

	"curator/internal/meta"
)

func TestReconcileCover(t *testing.T) {
	images := []string{"b.jpg", "the-COVER.jpg", "a.jpg"}

	if cover, stale := meta.ReconcileCover("a.jpg", images); cover != "a.jpg" || stale {
		t.Fatalf("present cover: got %q stale=%v", cover, stale)
	}
	if cover, stale := meta.ReconcileCover("gone.jpg", images); cover != "the-COVER.jpg" || !stale {
		t.Fatalf("stale cover: got %q stale=%v", cover, stale)
	}
	if cover, stale := meta.ReconcileCover("", []string{"x.jpg", "y.jpg"}); cover != "x.jpg" || stale {
		t.Fatalf("unset cover: got %q stale=%v", cover, stale)
	}
	if cover, stale := meta.ReconcileCover("", nil); cover != "" || stale {
		t.Fatalf("no images: got %q stale=%v", cover, stale)
	}
}
