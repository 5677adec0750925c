package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/rice-crc/daastapi/internal/domain"
)

type mockLinkLister struct {
	links []domain.EntityLink
	calls int
	fail  int // fail this many calls before succeeding
}

func (m *mockLinkLister) ListLinks(ctx context.Context) ([]domain.EntityLink, error) {
	m.calls++
	if m.fail > 0 {
		m.fail--
		return nil, fmt.Errorf("store unavailable")
	}
	return m.links, nil
}

func sampleLinks() []domain.EntityLink {
	return []domain.EntityLink{
		{DocumentKey: "doc-a", TypeName: "Voyages", EntityKey: "123"},
		{DocumentKey: "doc-a", TypeName: "Voyages", EntityKey: "456"},
		{DocumentKey: "doc-a", TypeName: "Enslaved", EntityKey: "9"},
		{DocumentKey: "doc-b", TypeName: "Enslavers", EntityKey: "77"},
	}
}

func TestAnnotationCacheGroupsByDocumentAndType(t *testing.T) {
	lister := &mockLinkLister{links: sampleLinks()}
	cache := NewAnnotationCache(lister)

	got, err := cache.Get(context.Background(), "doc-a")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entity types, got %d", len(got))
	}
	if len(got["Voyages"]) != 2 || got["Voyages"][0] != "123" || got["Voyages"][1] != "456" {
		t.Fatalf("unexpected Voyages keys %v", got["Voyages"])
	}
	if len(got["Enslaved"]) != 1 || got["Enslaved"][0] != "9" {
		t.Fatalf("unexpected Enslaved keys %v", got["Enslaved"])
	}
}

func TestAnnotationCacheUnknownKeyIsEmpty(t *testing.T) {
	cache := NewAnnotationCache(&mockLinkLister{links: sampleLinks()})

	got, err := cache.Get(context.Background(), "doc-unknown")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty mapping, got %v", got)
	}
}

func TestAnnotationCacheLoadsOnce(t *testing.T) {
	lister := &mockLinkLister{links: sampleLinks()}
	cache := NewAnnotationCache(lister)

	for i := 0; i < 5; i++ {
		if _, err := cache.Get(context.Background(), "doc-a"); err != nil {
			t.Fatalf("get %d failed: %v", i, err)
		}
	}
	if lister.calls != 1 {
		t.Fatalf("expected a single bulk load, got %d", lister.calls)
	}
}

func TestAnnotationCacheRetriesAfterLoadFailure(t *testing.T) {
	lister := &mockLinkLister{links: sampleLinks(), fail: 1}
	cache := NewAnnotationCache(lister)

	if _, err := cache.Get(context.Background(), "doc-a"); err == nil {
		t.Fatalf("expected load error")
	}

	// A failed load must not be cached as an empty result.
	got, err := cache.Get(context.Background(), "doc-a")
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(got["Voyages"]) != 2 {
		t.Fatalf("unexpected annotations after retry: %v", got)
	}
	if lister.calls != 2 {
		t.Fatalf("expected 2 load attempts, got %d", lister.calls)
	}
}

func TestAnnotationCacheReset(t *testing.T) {
	lister := &mockLinkLister{links: sampleLinks()}
	cache := NewAnnotationCache(lister)

	if _, err := cache.Get(context.Background(), "doc-a"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	cache.Reset()
	if _, err := cache.Get(context.Background(), "doc-b"); err != nil {
		t.Fatalf("get after reset failed: %v", err)
	}
	if lister.calls != 2 {
		t.Fatalf("expected reload after reset, got %d loads", lister.calls)
	}
}
