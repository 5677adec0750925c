package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rice-crc/daastapi/internal/domain"
)

type mockResolverRepo struct {
	docs      map[string]domain.Document
	revisions map[int64]map[int]domain.DocumentRevision
}

func (m *mockResolverRepo) GetByKey(ctx context.Context, key string) (domain.Document, error) {
	doc, ok := m.docs[key]
	if !ok {
		return domain.Document{}, domain.NotFoundError{Resource: "document"}
	}
	return doc, nil
}

func (m *mockResolverRepo) GetRevision(ctx context.Context, documentID int64, revisionNumber int) (domain.DocumentRevision, error) {
	rev, ok := m.revisions[documentID][revisionNumber]
	if !ok {
		return domain.DocumentRevision{}, domain.NotFoundError{Resource: "revision"}
	}
	return rev, nil
}

func resolverFixture() *mockResolverRepo {
	two := 2
	return &mockResolverRepo{
		docs: map[string]domain.Document{
			"doc-a": {ID: 1, Key: "doc-a", CurrentRev: &two},
			"doc-b": {ID: 2, Key: "doc-b"}, // nothing published yet
		},
		revisions: map[int64]map[int]domain.DocumentRevision{
			1: {
				1: {DocumentID: 1, RevisionNumber: intPtr(1), Status: domain.StatusPublished},
				2: {DocumentID: 1, RevisionNumber: intPtr(2), Status: domain.StatusPublished},
				3: {DocumentID: 1, RevisionNumber: intPtr(3), Status: domain.StatusApproved},
			},
		},
	}
}

func intPtr(v int) *int { return &v }

func TestResolveCurrentRevision(t *testing.T) {
	uc := NewManifestUsecase(resolverFixture(), "https://manifests.example.org/")

	url, err := uc.Resolve(context.Background(), "doc-a", nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	want := "https://manifests.example.org/doc-a_rev002.json"
	if url != want {
		t.Fatalf("expected %s, got %s", want, url)
	}
}

func TestResolveUnknownDocument(t *testing.T) {
	uc := NewManifestUsecase(resolverFixture(), "https://manifests.example.org")

	_, err := uc.Resolve(context.Background(), "doc-x", nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResolveNoCurrentRevision(t *testing.T) {
	uc := NewManifestUsecase(resolverFixture(), "https://manifests.example.org")

	_, err := uc.Resolve(context.Background(), "doc-b", nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unset current revision, got %v", err)
	}
}

func TestResolveUnpublishedRevision(t *testing.T) {
	uc := NewManifestUsecase(resolverFixture(), "https://manifests.example.org")

	_, err := uc.Resolve(context.Background(), "doc-a", intPtr(3))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for approved-but-unpublished revision, got %v", err)
	}
}

func TestResolveMissingRevision(t *testing.T) {
	uc := NewManifestUsecase(resolverFixture(), "https://manifests.example.org")

	_, err := uc.Resolve(context.Background(), "doc-a", intPtr(9))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for missing revision, got %v", err)
	}
}

// An explicitly requested older published revision validates fine, but the
// emitted path still names the document's current revision.
func TestResolveExplicitRevisionUsesCurrentRevInPath(t *testing.T) {
	uc := NewManifestUsecase(resolverFixture(), "https://manifests.example.org")

	url, err := uc.Resolve(context.Background(), "doc-a", intPtr(1))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	want := "https://manifests.example.org/doc-a_rev002.json"
	if url != want {
		t.Fatalf("expected current revision in path, got %s", url)
	}
}
