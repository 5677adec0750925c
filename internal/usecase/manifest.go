package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rice-crc/daastapi/internal/domain"
)

// DocumentResolver provides the point lookups manifest resolution needs.
type DocumentResolver interface {
	GetByKey(ctx context.Context, key string) (domain.Document, error)
	GetRevision(ctx context.Context, documentID int64, revisionNumber int) (domain.DocumentRevision, error)
}

type ManifestUsecase struct {
	repo    DocumentResolver
	baseURL string
}

func NewManifestUsecase(repo DocumentResolver, baseURL string) *ManifestUsecase {
	return &ManifestUsecase{repo: repo, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Resolve translates a document key and optional explicit revision number
// into the URL of the externally hosted manifest. The explicit number only
// selects which revision is validated; the emitted path always names the
// document's current revision, so a request for an older published
// revision still lands on the current manifest.
func (uc *ManifestUsecase) Resolve(ctx context.Context, key string, revisionNumber *int) (string, error) {
	ctx, span := tracer.Start(ctx, "Manifest.Usecase.Resolve")
	defer span.End()

	doc, err := uc.repo.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}

	target := doc.CurrentRev
	if revisionNumber != nil {
		target = revisionNumber
	}
	if target == nil {
		return "", domain.NotFoundError{Resource: "manifest"}
	}

	rev, err := uc.repo.GetRevision(ctx, doc.ID, *target)
	if err != nil {
		return "", err
	}
	if rev.Status != domain.StatusPublished {
		return "", domain.NotFoundError{Resource: "manifest"}
	}
	if doc.CurrentRev == nil {
		// An explicitly requested published revision of a document with
		// no current revision has no manifest path to point at.
		return "", domain.NotFoundError{Resource: "manifest"}
	}

	return fmt.Sprintf("%s/%s_rev%03d.json", uc.baseURL, doc.Key, *doc.CurrentRev), nil
}
