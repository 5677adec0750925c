package usecase

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/rice-crc/daastapi/internal/domain"
)

var tracer = otel.Tracer("usecase")

// DocumentSearcher runs a composed search and returns the requested page
// plus the total match count of the full filtered set.
type DocumentSearcher interface {
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchRow, int64, error)
}

type SearchUsecase struct {
	repo  DocumentSearcher
	cache *AnnotationCache
}

func NewSearchUsecase(repo DocumentSearcher, cache *AnnotationCache) *SearchUsecase {
	return &SearchUsecase{repo: repo, cache: cache}
}

// Search fetches one page of published current revisions and annotates
// each row with its linked entities. Annotation happens after pagination,
// so the cache lookups are bounded by the page size rather than the total
// match count.
func (uc *SearchUsecase) Search(ctx context.Context, q domain.SearchQuery) (domain.SearchResult, error) {
	ctx, span := tracer.Start(ctx, "Search.Usecase.Search")
	defer span.End()

	rows, total, err := uc.repo.Search(ctx, q)
	if err != nil {
		span.RecordError(err)
		return domain.SearchResult{}, err
	}

	for i := range rows {
		annotations, err := uc.cache.Get(ctx, rows[i].Key)
		if err != nil {
			span.RecordError(err)
			return domain.SearchResult{}, err
		}
		rows[i].Entities = annotations
	}

	if rows == nil {
		rows = []domain.SearchRow{}
	}
	return domain.SearchResult{Matches: total, Results: rows}, nil
}
