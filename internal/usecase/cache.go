package usecase

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/rice-crc/daastapi/internal/domain"
)

// EntityLinkLister is the bulk read the annotation cache is built from.
type EntityLinkLister interface {
	ListLinks(ctx context.Context) ([]domain.EntityLink, error)
}

// AnnotationCache maps a document key to its linked entities grouped by
// entity type name. The whole link table is loaded in one scan on first
// access and reused for every lookup until Reset; links written after the
// load are not visible until then. The mutex makes concurrent first
// accesses wait for a single load.
type AnnotationCache struct {
	lister EntityLinkLister

	mu   sync.Mutex
	data map[string]map[string][]string
}

func NewAnnotationCache(lister EntityLinkLister) *AnnotationCache {
	return &AnnotationCache{lister: lister}
}

// Get returns the entity annotations for a document key. Unknown keys get
// an empty mapping, not an error.
func (c *AnnotationCache) Get(ctx context.Context, documentKey string) (map[string][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data == nil {
		if err := c.loadLocked(ctx); err != nil {
			return nil, err
		}
	}

	annotations, ok := c.data[documentKey]
	if !ok {
		return map[string][]string{}, nil
	}
	return annotations, nil
}

// Reset drops the loaded data; the next Get triggers a fresh load.
func (c *AnnotationCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
}

// loadLocked builds the full mapping. On failure the cache stays unloaded
// so the next access retries instead of serving a poisoned empty map.
func (c *AnnotationCache) loadLocked(ctx context.Context) error {
	links, err := c.lister.ListLinks(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load entity annotation cache")
	}

	data := make(map[string]map[string][]string)
	for _, link := range links {
		byType, ok := data[link.DocumentKey]
		if !ok {
			byType = make(map[string][]string)
			data[link.DocumentKey] = byType
		}
		byType[link.TypeName] = append(byType[link.TypeName], link.EntityKey)
	}

	c.data = data
	return nil
}
