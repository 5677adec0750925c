package domain

const (
	// DefaultPageSize is applied when a search request does not supply one.
	DefaultPageSize = 25
)

// SearchOnEntity matches documents linked to any of the given entity keys
// of one entity type.
type SearchOnEntity struct {
	TypeName string   `json:"typename"`
	Keys     []string `json:"keys"`
}

// SearchRequest is the wire shape of a search. Optional fields are
// pointers so a missing field and a zero value can be told apart; anything
// with the wrong shape fails to bind and is a request error.
type SearchRequest struct {
	Label       *string          `json:"label"`
	Entities    []SearchOnEntity `json:"entities"`
	ResultsPage *int             `json:"results_page"`
	PageSize    *int             `json:"page_size"`
}

// Query applies the documented defaults: page 1, page size 25.
func (r SearchRequest) Query() SearchQuery {
	q := SearchQuery{
		Entities: r.Entities,
		Page:     1,
		PageSize: DefaultPageSize,
	}
	if r.Label != nil {
		q.Label = *r.Label
	}
	if r.ResultsPage != nil && *r.ResultsPage > 0 {
		q.Page = *r.ResultsPage
	}
	if r.PageSize != nil && *r.PageSize > 0 {
		q.PageSize = *r.PageSize
	}
	return q
}

// SearchQuery is a normalized search over published current revisions.
type SearchQuery struct {
	Label    string
	Entities []SearchOnEntity
	Page     int
	PageSize int
}

// Offset returns the row offset of the requested 1-indexed page.
func (q SearchQuery) Offset() int {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * q.PageSize
}

// SearchRow is one search result: the published current revision of a
// document projected to its display fields, annotated with linked entities.
type SearchRow struct {
	Label          string              `json:"label"`
	RevisionNumber int                 `json:"revision_number"`
	Key            string              `json:"key"`
	Thumb          string              `json:"thumb"`
	Entities       map[string][]string `json:"entities"`
}

// SearchResult is a page of results plus the total match count of the full
// filtered set.
type SearchResult struct {
	Matches int64       `json:"matches"`
	Results []SearchRow `json:"results"`
}
