package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rice-crc/daastapi/internal/domain"
	"github.com/rice-crc/daastapi/internal/usecase"
)

// --- mocks ---

type mockSearcher struct {
	rows  []domain.SearchRow
	total int64
}

func (m *mockSearcher) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchRow, int64, error) {
	return m.rows, m.total, nil
}

type mockLinkLister struct {
	links []domain.EntityLink
}

func (m *mockLinkLister) ListLinks(ctx context.Context) ([]domain.EntityLink, error) {
	return m.links, nil
}

type mockResolverRepo struct {
	doc domain.Document
	rev domain.DocumentRevision
}

func (m *mockResolverRepo) GetByKey(ctx context.Context, key string) (domain.Document, error) {
	if key != m.doc.Key {
		return domain.Document{}, domain.NotFoundError{Resource: "document"}
	}
	return m.doc, nil
}

func (m *mockResolverRepo) GetRevision(ctx context.Context, documentID int64, revisionNumber int) (domain.DocumentRevision, error) {
	if m.rev.RevisionNumber == nil || *m.rev.RevisionNumber != revisionNumber {
		return domain.DocumentRevision{}, domain.NotFoundError{Resource: "revision"}
	}
	return m.rev, nil
}

type mockTypeLister struct {
	types []domain.EntityType
}

func (m *mockTypeLister) ListTypes(ctx context.Context) ([]domain.EntityType, error) {
	return m.types, nil
}

func newTestServer(searcher *mockSearcher, lister *mockLinkLister, resolver *mockResolverRepo) *echo.Echo {
	searchUC := usecase.NewSearchUsecase(searcher, usecase.NewAnnotationCache(lister))
	manifestUC := usecase.NewManifestUsecase(resolver, "https://manifests.example.org")
	types := &mockTypeLister{types: []domain.EntityType{
		{ID: 1, Name: "Voyages", URLLabel: "Linked voyage id={key}", URLFormat: "https://example.org/voyage/{key}"},
	}}

	e := echo.New()
	h := NewHandler(searchUC, manifestUC, types, nil)
	h.RegisterRoutes(e)
	return e
}

func emptyFixtures() (*mockSearcher, *mockLinkLister, *mockResolverRepo) {
	two := 2
	return &mockSearcher{},
		&mockLinkLister{},
		&mockResolverRepo{
			doc: domain.Document{ID: 1, Key: "doc-a", CurrentRev: &two},
			rev: domain.DocumentRevision{DocumentID: 1, RevisionNumber: &two, Status: domain.StatusPublished},
		}
}

// --- tests ---

func TestSearchReturnsAnnotatedPage(t *testing.T) {
	searcher := &mockSearcher{
		rows: []domain.SearchRow{
			{Label: "A letter from the captain", RevisionNumber: 2, Key: "doc-a", Thumb: "https://img/a.jpg"},
		},
		total: 1,
	}
	lister := &mockLinkLister{links: []domain.EntityLink{
		{DocumentKey: "doc-a", TypeName: "Voyages", EntityKey: "123"},
	}}
	_, _, resolver := emptyFixtures()
	e := newTestServer(searcher, lister, resolver)

	body := `{"label": "letter", "entities": [{"typename": "Voyages", "keys": ["123"]}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var result domain.SearchResult
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &result))
	assert.Equal(t, int64(1), result.Matches)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "doc-a", result.Results[0].Key)
	assert.Equal(t, []string{"123"}, result.Results[0].Entities["Voyages"])
}

func TestSearchEmptyResultIsSuccessful(t *testing.T) {
	e := newTestServer(emptyFixtures())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"matches": 0, "results": []}`, res.Body.String())
}

func TestSearchRejectsMalformedBody(t *testing.T) {
	e := newTestServer(emptyFixtures())

	for _, body := range []string{
		`{"label": `,
		`{"entities": "Voyages"}`,
		`{"results_page": "two"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		res := httptest.NewRecorder()
		e.ServeHTTP(res, req)

		assert.Equal(t, http.StatusBadRequest, res.Code, "body %q", body)
	}
}

func TestManifestRedirectsToCurrentRevision(t *testing.T) {
	e := newTestServer(emptyFixtures())

	req := httptest.NewRequest(http.MethodGet, "/manifests/doc-a", nil)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	require.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "https://manifests.example.org/doc-a_rev002.json", res.Header().Get("Location"))
}

func TestManifestExplicitRevision(t *testing.T) {
	e := newTestServer(emptyFixtures())

	req := httptest.NewRequest(http.MethodGet, "/manifests/doc-a/2", nil)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	require.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "https://manifests.example.org/doc-a_rev002.json", res.Header().Get("Location"))
}

func TestManifestUnknownDocumentIsNotFound(t *testing.T) {
	e := newTestServer(emptyFixtures())

	req := httptest.NewRequest(http.MethodGet, "/manifests/doc-x", nil)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestManifestMissingRevisionIsNotFound(t *testing.T) {
	e := newTestServer(emptyFixtures())

	req := httptest.NewRequest(http.MethodGet, "/manifests/doc-a/9", nil)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestManifestRejectsNonIntegerRevision(t *testing.T) {
	e := newTestServer(emptyFixtures())

	req := httptest.NewRequest(http.MethodGet, "/manifests/doc-a/two", nil)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestEntityTypesListing(t *testing.T) {
	e := newTestServer(emptyFixtures())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entity-types", nil)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var types []domain.EntityType
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &types))
	require.Len(t, types, 1)
	assert.Equal(t, "Voyages", types[0].Name)
	assert.Contains(t, types[0].URLFormat, "{key}")
}
