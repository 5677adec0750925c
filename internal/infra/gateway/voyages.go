package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const voyagesPageSize = 10

// VoyagesClient fetches document records from the Voyages API.
type VoyagesClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewVoyagesClient(baseURL, apiKey string) *VoyagesClient {
	return &VoyagesClient{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// VoyageDoc is one row of the Voyages docs listing. Raw keeps the full
// record so the import can store it as revision content without caring
// about fields the catalog does not read.
type VoyageDoc struct {
	ID        int64  `json:"id"`
	Key       string `json:"key"`
	Label     string `json:"label"`
	Bib       string `json:"bib"`
	Thumbnail string `json:"thumbnail"`

	Raw json.RawMessage `json:"-"`
}

// FetchDocs pages through the docs listing until an empty page, retrying
// failed pages up to maxConsecutiveErrors times in a row.
func (v *VoyagesClient) FetchDocs(ctx context.Context) ([]VoyageDoc, error) {
	var docs []VoyageDoc
	page := 1
	errorCount := 0
	var lastErr error

	for {
		if errorCount >= maxConsecutiveErrors {
			return nil, errors.Wrap(lastErr, "too many failures fetching data from the Voyages API")
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, err := v.docsPage(ctx, page)
		if err != nil {
			lastErr = err
			errorCount++
			continue
		}
		if len(rows) == 0 {
			break
		}
		docs = append(docs, rows...)
		slog.InfoContext(ctx, "Fetched voyages docs page",
			slog.Int("page", page),
			slog.Int("rows", len(rows)),
			slog.String("module", "gateway"),
		)
		page++
		errorCount = 0
	}

	return docs, nil
}

func (v *VoyagesClient) docsPage(ctx context.Context, page int) ([]VoyageDoc, error) {
	payload, err := json.Marshal(map[string]any{
		"results_page":     page,
		"results_per_page": voyagesPageSize,
		"files":            []string{},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		v.baseURL+"/docs/", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+v.apiKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var raws []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, errors.Wrap(err, "failed to decode voyages docs page")
	}

	rows := make([]VoyageDoc, 0, len(raws))
	for _, raw := range raws {
		var doc VoyageDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Wrap(err, "failed to decode voyages doc")
		}
		doc.Raw = raw
		rows = append(rows, doc)
	}
	return rows, nil
}

func decodeJSON(resp *http.Response, out any) error {
	return json.NewDecoder(resp.Body).Decode(out)
}
