package gateway

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// maxConsecutiveErrors bounds retries against the external APIs; the
// counter resets after every successful page.
const maxConsecutiveErrors = 5

// ZoteroClient fetches bibliographic items from a Zotero group library in
// Atom/RDF form.
type ZoteroClient struct {
	client  *http.Client
	cache   *cache.Cache
	baseURL string
	apiKey  string
	userID  string
}

func NewZoteroClient(baseURL, apiKey, userID string) *ZoteroClient {
	return &ZoteroClient{
		client:  &http.Client{Timeout: 60 * time.Second},
		cache:   cache.New(10*time.Minute, 15*time.Minute),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		userID:  userID,
	}
}

// ResolveGroupID looks up the numeric id of a group by its display name in
// the user's group listing. Lookups are cached.
func (z *ZoteroClient) ResolveGroupID(ctx context.Context, groupName string) (int64, error) {
	if cached, found := z.cache.Get("group:" + groupName); found {
		return cached.(int64), nil
	}

	url := fmt.Sprintf("%s/users/%s/groups", z.baseURL, z.userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	var groups []struct {
		ID   int64 `json:"id"`
		Data struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := z.doJSON(req, &groups); err != nil {
		return 0, errors.Wrap(err, "failed to list zotero groups")
	}

	for _, group := range groups {
		if group.Data.Name == groupName {
			z.cache.Set("group:"+groupName, group.ID, cache.DefaultExpiration)
			return group.ID, nil
		}
	}
	return 0, fmt.Errorf("zotero group %q not found", groupName)
}

// FetchItems pages through the group's items in rdf_dc content format and
// returns, per item key, its RDF properties mapped through their Dublin
// Core labels. Pages that fail are retried until maxConsecutiveErrors
// failures happen in a row.
func (z *ZoteroClient) FetchItems(ctx context.Context, groupID int64) (map[string]map[string]string, error) {
	items := make(map[string]map[string]string)
	start := 0
	errorCount := 0
	var lastErr error

	for {
		if errorCount >= maxConsecutiveErrors {
			return nil, errors.Wrap(lastErr, "too many failures fetching data from the Zotero API")
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, count, err := z.itemsPage(ctx, groupID, start, 100)
		if err != nil {
			lastErr = err
			errorCount++
			continue
		}
		if count == 0 {
			break
		}
		start += count
		for key, dc := range page {
			items[key] = dc
		}
		errorCount = 0
	}

	return items, nil
}

func (z *ZoteroClient) itemsPage(ctx context.Context, groupID int64, start, limit int) (map[string]map[string]string, int, error) {
	url := fmt.Sprintf("%s/groups/%d/items?start=%d&limit=%d&content=rdf_dc",
		z.baseURL, groupID, start, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+z.apiKey)

	resp, err := z.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, 0, errors.Wrap(err, "failed to parse zotero feed")
	}

	page := make(map[string]map[string]string)
	for _, entry := range feed.Entries {
		dc := dublinCoreProperties(entry.Content)
		if len(dc) == 0 {
			continue
		}
		page[entry.Key] = dc
	}
	return page, len(feed.Entries), nil
}

func (z *ZoteroClient) doJSON(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := z.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return decodeJSON(resp, out)
}

// atomFeed models the slice of a Zotero Atom response the importer needs:
// the item key and the embedded content element, whose first grandchild is
// the rdf:Description carrying the item's RDF properties.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Key     string  `xml:"key"` // zotero api namespace
	Content xmlNode `xml:"content"`
}

type xmlNode struct {
	XMLName  xml.Name
	Text     string    `xml:",chardata"`
	Children []xmlNode `xml:",any"`
}

// dublinCoreProperties walks content -> RDF -> Description and keeps only
// the elements with a Dublin Core label, keyed by that label rather than
// the raw XML tag name.
func dublinCoreProperties(content xmlNode) map[string]string {
	if len(content.Children) == 0 {
		return nil
	}
	rdf := content.Children[0]
	if len(rdf.Children) == 0 {
		return nil
	}
	description := rdf.Children[0]

	properties := make(map[string]string)
	for _, el := range description.Children {
		label, ok := dublinCoreLabels[el.XMLName.Local]
		if !ok {
			continue
		}
		properties[label] = strings.TrimSpace(el.Text)
	}
	return properties
}
