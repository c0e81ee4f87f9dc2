package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the arXiv query endpoint.
const DefaultBaseURL = "https://export.arxiv.org/api/query"

// Document is one paper returned by the arXiv API.
type Document struct {
	Title     string `json:"title"`
	Abstract  string `json:"abstract"`
	URL       string `json:"url"`
	Published string `json:"published"`
}

// Client queries the arXiv Atom API. The zero value is not usable;
// construct with NewClient. Tests point BaseURL at an httptest server.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    DefaultBaseURL,
	}
}

// Search runs one query against arXiv and returns up to maxResults
// documents. Zero matches is not an error; the caller decides whether an
// empty result set matters.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Document, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Add("search_query", query)
	params.Add("start", "0")
	params.Add("max_results", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv returned non-200 status code: %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal XML: %w", err)
	}

	var docs []Document
	for _, entry := range feed.Entry {
		doc := Document{
			Title:     collapseWhitespace(entry.Title),
			Abstract:  strings.TrimSpace(entry.Summary),
			URL:       entryURL(entry),
			Published: entry.Published,
		}
		if doc.Title == "" || doc.URL == "" {
			continue
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// entryURL prefers the PDF link and falls back to the abstract page.
func entryURL(entry arxivEntry) string {
	for _, link := range entry.Link {
		if link.Type == "application/pdf" {
			return link.Href
		}
	}
	return strings.TrimSpace(entry.ID)
}

// collapseWhitespace folds the newline-indented titles the Atom feed
// produces into single-spaced text.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	XMLName xml.Name     `xml:"feed"`
	Entry   []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string      `xml:"id"`
	Title     string      `xml:"title"`
	Summary   string      `xml:"summary"`
	Published string      `xml:"published"`
	Link      []arxivLink `xml:"link"`
}

type arxivLink struct {
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr"`
}
