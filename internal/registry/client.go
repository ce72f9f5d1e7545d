package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the crates.io v1 API.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewClient(baseURL, userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      httpClient,
	}
}

type searchResponse struct {
	Crates []Crate `json:"crates"`
	Meta   struct {
		Total uint64 `json:"total"`
	} `json:"meta"`
}

// Search returns one page of crates and the total number of matches.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]Crate, uint64, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 25
	}

	params := make(url.Values)
	params.Set("q", q.Query)
	params.Set("page", strconv.FormatUint(page, 10))
	params.Set("per_page", strconv.FormatUint(pageSize, 10))
	params.Set("sort", q.Sort.String())

	req, err := c.newRequest(ctx, "/crates?"+params.Encode())
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, statusError("search", resp)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}
	return decoded.Crates, decoded.Meta.Total, nil
}

type detailResponse struct {
	Crate    Crate     `json:"crate"`
	Versions []Version `json:"versions"`
	Keywords []struct {
		Keyword string `json:"keyword"`
	} `json:"keywords"`
	Categories []struct {
		Category string `json:"category"`
	} `json:"categories"`
}

// Detail returns the full record for a single crate.
func (c *Client) Detail(ctx context.Context, name string) (*Detail, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("crate name is empty")
	}

	req, err := c.newRequest(ctx, "/crates/"+url.PathEscape(name))
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("detail", resp)
	}

	var decoded detailResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode detail response: %w", err)
	}

	detail := &Detail{
		Crate:    decoded.Crate,
		Versions: decoded.Versions,
	}
	for _, kw := range decoded.Keywords {
		detail.Keywords = append(detail.Keywords, kw.Keyword)
	}
	for _, cat := range decoded.Categories {
		detail.Categories = append(detail.Categories, cat.Category)
	}
	detail.Readme = c.readme(ctx, name)
	return detail, nil
}

// readme fetches the rendered HTML readme. Best effort: crates without a
// readme 404 and the detail view simply omits the section.
func (c *Client) readme(ctx context.Context, name string) string {
	req, err := c.newRequest(ctx, "/crates/"+url.PathEscape(name)+"/readme")
	if err != nil {
		return ""
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.http.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ""
	}
	return string(body)
}

// Summary returns the registry front-page data.
func (c *Client) Summary(ctx context.Context) (*Summary, error) {
	req, err := c.newRequest(ctx, "/summary")
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("summary", resp)
	}

	var decoded Summary
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode summary response: %w", err)
	}
	return &decoded, nil
}

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%s failed with status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
}
