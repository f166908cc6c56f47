package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rentlab/lotclone/internal/lot"
	"github.com/rentlab/lotclone/internal/market"
)

// HTTPClient talks to the listing store's HTTP API.
type HTTPClient struct {
	baseURL   string
	authToken string
	client    *http.Client

	tokenMu   sync.RWMutex
	csrfToken string
}

func NewHTTPClient(baseURL, authToken string, timeout time.Duration) market.Client {
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		authToken: authToken,
		client:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) FetchLotFields(ctx context.Context, lotID int64) (lot.Fields, error) {
	var payload struct {
		Fields map[string]string `json:"fields"`
	}
	status, err := c.getJSON(ctx, fmt.Sprintf("%s/api/lots/%d/fields", c.baseURL, lotID), &payload)
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("lot %d: %w", lotID, market.ErrLotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch lot %d fields: %w", lotID, err)
	}
	if len(payload.Fields) == 0 {
		return nil, fmt.Errorf("lot %d has no editable fields", lotID)
	}
	return lot.Fields(payload.Fields), nil
}

func (c *HTTPClient) SaveLot(ctx context.Context, fields lot.Fields) (market.SaveResult, error) {
	token, err := c.ensureCSRFToken(ctx)
	if err != nil {
		return market.SaveResult{}, fmt.Errorf("fetch csrf token: %w", err)
	}

	form := url.Values{}
	for key, value := range fields {
		form.Set(key, value)
	}
	form.Set(lot.FieldCSRFToken, token)

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/api/lots/save", strings.NewReader(form.Encode()))
	if err != nil {
		return market.SaveResult{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return market.SaveResult{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return market.SaveResult{}, err
	}
	if !isHTTPSuccessStatus(resp.StatusCode) {
		return market.SaveResult{}, fmt.Errorf("save returned status %d", resp.StatusCode)
	}

	result := market.SaveResult{Raw: strings.TrimSpace(string(body))}

	// The store's save response shape is not guaranteed, decoding is
	// best effort and identifier recovery copes with whatever is missing.
	var parsed struct {
		OfferID json.Number       `json:"offer_id"`
		URL     string            `json:"url"`
		Fields  map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if n, err := parsed.OfferID.Int64(); err == nil {
			result.OfferID = n
		}
		result.URL = parsed.URL
		result.Fields = parsed.Fields
	}
	if result.URL == "" {
		result.URL = resp.Header.Get("Location")
	}
	return result, nil
}

func (c *HTTPClient) ListInventory(ctx context.Context) ([]market.InventoryItem, error) {
	var payload []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	if _, err := c.getJSON(ctx, c.baseURL+"/api/lots", &payload); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	items := make([]market.InventoryItem, 0, len(payload))
	for _, entry := range payload {
		items = append(items, market.InventoryItem{ID: entry.ID, Title: entry.Title})
	}
	return items, nil
}

// ensureCSRFToken fetches the submission token once and reuses it for
// every save of the process lifetime.
func (c *HTTPClient) ensureCSRFToken(ctx context.Context) (string, error) {
	c.tokenMu.RLock()
	token := c.csrfToken
	c.tokenMu.RUnlock()
	if token != "" {
		return token, nil
	}

	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	if c.csrfToken != "" {
		return c.csrfToken, nil
	}

	var payload struct {
		CSRFToken string `json:"csrf_token"`
	}
	if _, err := c.getJSON(ctx, c.baseURL+"/api/csrf", &payload); err != nil {
		return "", err
	}
	if payload.CSRFToken == "" {
		return "", fmt.Errorf("csrf response carried no token")
	}
	c.csrfToken = payload.CSRFToken
	return c.csrfToken, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, rawURL string, out any) (int, error) {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if !isHTTPSuccessStatus(resp.StatusCode) {
		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, rawURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	return req, nil
}

func isHTTPSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
