package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/appcanvas-dev/appcanvas/internal/errors"
)

// StorefrontSource fetches catalog items from the storefront HTTP API.
type StorefrontSource struct {
	baseURL string
	token   string
	client  *http.Client
}

var _ Source = (*StorefrontSource)(nil)

// NewStorefrontSource creates a source against the given API base URL.
func NewStorefrontSource(baseURL, token string, timeout time.Duration) *StorefrontSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &StorefrontSource{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchCatalogItems retrieves the app's products from the storefront.
func (s *StorefrontSource) FetchCatalogItems(ctx context.Context, appKey string) ([]Item, error) {
	if s.baseURL == "" {
		return nil, errors.New(errors.CodeCatalogFailed).
			WithDetail("No storefront URL configured")
	}

	endpoint := fmt.Sprintf("%s/catalog?app=%s", s.baseURL, url.QueryEscape(appKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.New(errors.CodeCatalogFailed).Wrap(err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.New(errors.CodeCatalogFailed).
			WithDetail("Could not reach the storefront: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.CodeCatalogFailed).
			WithDetail(fmt.Sprintf("Storefront returned status %d", resp.StatusCode))
	}

	var payload struct {
		Items []Item `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.New(errors.CodeCatalogFailed).
			WithDetail("Invalid storefront response: " + err.Error())
	}

	return payload.Items, nil
}
