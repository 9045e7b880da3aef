package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"lesson-deck/internal/models"
)

// ImageService resolves search queries to image URLs through a remote
// provider. Results are cached per query; a missing API key is warned about
// once and every lookup then falls back to a placeholder.
type ImageService struct {
	endpoint string
	apiKey   string
	client   *http.Client

	mu        sync.Mutex
	cache     map[string]*models.ImageResult
	keyWarned bool
}

// NewImageService creates an image service against the given search endpoint
func NewImageService(endpoint, apiKey string) *ImageService {
	return &ImageService{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 15 * time.Second},
		cache:    make(map[string]*models.ImageResult),
	}
}

type searchResponse struct {
	Photos []struct {
		Alt string `json:"alt"`
		Src struct {
			Large string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

// Search resolves one query to an image URL and alt text
func (is *ImageService) Search(ctx context.Context, query string) (*models.ImageResult, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	is.mu.Lock()
	if cached, ok := is.cache[query]; ok {
		is.mu.Unlock()
		return cached, nil
	}
	if is.apiKey == "" {
		if !is.keyWarned {
			log.Printf("Image API key is not configured; image search is disabled")
			is.keyWarned = true
		}
		is.mu.Unlock()
		return nil, fmt.Errorf("image API key is not configured")
	}
	is.mu.Unlock()

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, is.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	req.Header.Set("Authorization", is.apiKey)

	resp, err := is.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image search returned status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode image response: %w", err)
	}
	if len(decoded.Photos) == 0 {
		return nil, fmt.Errorf("no image results for query %q", query)
	}

	result := &models.ImageResult{
		Query: query,
		URL:   decoded.Photos[0].Src.Large,
		Alt:   decoded.Photos[0].Alt,
	}

	is.mu.Lock()
	is.cache[query] = result
	is.mu.Unlock()

	return result, nil
}

// HydrateAll resolves many queries concurrently and joins on all of them.
// Each individual failure degrades to a placeholder result; the batch is
// never aborted. Results come back in query order.
func (is *ImageService) HydrateAll(ctx context.Context, queries []string) []*models.ImageResult {
	results := make([]*models.ImageResult, len(queries))

	var wg sync.WaitGroup
	for i, query := range queries {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()
			result, err := is.Search(ctx, query)
			if err != nil {
				log.Printf("Image hydration fell back to placeholder: query=%q, err=%v", query, err)
				results[i] = &models.ImageResult{Query: query, Placeholder: true}
				return
			}
			results[i] = result
		}(i, query)
	}
	wg.Wait()

	return results
}
