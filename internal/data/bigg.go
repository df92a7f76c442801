package data

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"pathway-screen/internal/model"
)

// BiGGClient fetches published genome-scale models from the BiGG Models
// database.
type BiGGClient struct {
	BaseURL string
	Client  *http.Client
}

// NewBiGGClient creates a BiGG Models API client.
// If baseURL is empty, defaults to "http://bigg.ucsd.edu".
func NewBiGGClient(baseURL string) *BiGGClient {
	if baseURL == "" {
		baseURL = "http://bigg.ucsd.edu"
	}
	return &BiGGClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// BiGGError represents an error response from the BiGG API.
type BiGGError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *BiGGError) Error() string {
	return e.Message
}

// ModelSummary is one entry from the BiGG model listing.
type ModelSummary struct {
	BiGGID          string `json:"bigg_id"`
	Organism        string `json:"organism"`
	MetaboliteCount int    `json:"metabolite_count"`
	ReactionCount   int    `json:"reaction_count"`
	GeneCount       int    `json:"gene_count"`
}

type modelListResponse struct {
	Results      []ModelSummary `json:"results"`
	ResultsCount int            `json:"results_count"`
}

// ListModels fetches the model catalogue.
func (c *BiGGClient) ListModels() ([]ModelSummary, error) {
	u, err := url.Parse(c.BaseURL + "/api/v2/models")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	log.Printf("[BiGG] Request: GET %s", u.Path)
	raw, err := c.get(u.String())
	if err != nil {
		return nil, err
	}

	var resp modelListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode model list: %w", err)
	}
	return resp.Results, nil
}

// DownloadModel fetches a model by its BiGG ID (e.g. "e_coli_core") and
// parses it.
//
// If caching is enabled (ENABLE_BIGG_CACHE=true), the raw download may be
// served from the in-memory cache to spare the public API.
func (c *BiGGClient) DownloadModel(biggID string) (*model.Model, error) {
	if biggID == "" {
		return nil, fmt.Errorf("bigg_id is required")
	}

	cache := GetCache()
	if cache != nil {
		if cached, found := cache.Get(biggID); found {
			log.Printf("[BiGG] Cache hit: %s (%d bytes)", biggID, len(cached))
			return ParseModelJSON(cached)
		}
	}

	u := fmt.Sprintf("%s/static/models/%s.json", c.BaseURL, url.PathEscape(biggID))
	log.Printf("[BiGG] Request: GET /static/models/%s.json", biggID)

	start := time.Now()
	raw, err := c.get(u)
	if err != nil {
		return nil, err
	}
	log.Printf("[BiGG] Downloaded %s: %d bytes in %s", biggID, len(raw), time.Since(start).Round(time.Millisecond))

	cache.Set(biggID, raw)
	return ParseModelJSON(raw)
}

func (c *BiGGClient) get(u string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		code := "BIGG_ERROR"
		if resp.StatusCode == http.StatusNotFound {
			code = "MODEL_NOT_FOUND"
		}
		return nil, &BiGGError{
			StatusCode: resp.StatusCode,
			Code:       code,
			Message:    fmt.Sprintf("BiGG API returned status %d", resp.StatusCode),
		}
	}
	return body, nil
}
