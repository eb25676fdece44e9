// Package radiooooo provides a client for the radiooooo.com catalogue API.
package radiooooo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public radiooooo.com API endpoint.
const DefaultBaseURL = "https://radiooooo.com"

// ModeExplore is the only play mode used by this client.
const ModeExplore = "explore"

// ErrNoTrack is returned by Play when the catalogue has no track for the given constraints.
var ErrNoTrack = errors.New("no track found")

// Client is a radiooooo.com API client.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	countriesTimeout time.Duration
	playTimeout      time.Duration
}

// Config represents radiooooo client configuration.
type Config struct {
	BaseURL          string
	CountriesTimeout time.Duration
	PlayTimeout      time.Duration
}

// Country is a single entry of the country directory.
type Country struct {
	Code string
	Name string
}

// PlayRequest is the body sent to the play endpoint.
type PlayRequest struct {
	Mode     string   `json:"mode"`
	IsoCodes []string `json:"isocodes"`
	Decades  []int    `json:"decades"`
	Moods    []string `json:"moods"`
}

// PlayResponse represents a track returned by the play endpoint.
type PlayResponse struct {
	Artist     string  `json:"artist"`
	Title      string  `json:"title"`
	Album      string  `json:"album"`
	Year       flexInt `json:"year"`
	Decade     flexInt `json:"decade"`
	Country    string  `json:"country"`
	Mood       string  `json:"mood"`
	Label      string  `json:"label"`
	Songwriter string  `json:"songwriter"`
	Length     flexInt `json:"length"`
	Links      struct {
		MPEG string `json:"mpeg"`
		OGG  string `json:"ogg"`
	} `json:"links"`
}

// APIError represents an error body returned by the API.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return "radiooooo API error " + strconv.Itoa(e.StatusCode) + ": " + e.Message
}

// New creates a new radiooooo client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errors.Wrapf(err, "invalid base URL %q", cfg.BaseURL)
	}

	countriesTimeout := cfg.CountriesTimeout
	if countriesTimeout <= 0 {
		countriesTimeout = 10 * time.Second
	}
	playTimeout := cfg.PlayTimeout
	if playTimeout <= 0 {
		playTimeout = 15 * time.Second
	}

	return &Client{
		baseURL:          baseURL,
		httpClient:       &http.Client{},
		countriesTimeout: countriesTimeout,
		playTimeout:      playTimeout,
	}, nil
}

// BaseURL returns the API base URL used by the client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetCountries retrieves the English country directory as (code, name) pairs.
func (c *Client) GetCountries(ctx context.Context) ([]Country, error) {
	ctx, cancel := context.WithTimeout(ctx, c.countriesTimeout)
	defer cancel()

	var raw [][]string
	if err := c.getJSON(ctx, "/language/countries/en.json", &raw); err != nil {
		return nil, errors.Wrap(err, "failed to fetch countries")
	}

	countries := make([]Country, 0, len(raw))
	for _, item := range raw {
		if len(item) < 2 {
			zlog.Debug().Msgf("skipping malformed country entry: %v", item)
			continue
		}
		countries = append(countries, Country{Code: item[0], Name: item[1]})
	}

	zlog.Debug().Msgf("fetched country directory: count=%d", len(countries))
	return countries, nil
}

// GetCountriesByMood retrieves the country codes having tracks in the given decade, keyed by mood.
func (c *Client) GetCountriesByMood(ctx context.Context, decade int) (map[string][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.countriesTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("decade", strconv.Itoa(decade))

	var result map[string][]string
	if err := c.getJSON(ctx, "/country/mood?"+params.Encode(), &result); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch countries for decade %d", decade)
	}
	return result, nil
}

// Play asks the catalogue for one track matching the request.
// Returns ErrNoTrack when the catalogue has nothing for the constraints.
func (c *Client) Play(ctx context.Context, req PlayRequest) (*PlayResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.playTimeout)
	defer cancel()

	if req.Mode == "" {
		req.Mode = ModeExplore
	}
	if req.IsoCodes == nil {
		req.IsoCodes = []string{}
	}
	if req.Decades == nil {
		req.Decades = []int{}
	}
	if req.Moods == nil {
		req.Moods = []string{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request body")
	}

	zlog.Debug().Msgf("POST /play: body=%s", string(body))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/play", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	respBody, status, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	if status == http.StatusBadRequest {
		apiErr := parseAPIError(status, respBody)
		if strings.Contains(apiErr.Message, "No track") {
			return nil, ErrNoTrack
		}
		return nil, apiErr
	}
	if status >= 400 {
		return nil, parseAPIError(status, respBody)
	}

	var response PlayResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, errors.Wrap(err, "failed to parse response")
	}
	return &response, nil
}

func (c *Client) getJSON(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	zlog.Debug().Msgf("GET %s", path)

	body, status, err := c.do(req)
	if err != nil {
		return err
	}
	if status >= 400 {
		return parseAPIError(status, body)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return errors.Wrap(err, "failed to parse response")
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to read response body")
	}

	zlog.Debug().Msgf("response: status=%d bytes=%d", resp.StatusCode, len(body))
	return body, resp.StatusCode, nil
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
	}
	return apiErr
}

// flexInt decodes integers that the API sends either as numbers, numeric strings or null.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Non-numeric values (e.g. "?") are treated as unknown.
		*f = 0
		return nil
	}
	*f = flexInt(int(n))
	return nil
}
