// Package lookup answers knowledge and weather questions over HTTP.
package lookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
	"github.com/doeshing/jarvis-go/internal/version"
)

const (
	maxResponseBytes = 1 << 20
	summarySentences = 2
)

// Client implements ports.InfoLookup against the Wikipedia REST API and
// OpenWeatherMap.
type Client struct {
	http         *http.Client
	knowledgeURL string
	weatherURL   string
	weatherKey   string
	units        string
}

// NewClient builds a lookup client from the web settings. The weather key is
// read from the configured environment variable once.
func NewClient(httpClient *http.Client, cfg domain.Config) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: domain.DefaultHTTPClientTimeout}
	}
	return &Client{
		http:         httpClient,
		knowledgeURL: cfg.GetKnowledgeURL(),
		weatherURL:   cfg.GetWeatherURL(),
		weatherKey:   strings.TrimSpace(os.Getenv(cfg.GetWeatherKeyEnv())),
		units:        cfg.GetWeatherUnits(),
	}
}

// Summary returns the first sentences of the encyclopedia page for topic.
func (c *Client) Summary(ctx context.Context, topic string) (domain.Summary, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.Summary{}, fmt.Errorf("%w: no topic given", domain.ErrInvalidInput)
	}
	title := strings.ReplaceAll(topic, " ", "_")
	body, err := c.get(ctx, c.knowledgeURL+url.PathEscape(title))
	if err != nil {
		return domain.Summary{}, fmt.Errorf("summary %q: %w", topic, err)
	}

	doc := gjson.ParseBytes(body)
	summary := domain.Summary{
		Title:     doc.Get("title").String(),
		Extract:   firstSentences(doc.Get("extract").String(), summarySentences),
		URL:       doc.Get("content_urls.desktop.page").String(),
		Ambiguous: doc.Get("type").String() == "disambiguation",
	}
	if summary.Extract == "" && !summary.Ambiguous {
		return domain.Summary{}, fmt.Errorf("summary %q: %w", topic, domain.ErrNotFound)
	}
	return summary, nil
}

// Weather returns current conditions for city.
func (c *Client) Weather(ctx context.Context, city string) (domain.WeatherReport, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return domain.WeatherReport{}, fmt.Errorf("%w: no city given", domain.ErrInvalidInput)
	}
	if c.weatherKey == "" {
		return domain.WeatherReport{}, fmt.Errorf("%w: weather API key is not configured", domain.ErrBackendUnavailable)
	}

	query := url.Values{"q": {city}, "appid": {c.weatherKey}, "units": {c.units}}
	body, err := c.get(ctx, c.weatherURL+"?"+query.Encode())
	if err != nil {
		return domain.WeatherReport{}, fmt.Errorf("weather %q: %w", city, err)
	}

	doc := gjson.ParseBytes(body)
	report := domain.WeatherReport{
		City:        city,
		Description: doc.Get("weather.0.description").String(),
		Temperature: doc.Get("main.temp").Float(),
		FeelsLike:   doc.Get("main.feels_like").Float(),
		Humidity:    int(doc.Get("main.humidity").Int()),
		Units:       c.units,
	}
	if name := doc.Get("name").String(); name != "" {
		report.City = name
	}
	if !doc.Get("main.temp").Exists() {
		return domain.WeatherReport{}, fmt.Errorf("weather %q: response has no temperature", city)
	}
	return report, nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "jarvis-go/"+version.Version)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s", domain.ErrBackendUnavailable, resp.Status)
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("response is not JSON")
	}
	return body, nil
}

// firstSentences keeps at most n sentences of text.
func firstSentences(text string, n int) string {
	text = strings.TrimSpace(text)
	end := 0
	for i := 0; i < n; i++ {
		idx := strings.Index(text[end:], ". ")
		if idx < 0 {
			return text
		}
		end += idx + 1
	}
	return text[:end]
}

var _ ports.InfoLookup = (*Client)(nil)
