package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// WebHandler serves web_browse: browser searches, encyclopedia summaries and
// current weather.
type WebHandler struct {
	Config domain.Config
	Opener ports.Opener
	// Lookup answers knowledge_lookup and weather. Nil disables both.
	Lookup ports.InfoLookup
	Logger ports.Logger
}

// Handle implements ports.Handler.
func (h *WebHandler) Handle(ctx context.Context, rec domain.IntentRecord) (ports.HandlerResult, error) {
	switch rec.Action() {
	case domain.ActionWebSearch:
		return h.search(ctx, rec.String(domain.ParamSearchQuery))
	case domain.ActionKnowledge:
		return ports.HandlerResult{Result: h.knowledge(ctx, rec.String(domain.ParamTopic))}, nil
	case domain.ActionWeather:
		return ports.HandlerResult{Result: h.weather(ctx, rec.String(domain.ParamCity))}, nil
	default:
		return ports.HandlerResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownAction, rec.Action())
	}
}

func (h *WebHandler) search(ctx context.Context, query string) (ports.HandlerResult, error) {
	query = strings.TrimSpace(query)
	target := h.Config.GetHomeURL()
	text := "🌐 Opening the browser"
	if query != "" {
		target = SearchURL(h.Config.GetSearchURL(), query)
		text = "🌐 Searching the web for: " + query
	}

	if err := h.Opener.Open(ctx, target); err != nil {
		return ports.HandlerResult{}, err
	}
	return ports.HandlerResult{Result: domain.Succeeded(text, domain.SideEffect{Kind: domain.EffectURLOpened, Target: target})}, nil
}

func (h *WebHandler) knowledge(ctx context.Context, topic string) domain.ExecutionResult {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.Failed("Please tell me what you'd like to know about.")
	}
	if h.Lookup == nil {
		return domain.Failed("Knowledge lookups are not available right now.")
	}

	summary, err := h.Lookup.Summary(ctx, topic)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.Failed(fmt.Sprintf("Sorry, I couldn't find a Wikipedia page for '%s'.", topic))
	case err != nil:
		h.warn("knowledge lookup failed", err, topic)
		return domain.Failed("Sorry, I had trouble connecting to Wikipedia.")
	case summary.Ambiguous:
		return domain.Failed(fmt.Sprintf("'%s' could mean several things. Please be more specific.", topic))
	}

	text := "📚 " + summary.Extract
	if summary.URL != "" {
		text += "\n" + summary.URL
	}
	return domain.Succeeded(text)
}

func (h *WebHandler) weather(ctx context.Context, city string) domain.ExecutionResult {
	city = strings.TrimSpace(city)
	if city == "" {
		return domain.Failed("Please specify a city.")
	}
	if h.Lookup == nil {
		return domain.Failed("Weather reports are not available right now.")
	}

	report, err := h.Lookup.Weather(ctx, city)
	switch {
	case errors.Is(err, domain.ErrBackendUnavailable):
		return domain.Failed(fmt.Sprintf("The weather service is not configured. Set %s to enable it.", h.Config.GetWeatherKeyEnv()))
	case errors.Is(err, domain.ErrNotFound):
		return domain.Failed(fmt.Sprintf("Sorry, I couldn't find the city '%s'.", city))
	case err != nil:
		h.warn("weather lookup failed", err, city)
		return domain.Failed("Sorry, I was unable to fetch the weather data.")
	}

	unit := report.UnitSymbol()
	return domain.Succeeded(fmt.Sprintf("🌦️ The weather in %s is currently %s with a temperature of %s%s, which feels like %s%s. The humidity is at %d%%.",
		report.City, report.Description, formatDegrees(report.Temperature), unit, formatDegrees(report.FeelsLike), unit, report.Humidity))
}

func (h *WebHandler) warn(msg string, err error, subject string) {
	if h.Logger != nil {
		h.Logger.Warn(msg, map[string]interface{}{"subject": subject, "error": err.Error()})
	}
}

func formatDegrees(v float64) string {
	return fmt.Sprintf("%.0f", math.Round(v))
}

// SearchURL appends the escaped query to prefix.
func SearchURL(prefix string, query string) string {
	return prefix + url.QueryEscape(query)
}

var _ ports.Handler = (*WebHandler)(nil)
