// Package itinerary generates day-by-day travel plans with the
// Anthropic Messages API and parses them into structured locations.
package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/platform/obs"
)

const maxTokens = 8192

// degradedText is returned when the model's reply cannot be parsed.
// It is user-facing; the presentation layer renders it verbatim.
const degradedText = "Error: the itinerary generator returned an unreadable plan. Please try again."

// AnthropicGenerator implements ItineraryGenerator over the Anthropic
// Messages API.
type AnthropicGenerator struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicGenerator creates a generator. Extra request options are
// passed through to the SDK (tests use option.WithBaseURL).
func NewAnthropicGenerator(apiKey string, model anthropic.Model, opts ...option.RequestOption) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic api key is empty")
	}
	if model == "" {
		model = anthropic.ModelClaudeSonnet4_20250514
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &AnthropicGenerator{
		client: anthropic.NewClient(opts...),
		model:  model,
	}, nil
}

type itineraryPayload struct {
	ItineraryText string `json:"itinerary_text"`
	Locations     []struct {
		Day         int    `json:"day"`
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"locations"`
}

// Generate asks the model for a structured plan. Transport failures
// return an error; an unparsable reply degrades to an error-text
// itinerary with no locations and a nil error.
func (g *AnthropicGenerator) Generate(
	ctx context.Context,
	destination string,
	hotel domain.Hotel,
	days int,
) (_ domain.Itinerary, err error) {
	defer obs.Time(ctx, "itinerary.Generate")(&err)

	prompt := fmt.Sprintf(`You are an expert travel planner. Generate a travel plan for the following request.

Destination: %s
Duration: %d days
Hotel: %s

---
RULES FOR YOUR RESPONSE:
1. Your ENTIRE response must be a single, valid JSON object.
2. Do NOT include any text before or after the JSON object.
3. The JSON must have two keys: "itinerary_text" and "locations".
4. "itinerary_text": a string of the full itinerary in Markdown.
5. "locations": a list of objects with keys "day" (integer), "name" and
   "description". Each "name" MUST be a geocodable place name
   (e.g., "Gateway of India, Mumbai, India").`,
		destination, days, hotel.Name)

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("itinerary request failed: %w", err)
	}

	raw := extractText(resp)
	if strings.TrimSpace(raw) == "" {
		log.Printf("itinerary response had no text content destination=%q", destination)
		return domain.Itinerary{Text: degradedText}, nil
	}

	return parseItinerary(raw), nil
}

func extractText(resp *anthropic.Message) string {
	var b strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(variant.Text)
		}
	}
	return b.String()
}

// parseItinerary decodes the model's JSON, falling back to a cleanup
// pass that strips markdown fences and surrounding prose.
func parseItinerary(raw string) domain.Itinerary {
	var payload itineraryPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		cleaned := cleanJSON(raw)
		if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
			log.Printf("itinerary response was not valid json: %v", err)
			return domain.Itinerary{Text: degradedText}
		}
	}

	if strings.TrimSpace(payload.ItineraryText) == "" {
		return domain.Itinerary{Text: degradedText}
	}

	out := domain.Itinerary{Text: payload.ItineraryText}
	for _, loc := range payload.Locations {
		name := strings.TrimSpace(loc.Name)
		if name == "" {
			continue
		}
		out.Locations = append(out.Locations, domain.ItineraryLocation{
			Day:         loc.Day,
			Name:        name,
			Description: loc.Description,
		})
	}

	return out
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// cleanJSON extracts the outermost JSON object from a reply that may be
// wrapped in markdown fences or prose.
func cleanJSON(text string) string {
	if m := jsonObjectPattern.FindString(text); m != "" {
		return m
	}

	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimSuffix(text, "```")
	return text
}
