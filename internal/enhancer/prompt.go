package enhancer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
	"github.com/get-hunter/hero365-app-sub011/internal/templates"
)

// buildPrompt assembles the single-turn generation prompt for one page spec.
// The prompt pins the output to a JSON object so the response can be parsed
// without heuristics.
func buildPrompt(spec domain.PageSpec, bc *domain.BusinessContext, sig domain.MarketSignals, minWords int) string {
	vars := templates.Variables(spec, bc)

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are writing an SEO landing page for a local service business.\n\n")
	fmt.Fprintf(&sb, "Business: %s\n", bc.Name)
	fmt.Fprintf(&sb, "Phone: %s\n", bc.Phone)
	fmt.Fprintf(&sb, "Service: %s\n", vars["service_name"])
	fmt.Fprintf(&sb, "Location: %s (%s)\n", vars["location_name"], vars["region"])
	fmt.Fprintf(&sb, "Page type: %s\n", spec.Variant)
	fmt.Fprintf(&sb, "Estimated monthly searches: %d, competition: %s\n", sig.MonthlySearchVolume, sig.Competition)

	if len(bc.Testimonials) > 0 {
		sb.WriteString("Customer quotes to draw on:\n")
		for i, t := range bc.Testimonials {
			if i == 3 {
				break
			}
			fmt.Fprintf(&sb, "- %q — %s\n", t.Quote, t.Author)
		}
	}
	if len(bc.Technicians) > 0 {
		fmt.Fprintf(&sb, "Team size: %d technicians\n", len(bc.Technicians))
	}
	if bc.Rating > 0 {
		fmt.Fprintf(&sb, "Rating: %.1f stars across %d reviews\n", bc.Rating, bc.ReviewCount)
	}

	fmt.Fprintf(&sb, "\nWrite at least %d words of body copy. ", minWords)
	sb.WriteString("Natural keyword usage only; never stuff keywords. Mention the location naturally throughout.\n\n")
	sb.WriteString("Respond with a single JSON object and nothing else, using exactly these keys:\n")
	sb.WriteString(`{"title": "...", "meta_description": "...", "heading": "...", "body": "...", ` +
		`"faqs": [{"question": "...", "answer": "..."}], "keywords": ["..."]}`)
	return sb.String()
}

// completionPayload is the JSON shape the provider is instructed to return.
type completionPayload struct {
	Title           string       `json:"title"`
	MetaDescription string       `json:"meta_description"`
	Heading         string       `json:"heading"`
	Body            string       `json:"body"`
	FAQs            []domain.FAQ `json:"faqs"`
	Keywords        []string     `json:"keywords"`
}

// parseCompletion extracts the content variant from a provider response,
// tolerating markdown code fences around the JSON object.
func parseCompletion(raw string, spec domain.PageSpec, bc *domain.BusinessContext) (*domain.ContentVariant, error) {
	trimmed := strings.TrimSpace(raw)
	if i := strings.Index(trimmed, "{"); i > 0 {
		trimmed = trimmed[i:]
	}
	if i := strings.LastIndex(trimmed, "}"); i >= 0 {
		trimmed = trimmed[:i+1]
	}

	var payload completionPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, &domain.ProviderError{Op: "parse", Err: err}
	}
	if payload.Title == "" || payload.Body == "" {
		return nil, &domain.ProviderError{Op: "parse", Err: fmt.Errorf("incomplete payload")}
	}

	cv := &domain.ContentVariant{
		Title:           payload.Title,
		MetaDescription: payload.MetaDescription,
		Heading:         payload.Heading,
		Body:            payload.Body,
		FAQs:            payload.FAQs,
		Keywords:        payload.Keywords,
		Method:          domain.MethodLLM,
		CreatedAt:       time.Now().UTC(),
	}
	cv.SchemaBlocks = templates.SchemaBlocks(spec, bc, &templates.RenderedContent{FAQs: cv.FAQs})
	cv.WordCount = templates.WordCount(cv)
	return cv, nil
}
