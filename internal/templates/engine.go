// Package templates implements deterministic template rendering for generated
// pages. Rendering is a pure function of (template, variable bag); unresolved
// placeholders are a hard error, never silently left in output.
package templates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
)

// placeholderPattern matches {snake_case} placeholders.
var placeholderPattern = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// FAQTemplate is one question/answer pair with placeholders.
type FAQTemplate struct {
	Question string
	Answer   string
}

// PageTemplate holds the sub-templates for one page kind.
type PageTemplate struct {
	ID              string
	Title           string
	MetaDescription string
	Heading         string
	// Paragraphs are joined with blank lines to form the body.
	Paragraphs []string
	FAQs       []FAQTemplate
	// Keywords are placeholder-bearing target keywords.
	Keywords []string
}

// RenderedContent is the output of one render.
type RenderedContent struct {
	Title           string
	MetaDescription string
	Heading         string
	Body            string
	FAQs            []domain.FAQ
	Keywords        []string
}

// Engine renders pages from the built-in template library.
type Engine struct {
	library map[string]*PageTemplate
}

// NewEngine creates an engine with the built-in library registered.
func NewEngine() *Engine {
	e := &Engine{library: make(map[string]*PageTemplate)}
	for _, t := range builtinTemplates() {
		e.library[t.ID] = t
	}
	return e
}

// Register adds or replaces a template.
func (e *Engine) Register(t *PageTemplate) {
	e.library[t.ID] = t
}

// Render substitutes vars into the named template. Any placeholder without a
// value fails the render with a MissingVariableError.
func (e *Engine) Render(templateID string, vars map[string]string) (*RenderedContent, error) {
	t, ok := e.library[templateID]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", templateID)
	}

	out := &RenderedContent{}
	var err error

	if out.Title, err = substitute(templateID, t.Title, vars); err != nil {
		return nil, err
	}
	if out.MetaDescription, err = substitute(templateID, t.MetaDescription, vars); err != nil {
		return nil, err
	}
	if out.Heading, err = substitute(templateID, t.Heading, vars); err != nil {
		return nil, err
	}

	paragraphs := make([]string, 0, len(t.Paragraphs))
	for _, p := range t.Paragraphs {
		rendered, perr := substitute(templateID, p, vars)
		if perr != nil {
			return nil, perr
		}
		paragraphs = append(paragraphs, rendered)
	}
	out.Body = strings.Join(paragraphs, "\n\n")

	for _, f := range t.FAQs {
		q, qerr := substitute(templateID, f.Question, vars)
		if qerr != nil {
			return nil, qerr
		}
		a, aerr := substitute(templateID, f.Answer, vars)
		if aerr != nil {
			return nil, aerr
		}
		out.FAQs = append(out.FAQs, domain.FAQ{Question: q, Answer: a})
	}

	for _, k := range t.Keywords {
		kw, kerr := substitute(templateID, k, vars)
		if kerr != nil {
			return nil, kerr
		}
		out.Keywords = append(out.Keywords, strings.ToLower(kw))
	}

	return out, nil
}

// RenderSpec renders the template matching a page spec using the business
// context as the variable source, returning a complete content variant with
// structured-data blocks attached.
func (e *Engine) RenderSpec(spec domain.PageSpec, bc *domain.BusinessContext) (*domain.ContentVariant, error) {
	vars := Variables(spec, bc)
	rendered, err := e.Render(TemplateIDFor(spec.Variant), vars)
	if err != nil {
		return nil, err
	}

	cv := &domain.ContentVariant{
		Title:           rendered.Title,
		MetaDescription: rendered.MetaDescription,
		Heading:         rendered.Heading,
		Body:            rendered.Body,
		FAQs:            rendered.FAQs,
		Keywords:        rendered.Keywords,
		SchemaBlocks:    SchemaBlocks(spec, bc, rendered),
		Method:          domain.MethodTemplate,
		CreatedAt:       time.Now().UTC(),
	}
	cv.WordCount = WordCount(cv)
	return cv, nil
}

// TemplateIDFor maps a page variant to its template id.
func TemplateIDFor(v domain.Variant) string {
	switch v {
	case domain.VariantEmergency:
		return "emergency_service_location"
	case domain.VariantCommercial:
		return "commercial_service_location"
	case domain.VariantResidential:
		return "residential_service_location"
	default:
		return "service_location"
	}
}

// Variables builds the variable bag for a spec from the business context.
// Unknown service or location ids fall back to a humanized form of the id so
// degraded contexts can still render.
func Variables(spec domain.PageSpec, bc *domain.BusinessContext) map[string]string {
	serviceName := humanize(spec.ServiceID)
	if svc, ok := bc.ServiceByID(spec.ServiceID); ok && svc.Name != "" {
		serviceName = svc.Name
	}
	locationName := humanize(spec.LocationID)
	region := ""
	if loc, ok := bc.LocationByID(spec.LocationID); ok {
		if loc.City != "" {
			locationName = loc.City
		}
		region = loc.Region
	}
	if region == "" {
		region = locationName
	}

	years := bc.YearsInTrade
	if years <= 0 {
		years = 10
	}
	rating := bc.Rating
	if rating <= 0 {
		rating = 4.8
	}
	reviews := bc.ReviewCount
	if reviews <= 0 {
		reviews = 50
	}

	return map[string]string{
		"business_name": bc.Name,
		"phone":         bc.Phone,
		"service_name":  serviceName,
		"location_name": locationName,
		"region":        region,
		"years":         strconv.Itoa(years),
		"rating":        strconv.FormatFloat(rating, 'f', 1, 64),
		"review_count":  strconv.Itoa(reviews),
	}
}

// WordCount counts words across the servable text of a variant.
func WordCount(cv *domain.ContentVariant) int {
	n := len(strings.Fields(cv.Heading)) + len(strings.Fields(cv.Body))
	for _, f := range cv.FAQs {
		n += len(strings.Fields(f.Question)) + len(strings.Fields(f.Answer))
	}
	return n
}

// SchemaBlocks builds the JSON-LD blocks for a rendered page: LocalBusiness,
// Service, and FAQPage when FAQs exist.
func SchemaBlocks(spec domain.PageSpec, bc *domain.BusinessContext, rendered *RenderedContent) []domain.SchemaBlock {
	vars := Variables(spec, bc)

	blocks := []domain.SchemaBlock{
		{
			"@context":  "https://schema.org",
			"@type":     "LocalBusiness",
			"name":      bc.Name,
			"telephone": bc.Phone,
			"areaServed": map[string]any{
				"@type": "City",
				"name":  vars["location_name"],
			},
		},
		{
			"@context":    "https://schema.org",
			"@type":       "Service",
			"serviceType": vars["service_name"],
			"provider":    map[string]any{"@type": "LocalBusiness", "name": bc.Name},
			"areaServed":  vars["location_name"],
		},
	}

	if len(rendered.FAQs) > 0 {
		questions := make([]map[string]any, 0, len(rendered.FAQs))
		for _, f := range rendered.FAQs {
			questions = append(questions, map[string]any{
				"@type":          "Question",
				"name":           f.Question,
				"acceptedAnswer": map[string]any{"@type": "Answer", "text": f.Answer},
			})
		}
		blocks = append(blocks, domain.SchemaBlock{
			"@context":   "https://schema.org",
			"@type":      "FAQPage",
			"mainEntity": questions,
		})
	}

	return blocks
}

func substitute(templateID, text string, vars map[string]string) (string, error) {
	var missing string
	result := placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[1 : len(match)-1]
		val, ok := vars[name]
		if !ok || val == "" {
			if missing == "" {
				missing = name
			}
			return match
		}
		return val
	})
	if missing != "" {
		return "", &domain.MissingVariableError{TemplateID: templateID, Variable: missing}
	}
	return result, nil
}

// humanize turns a slug like "drain-cleaning" into "Drain Cleaning".
func humanize(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
