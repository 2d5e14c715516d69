// Package synth turns a validated presentation spec into a binary PPTX
// document: it selects a layout per slide, instantiates slides from the
// template catalog, and dispatches each placeholder to its filler.
package synth

import (
	"bytes"
	"context"
	"errors"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"deckgen/images"
	"deckgen/schema"
	"deckgen/template"
)

// Logs is the logging surface the synthesizer needs.
type Logs interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Synthesizer builds decks from one template catalog. It holds no per-deck
// state; each Generate call operates on its own document, so concurrent
// calls are independent.
type Synthesizer struct {
	tmpl     *template.Template
	resolver *images.Resolver
	log      Logs
}

// Result is a completed synthesis: the document bytes and the sanitized
// filename derived from the deck title.
type Result struct {
	Data     []byte
	Filename string
}

// New creates a Synthesizer with explicit collaborators.
func New(tmpl *template.Template, resolver *images.Resolver, log Logs) *Synthesizer {
	return &Synthesizer{tmpl: tmpl, resolver: resolver, log: log}
}

// Generate runs the full pipeline: validate, write the title slide, then
// one slide per spec entry, then export. It either produces a complete
// document or fails with a classified GenerationError; there is no partial
// output.
func (s *Synthesizer) Generate(ctx context.Context, spec *schema.PresentationSpec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		var verrs schema.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, validationError(err, map[string]interface{}{"fields": verrs.Fields()})
		}
		return nil, validationError(err, nil)
	}

	doc := ppt.New()
	props := doc.GetDocumentProperties()
	props.Title = spec.Title
	if spec.Author != "" {
		props.Creator = spec.Author
	}
	if spec.Subject != "" {
		props.Subject = spec.Subject
	}

	if err := s.writeTitleSlide(doc, spec); err != nil {
		return nil, err
	}

	for i := range spec.Slides {
		slideSpec := &spec.Slides[i]
		layoutName := SelectLayout(slideSpec)
		layout, err := s.tmpl.Layout(layoutName)
		if err != nil {
			return nil, asLayoutError(err)
		}
		slide := doc.CreateSlide()
		s.log.Infof("slide %d %q uses layout %s", i+1, slideSpec.Title, layoutName)
		s.fillSlide(ctx, slide, layout, slideSpec)
	}

	data, err := export(doc)
	if err != nil {
		return nil, internalError("failed to export presentation", err)
	}

	return &Result{Data: data, Filename: SanitizeFilename(spec.Title) + ".pptx"}, nil
}

// writeTitleSlide fills the document's initial slide from the title_slide
// layout: its first two body placeholders receive the deck title and, if
// present, the subtitle.
func (s *Synthesizer) writeTitleSlide(doc *ppt.Presentation, spec *schema.PresentationSpec) error {
	layout, err := s.tmpl.Layout(schema.LayoutTitleSlide)
	if err != nil {
		return asLayoutError(err)
	}

	slide := doc.GetActiveSlide()
	texts := []string{spec.Title, spec.Subtitle}
	bodyIdx := 0
	for _, ph := range layout.Placeholders {
		if ph.Role != template.RoleBody || bodyIdx >= len(texts) {
			continue
		}
		if texts[bodyIdx] != "" {
			fillTitle(slide, ph, texts[bodyIdx])
		}
		bodyIdx++
	}
	return nil
}

// fillKind names what a placeholder will receive, for the ordered fill plan.
type fillKind int

const (
	fillNothing fillKind = iota
	fillKindTitle
	fillKindPicture
	fillKindTable
	fillKindChart
	fillKindBody
)

type fillAssignment struct {
	placeholder int
	kind        fillKind
}

// planFills computes the ordered placeholder assignments for one slide.
// Dispatch is by declared role; at most one placeholder per role ever
// receives content, and only the first body-role placeholder gets the
// slide's text and bullets.
func planFills(layout *template.Layout, spec *schema.SlideSpec) []fillAssignment {
	var plan []fillAssignment
	seen := map[fillKind]bool{}

	add := func(i int, kind fillKind) {
		if seen[kind] {
			return
		}
		seen[kind] = true
		plan = append(plan, fillAssignment{placeholder: i, kind: kind})
	}

	hasBody := (spec.Content != nil && (spec.Content.Text != "" || spec.Content.IsRich())) ||
		len(spec.BulletPoints) > 0

	for i, ph := range layout.Placeholders {
		switch ph.Role {
		case template.RoleTitle:
			add(i, fillKindTitle)
		case template.RolePicture:
			if spec.Image != nil {
				add(i, fillKindPicture)
			}
		case template.RoleTable:
			if spec.Table != nil {
				add(i, fillKindTable)
			}
		case template.RoleChart:
			if spec.Chart != nil {
				add(i, fillKindChart)
			}
		case template.RoleBody:
			if hasBody {
				add(i, fillKindBody)
			}
		}
	}
	return plan
}

func (s *Synthesizer) fillSlide(ctx context.Context, slide *ppt.Slide, layout *template.Layout, spec *schema.SlideSpec) {
	for _, a := range planFills(layout, spec) {
		ph := layout.Placeholders[a.placeholder]
		switch a.kind {
		case fillKindTitle:
			fillTitle(slide, ph, spec.Title)
		case fillKindPicture:
			s.fillPicture(ctx, slide, ph, spec.Image)
		case fillKindTable:
			fillTable(slide, ph, spec.Table)
		case fillKindChart:
			s.fillChart(slide, ph, spec.Chart)
		case fillKindBody:
			fillBody(slide, ph, spec.Content, spec.BulletPoints)
		}
	}
}

func export(doc *ppt.Presentation) ([]byte, error) {
	w, err := ppt.NewWriter(doc, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func asLayoutError(err error) error {
	var missing *template.MissingLayoutError
	if errors.As(err, &missing) {
		return configError("layout '"+missing.Name+"' not found", err,
			map[string]interface{}{"available": missing.Available})
	}
	return configError("template lookup failed", err, nil)
}

// SanitizeFilename strips everything but alphanumerics, spaces, '-', '_'
// and '.' from a deck title so it is safe as an output filename.
func SanitizeFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		}
	}
	name := strings.TrimSpace(b.String())
	if name == "" {
		name = "presentation"
	}
	return name
}
