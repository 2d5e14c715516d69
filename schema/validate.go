package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	titleMinLen = 1
	titleMaxLen = 200

	bulletLevelMax = 5
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// FieldError reports one violated constraint at a field path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every violation found in one pass, so a caller
// can display all problems at once instead of fixing them one by one.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the per-field reasons as a details mapping.
func (v ValidationErrors) Fields() map[string]string {
	m := make(map[string]string, len(v))
	for _, e := range v {
		m[e.Field] = e.Message
	}
	return m
}

type validator struct {
	errs ValidationErrors
}

func (v *validator) addf(field, format string, args ...interface{}) {
	v.errs = append(v.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Parse decodes raw JSON into a PresentationSpec and validates it.
// The returned error is a ValidationErrors when constraints are violated.
func Parse(raw []byte) (*PresentationSpec, error) {
	var spec PresentationSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, ValidationErrors{{Field: "$", Message: fmt.Sprintf("malformed JSON: %v", err)}}
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks every constraint of the content graph and returns all
// violations as one ValidationErrors. It does not mutate the spec;
// structural coercion already happened during decoding.
func (p *PresentationSpec) Validate() error {
	v := &validator{}

	checkTitle(v, "title", p.Title)
	if len(p.Slides) == 0 {
		v.addf("slides", "at least one slide is required")
	}
	for i := range p.Slides {
		validateSlide(v, fmt.Sprintf("slides[%d]", i), &p.Slides[i])
	}

	if len(v.errs) > 0 {
		return v.errs
	}
	return nil
}

func checkTitle(v *validator, field, title string) {
	n := utf8.RuneCountInString(title)
	if n < titleMinLen {
		v.addf(field, "is required")
	} else if n > titleMaxLen {
		v.addf(field, "must not exceed %d characters", titleMaxLen)
	}
}

func validateSlide(v *validator, path string, s *SlideSpec) {
	checkTitle(v, path+".title", s.Title)

	if !s.HasContent() {
		v.addf(path, "slide %q must have at least one content element", s.Title)
	}

	if s.Content != nil {
		for i, run := range s.Content.Runs {
			validateRun(v, fmt.Sprintf("%s.content[%d]", path, i), &run)
		}
	}
	for i, b := range s.BulletPoints {
		bp := fmt.Sprintf("%s.bullet_points[%d]", path, i)
		if b.Text == "" {
			v.addf(bp+".text", "is required")
		}
		if b.Level < 0 || b.Level > bulletLevelMax {
			v.addf(bp+".level", "must be between 0 and %d", bulletLevelMax)
		}
		validateFormatting(v, bp+".formatting", b.Formatting)
	}
	if s.Table != nil {
		validateTable(v, path+".table", s.Table)
	}
	if s.Chart != nil {
		validateChart(v, path+".chart", s.Chart)
	}
	if s.Image != nil {
		validateImage(v, path+".image", s.Image)
	}
}

func validateRun(v *validator, path string, r *TextRun) {
	if r.Text == "" {
		v.addf(path+".text", "is required")
	}
	validateFormatting(v, path+".formatting", r.Formatting)
}

func validateFormatting(v *validator, path string, f *TextFormatting) {
	if f == nil {
		return
	}
	if f.Color != "" && !hexColorPattern.MatchString(f.Color) {
		v.addf(path+".color", "must match #RRGGBB, got %q", f.Color)
	}
	if f.Size < 0 {
		v.addf(path+".size", "must be positive")
	}
}

func validateTable(v *validator, path string, t *TableSpec) {
	if len(t.Headers) == 0 {
		v.addf(path+".headers", "at least one header is required")
	}
	if len(t.Rows) == 0 {
		v.addf(path+".rows", "at least one row is required")
	}
}

func validateChart(v *validator, path string, c *ChartSpec) {
	switch c.Type {
	case "", "column", "line", "pie":
	default:
		v.addf(path+".type", "must be one of column, line, pie; got %q", c.Type)
	}
	if len(c.Categories) == 0 {
		v.addf(path+".categories", "at least one category is required")
	}
	if len(c.Series) == 0 {
		v.addf(path+".series", "at least one series is required")
	}
	for i, s := range c.Series {
		if s.Name == "" {
			v.addf(fmt.Sprintf("%s.series[%d].name", path, i), "is required")
		}
	}
}

func validateImage(v *validator, path string, img *ImageSpec) {
	if img.Path == "" {
		v.addf(path+".path", "is required")
	}
	switch img.Position {
	case "", "left", "right", "full":
	default:
		v.addf(path+".position", "must be one of left, right, full; got %q", img.Position)
	}
}
