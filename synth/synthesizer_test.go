package synth

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"deckgen/images"
	"deckgen/schema"
	"deckgen/template"
)

type testLogs struct{ t *testing.T }

func (l testLogs) Infof(format string, args ...interface{}) { l.t.Logf("INFO "+format, args...) }
func (l testLogs) Warnf(format string, args ...interface{}) { l.t.Logf("WARN "+format, args...) }

func newTestSynthesizer(t *testing.T) *Synthesizer {
	t.Helper()
	tmpl, err := template.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	resolver := images.NewResolver(images.Config{}, testLogs{t})
	return New(tmpl, resolver, testLogs{t})
}

// deckXML opens the generated document and returns the concatenated slide
// XML plus the slide part count.
func deckXML(t *testing.T, data []byte) (string, int) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}
	var sb strings.Builder
	count := 0
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "ppt/slides/slide") || !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		count++
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		sb.Write(raw)
	}
	return sb.String(), count
}

func TestGenerate_MinimalDeck(t *testing.T) {
	s := newTestSynthesizer(t)
	spec := &schema.PresentationSpec{
		Title:    "Launch Plan",
		Subtitle: "Internal Draft",
		Slides: []schema.SlideSpec{
			{Title: "Overview", Content: &schema.Content{Text: "hello from the deck"}},
			{Title: "Next Steps", BulletPoints: []schema.BulletItem{
				{Text: "ship it"},
				{Text: "measure", Level: 1},
			}},
		},
	}

	result, err := s.Generate(context.Background(), spec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Filename != "Launch Plan.pptx" {
		t.Errorf("Filename = %q", result.Filename)
	}

	xml, slides := deckXML(t, result.Data)
	// Title slide plus one per content slide.
	if slides != 3 {
		t.Errorf("document has %d slides, want 3", slides)
	}
	for _, want := range []string{"Launch Plan", "Internal Draft", "Overview", "hello from the deck", "ship it", "measure"} {
		if !strings.Contains(xml, want) {
			t.Errorf("slide XML does not contain %q", want)
		}
	}
}

// archiveText returns the concatenated content of every part in the
// generated document, for assertions on data the writer places outside the
// slide XML itself (e.g. hyperlink relationship targets).
func archiveText(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}
	var sb strings.Builder
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		sb.Write(raw)
	}
	return sb.String()
}

func TestGenerate_HyperlinkedRun(t *testing.T) {
	s := newTestSynthesizer(t)
	spec := &schema.PresentationSpec{
		Title: "Links",
		Slides: []schema.SlideSpec{{
			Title: "References",
			Content: &schema.Content{Runs: []schema.TextRun{
				{Text: "See the "},
				{Text: "handbook", Hyperlink: "https://example.com/handbook"},
			}},
		}},
	}

	result, err := s.Generate(context.Background(), spec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	xml, _ := deckXML(t, result.Data)
	for _, want := range []string{"See the ", "handbook"} {
		if !strings.Contains(xml, want) {
			t.Errorf("slide XML does not contain %q", want)
		}
	}
	if !strings.Contains(archiveText(t, result.Data), "https://example.com/handbook") {
		t.Error("hyperlink target missing from the document")
	}
}

func TestGenerate_RejectsInvalidSpec(t *testing.T) {
	s := newTestSynthesizer(t)
	spec := &schema.PresentationSpec{Title: "Deck", Slides: []schema.SlideSpec{{Title: "Empty"}}}

	_, err := s.Generate(context.Background(), spec)
	if err == nil {
		t.Fatal("Generate should reject a content-free slide")
	}
	var gerr *GenerationError
	if !errors.As(err, &gerr) {
		t.Fatalf("error is %T, want *GenerationError", err)
	}
	if gerr.Kind != KindValidation {
		t.Errorf("Kind = %v, want KindValidation", gerr.Kind)
	}
	if gerr.Details["fields"] == nil {
		t.Errorf("validation error carries no field details: %+v", gerr.Details)
	}
}

func TestGenerate_TableSlide(t *testing.T) {
	s := newTestSynthesizer(t)
	spec := &schema.PresentationSpec{
		Title: "Numbers",
		Slides: []schema.SlideSpec{{
			Title: "Revenue",
			Table: &schema.TableSpec{
				Headers: []string{"Quarter", "Revenue"},
				Rows:    [][]interface{}{{"Q1", 120.5}, {"Q2", "n/a"}},
				Style:   "header_colored",
			},
		}},
	}

	result, err := s.Generate(context.Background(), spec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	xml, _ := deckXML(t, result.Data)
	for _, want := range []string{"Quarter", "Revenue", "Q1", "120.5", "n/a"} {
		if !strings.Contains(xml, want) {
			t.Errorf("table cell %q missing from slide XML", want)
		}
	}
}

func TestGenerate_ImageStandinWhenUnresolvable(t *testing.T) {
	s := newTestSynthesizer(t)
	spec := &schema.PresentationSpec{
		Title: "Pics",
		Slides: []schema.SlideSpec{{
			Title: "Team",
			Image: &schema.ImageSpec{Path: "no/such/file.png"},
		}},
	}

	result, err := s.Generate(context.Background(), spec)
	if err != nil {
		t.Fatalf("an unresolvable image must not fail the deck: %v", err)
	}
	xml, _ := deckXML(t, result.Data)
	if !strings.Contains(xml, "[IMAGE: no/such/file.png]") {
		t.Error("textual stand-in missing from slide XML")
	}
}

func TestGenerate_MissingLayoutIsConfigError(t *testing.T) {
	tmpl, err := template.Load([]byte(`{"title_slide":{"display_name":"Title","placeholders":[{"role":"body","box":{"x":1,"y":2,"w":8,"h":1.5}}]}}`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s := New(tmpl, images.NewResolver(images.Config{}, testLogs{t}), testLogs{t})
	spec := &schema.PresentationSpec{
		Title:  "Deck",
		Slides: []schema.SlideSpec{{Title: "S", Content: &schema.Content{Text: "x"}}},
	}

	_, err = s.Generate(context.Background(), spec)
	if err == nil {
		t.Fatal("missing content_only layout should fail")
	}
	var gerr *GenerationError
	if !errors.As(err, &gerr) {
		t.Fatalf("error is %T, want *GenerationError", err)
	}
	if gerr.Kind != KindConfig {
		t.Errorf("Kind = %v, want KindConfig", gerr.Kind)
	}
	if gerr.Details["available"] == nil {
		t.Errorf("config error does not list available layouts: %+v", gerr.Details)
	}
}

func TestPlanFills_SingleFillPerRole(t *testing.T) {
	layout := &template.Layout{
		DisplayName: "Two Columns",
		Placeholders: []template.Placeholder{
			{Role: template.RoleTitle},
			{Role: template.RoleBody},
			{Role: template.RoleBody},
		},
	}
	spec := &schema.SlideSpec{Title: "S", Content: &schema.Content{Text: "x"}}

	plan := planFills(layout, spec)
	bodies := 0
	for _, a := range plan {
		if a.kind == fillKindBody {
			bodies++
			if a.placeholder != 1 {
				t.Errorf("body content went to placeholder %d, want the first body slot", a.placeholder)
			}
		}
	}
	if bodies != 1 {
		t.Errorf("body content assigned %d times, want exactly once", bodies)
	}
}

func TestPlanFills_SkipsSlotsWithoutContent(t *testing.T) {
	layout := &template.Layout{
		DisplayName: "Chart with Text",
		Placeholders: []template.Placeholder{
			{Role: template.RoleTitle},
			{Role: template.RoleChart},
			{Role: template.RoleBody},
		},
	}
	spec := &schema.SlideSpec{Title: "S", Chart: chartSpec()}

	plan := planFills(layout, spec)
	if len(plan) != 2 {
		t.Fatalf("plan has %d assignments, want title and chart only: %+v", len(plan), plan)
	}
	if plan[0].kind != fillKindTitle || plan[1].kind != fillKindChart {
		t.Errorf("unexpected plan %+v", plan)
	}
}

func TestChartKind(t *testing.T) {
	tests := map[string]string{
		"":        "column",
		"column":  "column",
		"line":    "line",
		"pie":     "pie",
		"scatter": "column",
	}
	for in, want := range tests {
		if got := chartKind(in); got != want {
			t.Errorf("chartKind(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Quarterly Review", "Quarterly Review"},
		{"Q3: Results & Outlook!", "Q3 Results  Outlook"},
		{"../../etc/passwd", "....etcpasswd"},
		{"résumé", "rsum"},
		{"###", "presentation"},
		{"", "presentation"},
		{"  spaced  ", "spaced"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
