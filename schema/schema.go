package schema

import (
	"encoding/json"
	"fmt"
)

// LayoutName identifies one layout in the closed template catalog.
type LayoutName string

const (
	LayoutTitleSlide    LayoutName = "title_slide"
	LayoutContentOnly   LayoutName = "content_only"
	LayoutImageLeft     LayoutName = "image_left"
	LayoutImageRight    LayoutName = "image_right"
	LayoutImageFull     LayoutName = "image_full"
	LayoutTable         LayoutName = "table"
	LayoutChart         LayoutName = "chart"
	LayoutChartWithText LayoutName = "chart_with_text"
	LayoutTwoColumns    LayoutName = "two_columns"
)

// CatalogNames lists every layout name the template catalog must provide,
// in a stable order.
func CatalogNames() []LayoutName {
	return []LayoutName{
		LayoutTitleSlide,
		LayoutContentOnly,
		LayoutImageLeft,
		LayoutImageRight,
		LayoutImageFull,
		LayoutTable,
		LayoutChart,
		LayoutChartWithText,
		LayoutTwoColumns,
	}
}

// IsCatalogName reports whether s is one of the closed catalog names.
func IsCatalogName(s string) bool {
	for _, n := range CatalogNames() {
		if string(n) == s {
			return true
		}
	}
	return false
}

// TextFormatting carries optional run-level styling.
type TextFormatting struct {
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Color  string  `json:"color,omitempty"` // #RRGGBB
	Size   float64 `json:"size,omitempty"`  // points
}

// TextRun is one styled span of slide body text.
type TextRun struct {
	Text       string          `json:"text"`
	Formatting *TextFormatting `json:"formatting,omitempty"`
	Hyperlink  string          `json:"hyperlink,omitempty"`
}

// Content is a slide body: either one plain string or an ordered run list.
// The zero value means "absent".
type Content struct {
	Text string
	Runs []TextRun
}

// IsRich reports whether the content is a styled run sequence.
func (c *Content) IsRich() bool { return len(c.Runs) > 0 }

// UnmarshalJSON accepts a plain string, a run array, or an object of the
// form {"runs": [...]}, normalizing the last two to the run list.
func (c *Content) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Text = s
		c.Runs = nil
		return nil
	}
	var runs []TextRun
	if err := json.Unmarshal(data, &runs); err == nil {
		c.Runs = runs
		c.Text = ""
		return nil
	}
	var wrapped struct {
		Runs []TextRun `json:"runs"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Runs != nil {
		c.Runs = wrapped.Runs
		c.Text = ""
		return nil
	}
	return fmt.Errorf("content must be a string, a run array, or {\"runs\": [...]}")
}

// MarshalJSON emits the normalized form: a string for plain content, a run
// array for rich content.
func (c Content) MarshalJSON() ([]byte, error) {
	if len(c.Runs) > 0 {
		return json.Marshal(c.Runs)
	}
	return json.Marshal(c.Text)
}

// BulletItem is one bullet paragraph with an indentation level.
type BulletItem struct {
	Text       string          `json:"text"`
	Level      int             `json:"level,omitempty"` // 0-5
	Formatting *TextFormatting `json:"formatting,omitempty"`
}

// UnmarshalJSON accepts either a bare string (level-0 bullet) or a full item.
func (b *BulletItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.Text = s
		b.Level = 0
		b.Formatting = nil
		return nil
	}
	type alias BulletItem
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("bullet item must be a string or an object: %v", err)
	}
	*b = BulletItem(a)
	return nil
}

// TableSpec describes a header row plus data rows.
type TableSpec struct {
	Headers []string        `json:"headers"`
	Rows    [][]interface{} `json:"rows"`
	Style   string          `json:"style,omitempty"` // e.g. "header_colored"
}

// ChartSeries is one named numeric sequence.
type ChartSeries struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// ChartSpec describes a category chart.
type ChartSpec struct {
	Type       string        `json:"type,omitempty"` // column, line, pie; default column
	Categories []string      `json:"categories"`
	Series     []ChartSeries `json:"series"`
}

// ImageSpec requests an image by local path or free-text search query.
type ImageSpec struct {
	Path     string `json:"path"`
	Position string `json:"position,omitempty"` // left, right, full; default right
}

// SlideSpec is one content slide of a presentation.
type SlideSpec struct {
	Title        string       `json:"title"`
	Content      *Content     `json:"content,omitempty"`
	BulletPoints []BulletItem `json:"bullet_points,omitempty"`
	Table        *TableSpec   `json:"table,omitempty"`
	Chart        *ChartSpec   `json:"chart,omitempty"`
	Image        *ImageSpec   `json:"image,omitempty"`
	Layout       string       `json:"layout,omitempty"`
}

// HasContent reports whether the slide carries at least one content element.
func (s *SlideSpec) HasContent() bool {
	if s.Content != nil && (s.Content.Text != "" || len(s.Content.Runs) > 0) {
		return true
	}
	return len(s.BulletPoints) > 0 || s.Table != nil || s.Chart != nil || s.Image != nil
}

// PresentationSpec is the validated content graph for one deck.
type PresentationSpec struct {
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle,omitempty"`
	Author   string      `json:"author,omitempty"`
	Subject  string      `json:"subject,omitempty"`
	Slides   []SlideSpec `json:"slides"`
}
