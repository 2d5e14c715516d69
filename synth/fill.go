package synth

import (
	"context"
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"deckgen/schema"
	"deckgen/template"
)

// Slide geometry, 16:9 widescreen.
const (
	emuPerInch = 914400

	fontBody      = 14
	fontTableHead = 11
	fontTableCell = 10

	// indentation per bullet level
	bulletIndentInches = 0.3
)

const (
	headerFillARGB = "FF003366" // header_colored fill
	rowFillEven    = "FFF8FAFC"
	rowFillOdd     = "FFF1F5F9"
	linkColorARGB  = "FF0000FF"
)

func emu(inches float64) int64 {
	return int64(inches * emuPerInch)
}

// solidFill creates a solid fill of the given ARGB color.
func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// hexToARGB converts a #RRGGBB content color into GoPPT's ARGB form.
func hexToARGB(hex string) string {
	return "FF" + strings.ToUpper(strings.TrimPrefix(hex, "#"))
}

// placeShape creates a rich text shape covering the placeholder's box.
func placeShape(slide *ppt.Slide, box template.Box) *ppt.RichTextShape {
	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(emu(box.X)).SetOffsetY(emu(box.Y))
	shape.SetWidth(emu(box.W)).SetHeight(emu(box.H))
	return shape
}

// applyBaseStyle applies the placeholder's default styling to a run.
func applyBaseStyle(tr *ppt.TextRun, style *template.FontStyle) {
	if style == nil {
		tr.GetFont().SetSize(fontBody)
		return
	}
	font := tr.GetFont()
	if style.Size > 0 {
		font.SetSize(style.Size)
	}
	if style.Bold {
		font.SetBold(true)
	}
	if style.Color != "" {
		font.SetColor(ppt.NewColor(style.Color))
	}
}

// applyFormatting overlays per-run content formatting on top of the base.
func applyFormatting(tr *ppt.TextRun, f *schema.TextFormatting) {
	if f == nil {
		return
	}
	font := tr.GetFont()
	if f.Bold {
		font.SetBold(true)
	}
	if f.Italic {
		font.SetItalic(true)
	}
	if f.Color != "" {
		font.SetColor(ppt.NewColor(hexToARGB(f.Color)))
	}
	if f.Size > 0 {
		font.SetSize(int(f.Size))
	}
}

// fillTitle writes the slide title into a title placeholder verbatim.
func fillTitle(slide *ppt.Slide, ph template.Placeholder, title string) {
	shape := placeShape(slide, ph.Box)
	tr := shape.CreateTextRun(title)
	applyBaseStyle(tr, ph.Font)
	if ph.Font != nil && ph.Font.Center {
		alignCenter(shape.GetActiveParagraph())
	}
}

// fillBody writes content and bullet points into one body placeholder.
// Content renders first; bullets append as auto-numbered paragraphs at
// their indentation level.
func fillBody(slide *ppt.Slide, ph template.Placeholder, content *schema.Content, bullets []schema.BulletItem) {
	shape := placeShape(slide, ph.Box)

	wroteContent := false
	if content != nil {
		if content.IsRich() {
			for _, run := range content.Runs {
				tr := shape.CreateTextRun(run.Text)
				applyBaseStyle(tr, ph.Font)
				applyFormatting(tr, run.Formatting)
				if run.Hyperlink != "" {
					tr.SetHyperlink(ppt.NewHyperlink(run.Hyperlink))
					tr.GetFont().SetColor(ppt.NewColor(linkColorARGB)).SetUnderline(ppt.UnderlineSingle)
				}
			}
			wroteContent = true
		} else if content.Text != "" {
			tr := shape.CreateTextRun(content.Text)
			applyBaseStyle(tr, ph.Font)
			wroteContent = true
		}
	}

	for i, item := range bullets {
		if wroteContent || i > 0 {
			shape.CreateParagraph()
		}
		tr := shape.CreateTextRun(item.Text)
		applyBaseStyle(tr, ph.Font)
		applyFormatting(tr, item.Formatting)

		p := shape.GetActiveParagraph()
		align := ppt.NewAlignment()
		align.MarginLeft = emu(bulletIndentInches * float64(item.Level+1))
		p.SetAlignment(align)
		p.SetBullet(&ppt.Bullet{Type: ppt.BulletTypeAutoNum, NumFormat: "arabicPeriod", StartAt: 1})
	}
}

// fillTable materializes a header row plus data rows as a cell grid inside
// the table placeholder. With style "header_colored" the header row gets a
// dark fill with bold white text; otherwise default styling.
func fillTable(slide *ppt.Slide, ph template.Placeholder, t *schema.TableSpec) {
	cols := len(t.Headers)
	if cols == 0 {
		return
	}
	rows := len(t.Rows) + 1

	cellW := ph.Box.W / float64(cols)
	rowH := ph.Box.H / float64(rows)
	if rowH > 0.45 {
		rowH = 0.45
	}

	colored := t.Style == "header_colored"

	for c, header := range t.Headers {
		cell := slide.CreateRichTextShape()
		cell.SetOffsetX(emu(ph.Box.X + float64(c)*cellW)).SetOffsetY(emu(ph.Box.Y))
		cell.SetWidth(emu(cellW)).SetHeight(emu(rowH))
		tr := cell.CreateTextRun(header)
		tr.GetFont().SetSize(fontTableHead).SetBold(true)
		if colored {
			cell.SetFill(solidFill(headerFillARGB))
			tr.GetFont().SetColor(ppt.ColorWhite)
		}
		alignCenter(cell.GetActiveParagraph())
	}

	for r, row := range t.Rows {
		y := ph.Box.Y + float64(r+1)*rowH
		fill := rowFillEven
		if r%2 == 1 {
			fill = rowFillOdd
		}
		for c := 0; c < cols; c++ {
			cell := slide.CreateRichTextShape()
			cell.SetOffsetX(emu(ph.Box.X + float64(c)*cellW)).SetOffsetY(emu(y))
			cell.SetWidth(emu(cellW)).SetHeight(emu(rowH))
			cell.SetFill(solidFill(fill))
			value := ""
			if c < len(row) {
				value = fmt.Sprintf("%v", row[c])
			}
			tr := cell.CreateTextRun(value)
			tr.GetFont().SetSize(fontTableCell)
			alignCenter(cell.GetActiveParagraph())
		}
	}
}

// chartKind maps the requested chart type to a renderer, defaulting to column
// for anything unrecognized.
func chartKind(t string) string {
	switch t {
	case "line", "pie":
		return t
	default:
		return "column"
	}
}

// fillChart builds category/series chart data and places a chart shape.
// Series shorter than the category list are zero-padded; longer ones are
// truncated. Both conditions are logged, not fatal.
func (s *Synthesizer) fillChart(slide *ppt.Slide, ph template.Placeholder, c *schema.ChartSpec) {
	shape := slide.CreateChartShape()
	shape.SetOffsetX(emu(ph.Box.X)).SetOffsetY(emu(ph.Box.Y))
	shape.SetWidth(emu(ph.Box.W)).SetHeight(emu(ph.Box.H))

	series := make([]*ppt.ChartSeries, 0, len(c.Series))
	for _, src := range c.Series {
		if len(src.Data) != len(c.Categories) {
			s.log.Warnf("chart series %q has %d values for %d categories; padding/truncating",
				src.Name, len(src.Data), len(c.Categories))
		}
		values := make(map[string]float64, len(c.Categories))
		for i, cat := range c.Categories {
			if i < len(src.Data) {
				values[cat] = src.Data[i]
			} else {
				values[cat] = 0
			}
		}
		series = append(series, &ppt.ChartSeries{
			Title:      src.Name,
			Categories: c.Categories,
			Values:     values,
		})
	}

	plot := shape.GetPlotArea()
	switch chartKind(c.Type) {
	case "line":
		plot.SetType(&ppt.LineChart{Series: series})
	case "pie":
		plot.SetType(&ppt.PieChart{Series: series})
	default:
		plot.SetType(&ppt.BarChart{Series: series})
	}
}

// fillPicture resolves the image and places its bytes as a drawing shape.
// When the whole fallback chain fails, the placeholder receives the literal
// textual stand-in instead.
func (s *Synthesizer) fillPicture(ctx context.Context, slide *ppt.Slide, ph template.Placeholder, img *schema.ImageSpec) {
	res, err := s.resolver.Resolve(ctx, *img)
	if err != nil {
		s.log.Warnf("image %q unresolved, using textual stand-in", img.Path)
		shape := placeShape(slide, ph.Box)
		tr := shape.CreateTextRun(fmt.Sprintf("[IMAGE: %s]", img.Path))
		tr.GetFont().SetSize(fontBody).SetItalic(true).SetColor(ppt.NewColor("FF64748B"))
		alignCenter(shape.GetActiveParagraph())
		return
	}

	s.log.Infof("image %q resolved via %s tier (%d bytes)", img.Path, res.Tier, len(res.Bytes))
	shape := slide.CreateDrawingShape()
	shape.SetImageData(res.Bytes, res.MIME)
	shape.SetOffsetX(emu(ph.Box.X)).SetOffsetY(emu(ph.Box.Y))
	shape.SetWidth(emu(ph.Box.W)).SetHeight(emu(ph.Box.H))
}
