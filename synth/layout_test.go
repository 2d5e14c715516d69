package synth

import (
	"testing"

	"pgregory.net/rapid"

	"deckgen/schema"
)

func chartSpec() *schema.ChartSpec {
	return &schema.ChartSpec{Categories: []string{"Q1"}, Series: []schema.ChartSeries{{Name: "Rev", Data: []float64{1}}}}
}

func tableSpec() *schema.TableSpec {
	return &schema.TableSpec{Headers: []string{"H"}, Rows: [][]interface{}{{"v"}}}
}

func TestSelectLayout(t *testing.T) {
	tests := []struct {
		name  string
		slide schema.SlideSpec
		want  schema.LayoutName
	}{
		{
			name:  "chart beats everything",
			slide: schema.SlideSpec{Chart: chartSpec(), Table: tableSpec(), Image: &schema.ImageSpec{Path: "p"}, Layout: "two_columns"},
			want:  schema.LayoutChart,
		},
		{
			name:  "table beats image and hint",
			slide: schema.SlideSpec{Table: tableSpec(), Image: &schema.ImageSpec{Path: "p"}, Layout: "content_only"},
			want:  schema.LayoutTable,
		},
		{
			name:  "image default position is right",
			slide: schema.SlideSpec{Image: &schema.ImageSpec{Path: "p"}},
			want:  schema.LayoutImageRight,
		},
		{
			name:  "image left",
			slide: schema.SlideSpec{Image: &schema.ImageSpec{Path: "p", Position: "left"}},
			want:  schema.LayoutImageLeft,
		},
		{
			name:  "image full",
			slide: schema.SlideSpec{Image: &schema.ImageSpec{Path: "p", Position: "full"}},
			want:  schema.LayoutImageFull,
		},
		{
			name:  "recognized hint",
			slide: schema.SlideSpec{Layout: "two_columns", Content: &schema.Content{Text: "x"}},
			want:  schema.LayoutTwoColumns,
		},
		{
			name:  "unrecognized hint falls through",
			slide: schema.SlideSpec{Layout: "holographic", Content: &schema.Content{Text: "x"}},
			want:  schema.LayoutContentOnly,
		},
		{
			name:  "text only",
			slide: schema.SlideSpec{Content: &schema.Content{Text: "x"}},
			want:  schema.LayoutContentOnly,
		},
		{
			name:  "bullets only",
			slide: schema.SlideSpec{BulletPoints: []schema.BulletItem{{Text: "x"}}},
			want:  schema.LayoutContentOnly,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectLayout(&tt.slide); got != tt.want {
				t.Errorf("SelectLayout() = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestProperty_SelectLayoutPrecedence verifies that for any slide shape the
// selection is deterministic and respects chart > table > image > hint.
func TestProperty_SelectLayoutPrecedence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		slide := schema.SlideSpec{Title: "s"}
		if rapid.Bool().Draw(t, "hasChart") {
			slide.Chart = chartSpec()
		}
		if rapid.Bool().Draw(t, "hasTable") {
			slide.Table = tableSpec()
		}
		if rapid.Bool().Draw(t, "hasImage") {
			slide.Image = &schema.ImageSpec{
				Path:     "p",
				Position: rapid.SampledFrom([]string{"", "left", "right", "full"}).Draw(t, "position"),
			}
		}
		if rapid.Bool().Draw(t, "hasHint") {
			slide.Layout = rapid.SampledFrom([]string{"two_columns", "content_only", "nonsense"}).Draw(t, "hint")
		}

		got := SelectLayout(&slide)

		switch {
		case slide.Chart != nil:
			if got != schema.LayoutChart {
				t.Fatalf("chart slide selected %s", got)
			}
		case slide.Table != nil:
			if got != schema.LayoutTable {
				t.Fatalf("table slide selected %s", got)
			}
		case slide.Image != nil:
			if got != schema.LayoutImageLeft && got != schema.LayoutImageRight && got != schema.LayoutImageFull {
				t.Fatalf("image slide selected %s", got)
			}
		case slide.Layout != "" && schema.IsCatalogName(slide.Layout):
			if got != schema.LayoutName(slide.Layout) {
				t.Fatalf("hinted slide selected %s, want %s", got, slide.Layout)
			}
		default:
			if got != schema.LayoutContentOnly {
				t.Fatalf("plain slide selected %s", got)
			}
		}

		again := SelectLayout(&slide)
		if again != got {
			t.Fatalf("selection is not deterministic: %s then %s", got, again)
		}
	})
}
