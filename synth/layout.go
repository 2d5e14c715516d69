package synth

import "deckgen/schema"

// layoutRule is one entry of the ordered selection table. First match wins.
type layoutRule struct {
	match  func(*schema.SlideSpec) bool
	layout func(*schema.SlideSpec) schema.LayoutName
}

// Structural content dictates placeholder geometry, so chart and table take
// priority over any caller hint; a mismatched layout would have no slot for
// that content type.
var layoutRules = []layoutRule{
	{
		match:  func(s *schema.SlideSpec) bool { return s.Chart != nil },
		layout: func(*schema.SlideSpec) schema.LayoutName { return schema.LayoutChart },
	},
	{
		match:  func(s *schema.SlideSpec) bool { return s.Table != nil },
		layout: func(*schema.SlideSpec) schema.LayoutName { return schema.LayoutTable },
	},
	{
		match: func(s *schema.SlideSpec) bool { return s.Image != nil },
		layout: func(s *schema.SlideSpec) schema.LayoutName {
			switch s.Image.Position {
			case "left":
				return schema.LayoutImageLeft
			case "full":
				return schema.LayoutImageFull
			default:
				return schema.LayoutImageRight
			}
		},
	},
	{
		match:  func(s *schema.SlideSpec) bool { return s.Layout != "" && schema.IsCatalogName(s.Layout) },
		layout: func(s *schema.SlideSpec) schema.LayoutName { return schema.LayoutName(s.Layout) },
	},
}

// SelectLayout picks the layout for one slide. Deterministic and pure:
// chart > table > image > recognized hint > content_only.
func SelectLayout(slide *schema.SlideSpec) schema.LayoutName {
	for _, rule := range layoutRules {
		if rule.match(slide) {
			return rule.layout(slide)
		}
	}
	return schema.LayoutContentOnly
}
