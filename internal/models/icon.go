package models

import "strings"

// Icon identifies the glyph shown next to a task
type Icon string

const (
	IconStretch    Icon = "stretch"
	IconWalk       Icon = "walk"
	IconWater      Icon = "water"
	IconMedication Icon = "medication"
	IconDefault    Icon = "default"
)

type iconRule struct {
	icon     Icon
	keywords []string
}

// Rules are checked in order; the first match wins.
var iconRules = []iconRule{
	{IconStretch, []string{"stretch", "exercise"}},
	{IconWalk, []string{"walk", "step"}},
	{IconWater, []string{"water", "drink"}},
	{IconMedication, []string{"medication", "pill"}},
}

// ClassifyTaskIcon picks an icon for a task title by case-insensitive keyword
// match. Titles matching no rule get IconDefault.
func ClassifyTaskIcon(title string) Icon {
	lower := strings.ToLower(title)
	for _, rule := range iconRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.icon
			}
		}
	}
	return IconDefault
}

// Glyph returns a terminal-friendly symbol for the icon
func (i Icon) Glyph() string {
	switch i {
	case IconStretch:
		return "✦"
	case IconWalk:
		return "👣"
	case IconWater:
		return "💧"
	case IconMedication:
		return "💊"
	default:
		return "★"
	}
}
