package catalog

import (
	"strings"

	"github.com/profislots/profislots-api/internal/httperr"
)

// Icon is the closed set of pictograms a service can show.
type Icon string

const (
	IconScissors Icon = "scissors"
	IconComb     Icon = "comb"
	IconRazor    Icon = "razor"
	IconBrush    Icon = "brush"
	IconNail     Icon = "nail"
	IconSpa      Icon = "spa"
	IconMassage  Icon = "massage"
	IconColor    Icon = "color"
)

var Icons = []Icon{
	IconScissors, IconComb, IconRazor, IconBrush,
	IconNail, IconSpa, IconMassage, IconColor,
}

// Glyph returns the emoji for the icon, or "" for an unknown tag.
func (i Icon) Glyph() string {
	switch i {
	case IconScissors:
		return "✂️"
	case IconComb:
		return "💇"
	case IconRazor:
		return "🪒"
	case IconBrush:
		return "🖌️"
	case IconNail:
		return "💅"
	case IconSpa:
		return "🧖"
	case IconMassage:
		return "💆"
	case IconColor:
		return "🎨"
	}
	return ""
}

func (i Icon) Valid() bool {
	return i.Glyph() != ""
}

// ParseIcon accepts a tag case-insensitively. Empty means scissors.
func ParseIcon(s string) (Icon, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return IconScissors, nil
	}
	i := Icon(s)
	if !i.Valid() {
		return "", httperr.ErrInvalid("invalid_icon")
	}
	return i, nil
}
