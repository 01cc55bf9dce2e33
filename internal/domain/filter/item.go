package filter

import (
	"fmt"
	"strings"
)

// ColorKind enumerates the color-bearing item variants.
type ColorKind int

const (
	TextColor ColorKind = iota
	BackgroundColor
	BorderColor
)

// ColorKinds lists every color kind in canonical order.
var ColorKinds = []ColorKind{TextColor, BackgroundColor, BorderColor}

// Keyword returns the directive keyword used in filter scripts.
func (k ColorKind) Keyword() string {
	switch k {
	case TextColor:
		return "SetTextColor"
	case BackgroundColor:
		return "SetBackgroundColor"
	case BorderColor:
		return "SetBorderColor"
	default:
		return fmt.Sprintf("ColorKind(%d)", int(k))
	}
}

// String returns a short lower-case name.
func (k ColorKind) String() string {
	switch k {
	case TextColor:
		return "text"
	case BackgroundColor:
		return "background"
	case BorderColor:
		return "border"
	default:
		return fmt.Sprintf("color(%d)", int(k))
	}
}

// ColorKindForKeyword resolves a directive keyword, ignoring case.
func ColorKindForKeyword(keyword string) (ColorKind, bool) {
	for _, kind := range ColorKinds {
		if strings.EqualFold(kind.Keyword(), keyword) {
			return kind, true
		}
	}
	return 0, false
}

// Item is a single directive attached to a rule block. The set of variants is
// closed: *ColorItem and *DirectiveItem.
type Item interface {
	// Keyword returns the canonical directive keyword.
	Keyword() string
	isItem()
}

// ColorItem sets one of the block's display colors.
type ColorItem struct {
	Kind  ColorKind
	Color Color
	// ThemeComponent names the theme entry the color was taken from, if any.
	ThemeComponent string
}

// Keyword implements Item.
func (c *ColorItem) Keyword() string { return c.Kind.Keyword() }

func (*ColorItem) isItem() {}

// DirectiveItem is any condition or action the engine does not interpret.
// The value is kept verbatim so unknown directives survive a load/save cycle.
// Leading and trailing whitespace is not part of a value; build items with
// NewDirective to keep them in that form.
type DirectiveItem struct {
	Name  string
	Value string
}

// Keyword implements Item.
func (d *DirectiveItem) Keyword() string { return d.Name }

func (*DirectiveItem) isItem() {}

// NewColorItem constructs a ColorItem without a theme component.
func NewColorItem(kind ColorKind, color Color) *ColorItem {
	return &ColorItem{Kind: kind, Color: color}
}

// NewDirective constructs an opaque directive item with name and value
// trimmed.
func NewDirective(name, value string) *DirectiveItem {
	return &DirectiveItem{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)}
}

func cloneItem(item Item) Item {
	switch it := item.(type) {
	case *ColorItem:
		clone := *it
		return &clone
	case *DirectiveItem:
		clone := *it
		return &clone
	default:
		panic(fmt.Sprintf("filter: unhandled item variant %T", item))
	}
}

func itemsEqual(a, b Item) bool {
	switch left := a.(type) {
	case *ColorItem:
		right, ok := b.(*ColorItem)
		return ok && *left == *right
	case *DirectiveItem:
		right, ok := b.(*DirectiveItem)
		return ok && *left == *right
	default:
		return false
	}
}
