package filter

import "fmt"

// ColorReplacement is one old→new substitution for a single color kind.
type ColorReplacement struct {
	Enabled bool
	Old     Color
	New     Color
}

// ColorReplaceRequest holds the three independent substitutions a caller can
// ask for. Disabled entries impose no constraint and are never written.
type ColorReplaceRequest struct {
	Text       ColorReplacement
	Background ColorReplacement
	Border     ColorReplacement
}

// Replacement returns the entry for kind.
func (r ColorReplaceRequest) Replacement(kind ColorKind) ColorReplacement {
	switch kind {
	case TextColor:
		return r.Text
	case BackgroundColor:
		return r.Background
	case BorderColor:
		return r.Border
	default:
		panic(fmt.Sprintf("filter: unhandled color kind %d", int(kind)))
	}
}

// Set replaces the entry for kind.
func (r *ColorReplaceRequest) Set(kind ColorKind, replacement ColorReplacement) {
	switch kind {
	case TextColor:
		r.Text = replacement
	case BackgroundColor:
		r.Background = replacement
	case BorderColor:
		r.Border = replacement
	default:
		panic(fmt.Sprintf("filter: unhandled color kind %d", int(kind)))
	}
}

// Enabled returns the kinds with an enabled replacement, in canonical order.
func (r ColorReplaceRequest) Enabled() []ColorKind {
	var kinds []ColorKind
	for _, kind := range ColorKinds {
		if r.Replacement(kind).Enabled {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// IsColorReplacementCandidate reports whether every enabled replacement finds
// exactly one item of its kind on the block holding exactly the old color.
func IsColorReplacementCandidate(block *RuleBlock, request ColorReplaceRequest) bool {
	for _, kind := range request.Enabled() {
		item := block.ColorItem(kind)
		if item == nil || item.Color != request.Replacement(kind).Old {
			return false
		}
	}
	return true
}

// ReplaceColors applies request to every candidate rule block and returns
// how many blocks changed. A block that fails any enabled check is left
// untouched; blocks are independent of each other. A replaced item drops its
// theme component name.
func (s *Script) ReplaceColors(request ColorReplaceRequest) int {
	enabled := request.Enabled()
	if len(enabled) == 0 {
		return 0
	}

	replaced := 0
	for _, block := range s.Blocks {
		switch b := block.(type) {
		case *RuleBlock:
			if !IsColorReplacementCandidate(b, request) {
				continue
			}
			for _, kind := range enabled {
				item := b.ColorItem(kind)
				item.Color = request.Replacement(kind).New
				item.ThemeComponent = ""
			}
			replaced++
		case *SectionBlock:
			// sections carry no items
		default:
			panic(fmt.Sprintf("filter: unhandled block variant %T", block))
		}
	}
	return replaced
}
