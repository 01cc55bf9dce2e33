package filter

import (
	"fmt"
	"strings"
)

// Kind identifies a block variant.
type Kind string

const (
	KindRule    Kind = "rule"
	KindSection Kind = "section"
)

// Block is one entry of a filter script. The variant set is closed
// (*RuleBlock and *SectionBlock) and consumers switch over it exhaustively.
// Blocks are entities: two structurally equal blocks are still distinct.
type Block interface {
	Kind() Kind
	// Summary returns the human readable description of the block.
	Summary() string
	isBlock()
}

// Action is the visibility outcome of a rule block.
type Action string

const (
	ActionShow Action = "Show"
	ActionHide Action = "Hide"
)

// ParseAction resolves an action keyword, ignoring case.
func ParseAction(keyword string) (Action, bool) {
	switch {
	case strings.EqualFold(keyword, string(ActionShow)):
		return ActionShow, true
	case strings.EqualFold(keyword, string(ActionHide)):
		return ActionHide, true
	default:
		return "", false
	}
}

// RuleBlock pairs match conditions with display actions.
type RuleBlock struct {
	Action      Action
	Description string
	// Group is a non-owning reference into the script's group table; nil
	// means the root group.
	Group *BlockGroup
	Items []Item
}

// NewRuleBlock returns an empty Show block.
func NewRuleBlock() *RuleBlock {
	return &RuleBlock{Action: ActionShow}
}

// Kind implements Block.
func (*RuleBlock) Kind() Kind { return KindRule }

// Summary implements Block.
func (r *RuleBlock) Summary() string { return r.Description }

func (*RuleBlock) isBlock() {}

// ColorItems returns every color item of the given kind, in item order.
func (r *RuleBlock) ColorItems(kind ColorKind) []*ColorItem {
	var found []*ColorItem
	for _, item := range r.Items {
		if colorItem, ok := item.(*ColorItem); ok && colorItem.Kind == kind {
			found = append(found, colorItem)
		}
	}
	return found
}

// ColorItem returns the single color item of kind, or nil when the block has
// none or, in violation of the invariant, more than one.
func (r *RuleBlock) ColorItem(kind ColorKind) *ColorItem {
	found := r.ColorItems(kind)
	if len(found) != 1 {
		return nil
	}
	return found[0]
}

// AddItem appends an item, refusing a second color item of the same kind.
func (r *RuleBlock) AddItem(item Item) error {
	if colorItem, ok := item.(*ColorItem); ok && len(r.ColorItems(colorItem.Kind)) > 0 {
		return NewDomainError(ErrCodeValidation, "block already has a color item of this kind", nil, map[string]interface{}{
			"keyword": colorItem.Keyword(),
		})
	}
	r.Items = append(r.Items, item)
	return nil
}

// SectionBlock is a heading that separates parts of a script. It carries a
// description only.
type SectionBlock struct {
	Description string
}

// NewSectionBlock returns a section with the given description.
func NewSectionBlock(description string) *SectionBlock {
	return &SectionBlock{Description: description}
}

// Kind implements Block.
func (*SectionBlock) Kind() Kind { return KindSection }

// Summary implements Block.
func (s *SectionBlock) Summary() string { return s.Description }

func (*SectionBlock) isBlock() {}

// CloneBlock returns a deep copy that is a new entity. The group reference is
// shared since groups are owned by the script.
func CloneBlock(block Block) Block {
	switch b := block.(type) {
	case *RuleBlock:
		items := make([]Item, len(b.Items))
		for i, item := range b.Items {
			items[i] = cloneItem(item)
		}
		return &RuleBlock{Action: b.Action, Description: b.Description, Group: b.Group, Items: items}
	case *SectionBlock:
		return &SectionBlock{Description: b.Description}
	default:
		panic(fmt.Sprintf("filter: unhandled block variant %T", block))
	}
}

// BlocksEqual reports structural equality: same variant, action,
// description, group path and items in the same order.
func BlocksEqual(a, b Block) bool {
	switch left := a.(type) {
	case *RuleBlock:
		right, ok := b.(*RuleBlock)
		if !ok || left.Action != right.Action || left.Description != right.Description {
			return false
		}
		if !GroupPathsEqual(left.Group, right.Group) || len(left.Items) != len(right.Items) {
			return false
		}
		for i := range left.Items {
			if !itemsEqual(left.Items[i], right.Items[i]) {
				return false
			}
		}
		return true
	case *SectionBlock:
		right, ok := b.(*SectionBlock)
		return ok && left.Description == right.Description
	default:
		return false
	}
}
