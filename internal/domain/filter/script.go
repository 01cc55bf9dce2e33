// Package filter models item filter scripts: an ordered list of rule and
// section blocks, the group tree the blocks are tagged with, and the
// operations that keep them consistent.
//
// A Script has a single writer. Nothing in this package synchronises access;
// callers that share a Script between goroutines must guard it with one lock
// covering the blocks and the group table together.
package filter

import "time"

// MsgNoBlocks is reported by Validate for a script without blocks.
const MsgNoBlocks = "A script must have at least one block"

// Script is an item filter document. The order of Blocks is the evaluation
// order of the loot engine: the first matching block wins.
type Script struct {
	Blocks          []Block
	Groups          []*BlockGroup
	ThemeComponents *ThemeComponents

	FilePath     string
	Description  string
	DateModified time.Time
}

// NewScript returns an empty script holding only the root group.
func NewScript() *Script {
	return &Script{
		Groups:          []*BlockGroup{NewRootGroup()},
		ThemeComponents: NewThemeComponents(),
	}
}

// Validate returns every rule the script currently breaks. An empty result
// means the script can be persisted.
func (s *Script) Validate() []string {
	var failures []string

	if len(s.Blocks) == 0 {
		failures = append(failures, MsgNoBlocks)
	}

	return failures
}

// Clone returns a deep copy whose blocks and groups are new entities.
func (s *Script) Clone() *Script {
	clone := NewScript()
	clone.FilePath = s.FilePath
	clone.Description = s.Description
	clone.DateModified = s.DateModified

	s.RootGroup()
	for _, group := range s.Groups[1:] {
		clone.EnsureGroup(group.Path()...)
	}
	for _, component := range s.ThemeComponents.List() {
		clone.ThemeComponents.Register(component.Kind, component.Name, component.Color)
	}

	clone.Blocks = make([]Block, 0, len(s.Blocks))
	for _, block := range s.Blocks {
		copied := CloneBlock(block)
		if rule, ok := copied.(*RuleBlock); ok {
			rule.Group = clone.adoptGroup(rule.Group)
		}
		clone.Blocks = append(clone.Blocks, copied)
	}
	return clone
}
