package filter

import "strings"

// RootGroupName is the name of the sentinel group at the top of every tree.
const RootGroupName = "Root"

// GroupSeparator joins group names when a group path is written as text.
const GroupSeparator = " - "

// BlockGroup is a named node in the group tree used to categorise blocks.
// Parent is a non-owning back reference; it is nil only for the root.
type BlockGroup struct {
	Name   string
	Parent *BlockGroup
}

// NewRootGroup returns a fresh root sentinel.
func NewRootGroup() *BlockGroup {
	return &BlockGroup{Name: RootGroupName}
}

// IsRoot reports whether the group is a tree root. A nil group is treated as
// the root.
func (g *BlockGroup) IsRoot() bool {
	return g == nil || g.Parent == nil
}

// Path returns the group names from just below the root down to g.
func (g *BlockGroup) Path() []string {
	var names []string
	for node := g; node != nil && node.Parent != nil; node = node.Parent {
		names = append(names, node.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// String renders the path using GroupSeparator; the root renders as "".
func (g *BlockGroup) String() string {
	return strings.Join(g.Path(), GroupSeparator)
}

// SplitGroupPath is the inverse of BlockGroup.String.
func SplitGroupPath(text string) []string {
	var names []string
	for _, part := range strings.Split(text, GroupSeparator) {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// GroupPathsEqual compares two groups by their (name, parent chain) identity.
func GroupPathsEqual(a, b *BlockGroup) bool {
	left, right := a.Path(), b.Path()
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}

// RootGroup returns the script's root group.
func (s *Script) RootGroup() *BlockGroup {
	if len(s.Groups) == 0 {
		s.Groups = []*BlockGroup{NewRootGroup()}
	}
	return s.Groups[0]
}

// FindGroup looks up a group by its path below the root. An empty path
// returns the root. Names are normalised as in EnsureGroup.
func (s *Script) FindGroup(path ...string) *BlockGroup {
	current := s.RootGroup()
	for _, name := range normaliseGroupPath(path) {
		next := s.child(current, name)
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// EnsureGroup returns the group at path, creating missing nodes in order.
// Names are trimmed and blank names skipped. A name containing
// GroupSeparator is split into nested groups, so the path reads back the
// same after String and SplitGroupPath.
func (s *Script) EnsureGroup(path ...string) *BlockGroup {
	current := s.RootGroup()
	for _, name := range normaliseGroupPath(path) {
		next := s.child(current, name)
		if next == nil {
			next = &BlockGroup{Name: name, Parent: current}
			s.Groups = append(s.Groups, next)
		}
		current = next
	}
	return current
}

// RemoveGroup deletes a group from the table. The root cannot be removed, and
// a group that still has child groups or is referenced by any block is kept
// and a CONFLICT error is returned.
func (s *Script) RemoveGroup(group *BlockGroup) error {
	if group == nil || group == s.RootGroup() {
		return newConflictError("root group cannot be removed", nil)
	}

	index := -1
	for i, candidate := range s.Groups {
		if candidate == group {
			index = i
			break
		}
	}
	if index < 0 {
		return newNotFoundError("group").WithContext(map[string]interface{}{"group": group.String()})
	}

	for _, candidate := range s.Groups {
		if candidate.Parent == group {
			return newConflictError("group has child groups", map[string]interface{}{
				"group": group.String(),
				"child": candidate.Name,
			})
		}
	}

	for i, block := range s.Blocks {
		if rule, ok := block.(*RuleBlock); ok && rule.Group == group {
			return newConflictError("group is referenced by a block", map[string]interface{}{
				"group": group.String(),
				"index": i,
			})
		}
	}

	s.Groups = append(s.Groups[:index], s.Groups[index+1:]...)
	return nil
}

func normaliseGroupPath(path []string) []string {
	return SplitGroupPath(strings.Join(path, GroupSeparator))
}

func (s *Script) child(parent *BlockGroup, name string) *BlockGroup {
	for _, candidate := range s.Groups {
		if candidate.Parent == parent && candidate.Name == name {
			return candidate
		}
	}
	return nil
}

// adoptGroup maps a group that may belong to another tree onto this script's
// table, matching by path.
func (s *Script) adoptGroup(group *BlockGroup) *BlockGroup {
	if group.IsRoot() {
		return s.RootGroup()
	}
	return s.EnsureGroup(group.Path()...)
}
