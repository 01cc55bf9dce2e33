package filter

import "sort"

// ThemeComponent is a named color shared by several blocks.
type ThemeComponent struct {
	Kind  ColorKind
	Name  string
	Color Color
}

type themeKey struct {
	kind ColorKind
	name string
}

// ThemeComponents is the registry of theme components known to a script.
// The engine only carries it; colors on items are never resolved through it.
type ThemeComponents struct {
	entries map[themeKey]ThemeComponent
}

// NewThemeComponents returns an empty registry.
func NewThemeComponents() *ThemeComponents {
	return &ThemeComponents{entries: make(map[themeKey]ThemeComponent)}
}

// Register adds a component. The first registration of a (kind, name) pair
// wins and reports true.
func (t *ThemeComponents) Register(kind ColorKind, name string, color Color) bool {
	if t.entries == nil {
		t.entries = make(map[themeKey]ThemeComponent)
	}
	key := themeKey{kind: kind, name: name}
	if _, exists := t.entries[key]; exists || name == "" {
		return false
	}
	t.entries[key] = ThemeComponent{Kind: kind, Name: name, Color: color}
	return true
}

// Lookup returns the component registered for (kind, name).
func (t *ThemeComponents) Lookup(kind ColorKind, name string) (ThemeComponent, bool) {
	if t == nil {
		return ThemeComponent{}, false
	}
	component, ok := t.entries[themeKey{kind: kind, name: name}]
	return component, ok
}

// Len returns the number of registered components.
func (t *ThemeComponents) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// List returns components sorted by kind then name.
func (t *ThemeComponents) List() []ThemeComponent {
	if t == nil {
		return nil
	}
	out := make([]ThemeComponent, 0, len(t.entries))
	for _, component := range t.entries {
		out = append(out, component)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// RegisterThemeComponents registers every theme component named by the
// block's color items. Existing registrations are kept.
func (s *Script) RegisterThemeComponents(block Block) {
	rule, ok := block.(*RuleBlock)
	if !ok {
		return
	}
	if s.ThemeComponents == nil {
		s.ThemeComponents = NewThemeComponents()
	}
	for _, item := range rule.Items {
		if colorItem, ok := item.(*ColorItem); ok && colorItem.ThemeComponent != "" {
			s.ThemeComponents.Register(colorItem.Kind, colorItem.ThemeComponent, colorItem.Color)
		}
	}
}
