package keymap

import "github.com/charmbracelet/bubbles/key"

// Standard section names shared by help displays.
const (
	SectionNavigation = "Navigation"
	SectionFold       = "Fold"
	SectionSearch     = "Search"
	SectionSystem     = "System"
)

// Section is a named group of bindings for help display.
type Section struct {
	Name     string
	Bindings []key.Binding
}

// SectionedKeyMap is implemented by keymaps that group their bindings.
type SectionedKeyMap interface {
	Sections() []Section
}

// NewSection creates a section with a custom name.
func NewSection(name string, bindings ...key.Binding) Section {
	return Section{Name: name, Bindings: bindings}
}

// NavigationSection groups cursor movement bindings.
func NavigationSection(bindings ...key.Binding) Section {
	return Section{Name: SectionNavigation, Bindings: bindings}
}

// FoldSection groups expand and collapse bindings.
func FoldSection(bindings ...key.Binding) Section {
	return Section{Name: SectionFold, Bindings: bindings}
}

// SearchSection groups search bindings.
func SearchSection(bindings ...key.Binding) Section {
	return Section{Name: SectionSearch, Bindings: bindings}
}

// SystemSection groups help and quit.
func SystemSection(bindings ...key.Binding) Section {
	return Section{Name: SectionSystem, Bindings: bindings}
}

// FilterEnabled returns the enabled bindings of the section.
func (s Section) FilterEnabled() []key.Binding {
	var result []key.Binding
	for _, b := range s.Bindings {
		if b.Enabled() {
			result = append(result, b)
		}
	}
	return result
}

// IsEmpty reports whether the section has no enabled bindings.
func (s Section) IsEmpty() bool {
	return len(s.FilterEnabled()) == 0
}

// Columns converts sections into the column layout used by
// bubbles/help's FullHelp, dropping empty sections.
func Columns(sections []Section) [][]key.Binding {
	var cols [][]key.Binding
	for _, s := range sections {
		if bindings := s.FilterEnabled(); len(bindings) > 0 {
			cols = append(cols, bindings)
		}
	}
	return cols
}
