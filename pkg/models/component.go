package models

// Component represents a reusable component of a barrel
type Component struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// SectionIDs is the path of sections from the outermost section to the
	// one holding the component. Empty for unsectioned components.
	SectionIDs   []string `json:"section_ids" yaml:"section_ids,omitempty"`
	SectionNames []string `json:"section_names" yaml:"section_names,omitempty"`

	// BarrelID is the barrel that owns the component. It differs from the
	// browsed barrel when components come from a linked styleguide.
	BarrelID string `json:"barrel_id" yaml:"barrel_id,omitempty"`
}

// ComponentSection is a (possibly nested) group of components
type ComponentSection struct {
	ID         string             `json:"id" yaml:"id"`
	Name       string             `json:"name" yaml:"name"`
	Components []Component        `json:"components" yaml:"components,omitempty"`
	Sections   []ComponentSection `json:"sections" yaml:"sections,omitempty"`
}
