package models

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BarrelType represents the type of a barrel
type BarrelType string

const (
	BarrelTypeProject    BarrelType = "project"
	BarrelTypeStyleguide BarrelType = "styleguide"
)

var titleCaser = cases.Title(language.English)

// Title returns the display form of the type, e.g. "Project".
func (t BarrelType) Title() string {
	return titleCaser.String(string(t))
}

// Valid reports whether t is a known barrel type.
func (t BarrelType) Valid() bool {
	return t == BarrelTypeProject || t == BarrelTypeStyleguide
}

// Barrel is a top-level container (project or styleguide) that screens and
// components live under.
type Barrel struct {
	ID          string     `json:"id" yaml:"id" mapstructure:"id"`
	Name        string     `json:"name" yaml:"name" mapstructure:"name"`
	Type        BarrelType `json:"type" yaml:"type" mapstructure:"type"`
	ParentID    string     `json:"parent_id,omitempty" yaml:"parent_id,omitempty" mapstructure:"parent_id"`
	Platform    string     `json:"platform,omitempty" yaml:"platform,omitempty" mapstructure:"platform"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
}

// IsProject reports whether the barrel is a project.
func (b Barrel) IsProject() bool {
	return b.Type == BarrelTypeProject
}

// BarrelDetails holds the component hierarchy of a single barrel.
type BarrelDetails struct {
	Barrel `yaml:",inline"`

	// Components that are not in any section.
	Components []Component        `json:"components" yaml:"components"`
	Sections   []ComponentSection `json:"sections" yaml:"sections"`
}

// AllComponents returns every component of the barrel, sectioned ones
// included, in tree order (sections first, depth-first, then unsectioned).
func (d BarrelDetails) AllComponents() []Component {
	var all []Component
	var walk func(sections []ComponentSection)
	walk = func(sections []ComponentSection) {
		for _, s := range sections {
			walk(s.Sections)
			all = append(all, s.Components...)
		}
	}
	walk(d.Sections)
	return append(all, d.Components...)
}
