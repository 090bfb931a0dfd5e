package models

// Screen represents a screen of a project
type Screen struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	SectionID string   `json:"section_id,omitempty" yaml:"section_id,omitempty"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ScreenSection groups screens of a project
type ScreenSection struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
