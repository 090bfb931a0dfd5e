// Package fixture serves remote entities from a YAML snapshot.
package fixture

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/remote"
)

// BarrelData is one barrel of a snapshot together with its content.
type BarrelData struct {
	models.Barrel  `yaml:",inline"`
	Screens        []models.Screen           `yaml:"screens,omitempty"`
	ScreenSections []models.ScreenSection    `yaml:"screen_sections,omitempty"`
	Components     []models.Component        `yaml:"components,omitempty"`
	Sections       []models.ComponentSection `yaml:"sections,omitempty"`
}

// Snapshot is the root of a fixture file.
type Snapshot struct {
	Barrels []BarrelData `yaml:"barrels"`
}

// Client implements remote.Client over a Snapshot.
type Client struct {
	barrels map[string]*BarrelData
	order   []string

	mu    sync.Mutex
	calls map[string]int
}

// New creates a client serving snapshot.
func New(snapshot Snapshot) *Client {
	c := &Client{barrels: make(map[string]*BarrelData), calls: make(map[string]int)}
	for i := range snapshot.Barrels {
		b := &snapshot.Barrels[i]
		c.barrels[b.ID] = b
		c.order = append(c.order, b.ID)
	}
	return c
}

// Load reads a snapshot from a YAML file.
func Load(path string) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	for i, b := range snapshot.Barrels {
		if b.ID == "" {
			return nil, fmt.Errorf("fixture barrel %d has no id", i)
		}
		if !b.Type.Valid() {
			return nil, fmt.Errorf("fixture barrel %s has invalid type %q", b.ID, b.Type)
		}
	}
	return New(snapshot), nil
}

// Calls reports how often the operation ("barrels", "screens",
// "screen sections" or "components") was requested.
func (c *Client) Calls(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

func (c *Client) count(op string) {
	c.mu.Lock()
	c.calls[op]++
	c.mu.Unlock()
}

func (c *Client) Barrels(ctx context.Context, barrelType models.BarrelType) ([]models.Barrel, error) {
	c.count("barrels")
	var barrels []models.Barrel
	for _, id := range c.order {
		if b := c.barrels[id]; b.Type == barrelType {
			barrels = append(barrels, b.Barrel)
		}
	}
	return barrels, nil
}

func (c *Client) Screens(ctx context.Context, projectID string) ([]models.Screen, error) {
	c.count("screens")
	b, err := c.barrel("screens", projectID)
	if err != nil {
		return nil, err
	}
	return append([]models.Screen{}, b.Screens...), nil
}

func (c *Client) ScreenSections(ctx context.Context, projectID string) ([]models.ScreenSection, error) {
	c.count("screen sections")
	b, err := c.barrel("screen sections", projectID)
	if err != nil {
		return nil, err
	}
	return append([]models.ScreenSection{}, b.ScreenSections...), nil
}

func (c *Client) Components(ctx context.Context, barrel models.Barrel) ([]models.BarrelDetails, error) {
	c.count("components")
	var result []models.BarrelDetails
	seen := make(map[string]bool)
	for id := barrel.ID; id != "" && !seen[id]; {
		seen[id] = true
		b, err := c.barrel("components", id)
		if err != nil {
			return nil, err
		}
		details := models.BarrelDetails{
			Barrel:     b.Barrel,
			Components: append([]models.Component{}, b.Components...),
			Sections:   copySections(b.Sections),
		}
		remote.AssignPaths(&details)
		result = append(result, details)
		id = b.ParentID
	}
	return result, nil
}

func (c *Client) barrel(op, id string) (*BarrelData, error) {
	b, ok := c.barrels[id]
	if !ok {
		return nil, remote.NewError(remote.KindNotFound, op, fmt.Errorf("barrel %s", id))
	}
	return b, nil
}

// copySections deep-copies sections so path assignment never touches the
// snapshot.
func copySections(sections []models.ComponentSection) []models.ComponentSection {
	if sections == nil {
		return nil
	}
	out := make([]models.ComponentSection, len(sections))
	for i, s := range sections {
		out[i] = models.ComponentSection{
			ID:         s.ID,
			Name:       s.Name,
			Components: append([]models.Component{}, s.Components...),
			Sections:   copySections(s.Sections),
		}
	}
	return out
}
