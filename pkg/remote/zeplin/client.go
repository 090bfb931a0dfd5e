// Package zeplin implements remote.Client over the Zeplin REST API.
package zeplin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/remote"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://api.zeplin.dev"

const pageSize = 100

// Client talks to the Zeplin API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for baseURL authenticating with a personal access token.
func New(baseURL, token string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type ref struct {
	ID string `json:"id"`
}

type apiBarrel struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Platform         string `json:"platform"`
	Description      string `json:"description"`
	LinkedStyleguide *ref   `json:"linked_styleguide"`
	Parent           *ref   `json:"parent"`
}

func (b apiBarrel) toModel(barrelType models.BarrelType) models.Barrel {
	barrel := models.Barrel{
		ID:          b.ID,
		Name:        b.Name,
		Type:        barrelType,
		Platform:    b.Platform,
		Description: b.Description,
	}
	if b.LinkedStyleguide != nil {
		barrel.ParentID = b.LinkedStyleguide.ID
	}
	if b.Parent != nil {
		barrel.ParentID = b.Parent.ID
	}
	return barrel
}

type apiScreen struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Tags    []string `json:"tags"`
	Section *ref     `json:"section"`
}

type apiSection struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Parent *ref   `json:"parent"`
}

type apiComponent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Section     *ref   `json:"section"`
}

func collection(barrelType models.BarrelType) string {
	if barrelType == models.BarrelTypeStyleguide {
		return "styleguides"
	}
	return "projects"
}

func (c *Client) Barrels(ctx context.Context, barrelType models.BarrelType) ([]models.Barrel, error) {
	var items []apiBarrel
	if err := c.list(ctx, "/v1/"+collection(barrelType), &items); err != nil {
		return nil, err
	}
	barrels := make([]models.Barrel, 0, len(items))
	for _, item := range items {
		barrels = append(barrels, item.toModel(barrelType))
	}
	return barrels, nil
}

func (c *Client) Screens(ctx context.Context, projectID string) ([]models.Screen, error) {
	var items []apiScreen
	if err := c.list(ctx, fmt.Sprintf("/v1/projects/%s/screens", url.PathEscape(projectID)), &items); err != nil {
		return nil, err
	}
	screens := make([]models.Screen, 0, len(items))
	for _, item := range items {
		screen := models.Screen{ID: item.ID, Name: item.Name, Tags: item.Tags}
		if item.Section != nil {
			screen.SectionID = item.Section.ID
		}
		screens = append(screens, screen)
	}
	return screens, nil
}

func (c *Client) ScreenSections(ctx context.Context, projectID string) ([]models.ScreenSection, error) {
	var items []apiSection
	if err := c.list(ctx, fmt.Sprintf("/v1/projects/%s/screen_sections", url.PathEscape(projectID)), &items); err != nil {
		return nil, err
	}
	sections := make([]models.ScreenSection, 0, len(items))
	for _, item := range items {
		sections = append(sections, models.ScreenSection{ID: item.ID, Name: item.Name})
	}
	return sections, nil
}

func (c *Client) Components(ctx context.Context, barrel models.Barrel) ([]models.BarrelDetails, error) {
	var result []models.BarrelDetails
	seen := make(map[string]bool)

	id, barrelType := barrel.ID, barrel.Type
	for id != "" && !seen[id] {
		seen[id] = true

		var meta apiBarrel
		if err := c.get(ctx, fmt.Sprintf("/v1/%s/%s", collection(barrelType), url.PathEscape(id)), nil, &meta); err != nil {
			return nil, err
		}
		details, err := c.barrelDetails(ctx, meta.toModel(barrelType))
		if err != nil {
			return nil, err
		}
		result = append(result, details)

		// Linked and parent barrels are always styleguides.
		id, barrelType = details.ParentID, models.BarrelTypeStyleguide
	}
	return result, nil
}

func (c *Client) barrelDetails(ctx context.Context, barrel models.Barrel) (models.BarrelDetails, error) {
	base := fmt.Sprintf("/v1/%s/%s", collection(barrel.Type), url.PathEscape(barrel.ID))

	var sections []apiSection
	if err := c.list(ctx, base+"/component_sections", &sections); err != nil {
		return models.BarrelDetails{}, err
	}
	var components []apiComponent
	if err := c.list(ctx, base+"/components", &components); err != nil {
		return models.BarrelDetails{}, err
	}

	details := buildDetails(barrel, sections, components)
	remote.AssignPaths(&details)
	return details, nil
}

// buildDetails nests flat section and component lists into a hierarchy,
// keeping API order at every level.
func buildDetails(barrel models.Barrel, sections []apiSection, components []apiComponent) models.BarrelDetails {
	componentsBySection := make(map[string][]models.Component)
	var loose []models.Component
	known := make(map[string]bool, len(sections))
	for _, s := range sections {
		known[s.ID] = true
	}
	for _, ac := range components {
		component := models.Component{ID: ac.ID, Name: ac.Name, Description: ac.Description}
		if ac.Section != nil && known[ac.Section.ID] {
			componentsBySection[ac.Section.ID] = append(componentsBySection[ac.Section.ID], component)
		} else {
			loose = append(loose, component)
		}
	}

	children := make(map[string][]apiSection)
	var top []apiSection
	for _, s := range sections {
		if s.Parent != nil && known[s.Parent.ID] {
			children[s.Parent.ID] = append(children[s.Parent.ID], s)
		} else {
			top = append(top, s)
		}
	}

	var build func(level []apiSection) []models.ComponentSection
	build = func(level []apiSection) []models.ComponentSection {
		out := make([]models.ComponentSection, 0, len(level))
		for _, s := range level {
			out = append(out, models.ComponentSection{
				ID:         s.ID,
				Name:       s.Name,
				Components: componentsBySection[s.ID],
				Sections:   build(children[s.ID]),
			})
		}
		return out
	}

	return models.BarrelDetails{Barrel: barrel, Components: loose, Sections: build(top)}
}

// list fetches every page of a collection endpoint into out, which must be a
// pointer to a slice.
func (c *Client) list(ctx context.Context, path string, out interface{}) error {
	var all []json.RawMessage
	for offset := 0; ; offset += pageSize {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(pageSize))
		query.Set("offset", strconv.Itoa(offset))

		var page []json.RawMessage
		if err := c.get(ctx, path, query, &page); err != nil {
			return err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			break
		}
	}

	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("re-encode %s: %w", path, err)
	}
	return json.Unmarshal(data, out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	op := "GET " + path
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return remote.NewError(remote.KindUnknown, op, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.WithField("url", u).Debug("zeplin request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return remote.NewError(remote.KindNetwork, op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return remote.NewError(remote.KindNotAuthenticated, op, nil)
	case resp.StatusCode == http.StatusNotFound:
		return remote.NewError(remote.KindNotFound, op, nil)
	case resp.StatusCode >= 300:
		return remote.NewError(remote.KindUnknown, op, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return remote.NewError(remote.KindUnknown, op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
