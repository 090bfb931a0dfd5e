// Package zeplinuri builds links that open barrels, screens and components
// in the Zeplin web or desktop application.
package zeplinuri

import (
	"net/url"
	"strings"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
)

// DefaultWebURL is the root of the Zeplin web application.
const DefaultWebURL = "https://app.zeplin.io"

const appScheme = "zpl://"

// Builder builds links against a web application root. The zero value uses
// DefaultWebURL.
type Builder struct {
	WebURL string
}

// Default is the builder used by the package-level functions.
var Default = Builder{}

func (b Builder) web() string {
	if b.WebURL == "" {
		return DefaultWebURL
	}
	return strings.TrimRight(b.WebURL, "/")
}

// Barrel links to a project or styleguide.
func (b Builder) Barrel(id string, barrelType models.BarrelType, appType models.ApplicationType) string {
	if appType == models.ApplicationTypeApp {
		return app(string(barrelType), url.Values{barrelParam(barrelType): {id}})
	}
	return b.web() + "/" + string(barrelType) + "/" + url.PathEscape(id)
}

// Component links to a component of a barrel.
func (b Builder) Component(barrelID string, barrelType models.BarrelType, componentID string, appType models.ApplicationType) string {
	return b.components(barrelID, barrelType, "coid", componentID, appType)
}

// ComponentSection links to a component section of a barrel.
func (b Builder) ComponentSection(barrelID string, barrelType models.BarrelType, sectionID string, appType models.ApplicationType) string {
	return b.components(barrelID, barrelType, "seid", sectionID, appType)
}

// Screen links to a screen of a project.
func (b Builder) Screen(projectID, screenID string, appType models.ApplicationType) string {
	if appType == models.ApplicationTypeApp {
		return app("screen", url.Values{"pid": {projectID}, "sid": {screenID}})
	}
	return b.web() + "/project/" + url.PathEscape(projectID) + "/screen/" + url.PathEscape(screenID)
}

func (b Builder) components(barrelID string, barrelType models.BarrelType, param, id string, appType models.ApplicationType) string {
	if appType == models.ApplicationTypeApp {
		return app("components", url.Values{barrelParam(barrelType): {barrelID}, param: {id}})
	}

	// Projects keep their local styleguide under /styleguide.
	path := "/styleguide/" + url.PathEscape(barrelID) + "/components"
	if barrelType == models.BarrelTypeProject {
		path = "/project/" + url.PathEscape(barrelID) + "/styleguide/components"
	}
	return b.web() + path + "?" + url.Values{param: {id}}.Encode()
}

func barrelParam(barrelType models.BarrelType) string {
	if barrelType == models.BarrelTypeProject {
		return "pid"
	}
	return "stid"
}

func app(host string, query url.Values) string {
	return appScheme + host + "?" + query.Encode()
}

// BarrelURI links to a barrel using the default builder.
func BarrelURI(id string, barrelType models.BarrelType, appType models.ApplicationType) string {
	return Default.Barrel(id, barrelType, appType)
}

// ComponentURI links to a component using the default builder.
func ComponentURI(barrelID string, barrelType models.BarrelType, componentID string, appType models.ApplicationType) string {
	return Default.Component(barrelID, barrelType, componentID, appType)
}

// ComponentSectionURI links to a component section using the default builder.
func ComponentSectionURI(barrelID string, barrelType models.BarrelType, sectionID string, appType models.ApplicationType) string {
	return Default.ComponentSection(barrelID, barrelType, sectionID, appType)
}

// ScreenURI links to a screen using the default builder.
func ScreenURI(projectID, screenID string, appType models.ApplicationType) string {
	return Default.Screen(projectID, screenID, appType)
}
