package models

import "fmt"

// ApplicationType is where external links are opened
type ApplicationType string

const (
	ApplicationTypeWeb ApplicationType = "web"
	ApplicationTypeApp ApplicationType = "app"
)

// ParseApplicationType converts a stored value into an ApplicationType.
func ParseApplicationType(s string) (ApplicationType, error) {
	switch ApplicationType(s) {
	case ApplicationTypeWeb, ApplicationTypeApp:
		return ApplicationType(s), nil
	default:
		return "", fmt.Errorf("unknown application type: %q", s)
	}
}
