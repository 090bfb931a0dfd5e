package flow

import (
	"fmt"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/remote"
)

// User-facing text.
const (
	MsgNotLoggedIn      = "Please login to Zeplin first."
	MsgNoBarrelFound    = "No project or styleguide found in the sidebar. Add one to continue."
	MsgNoItemFound      = "No screens or components found."
	MsgSelectPreferred  = "Where would you like to open Zeplin links?"
	MsgNothingToRemove  = "There is no project or styleguide in the sidebar."
	OptionCancel        = "Cancel"
	OptionWeb           = "Web"
	OptionApp           = "App"
	TitleJumpTo         = "Jump to Screen or Component"
	TitleRemoveBarrel   = "Remove from Sidebar"
	PlaceholderBarrel   = "Select a project or styleguide"
	PlaceholderJumpable = "Select a screen or component"
)

// OptionAdd is the label of the option that adds a barrel of barrelType.
func OptionAdd(barrelType models.BarrelType) string {
	return "Add " + barrelType.Title()
}

func titleAdd(barrelType models.BarrelType) string {
	return OptionAdd(barrelType) + " to Sidebar"
}

func msgNoBarrelToAdd(barrelType models.BarrelType) string {
	return fmt.Sprintf("No %s found to add.", barrelType)
}

func msgAdded(b models.Barrel) string {
	return fmt.Sprintf("%s added to the sidebar.", b.Name)
}

func msgRemoved(b models.Barrel) string {
	return fmt.Sprintf("%s removed from the sidebar.", b.Name)
}

// barrelError renders a failure to load the content of barrel.
func barrelError(barrel models.Barrel) func(error) string {
	return func(err error) string {
		switch remote.KindOf(err) {
		case remote.KindNotAuthenticated:
			return MsgNotLoggedIn
		case remote.KindNotFound:
			return fmt.Sprintf("%s %s could not be found. It may have been deleted or you may have lost access.", barrel.Type.Title(), barrel.Name)
		default:
			return fmt.Sprintf("Could not load %s: %v", barrel.Name, err)
		}
	}
}

func barrelListError(barrelType models.BarrelType) func(error) string {
	return func(err error) string {
		if remote.IsNotAuthenticated(err) {
			return MsgNotLoggedIn
		}
		return fmt.Sprintf("Could not load %ss: %v", barrelType, err)
	}
}

func barrelEntry(b models.Barrel) Entry {
	detail := b.Type.Title()
	if b.Description != "" {
		detail += " · " + b.Description
	} else if b.Platform != "" {
		detail += " · " + b.Platform
	}
	return Entry{Label: b.Name, Detail: detail}
}
