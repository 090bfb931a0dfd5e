package tree

import "strings"

// ContextTag marks a capability of a node. Actions dispatch on tags rather
// than on concrete node types.
type ContextTag string

const (
	ContextJumpTo           ContextTag = "jumpTo"
	ContextBarrel           ContextTag = "barrel"
	ContextScreens          ContextTag = "screens"
	ContextScreenSection    ContextTag = "screenSection"
	ContextScreen           ContextTag = "screen"
	ContextComponents       ContextTag = "components"
	ContextComponentBarrel  ContextTag = "componentBarrel"
	ContextComponentSection ContextTag = "componentSection"
	ContextComponent        ContextTag = "component"
	// ContextZeplinLink marks nodes that can be opened externally.
	ContextZeplinLink ContextTag = "zeplinLink"
)

// ContextSet is an ordered set of tags.
type ContextSet struct {
	tags []ContextTag
}

// NewContextSet creates a set from tags, dropping duplicates.
func NewContextSet(tags ...ContextTag) ContextSet {
	set := ContextSet{}
	for _, tag := range tags {
		if !set.Contains(tag) {
			set.tags = append(set.tags, tag)
		}
	}
	return set
}

// Contains reports whether tag is in the set.
func (s ContextSet) Contains(tag ContextTag) bool {
	for _, t := range s.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tags returns the tags in insertion order.
func (s ContextSet) Tags() []ContextTag {
	return append([]ContextTag(nil), s.tags...)
}

// String renders the set as the context value handed to hosts.
func (s ContextSet) String() string {
	parts := make([]string, len(s.tags))
	for i, t := range s.tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, "|")
}

// Tag sets per node kind.
var (
	jumpToContext           = NewContextSet(ContextJumpTo)
	barrelContext           = NewContextSet(ContextBarrel, ContextZeplinLink)
	screensContext          = NewContextSet(ContextScreens)
	screenSectionContext    = NewContextSet(ContextScreenSection)
	screenContext           = NewContextSet(ContextScreen, ContextZeplinLink)
	componentsContext       = NewContextSet(ContextComponents)
	componentBarrelContext  = NewContextSet(ContextComponentBarrel, ContextZeplinLink)
	componentSectionContext = NewContextSet(ContextComponentSection, ContextZeplinLink)
	componentContext        = NewContextSet(ContextComponent, ContextZeplinLink)
)
