package models

// JumpableKind tells which entity a Jumpable carries.
type JumpableKind int

const (
	JumpableScreen JumpableKind = iota
	JumpableComponent
)

func (k JumpableKind) String() string {
	switch k {
	case JumpableScreen:
		return "Screen"
	case JumpableComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Jumpable is a screen or component that can be the target of a jump.
// Exactly one of Screen and Component is set, matching Kind.
type Jumpable struct {
	Kind      JumpableKind
	Screen    *Screen
	Component *Component
}

// ScreenJumpable wraps a screen.
func ScreenJumpable(s Screen) Jumpable {
	return Jumpable{Kind: JumpableScreen, Screen: &s}
}

// ComponentJumpable wraps a component.
func ComponentJumpable(c Component) Jumpable {
	return Jumpable{Kind: JumpableComponent, Component: &c}
}

// ID returns the wrapped entity's id.
func (j Jumpable) ID() string {
	if j.Kind == JumpableComponent {
		return j.Component.ID
	}
	return j.Screen.ID
}

// Name returns the wrapped entity's name.
func (j Jumpable) Name() string {
	if j.Kind == JumpableComponent {
		return j.Component.Name
	}
	return j.Screen.Name
}
