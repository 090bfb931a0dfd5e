package flow

// Result is how a flow ended.
type Result int

const (
	// Completed means the flow reached its final action.
	Completed Result = iota
	// Cancelled means the user dismissed a picker or message.
	Cancelled
	// NotAuthenticated means the flow stopped because nobody is logged in.
	NotAuthenticated
	// NoSavedBarrels means there was nothing in the sidebar to work on.
	NoSavedBarrels
	// Empty means a picker had nothing to offer.
	Empty
	// Failed means loading data or performing the action failed.
	Failed
)

func (r Result) String() string {
	switch r {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case NotAuthenticated:
		return "not authenticated"
	case NoSavedBarrels:
		return "no saved barrels"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
