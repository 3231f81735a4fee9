package domain

type EventKind string

const (
	EventCommand   EventKind = "command"
	EventSelection EventKind = "selection"
	EventText      EventKind = "text"
	EventPhoto     EventKind = "photo"
)

// Choice is one tappable option offered alongside a prompt.
type Choice struct {
	Label string
	Data  string
}

// Event is a transport-agnostic inbound message. The delivery layer maps raw
// updates to Events; nothing past that boundary sees transport payloads.
type Event struct {
	UserID       int64
	Kind         EventKind
	Command      string
	Text         string
	PhotoRef     string
	ReporterName string
}
