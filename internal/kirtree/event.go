package kirtree

// EventType is the kind of interaction or lifecycle signal an Event
// record responds to.
type EventType int

const (
	EventClick EventType = iota
	EventHover
	EventFocus
	EventBlur
	EventKey
	EventScroll
	EventTimer
	EventCustom
)

// HandlerSource captures an inline handler's source text and the
// closure variables it closed over at authoring time.
type HandlerSource struct {
	Language string
	Code     string
	File     string
	Line     int
	Closure  map[string]string
}

// Event is one binding between an interaction type and a handler. Event
// is a node in the component's singly-linked event list; Next points to
// the previously-added event (push-front, per spec §5 "insertion-
// reverse").
type Event struct {
	Type           EventType
	Name           string
	LogicID        uint32
	HandlerData    string
	HandlerSource  *HandlerSource
	BytecodeFuncID uint32
	Next           *Event
}

// PushEvent prepends e onto head, returning the new head (push-front
// semantics per spec §5).
func PushEvent(head *Event, e *Event) *Event {
	e.Next = head
	return e
}

// FindEvent returns the most recently added Event matching t (head-
// first traversal honors push-front insertion order, per spec §5
// "event lookup returns the most recently added handler matching a
// type").
func FindEvent(head *Event, t EventType) (*Event, bool) {
	for e := head; e != nil; e = e.Next {
		if e.Type == t {
			return e, true
		}
	}
	return nil, false
}

// LogicSourceType names the language/runtime an attached Logic block is
// written in.
type LogicSourceType int

const (
	LogicLua LogicSourceType = iota
	LogicC
	LogicWASM
	LogicNative
)

// Logic is one compiled or interpreted handler-body record. The IR core
// never executes it (spec §1 Out of scope) — it is stored and handed to
// an external logic runtime.
type Logic struct {
	ID         uint32
	SourceType LogicSourceType
	SourceCode string
	Next       *Logic
}
