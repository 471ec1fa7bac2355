// events.go defines the event types for extension notifications.
//
// Separated from extension.go to isolate the event system. Events let
// extensions react to uploads and searches without modifying core logic.
//
// Design: Events are fire-and-forget notifications, not approval requests.
// Extensions cannot block or veto operations via events; they observe
// after the fact.

package extension

// EventType identifies the kind of event.
type EventType string

const (
	EventBookUpload     EventType = "book:upload"
	EventSearchComplete EventType = "search:complete"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	// EventTitle is the affected book, or "" for multi-book events.
	EventTitle() string
}

// BookUploadEvent is fired after a book is stored.
type BookUploadEvent struct {
	Title    string
	Tags     []string
	Bytes    int
	Replaced bool // an existing book was overwritten
}

func (e BookUploadEvent) EventType() EventType { return EventBookUpload }
func (e BookUploadEvent) EventTitle() string   { return e.Title }

// SearchCompleteEvent is fired after a search has been recorded.
// Title is empty for tag searches; Books lists every book searched.
type SearchCompleteEvent struct {
	Title   string
	Pattern string
	Books   []string
	Chunks  int // total result chunks across books
}

func (e SearchCompleteEvent) EventType() EventType { return EventSearchComplete }
func (e SearchCompleteEvent) EventTitle() string   { return e.Title }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}
