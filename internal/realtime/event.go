package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/htran/lms-console/internal/model"
)

// EventKind identifies a named event on the realtime channel. The set
// is closed: frames carrying any other discriminator are dropped at
// the boundary.
type EventKind string

const (
	// EventMessageReceived is an inbound direct message routed to the
	// connected user.
	EventMessageReceived EventKind = "receiveMessage"

	// EventMessageSent acknowledges a message this client sent.
	EventMessageSent EventKind = "messageSent"

	// EventLessonPublished announces a newly published lesson.
	EventLessonPublished EventKind = "newLesson"

	// EventPresenceList carries the roster of connected user ids.
	EventPresenceList EventKind = "onlineUsers"
)

// Outbound frame discriminators.
const (
	frameJoin        = "join"
	frameSendMessage = "sendMessage"
)

// LessonPublished is the payload of an EventLessonPublished event.
type LessonPublished struct {
	// LessonID identifies the published lesson for deep-linking.
	LessonID string `json:"id"`

	// Title is the lesson headline.
	Title string `json:"title"`

	// Instructor is the display name of the lesson's author.
	Instructor string `json:"instructor"`
}

// Event is a decoded realtime event. Exactly one payload field is set,
// matching Kind.
type Event struct {
	Kind EventKind

	// Message is set for EventMessageReceived and EventMessageSent.
	Message *model.ChatMessage

	// Lesson is set for EventLessonPublished.
	Lesson *LessonPublished

	// Roster is set for EventPresenceList.
	Roster []string
}

// frame is the wire shape of every message on the channel: a
// discriminator plus a kind-specific payload.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// decodeFrame parses raw bytes from the transport into a typed Event.
// Unknown discriminators and malformed payloads are errors; the caller
// drops them without delivering anything to subscribers.
func decodeFrame(raw []byte) (Event, error) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return Event{}, fmt.Errorf("decoding frame: %w", err)
	}

	switch EventKind(f.Event) {
	case EventMessageReceived, EventMessageSent:
		var msg model.ChatMessage
		if err := json.Unmarshal(f.Data, &msg); err != nil {
			return Event{}, fmt.Errorf("decoding %s payload: %w", f.Event, err)
		}
		if msg.SenderID == "" || msg.ReceiverID == "" {
			return Event{}, fmt.Errorf("%s payload missing sender or receiver", f.Event)
		}
		return Event{Kind: EventKind(f.Event), Message: &msg}, nil

	case EventLessonPublished:
		var lesson LessonPublished
		if err := json.Unmarshal(f.Data, &lesson); err != nil {
			return Event{}, fmt.Errorf("decoding %s payload: %w", f.Event, err)
		}
		if lesson.Title == "" {
			return Event{}, fmt.Errorf("%s payload missing title", f.Event)
		}
		return Event{Kind: EventLessonPublished, Lesson: &lesson}, nil

	case EventPresenceList:
		var roster []string
		if err := json.Unmarshal(f.Data, &roster); err != nil {
			return Event{}, fmt.Errorf("decoding %s payload: %w", f.Event, err)
		}
		return Event{Kind: EventPresenceList, Roster: roster}, nil

	default:
		return Event{}, fmt.Errorf("unknown event kind %q", f.Event)
	}
}
