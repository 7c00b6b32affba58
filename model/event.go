package model

import "time"

type EventType string

const (
	EventSignedUp  EventType = "signed_up"
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
	EventUpdated   EventType = "updated"
	EventDeleted   EventType = "deleted"
	EventCreated   EventType = "created"
)

type EventSubject string

const (
	SubjectActor   EventSubject = "actor"
	SubjectPost    EventSubject = "post"
	SubjectComment EventSubject = "comment"
)

// Event is a lifecycle notification published after a successful write.
type Event struct {
	Type       EventType    `json:"type"`
	Subject    EventSubject `json:"subject"`
	SubjectID  string       `json:"subject_id"`
	ActorID    string       `json:"actor_id"`
	Role       Role         `json:"role"`
	OccurredAt time.Time    `json:"occurred_at"`
}
