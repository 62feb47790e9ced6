// Package events publishes blog post lifecycle events to the message broker.
package events

import (
	"context"
	"time"
)

// EventType names a post lifecycle transition.
type EventType string

const (
	PostCreated EventType = "post.created"
	PostUpdated EventType = "post.updated"
	PostDeleted EventType = "post.deleted"
)

// PostEvent is published after a post mutation has been committed. It
// carries enough context for consumers (search indexers, notifiers) to act
// without querying the primary database.
type PostEvent struct {
	Type       EventType `json:"type"`
	PostID     uint      `json:"post_id"`
	OwnerID    uint      `json:"owner_id"`
	Author     string    `json:"author"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers post events.
type Publisher interface {
	Publish(ctx context.Context, event PostEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, PostEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
