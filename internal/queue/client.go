package queue

import "context"

// Client publishes resume lifecycle events to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
