/*
Package realtime defines the transport client the leave board uses to
tell presentation layers that their snapshot is stale.

PURPOSE:
  The transport is an explicitly injected dependency, not an ambient
  global: handlers receive a Client, tests inject the in-memory
  implementation, and connection state is a queryable value instead of a
  flag living beside the socket.

PROTOCOL:
  Events carry a name and a small JSON-compatible payload. Consumers do
  not patch their local state from the payload: on any leave.* event
  they refetch the full snapshot and recompute derived views, which
  keeps recomputation idempotent and ordering-insensitive.

IMPLEMENTATIONS:
  - Memory: in-process fan-out hub for tests and single-binary runs
  - AMQP:   RabbitMQ fanout exchange for multi-replica deployments

SEE ALSO:
  - memory.go, amqp.go
*/
package realtime

import "context"

// Event names published by the leave board.
const (
	EventLeaveCreated = "leave.created"
	EventLeaveUpdated = "leave.updated"
	EventLeaveDeleted = "leave.deleted"
)

// Event is one notification on the transport.
type Event struct {
	Name    string            `json:"name"`
	Payload map[string]string `json:"payload,omitempty"`
}

// Client is the injected transport. Publish never blocks on slow
// consumers; Subscribe returns a channel closed when the context is
// done or the client closes.
type Client interface {
	Publish(ctx context.Context, e Event) error
	Subscribe(ctx context.Context) (<-chan Event, error)
	Connected() bool
	Close() error
}
