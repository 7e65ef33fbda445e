package source

import "context"

// Source represents a stream of inbound message texts. How messages are
// obtained from the messaging provider (sessions, auth) stays behind
// this boundary; the watcher only ever sees the text.
type Source interface {
	// Listen blocks, invoking handler for every inbound message text,
	// until ctx is cancelled or the source fails
	Listen(ctx context.Context, handler func(text string)) error

	// Close closes the source connection
	Close() error
}
