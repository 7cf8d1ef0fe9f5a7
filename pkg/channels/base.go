package channels

import (
	"context"
	"sync/atomic"
)

// Channel is one gateway connection the bot can serve.
type Channel interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool
}

// BaseChannel carries the state shared by channel implementations:
// identity, the sender allowlist and the running flag.
type BaseChannel struct {
	name      string
	allowFrom []string
	running   atomic.Bool
}

func NewBaseChannel(name string, allowFrom []string) *BaseChannel {
	return &BaseChannel{name: name, allowFrom: allowFrom}
}

func (b *BaseChannel) Name() string {
	return b.name
}

// IsAllowed reports whether senderID passes the allowlist. An empty
// allowlist allows everyone.
func (b *BaseChannel) IsAllowed(senderID string) bool {
	if len(b.allowFrom) == 0 {
		return true
	}
	for _, allowed := range b.allowFrom {
		if allowed == senderID {
			return true
		}
	}
	return false
}

func (b *BaseChannel) setRunning(running bool) {
	b.running.Store(running)
}

func (b *BaseChannel) IsRunning() bool {
	return b.running.Load()
}
