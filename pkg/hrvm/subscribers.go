package hrvm

import (
	"errors"
	"fmt"
	"sync"
)

// ErrChannelSubscriberClosed is returned when a channel subscriber is
// published to after being closed.
var ErrChannelSubscriberClosed = errors.New("hrvm: channel subscriber closed")

// UpdateFunc is invoked with every published update.
type UpdateFunc func(Update) error

// NewCallbackSubscriber adapts an UpdateFunc into a full Subscriber so callers
// can plug arbitrary functions without defining structs.
func NewCallbackSubscriber(name string, fn UpdateFunc) Subscriber {
	if name == "" {
		name = "callback"
	}
	return &callbackSubscriber{name: name, fn: fn}
}

// NewChannelSubscriber exposes updates via a channel; it returns the
// subscriber, the read-only channel, and a close function the caller should
// invoke during shutdown. Delivery never blocks: when the buffer is full the
// oldest pending update is dropped so consumers always see the freshest state.
func NewChannelSubscriber(name string, buffer int) (Subscriber, <-chan Update, func()) {
	if name == "" {
		name = "channel"
	}
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Update, buffer)
	s := &channelSubscriber{name: name, ch: ch}
	return s, ch, func() { s.close() }
}

type callbackSubscriber struct {
	name string
	fn   UpdateFunc
}

func (s *callbackSubscriber) Publish(u Update) error {
	if s.fn == nil {
		return fmt.Errorf("callback subscriber %q: nil handler", s.name)
	}
	return s.fn(u)
}

func (s *callbackSubscriber) Name() string { return s.name }

type channelSubscriber struct {
	name   string
	mu     sync.Mutex
	ch     chan Update
	closed bool
}

// Publish is called while the poller holds its state lock, so it must
// never block. Latest-wins: a full buffer sheds its oldest entry. The
// mutex keeps a concurrent close from racing the channel send.
func (s *channelSubscriber) Publish(u Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrChannelSubscriberClosed
	}

	for {
		select {
		case s.ch <- u:
			return nil
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

func (s *channelSubscriber) Name() string { return s.name }

func (s *channelSubscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
