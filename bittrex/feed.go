package bittrex

import (
	"sync"

	"github.com/tmalkov/bittrex-stream/internal/signalr"
)

// Feed is a continuous stream of decoded push events from one channel.
// Events are delivered in frame arrival order and, within one frame, in
// argument order. The stream is infinite and not restartable: when Events
// closes, Err reports the terminal error (nil after a caller-driven
// Close), and resuming requires a new Listen call. Closing the feed
// releases the underlying socket exactly once.
type Feed struct {
	channel *signalr.Channel
	events  chan any
	done    chan struct{}

	stopOnce sync.Once

	errMu sync.Mutex
	err   error
}

func newFeed(ch *signalr.Channel) *Feed {
	return &Feed{
		channel: ch,
		events:  make(chan any),
		done:    make(chan struct{}),
	}
}

// Events returns the event channel. It is closed when the feed ends.
func (f *Feed) Events() <-chan any {
	return f.events
}

// Err returns the terminal error after Events has closed.
func (f *Feed) Err() error {
	f.errMu.Lock()
	defer f.errMu.Unlock()
	return f.err
}

// Close stops the feed and releases the socket. Safe to call more than
// once and from any goroutine.
func (f *Feed) Close() error {
	var err error
	f.stopOnce.Do(func() {
		close(f.done)
		err = f.channel.Close()
	})
	return err
}

func (f *Feed) setErr(err error) {
	f.errMu.Lock()
	if f.err == nil {
		f.err = err
	}
	f.errMu.Unlock()
}

// run pumps channel messages through accept until the channel terminates,
// accept fails, or the consumer closes the feed. Every exit path closes
// the events channel and releases the socket.
func (f *Feed) run(accept func(signalr.Message) ([]any, error)) {
	defer close(f.events)
	defer f.Close()

	for {
		select {
		case <-f.done:
			return
		case msg, ok := <-f.channel.Messages():
			if !ok {
				f.setErr(f.channel.Err())
				return
			}

			events, err := accept(msg)
			if err != nil {
				f.setErr(err)
				return
			}

			for _, event := range events {
				select {
				case f.events <- event:
				case <-f.done:
					return
				}
			}
		}
	}
}

// callbackDecoder accepts callbacks with one of the given hub method
// names and decodes every argument into one event, preserving argument
// order. A decode failure aborts the whole feed rather than skipping the
// bad frame.
func callbackDecoder(methods ...string) func(signalr.Message) ([]any, error) {
	wanted := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		wanted[m] = struct{}{}
	}

	return func(msg signalr.Message) ([]any, error) {
		if msg.Kind != signalr.KindCallback {
			return nil, nil
		}
		if _, ok := wanted[msg.Method]; !ok {
			return nil, nil
		}

		events := make([]any, 0, len(msg.Args))
		for _, arg := range msg.Args {
			event, err := decodePayload(arg)
			if err != nil {
				return nil, err
			}
			events = append(events, event)
		}
		return events, nil
	}
}
