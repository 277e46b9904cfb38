// Package event provides the synchronous notification bus of the editor.
//
// A Bus delivers a message to its subscribers in subscription order, on the
// caller's goroutine, until one of them reports the message as handled.
// Publish returns whether anyone handled the message.
//
// Basic usage:
//
//	bus := event.NewBus[buffer.Message]()
//	sub := bus.Subscribe(func(m buffer.Message) bool {
//	    return false // observe, let others see it too
//	})
//	defer sub.Cancel()
//
//	handled := bus.Publish(msg)
//
// Handlers may publish further messages and may subscribe or cancel during
// delivery; subscription changes take effect from the next Publish.
package event
