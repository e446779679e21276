package syphon

// Options is the options dictionary accepted by server and client
// constructors. The framework defines no public keys today, so the native
// calls receive an empty dictionary regardless; the parameter exists so
// adding a key is not an API break. Pass nil.
type Options map[string]string

// FrameHandler is called after a connected server publishes a new frame.
//
// The framework invokes it on an arbitrary thread of its own, never the
// caller's. Handlers should be quick and must not block: signal another
// goroutine (a channel send, a condition broadcast) and return. A handler
// that panics is recovered and logged through [Logger]; the panic does not
// cross into the notification thread.
type FrameHandler func()
