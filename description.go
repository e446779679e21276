package syphon

import (
	"sync"

	"github.com/gogpu/syphon/internal/native"
)

// ServerDescription identifies one advertised server: its UUID, its
// human-readable name and the name of the application hosting it.
//
// A description is either borrowed or owned. Directory lookups return
// borrowed descriptions, which the directory keeps alive only until its
// contents next change; closing one is an error. [ServerDescription.Clone]
// and the server Description methods return owned descriptions, which hold
// native references of their own and must be closed.
//
// All methods are safe on a nil receiver and report empty results.
type ServerDescription struct {
	api native.API

	mu       sync.Mutex
	h        native.Handle
	refs     int  // native references this wrapper holds; 0 while borrowed
	released bool // owned references all given back
}

func borrowedDescription(api native.API, h native.Handle) *ServerDescription {
	return &ServerDescription{api: api, h: h}
}

func ownedDescription(api native.API, h native.Handle) *ServerDescription {
	return &ServerDescription{api: api, h: h, refs: 1}
}

// liveHandle returns the native handle while the description is usable.
func (d *ServerDescription) liveHandle() (native.Handle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return 0, false
	}
	return d.h, true
}

// UUID returns the server's unique identifier. The second result is false
// when the framework reports no value or the description was released.
func (d *ServerDescription) UUID() (string, bool) {
	if d == nil {
		return "", false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return "", false
	}
	return d.api.DescriptionUUID(d.h)
}

// Name returns the name the server was announced under. Servers may be
// announced with an empty name; the second result distinguishes an empty
// name from a missing one.
func (d *ServerDescription) Name() (string, bool) {
	if d == nil {
		return "", false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return "", false
	}
	return d.api.DescriptionName(d.h)
}

// AppName returns the name of the application hosting the server.
func (d *ServerDescription) AppName() (string, bool) {
	if d == nil {
		return "", false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return "", false
	}
	return d.api.DescriptionAppName(d.h)
}

// Owned reports whether the description holds native references of its own.
func (d *ServerDescription) Owned() bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refs > 0
}

// Clone returns a new owned description of the same server. Cloning a
// borrowed description before the directory next changes is the way to keep
// it. Clone returns nil if this description was already released.
func (d *ServerDescription) Clone() *ServerDescription {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return nil
	}
	d.api.DescriptionRetain(d.h)
	return ownedDescription(d.api, d.h)
}

// Retain takes one more native reference through this description, making
// it owned if it was borrowed. Every reference taken with Retain must be
// given back through Release or Close. Retaining a released description is
// a logged no-op.
func (d *ServerDescription) Retain() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		Logger().Warn("syphon: retain of a released description ignored")
		return
	}
	d.api.DescriptionRetain(d.h)
	d.refs++
}

// Release gives back one reference taken with Retain, Clone or an owning
// constructor. Releasing a description that holds none, borrowed
// descriptions included, returns [ErrNotOwned] and leaves the native
// reference count untouched.
func (d *ServerDescription) Release() error {
	if d == nil {
		return ErrNotOwned
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return ErrNotOwned
	}
	if d.refs == 0 {
		Logger().Warn("syphon: release of a borrowed description refused")
		return ErrNotOwned
	}
	d.api.DescriptionRelease(d.h)
	d.refs--
	if d.refs == 0 {
		d.released = true
	}
	return nil
}

// Close gives back every reference the description still holds. Closing a
// borrowed description returns [ErrNotOwned]: the directory owns it, and
// the native reference count is never adjusted behind the owner's back. A
// second Close is a no-op.
func (d *ServerDescription) Close() error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return nil
	}
	if d.refs == 0 {
		Logger().Warn("syphon: close of a borrowed description refused")
		return ErrNotOwned
	}
	for d.refs > 0 {
		d.api.DescriptionRelease(d.h)
		d.refs--
	}
	d.released = true
	return nil
}
