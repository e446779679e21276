package syphon

import "github.com/gogpu/syphon/internal/native"

// ServerDirectory lists the servers currently advertised on the system,
// from every application. There is one shared directory per process.
//
// All methods are safe on a nil receiver and report empty results.
type ServerDirectory struct {
	api native.API
	h   native.Handle
}

// SharedDirectory returns the process-wide server directory, or nil when
// the framework is unavailable.
func SharedDirectory() *ServerDirectory {
	a := nativeAPI()
	if !a.Available() {
		return nil
	}
	h := a.DirectoryShared()
	if h == 0 {
		return nil
	}
	return &ServerDirectory{api: a, h: h}
}

// Count returns the number of advertised servers.
func (d *ServerDirectory) Count() int {
	if d == nil {
		return 0
	}
	return d.api.DirectoryServerCount(d.h)
}

// At returns the description at index as a borrowed reference, valid only
// until the directory contents next change. Clone or Retain it to keep it
// longer. Out-of-range indexes return nil.
func (d *ServerDirectory) At(index int) *ServerDescription {
	if d == nil {
		return nil
	}
	h := d.api.DirectoryServerAt(d.h, index)
	if h == 0 {
		return nil
	}
	return borrowedDescription(d.api, h)
}

// Servers returns the descriptions currently in the directory. The entries
// are borrowed, valid only until the directory contents next change; copy
// their fields out immediately, or Clone the ones to keep.
func (d *ServerDirectory) Servers() []*ServerDescription {
	if d == nil {
		return nil
	}
	n := d.Count()
	out := make([]*ServerDescription, 0, n)
	for i := 0; i < n; i++ {
		if desc := d.At(i); desc != nil {
			out = append(out, desc)
		}
	}
	return out
}
