// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build darwin && cgo

package native

import "C"

import (
	"unsafe"

	"github.com/mattn/go-pointer"
)

// goSyphonNewFrame is invoked by the glue on whatever thread the framework
// dispatches new-frame notifications from. The userdata token resolves to the
// pinned Go handler; a token already unpinned resolves to nil and the
// notification is dropped.
//
//export goSyphonNewFrame
func goSyphonNewFrame(userdata unsafe.Pointer) {
	fn, _ := pointer.Restore(userdata).(func())
	if fn != nil {
		fn()
	}
}
