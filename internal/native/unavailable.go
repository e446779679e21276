// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !darwin || !cgo

package native

// Default returns the binding for this build. Without macOS and cgo the
// framework cannot be linked, so every operation is the documented no-op.
func Default() API { return Unavailable{} }
