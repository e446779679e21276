package syphon

// Graphics handles cross this package untouched: syphon never dereferences
// or interprets them, it only forwards them to the framework. They are plain
// integers holding caller-owned native pointers, so storing them does not
// pin Go memory.

// GLContext identifies a CGL context (CGLContextObj) owned by the caller.
// Convert from a raw pointer with GLContext(uintptr(ptr)).
type GLContext uintptr

// MetalDevice identifies an id<MTLDevice> owned by the caller.
type MetalDevice uintptr

// MetalCommandBuffer identifies an id<MTLCommandBuffer> owned by the caller.
// Publishing encodes work onto it; committing it stays the caller's job.
type MetalCommandBuffer uintptr

// MetalTextureHandle identifies an id<MTLTexture> owned by the caller.
type MetalTextureHandle uintptr
