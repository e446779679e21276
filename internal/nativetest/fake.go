// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package nativetest provides an instrumented in-memory implementation of
// the native API for tests. It models the framework's observable behaviour,
// reference-counted server descriptions, directory membership and
// asynchronous new-frame dispatch, and keeps counters that let tests assert
// ownership balance and detect use of dead handles.
package nativetest

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/syphon/internal/native"
	"github.com/google/uuid"
)

// Stats is a snapshot of live native objects and bookkeeping counters.
type Stats struct {
	// Calls counts native entry points hit, capability queries excluded.
	Calls int

	GLServers     int
	GLClients     int
	GLImages      int
	MetalServers  int
	MetalClients  int
	MetalTextures int

	// Descriptions counts description records still referenced by callers.
	Descriptions int
	Retains      int
	Releases     int

	// Misuses counts operations on dead or foreign handles: reads through a
	// description that is neither in the directory nor retained, releases of
	// handles not owned at the time, and calls on already released objects.
	Misuses int
}

// fakeDescription is one server description dictionary. It stays alive while
// the directory lists it or a caller holds a retain; frame state lives here
// so that local servers and remote publishes share one sequencing path.
type fakeDescription struct {
	uuid    string
	name    string
	appName string

	inDirectory bool
	refs        int

	seq    uint64
	tex    uint32
	mtlTex uintptr
	frameW float64
	frameH float64
}

type fakeServer struct {
	desc    native.Handle
	stopped bool
	bound   bool
	boundW  float64
	boundH  float64
}

type fakeClient struct {
	uuid    string
	valid   bool
	seen    uint64
	handler func()

	// dispatchMu is held while the handler runs. Stop sets stopped under it,
	// so once Stop returns no further handler invocation is observable.
	dispatchMu sync.Mutex
	stopped    atomic.Bool
}

type fakeFrame struct {
	tex uint32
	ptr uintptr
	w   float64
	h   float64
}

// Fake implements native.API in memory. The zero value is not usable; call
// New. All methods are safe for concurrent use.
type Fake struct {
	mu sync.Mutex

	available  bool
	failCreate bool

	nextHandle native.Handle
	dirHandle  native.Handle

	calls    int
	retains  int
	releases int
	misuses  int

	order  []native.Handle
	byUUID map[string]native.Handle
	descs  map[native.Handle]*fakeDescription

	glServers   map[native.Handle]*fakeServer
	mtlServers  map[native.Handle]*fakeServer
	glClients   map[native.Handle]*fakeClient
	mtlClients  map[native.Handle]*fakeClient
	glImages    map[native.Handle]*fakeFrame
	mtlTextures map[native.Handle]*fakeFrame
}

var _ native.API = (*Fake)(nil)

// New returns an available Fake with an empty server directory.
func New() *Fake {
	return &Fake{
		available:   true,
		nextHandle:  0x100,
		byUUID:      map[string]native.Handle{},
		descs:       map[native.Handle]*fakeDescription{},
		glServers:   map[native.Handle]*fakeServer{},
		mtlServers:  map[native.Handle]*fakeServer{},
		glClients:   map[native.Handle]*fakeClient{},
		mtlClients:  map[native.Handle]*fakeClient{},
		glImages:    map[native.Handle]*fakeFrame{},
		mtlTextures: map[native.Handle]*fakeFrame{},
	}
}

// SetAvailable controls what Available reports.
func (f *Fake) SetAvailable(ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.available = ok
}

// SetFailCreates makes every subsequent create call return a zero handle.
func (f *Fake) SetFailCreates(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failCreate = fail
}

// AddServer announces a remote server in the directory and returns its UUID.
func (f *Fake) AddServer(name, appName string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := &fakeDescription{
		uuid:        uuid.NewString(),
		name:        name,
		appName:     appName,
		inDirectory: true,
	}
	f.announce(rec)
	return rec.uuid
}

// RemoveServer withdraws a server from the directory, as when the publishing
// application quits. Descriptions nobody retained die with it.
func (f *Fake) RemoveServer(uuidStr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dh, ok := f.byUUID[uuidStr]
	if !ok {
		return
	}
	f.withdraw(dh)
}

// Publish records a frame for the named server and wakes its clients, as a
// publisher in another process would.
func (f *Fake) Publish(uuidStr string, tex uint32, w, h float64) {
	f.mu.Lock()
	dh, ok := f.byUUID[uuidStr]
	if !ok {
		f.mu.Unlock()
		return
	}
	rec := f.descs[dh]
	rec.seq++
	rec.tex = tex
	rec.frameW = w
	rec.frameH = h
	targets := f.clientsFor(rec.uuid)
	f.mu.Unlock()
	dispatch(targets)
}

// Stats returns a snapshot of the counters.
func (f *Fake) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	live := 0
	for _, rec := range f.descs {
		if rec.refs > 0 {
			live++
		}
	}
	return Stats{
		Calls:         f.calls,
		GLServers:     len(f.glServers),
		GLClients:     len(f.glClients),
		GLImages:      len(f.glImages),
		MetalServers:  len(f.mtlServers),
		MetalClients:  len(f.mtlClients),
		MetalTextures: len(f.mtlTextures),
		Descriptions:  live,
		Retains:       f.retains,
		Releases:      f.releases,
		Misuses:       f.misuses,
	}
}

func (f *Fake) alloc() native.Handle {
	f.nextHandle++
	return f.nextHandle
}

func (f *Fake) announce(rec *fakeDescription) native.Handle {
	dh := f.alloc()
	f.descs[dh] = rec
	f.byUUID[rec.uuid] = dh
	f.order = append(f.order, dh)
	return dh
}

func (f *Fake) withdraw(dh native.Handle) {
	rec := f.descs[dh]
	if rec == nil || !rec.inDirectory {
		return
	}
	rec.inDirectory = false
	delete(f.byUUID, rec.uuid)
	for i, h := range f.order {
		if h == dh {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	if rec.refs == 0 {
		delete(f.descs, dh)
	}
}

func (f *Fake) clientsFor(uuidStr string) []*fakeClient {
	var targets []*fakeClient
	for _, c := range f.glClients {
		if c.valid && c.uuid == uuidStr && !c.stopped.Load() {
			targets = append(targets, c)
		}
	}
	for _, c := range f.mtlClients {
		if c.valid && c.uuid == uuidStr && !c.stopped.Load() {
			targets = append(targets, c)
		}
	}
	return targets
}

// dispatch runs handlers the way the framework does, on their own goroutines
// rather than the publisher's.
func dispatch(targets []*fakeClient) {
	for _, c := range targets {
		go func() {
			c.dispatchMu.Lock()
			defer c.dispatchMu.Unlock()
			if c.stopped.Load() || c.handler == nil {
				return
			}
			c.handler()
		}()
	}
}

func stopClient(c *fakeClient) {
	c.dispatchMu.Lock()
	c.stopped.Store(true)
	c.dispatchMu.Unlock()
}

func (f *Fake) Available() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.available
}

func (f *Fake) DirectoryShared() native.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.dirHandle == 0 {
		f.dirHandle = f.alloc()
	}
	return f.dirHandle
}

func (f *Fake) DirectoryServerCount(dir native.Handle) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if dir == 0 || dir != f.dirHandle {
		f.misuses++
		return 0
	}
	return len(f.order)
}

func (f *Fake) DirectoryServerAt(dir native.Handle, index int) native.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if dir == 0 || dir != f.dirHandle {
		f.misuses++
		return 0
	}
	if index < 0 || index >= len(f.order) {
		return 0
	}
	return f.order[index]
}

func (f *Fake) description(h native.Handle) *fakeDescription {
	rec := f.descs[h]
	if rec == nil {
		f.misuses++
		return nil
	}
	if !rec.inDirectory && rec.refs == 0 {
		f.misuses++
		return nil
	}
	return rec
}

func (f *Fake) DescriptionUUID(desc native.Handle) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	rec := f.description(desc)
	if rec == nil {
		return "", false
	}
	return rec.uuid, true
}

func (f *Fake) DescriptionName(desc native.Handle) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	rec := f.description(desc)
	if rec == nil {
		return "", false
	}
	return rec.name, true
}

func (f *Fake) DescriptionAppName(desc native.Handle) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	rec := f.description(desc)
	if rec == nil {
		return "", false
	}
	return rec.appName, true
}

func (f *Fake) DescriptionRetain(desc native.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	rec := f.description(desc)
	if rec == nil {
		return
	}
	rec.refs++
	f.retains++
}

func (f *Fake) DescriptionRelease(desc native.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	rec := f.descs[desc]
	if rec == nil || rec.refs == 0 {
		f.misuses++
		return
	}
	rec.refs--
	f.releases++
	if rec.refs == 0 && !rec.inDirectory {
		delete(f.descs, desc)
	}
}

func (f *Fake) GLServerCreate(name string, context uintptr, options map[string]string) native.Handle {
	return f.serverCreate(f.glServers, name)
}

func (f *Fake) MetalServerCreate(name string, device uintptr, options map[string]string) native.Handle {
	return f.serverCreate(f.mtlServers, name)
}

func (f *Fake) serverCreate(table map[native.Handle]*fakeServer, name string) native.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failCreate {
		return 0
	}
	rec := &fakeDescription{
		uuid:        uuid.NewString(),
		name:        name,
		appName:     "nativetest",
		inDirectory: true,
	}
	dh := f.announce(rec)
	sh := f.alloc()
	table[sh] = &fakeServer{desc: dh}
	return sh
}

func (f *Fake) GLServerHasClients(server native.Handle) bool {
	return f.serverHasClients(f.glServers, server)
}

func (f *Fake) MetalServerHasClients(server native.Handle) bool {
	return f.serverHasClients(f.mtlServers, server)
}

func (f *Fake) serverHasClients(table map[native.Handle]*fakeServer, server native.Handle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	srv := table[server]
	if srv == nil {
		f.misuses++
		return false
	}
	rec := f.descs[srv.desc]
	return rec != nil && len(f.clientsFor(rec.uuid)) > 0
}

func (f *Fake) GLServerDescription(server native.Handle) native.Handle {
	return f.serverDescription(f.glServers, server)
}

func (f *Fake) MetalServerDescription(server native.Handle) native.Handle {
	return f.serverDescription(f.mtlServers, server)
}

func (f *Fake) serverDescription(table map[native.Handle]*fakeServer, server native.Handle) native.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	srv := table[server]
	if srv == nil {
		f.misuses++
		return 0
	}
	rec := f.descs[srv.desc]
	if rec == nil {
		f.misuses++
		return 0
	}
	rec.refs++
	f.retains++
	return srv.desc
}

func (f *Fake) GLServerPublish(server native.Handle, tex, target uint32, x, y, w, h, texW, texH float64, flipped bool) {
	f.mu.Lock()
	srv := f.glServers[server]
	f.calls++
	if srv == nil || srv.stopped {
		f.misuses++
		f.mu.Unlock()
		return
	}
	rec := f.descs[srv.desc]
	rec.seq++
	rec.tex = tex
	rec.frameW = texW
	rec.frameH = texH
	targets := f.clientsFor(rec.uuid)
	f.mu.Unlock()
	dispatch(targets)
}

func (f *Fake) GLServerBindToDrawFrame(server native.Handle, w, h float64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	srv := f.glServers[server]
	if srv == nil {
		f.misuses++
		return false
	}
	if srv.stopped {
		return false
	}
	srv.bound = true
	srv.boundW = w
	srv.boundH = h
	return true
}

func (f *Fake) GLServerUnbindAndPublish(server native.Handle) {
	f.mu.Lock()
	f.calls++
	srv := f.glServers[server]
	if srv == nil || !srv.bound {
		f.misuses++
		f.mu.Unlock()
		return
	}
	srv.bound = false
	rec := f.descs[srv.desc]
	rec.seq++
	rec.frameW = srv.boundW
	rec.frameH = srv.boundH
	targets := f.clientsFor(rec.uuid)
	f.mu.Unlock()
	dispatch(targets)
}

func (f *Fake) MetalServerPublish(server native.Handle, texture, commandBuffer uintptr, x, y, w, h float64, flipped bool) {
	f.mu.Lock()
	srv := f.mtlServers[server]
	f.calls++
	if srv == nil || srv.stopped {
		f.misuses++
		f.mu.Unlock()
		return
	}
	rec := f.descs[srv.desc]
	rec.seq++
	rec.mtlTex = texture
	rec.frameW = w
	rec.frameH = h
	targets := f.clientsFor(rec.uuid)
	f.mu.Unlock()
	dispatch(targets)
}

func (f *Fake) MetalServerFrameImage(server native.Handle) native.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	srv := f.mtlServers[server]
	if srv == nil {
		f.misuses++
		return 0
	}
	rec := f.descs[srv.desc]
	if rec == nil || rec.seq == 0 {
		return 0
	}
	return f.newMetalTexture(rec)
}

func (f *Fake) GLServerStop(server native.Handle)    { f.serverStop(f.glServers, server) }
func (f *Fake) MetalServerStop(server native.Handle) { f.serverStop(f.mtlServers, server) }

func (f *Fake) serverStop(table map[native.Handle]*fakeServer, server native.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	srv := table[server]
	if srv == nil {
		f.misuses++
		return
	}
	if srv.stopped {
		return
	}
	srv.stopped = true
	f.withdraw(srv.desc)
}

func (f *Fake) GLServerRelease(server native.Handle)    { f.serverRelease(f.glServers, server) }
func (f *Fake) MetalServerRelease(server native.Handle) { f.serverRelease(f.mtlServers, server) }

func (f *Fake) serverRelease(table map[native.Handle]*fakeServer, server native.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	srv := table[server]
	if srv == nil {
		f.misuses++
		return
	}
	if !srv.stopped {
		f.withdraw(srv.desc)
	}
	delete(table, server)
}

func (f *Fake) GLClientCreate(desc native.Handle, context uintptr, options map[string]string, onFrame func()) native.Handle {
	return f.clientCreate(f.glClients, desc, onFrame)
}

func (f *Fake) MetalClientCreate(desc native.Handle, device uintptr, options map[string]string, onFrame func()) native.Handle {
	return f.clientCreate(f.mtlClients, desc, onFrame)
}

func (f *Fake) clientCreate(table map[native.Handle]*fakeClient, desc native.Handle, onFrame func()) native.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failCreate {
		return 0
	}
	c := &fakeClient{handler: onFrame}
	if rec := f.descs[desc]; rec != nil && (rec.inDirectory || rec.refs > 0) {
		c.uuid = rec.uuid
		c.valid = true
	}
	ch := f.alloc()
	table[ch] = c
	return ch
}

func (f *Fake) GLClientIsValid(client native.Handle) bool {
	return f.clientIsValid(f.glClients, client)
}

func (f *Fake) MetalClientIsValid(client native.Handle) bool {
	return f.clientIsValid(f.mtlClients, client)
}

func (f *Fake) clientIsValid(table map[native.Handle]*fakeClient, client native.Handle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	c := table[client]
	if c == nil {
		f.misuses++
		return false
	}
	if !c.valid || c.stopped.Load() {
		return false
	}
	// Connection dies with the server's directory entry.
	return f.clientSource(c) != nil
}

func (f *Fake) GLClientHasNewFrame(client native.Handle) bool {
	return f.clientHasNewFrame(f.glClients, client)
}

func (f *Fake) MetalClientHasNewFrame(client native.Handle) bool {
	return f.clientHasNewFrame(f.mtlClients, client)
}

func (f *Fake) clientHasNewFrame(table map[native.Handle]*fakeClient, client native.Handle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	c := table[client]
	if c == nil {
		f.misuses++
		return false
	}
	rec := f.clientSource(c)
	return rec != nil && rec.seq > c.seen
}

func (f *Fake) clientSource(c *fakeClient) *fakeDescription {
	dh, ok := f.byUUID[c.uuid]
	if !ok {
		return nil
	}
	return f.descs[dh]
}

func (f *Fake) GLClientFrameImage(client native.Handle) native.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	c := f.glClients[client]
	if c == nil {
		f.misuses++
		return 0
	}
	rec := f.clientSource(c)
	if rec == nil || rec.seq == 0 {
		return 0
	}
	c.seen = rec.seq
	ih := f.alloc()
	f.glImages[ih] = &fakeFrame{tex: rec.tex, w: rec.frameW, h: rec.frameH}
	return ih
}

func (f *Fake) MetalClientFrameImage(client native.Handle) native.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	c := f.mtlClients[client]
	if c == nil {
		f.misuses++
		return 0
	}
	rec := f.clientSource(c)
	if rec == nil || rec.seq == 0 {
		return 0
	}
	c.seen = rec.seq
	return f.newMetalTexture(rec)
}

func (f *Fake) newMetalTexture(rec *fakeDescription) native.Handle {
	th := f.alloc()
	ptr := rec.mtlTex
	if ptr == 0 {
		ptr = uintptr(th)
	}
	f.mtlTextures[th] = &fakeFrame{ptr: ptr, w: rec.frameW, h: rec.frameH}
	return th
}

func (f *Fake) GLClientStop(client native.Handle)    { f.clientStop(f.glClients, client) }
func (f *Fake) MetalClientStop(client native.Handle) { f.clientStop(f.mtlClients, client) }

func (f *Fake) clientStop(table map[native.Handle]*fakeClient, client native.Handle) {
	f.mu.Lock()
	f.calls++
	c := table[client]
	if c == nil {
		f.misuses++
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	stopClient(c)
}

func (f *Fake) GLClientRelease(client native.Handle)    { f.clientRelease(f.glClients, client) }
func (f *Fake) MetalClientRelease(client native.Handle) { f.clientRelease(f.mtlClients, client) }

func (f *Fake) clientRelease(table map[native.Handle]*fakeClient, client native.Handle) {
	f.mu.Lock()
	f.calls++
	c := table[client]
	if c == nil {
		f.misuses++
		f.mu.Unlock()
		return
	}
	delete(table, client)
	f.mu.Unlock()
	stopClient(c)
}

func (f *Fake) GLImageTextureName(image native.Handle) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	img := f.glImages[image]
	if img == nil {
		f.misuses++
		return 0
	}
	return img.tex
}

func (f *Fake) GLImageTextureSize(image native.Handle) (w, h float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	img := f.glImages[image]
	if img == nil {
		f.misuses++
		return 0, 0
	}
	return img.w, img.h
}

func (f *Fake) GLImageRelease(image native.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.glImages[image]; !ok {
		f.misuses++
		return
	}
	delete(f.glImages, image)
}

func (f *Fake) MetalTexturePointer(texture native.Handle) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	tex := f.mtlTextures[texture]
	if tex == nil {
		f.misuses++
		return 0
	}
	return tex.ptr
}

func (f *Fake) MetalTextureRelease(texture native.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.mtlTextures[texture]; !ok {
		f.misuses++
		return
	}
	delete(f.mtlTextures, texture)
}
