package syphon

import "testing"

func TestDirectoryCount(t *testing.T) {
	f := installFake(t)

	dir := SharedDirectory()
	if dir == nil {
		t.Fatal("SharedDirectory() = nil")
	}
	if got := dir.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0 for empty directory", got)
	}

	f.AddServer("Scene A", "VJApp")
	f.AddServer("Scene B", "VJApp")
	if got := dir.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}

func TestDirectoryAt(t *testing.T) {
	f := installFake(t)
	f.AddServer("Scene A", "VJApp")
	f.AddServer("Scene B", "OtherApp")

	dir := SharedDirectory()
	for i, want := range []string{"Scene A", "Scene B"} {
		desc := dir.At(i)
		if desc == nil {
			t.Fatalf("At(%d) = nil", i)
		}
		if name, ok := desc.Name(); !ok || name != want {
			t.Errorf("At(%d).Name() = %q, %v, want %q, true", i, name, ok, want)
		}
	}

	if dir.At(-1) != nil {
		t.Error("At(-1) != nil")
	}
	if dir.At(2) != nil {
		t.Error("At(2) != nil")
	}
}

func TestDirectoryLookupMiss(t *testing.T) {
	f := installFake(t)
	f.AddServer("Scene A", "VJApp")
	f.AddServer("Scene B", "VJApp")

	dir := SharedDirectory()
	for i := 0; i < dir.Count(); i++ {
		if name, ok := dir.At(i).Name(); ok && name == "Scene C" {
			t.Fatalf("found %q at index %d, directory never held it", name, i)
		}
	}
	if dir.At(dir.Count()) != nil {
		t.Error("At(Count()) != nil")
	}
}

func TestDirectoryServersSnapshot(t *testing.T) {
	f := installFake(t)
	idA := f.AddServer("Scene A", "VJApp")
	f.AddServer("Scene B", "VJApp")

	servers := SharedDirectory().Servers()
	if len(servers) != 2 {
		t.Fatalf("Servers() returned %d entries, want 2", len(servers))
	}
	for i, s := range servers {
		if s.Owned() {
			t.Errorf("entry %d should be borrowed", i)
		}
		if _, ok := s.UUID(); !ok {
			t.Errorf("entry %d unreadable right after the snapshot", i)
		}
	}

	// Cloning before the directory changes keeps an entry alive; the
	// borrowed original goes stale with the entry it pointed at.
	kept := servers[0].Clone()
	if kept == nil {
		t.Fatal("Clone() = nil")
	}
	f.RemoveServer(idA)
	if got, ok := kept.UUID(); !ok || got != idA {
		t.Errorf("clone UUID() = %q, %v, want %q, true", got, ok, idA)
	}
	if err := kept.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if _, ok := servers[0].UUID(); ok {
		t.Error("borrowed entry readable after its server left the directory")
	}

	st := f.Stats()
	if st.Descriptions != 0 {
		t.Errorf("descriptions still referenced = %d, want 0", st.Descriptions)
	}
	if st.Retains != st.Releases {
		t.Errorf("retains = %d, releases = %d, want balanced", st.Retains, st.Releases)
	}
	if st.Misuses != 1 {
		t.Errorf("misuses = %d, want 1 for the stale read", st.Misuses)
	}
}

func TestDirectoryNilReceiver(t *testing.T) {
	var dir *ServerDirectory

	if got := dir.Count(); got != 0 {
		t.Errorf("nil Count() = %d, want 0", got)
	}
	if dir.At(0) != nil {
		t.Error("nil At(0) != nil")
	}
	if dir.Servers() != nil {
		t.Error("nil Servers() != nil")
	}
}
