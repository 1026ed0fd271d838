package redis

import (
	"testing"
	"time"
)

func TestStateStoreSetsAndClearsKeys(t *testing.T) {
	mr, client := newTestClient(t)
	defer mr.Close()

	store := NewStateStore(client, time.Minute)

	state := store.GetOrCreate("c1")
	if state == nil {
		t.Fatalf("expected state")
	}
	if !mr.Exists("client:state:c1") {
		t.Fatalf("expected redis liveness key to be set")
	}
	if again := store.GetOrCreate("c1"); again != state {
		t.Fatalf("expected the same state on repeat lookups")
	}

	store.DeleteIfInactive("c1")
	if _, ok := store.Get("c1"); ok {
		t.Fatalf("expected inactive state removed")
	}
	if mr.Exists("client:state:c1") {
		t.Fatalf("expected redis liveness key to be removed")
	}
}
