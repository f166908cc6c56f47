package session

import (
	"testing"
	"time"
)

func TestStore_PutGetDelete(t *testing.T) {
	store := NewStore()
	if store.Get("chan-1") != nil {
		t.Fatal("expected empty store")
	}

	store.Put("chan-1", &Replication{ChannelID: "chan-1", State: StateWaitDurations})
	sess := store.Get("chan-1")
	if sess == nil || sess.State != StateWaitDurations {
		t.Fatalf("unexpected session: %+v", sess)
	}

	store.Delete("chan-1")
	if store.Get("chan-1") != nil {
		t.Fatal("expected session to be deleted")
	}
}

func TestStore_PutReplacesPriorSession(t *testing.T) {
	store := NewStore()
	store.Put("chan-1", &Replication{LotIDs: []int64{301}})
	store.Put("chan-1", &Replication{LotIDs: []int64{305}})

	sess := store.Get("chan-1")
	if len(sess.LotIDs) != 1 || sess.LotIDs[0] != 305 {
		t.Fatalf("expected replacement session, got %+v", sess)
	}
}

func TestStore_AcquireSerializesPerKey(t *testing.T) {
	store := NewStore()
	release := store.Acquire("chan-1")

	acquired := make(chan struct{})
	go func() {
		innerRelease := store.Acquire("chan-1")
		close(acquired)
		innerRelease()
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire should block while the key is held")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second acquire should proceed after release")
	}
}

func TestStore_AcquireDifferentKeysDoNotBlock(t *testing.T) {
	store := NewStore()
	release := store.Acquire("chan-1")
	defer release()

	done := make(chan struct{})
	go func() {
		other := store.Acquire("chan-2")
		other()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("unrelated key should not block")
	}
}
