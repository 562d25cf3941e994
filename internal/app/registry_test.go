package app

import (
	"context"
	"testing"

	"github.com/dkeye/RoomChat/internal/core"
)

type nopConn struct{}

func (nopConn) TrySend(string) error { return nil }
func (nopConn) Close()               {}

func member(t *testing.T, sid core.SessionID, name string) *core.Member {
	t.Helper()
	m, err := core.NewMember(sid, name, nopConn{})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRegistry_BindCancelUnbind(t *testing.T) {
	r := NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	m := member(t, "s1", "alice")

	r.Bind(m, cancel)
	if got, ok := r.GetSession("s1"); !ok || got != m {
		t.Fatal("bound member not found")
	}
	if !r.Cancel("s1") {
		t.Fatal("Cancel of a bound session returned false")
	}
	if ctx.Err() == nil {
		t.Fatal("session context not canceled")
	}

	r.Unbind("s1")
	if r.Cancel("s1") {
		t.Fatal("Cancel after Unbind returned true")
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d after Unbind", r.Len())
	}
}

func TestRegistry_CancelAllAndSnapshot(t *testing.T) {
	r := NewRegistry()
	var ctxs []context.Context
	for _, name := range []string{"carol", "alice", "bob"} {
		ctx, cancel := context.WithCancel(context.Background())
		ctxs = append(ctxs, ctx)
		r.Bind(member(t, core.SessionID("sid-"+name), name), cancel)
	}

	room := core.NewRoom("lobby")
	bob, _ := r.GetSession("sid-bob")
	_ = room.AddMember(bob)
	bob.SetRoom(room)

	snap := r.Snapshot()
	want := []SessionInfo{
		{ID: "sid-alice", Username: "alice"},
		{ID: "sid-bob", Username: "bob", Room: "lobby"},
		{ID: "sid-carol", Username: "carol"},
	}
	if len(snap) != len(want) {
		t.Fatalf("Snapshot = %v, want %v", snap, want)
	}
	for i := range want {
		if snap[i] != want[i] {
			t.Fatalf("Snapshot[%d] = %+v, want %+v", i, snap[i], want[i])
		}
	}

	if n := r.CancelAll(); n != 3 {
		t.Fatalf("CancelAll = %d, want 3", n)
	}
	for i, ctx := range ctxs {
		if ctx.Err() == nil {
			t.Fatalf("session %d not canceled", i)
		}
	}
}
