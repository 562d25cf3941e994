package orch

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/dkeye/RoomChat/internal/core"
	"github.com/dkeye/RoomChat/internal/core/mocks"
)

func connectMember(t *testing.T, o *Orchestrator, sid core.SessionID, conn core.LineConnection) (*core.Member, context.Context) {
	t.Helper()
	m, err := core.NewMember(sid, string(sid), conn)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	o.Connect(m, cancel)
	return m, ctx
}

func TestOrchestrator_PublishKicksSlowMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	o := New()

	fast := mocks.NewMockLineConnection(ctrl)
	slow := mocks.NewMockLineConnection(ctrl)
	closed := mocks.NewMockLineConnection(ctrl)
	sender := mocks.NewMockLineConnection(ctrl)

	fast.EXPECT().TrySend("hello").Return(nil)
	slow.EXPECT().TrySend("hello").Return(core.ErrBackpressure)
	closed.EXPECT().TrySend("hello").Return(core.ErrConnClosed)

	from, _ := connectMember(t, o, "sender", sender)
	_, fastCtx := connectMember(t, o, "fast", fast)
	_, slowCtx := connectMember(t, o, "slow", slow)
	_, closedCtx := connectMember(t, o, "closed", closed)

	var room *core.Room
	for _, sid := range []core.SessionID{"sender", "fast", "slow", "closed"} {
		m, _ := o.Registry.GetSession(sid)
		room = o.Join(m, "lobby")
	}

	res := o.Publish(room, from, "hello")
	if res.SendTo != 1 || len(res.Dropped) != 2 {
		t.Fatalf("Publish = %+v, want 1 sent and 2 dropped", res)
	}
	if slowCtx.Err() == nil {
		t.Fatal("slow member was not kicked")
	}
	if fastCtx.Err() != nil || closedCtx.Err() != nil {
		t.Fatal("policy kicked a member that was not slow")
	}
}

func TestOrchestrator_JoinLeaveLifecycle(t *testing.T) {
	o := New()
	ctrl := gomock.NewController(t)
	m, _ := connectMember(t, o, "alice", mocks.NewMockLineConnection(ctrl))

	if o.Leave(m) != nil {
		t.Fatal("Leave without a room returned a room")
	}
	room := o.Join(m, "lobby")
	if m.Room() != room || !room.Has(m) {
		t.Fatal("Join did not record membership on both sides")
	}
	if left := o.Leave(m); left != room {
		t.Fatal("Leave returned the wrong room")
	}
	if m.Room() != nil {
		t.Fatal("current room not cleared")
	}
	if _, ok := o.Rooms.Lookup("lobby"); ok {
		t.Fatal("empty room still registered")
	}
}

func TestOrchestrator_EvictRoom(t *testing.T) {
	o := New()
	ctrl := gomock.NewController(t)
	a, actx := connectMember(t, o, "a", mocks.NewMockLineConnection(ctrl))
	b, bctx := connectMember(t, o, "b", mocks.NewMockLineConnection(ctrl))
	_, cctx := connectMember(t, o, "c", mocks.NewMockLineConnection(ctrl))
	o.Join(a, "lobby")
	o.Join(b, "lobby")

	if _, ok := o.EvictRoom("nowhere"); ok {
		t.Fatal("EvictRoom of unknown room reported ok")
	}
	n, ok := o.EvictRoom("lobby")
	if !ok || n != 2 {
		t.Fatalf("EvictRoom = %d, %v; want 2, true", n, ok)
	}
	if actx.Err() == nil || bctx.Err() == nil {
		t.Fatal("room members not kicked")
	}
	if cctx.Err() != nil {
		t.Fatal("member outside the room was kicked")
	}
}
