package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// pair returns the server side of a live WebSocket wrapped in Conn, and the client side.
func pair(t *testing.T) (*Conn, *websocket.Conn) {
	t.Helper()
	serverSide := make(chan *Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wsConn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		serverSide <- NewConn(wsConn, 1024, 8, time.Second, 0)
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	select {
	case c := <-serverSide:
		return c, client
	case <-time.After(2 * time.Second):
		t.Fatal("no server connection")
		return nil, nil
	}
}

func TestConn_ReadLineSplitsFrames(t *testing.T) {
	c, client := pair(t)
	if err := client.WriteMessage(websocket.TextMessage, []byte("/nick bob\r\n/join lobby\n")); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"/nick bob", "/join lobby"} {
		got, err := c.ReadLine()
		if err != nil || got != want {
			t.Fatalf("ReadLine = %q, %v; want %q", got, err, want)
		}
	}
}

func TestConn_CloseUnblocksPendingRead(t *testing.T) {
	c, client := pair(t)
	go c.WritePump(zerolog.Nop())

	readErr := make(chan error, 1)
	go func() {
		_, err := c.ReadLine()
		readErr <- err
	}()

	time.Sleep(20 * time.Millisecond)
	if err := c.TrySend("bye"); err != nil {
		t.Fatal(err)
	}
	c.Close()

	select {
	case err := <-readErr:
		if err == nil {
			t.Fatal("ReadLine returned no error after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not unblock ReadLine")
	}

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, data, err := client.ReadMessage(); err != nil || string(data) != "bye" {
		t.Fatalf("queued line not flushed: %q, %v", data, err)
	}
	if _, _, err := client.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected normal close, got %v", err)
	}
}
