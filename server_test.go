package main

import (
	"io"
	"log/slog"
	"net"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) (*Server, *net.UDPConn) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	world := NewWorld(cfg.MapWidth, cfg.MapHeight, 0)
	sessions := NewSessionTable()

	srv, err := NewServer(cfg, world, sessions, testLogger())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { srv.Close() })

	client, err := net.DialUDP("udp", nil, srv.conn.LocalAddr().(*net.UDPAddr))
	if err != nil {
		t.Fatalf("DialUDP: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return srv, client
}

func TestHandleDiscoverReplies(t *testing.T) {
	srv, client := newTestServer(t)

	clientAddr := client.LocalAddr().(*net.UDPAddr)
	srv.handle(inboundMsg{addr: clientAddr, pkt: InboundPacket{Type: PacketDiscover}})

	client.SetReadDeadline(time.Now().Add(time.Second))
	buf := make([]byte, 1024)
	n, err := client.Read(buf)
	if err != nil {
		t.Fatalf("expected a DISCOVER_RECEIVED reply, got error: %v", err)
	}
	pkt, err := DecodePacket(buf[:n])
	if err != nil || pkt.Type != PacketDiscoverReceived {
		t.Fatalf("got %s (err=%v)", buf[:n], err)
	}
}

func TestHandleJoinAddsSnake(t *testing.T) {
	srv, client := newTestServer(t)
	addr := client.LocalAddr().(*net.UDPAddr)

	srv.handle(inboundMsg{addr: addr, pkt: InboundPacket{Type: PacketJoin, UUID: "p1"}})

	if !srv.world.HasSnake("p1") {
		t.Fatal("expected JOIN to register a snake")
	}
	if _, ok := srv.sessions.Get("p1"); !ok {
		t.Fatal("expected JOIN to admit a session")
	}
}

func TestBroadcastSendsDeadDatagramAndRemovesSession(t *testing.T) {
	srv, client := newTestServer(t)
	addr := client.LocalAddr().(*net.UDPAddr)

	srv.sessions.Admit("victim", addr, false)
	srv.sessions.MarkDeathPending("victim")

	srv.broadcast()

	client.SetReadDeadline(time.Now().Add(time.Second))
	buf := make([]byte, 1024)
	n, err := client.Read(buf)
	if err != nil {
		t.Fatalf("expected a DEAD datagram: %v", err)
	}
	if string(buf[:n]) != DeadMarker {
		t.Fatalf("got %q, want %q", buf[:n], DeadMarker)
	}
	if _, ok := srv.sessions.Get("victim"); ok {
		t.Fatal("expected death-pending session to be removed after the DEAD send")
	}
}
