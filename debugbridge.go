package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// DebugBridge is the optional observability surface of SPEC_FULL §4.7:
// a read-only HTTP server that mirrors the authoritative snapshot
// stream without ever touching World or SessionTable directly. Shape
// mirrors the teacher pack's rswebdev-schlangen engine/server.go
// (setupMux + HandleStats/HandleDashboard + /ws), but the live feed
// here is sourced from the Server's broadcast channel instead of a
// per-connection game loop, since the primary transport is UDP, not
// WebSocket.
type DebugBridge struct {
	addr   string
	log    *slog.Logger
	feed   <-chan Snapshot
	latest Snapshot

	upgrader websocket.Upgrader
}

// NewDebugBridge wires a bridge to the server's snapshot feed. Pass an
// empty addr to mean "disabled" — callers should check that before
// calling Start.
func NewDebugBridge(addr string, feed <-chan Snapshot, log *slog.Logger) *DebugBridge {
	return &DebugBridge{
		addr: addr,
		log:  log,
		feed: feed,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// Start launches the mirror-consumer goroutine and then serves HTTP on
// the calling goroutine until stop is closed, so callers run it with
// go. Errors from ListenAndServe are logged, not fatal — the debug
// bridge is diagnostic, never load-bearing.
func (b *DebugBridge) Start(stop <-chan struct{}) {
	go b.mirror(stop)

	mux := http.NewServeMux()
	mux.HandleFunc("/stats", b.handleStats)
	mux.HandleFunc("/dashboard", b.handleDashboard)
	mux.HandleFunc("/ws", b.handleWS)

	srv := &http.Server{Addr: b.addr, Handler: mux}
	go func() {
		<-stop
		srv.Close()
	}()
	b.log.Info("debug bridge listening", "addr", b.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		b.log.Error("debug bridge exited", "err", err)
	}
}

// mirror keeps latest up to date with whatever the server last
// broadcast, entirely decoupled from the tick goroutine.
func (b *DebugBridge) mirror(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case snap := <-b.feed:
			b.latest = snap
		}
	}
}

type statsView struct {
	Players   int       `json:"players"`
	Food      int       `json:"food"`
	Timestamp time.Time `json:"timestamp"`
}

func (b *DebugBridge) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(statsView{
		Players:   len(b.latest.Players),
		Food:      len(b.latest.Food),
		Timestamp: time.Now(),
	})
}

func (b *DebugBridge) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, dashboardHTML, len(b.latest.Players), len(b.latest.Food))
}

// handleWS upgrades to a WebSocket and pushes the latest mirrored
// snapshot every 100 ms until the client disconnects — a live mirror for spectator
// tooling, entirely separate from the UDP SPECTATE path (spec §4.2).
func (b *DebugBridge) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Warn("debug ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		data, err := json.Marshal(b.latest)
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>kittens.io debug bridge</title>
<style>
  body { font-family: sans-serif; background: #10131a; color: #eee; padding: 20px; }
  h1 { margin-bottom: 16px; }
  .card { background: #1c2230; border-radius: 8px; padding: 16px; display: inline-block; margin-right: 12px; }
  .n { font-size: 28px; font-weight: bold; }
</style>
</head>
<body>
  <h1>kittens.io</h1>
  <div class="card"><div class="n">%d</div>players</div>
  <div class="card"><div class="n">%d</div>food</div>
</body>
</html>
`
