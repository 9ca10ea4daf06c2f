package main

import (
	"log/slog"
	"net"
	"time"
)

// inboundMsg pairs a decoded packet with the address it arrived from;
// the ingress goroutine hands these to the tick goroutine over a
// channel so World and SessionTable ever see one mutator (spec §5).
type inboundMsg struct {
	addr *net.UDPAddr
	pkt  InboundPacket
}

// Server owns the UDP socket and drives the fixed-tick simulation loop
// (spec §4.2, §4.4, §5). Grounded on the teacher's connection.go
// ReadLoop (one goroutine blocked in a read call, handing parsed
// messages to the owning goroutine) adapted from a WebSocket
// read-loop-per-connection to a single UDP socket demuxed by sender
// address, in the shape the Ancillary-AGI-foundry networking example
// uses for a packet-oriented listener.
type Server struct {
	conn     *net.UDPConn
	world    *World
	sessions *SessionTable
	cfg      Config
	log      *slog.Logger

	inbound   chan inboundMsg
	snapshots chan Snapshot // fan-out to the debug bridge; never blocks the tick
}

// NewServer binds the UDP socket and wires it to world/sessions.
func NewServer(cfg Config, world *World, sessions *SessionTable, log *slog.Logger) (*Server, error) {
	addr, err := net.ResolveUDPAddr("udp", cfg.ListenAddr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		conn:      conn,
		world:     world,
		sessions:  sessions,
		cfg:       cfg,
		log:       log,
		inbound:   make(chan inboundMsg, 1024),
		snapshots: make(chan Snapshot, 1),
	}, nil
}

// Snapshots exposes the broadcast snapshot feed for the debug bridge.
func (s *Server) Snapshots() <-chan Snapshot {
	return s.snapshots
}

// Close releases the socket.
func (s *Server) Close() error {
	return s.conn.Close()
}

// Run drives ingress and the fixed-tick loop until stop is closed.
// Ingress lives on its own goroutine (blocking ReadFromUDP); everything
// that touches World or SessionTable runs on the caller's goroutine.
func (s *Server) Run(stop <-chan struct{}) {
	go s.ingress(stop)

	interval := time.Duration(float64(time.Second) / s.cfg.TickHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	s.log.Info("server loop started", "listen", s.cfg.ListenAddr, "tick_hz", s.cfg.TickHz)

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// ingress blocks on ReadFromUDP and forwards decoded packets to the
// tick goroutine. A full inbound channel drops the packet and logs —
// the single-slot input model makes a dropped INPUT harmless next
// tick, and everything else is idempotent or re-sent by the client.
func (s *Server) ingress(stop <-chan struct{}) {
	buf := make([]byte, 65535)
	for {
		select {
		case <-stop:
			return
		default:
		}
		n, addr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-stop:
				return
			default:
			}
			s.log.Warn("udp read error", "err", err)
			continue
		}
		pkt, err := DecodePacket(buf[:n])
		if err != nil {
			var ok bool
			pkt, ok = DecodeInputFrame(buf[:n])
			if !ok {
				continue // malformed datagram, dropped silently per spec §4.2
			}
		}
		raw := inboundMsg{addr: addr, pkt: pkt}
		select {
		case s.inbound <- raw:
		default:
			s.log.Warn("inbound queue full, dropping packet", "type", pkt.Type, "uuid", pkt.UUID)
		}
	}
}

// tick drains pending inbound packets, advances the simulation exactly
// once, reaps idle sessions, and broadcasts the resulting snapshot
// (spec §4.4, §4.5).
func (s *Server) tick() {
	s.drainInbound()

	dead := s.world.Tick()
	for _, id := range dead {
		s.sessions.MarkDeathPending(id)
	}

	cutoff := time.Now().Add(-time.Duration(SessionTimeoutSecs * float64(time.Second)))
	for _, id := range s.sessions.ReapTimedOut(cutoff) {
		s.world.RemoveSnake(id)
		s.log.Debug("session timed out", "uuid", id)
	}

	s.broadcast()
}

func (s *Server) drainInbound() {
	for {
		select {
		case msg := <-s.inbound:
			s.handle(msg)
		default:
			return
		}
	}
}

func (s *Server) handle(msg inboundMsg) {
	switch msg.pkt.Type {
	case PacketDiscover:
		s.reply(msg.addr, NewDiscoverReceived())

	case PacketJoin:
		if msg.pkt.UUID == "" {
			return
		}
		sess, _ := s.sessions.Admit(msg.pkt.UUID, msg.addr, false)
		sess.Spectator = false
		if !s.world.HasSnake(msg.pkt.UUID) {
			x, y, angle := s.world.RandomSpawn()
			s.world.AddSnake(NewSnake(msg.pkt.UUID, x, y, angle))
		}

	case PacketSpectate:
		if msg.pkt.UUID == "" {
			return
		}
		s.sessions.Admit(msg.pkt.UUID, msg.addr, true)

	case PacketHeartbeat:
		if msg.pkt.UUID == "" {
			return
		}
		s.sessions.Touch(msg.pkt.UUID, msg.addr)

	case PacketInput:
		if msg.pkt.UUID == "" || msg.pkt.Inp == nil {
			return
		}
		if !s.sessions.Touch(msg.pkt.UUID, msg.addr) {
			return
		}
		s.world.ApplyInput(msg.pkt.UUID, *msg.pkt.Inp)

	default:
		s.log.Debug("unknown packet type", "type", msg.pkt.Type)
	}
}

// reply sends a one-off text-encoded packet to addr, bypassing the
// session table (spec §4.2 item 2: DISCOVER is answered synchronously
// without requiring prior admission).
func (s *Server) reply(addr *net.UDPAddr, v interface{}) {
	raw, err := EncodeText(v)
	if err != nil {
		s.log.Error("encode reply", "err", err)
		return
	}
	if _, err := s.conn.WriteToUDP(raw, addr); err != nil {
		s.log.Debug("reply write error", "err", err)
	}
}

// broadcast sends the authoritative snapshot to every session: text
// JSON for everyone, the canonical binary form for the reserved
// identity "meowboy" (spec §4.2 item 3, Open Question 1). A session
// with a pending death gets a DEAD datagram instead of a snapshot
// (spec §4.2, §4.6) and is then removed — the client detects death by
// checking for the literal bytes "DEAD" in the payload
// (original_source/client/client.py), not by parsing a snapshot.
func (s *Server) broadcast() {
	snap := s.world.State()

	select {
	case s.snapshots <- snap:
	default:
	}

	text, err := EncodeText(snap)
	if err != nil {
		s.log.Error("encode text snapshot", "err", err)
		return
	}

	deadPayload := []byte(DeadMarker)
	var binaryPayload []byte
	for _, sess := range s.sessions.Snapshot() {
		if sess.DeathPending {
			if _, err := s.conn.WriteToUDP(deadPayload, sess.Addr); err != nil {
				s.log.Debug("write error", "uuid", sess.ID, "err", err)
			}
			s.sessions.Remove(sess.ID)
			continue
		}

		payload := text
		if sess.ID == BinarySnapshotIdentity {
			if binaryPayload == nil {
				binaryPayload, err = EncodeBinary(snap)
				if err != nil {
					s.log.Error("encode binary snapshot", "err", err)
					binaryPayload = []byte{}
				}
			}
			payload = binaryPayload
		}
		if len(payload) > s.cfg.MaxDatagram {
			s.log.Warn("outbound datagram exceeds configured size", "uuid", sess.ID, "bytes", len(payload))
		}
		if _, err := s.conn.WriteToUDP(payload, sess.Addr); err != nil {
			s.log.Debug("write error", "uuid", sess.ID, "err", err)
		}
	}
}
