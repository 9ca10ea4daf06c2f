package main

// Wire protocol (spec §4.2, §6). Unlike the teacher's single-char-key
// compact protocol, this wire format uses full field names — the
// reference client/bot/spectator processes (out of scope here, but
// fixed contracts we must not break) decode exact field names like
// "uuid", "x", "y", "segments".

// Packet type identifiers, the value of the inbound/outbound "type" field.
const (
	PacketDiscover         = "DISCOVER"
	PacketDiscoverReceived = "DISCOVER_RECEIVED"
	PacketJoin             = "JOIN"
	PacketSpectate         = "SPECTATE"
	PacketHeartbeat        = "HEARTBEAT"
	PacketInput            = "INPUT"
)

// InboundInput is the nested "inp" object of an INPUT packet.
// Angle/Boost are pointers so "field present but zero" (angle:0,
// boost:false) is distinguishable from "field absent" — apply_input
// overlays only the fields that were actually sent (spec §4.3).
type InboundInput struct {
	Angle *float64 `json:"angle,omitempty"`
	Boost *bool    `json:"boost,omitempty"`
}

// InboundPacket is the generic shape of every text datagram accepted by
// the codec (spec §4.2 item 1). Unknown "type" values are dropped by
// the caller; this struct itself never fails to decode a well-formed
// JSON object.
type InboundPacket struct {
	Type string        `json:"type"`
	UUID string        `json:"uuid"`
	Inp  *InboundInput `json:"inp,omitempty"`
}

// DiscoverReceived is the synchronous reply to a DISCOVER packet.
type DiscoverReceived struct {
	Type string `json:"type"`
}

// NewDiscoverReceived builds the canned DISCOVER_RECEIVED reply.
func NewDiscoverReceived() DiscoverReceived {
	return DiscoverReceived{Type: PacketDiscoverReceived}
}

// PlayerView is one entry of the "players" map in a text snapshot
// (spec §6's snapshot object).
type PlayerView struct {
	UUID     string       `json:"uuid"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Angle    float64      `json:"angle"`
	Boost    bool         `json:"boost"`
	Length   float64      `json:"length"`
	Segments [][2]float64 `json:"segments"`
}

// FoodView is one entry of the "food" list in a text snapshot.
type FoodView struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size int     `json:"size"`
}

// Snapshot is the full authoritative world state broadcast once per
// tick (spec §6). It is a defensive copy — see World.State.
type Snapshot struct {
	Players map[string]PlayerView `json:"players"`
	Food    []FoodView            `json:"food"`
}
