package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
)

// DecodePacket parses an inbound datagram as the text protocol (spec
// §4.2 item 1: "a datagram is first tried as JSON"). A malformed or
// non-object payload returns an error for the caller to drop silently
// — the codec never panics on attacker-controlled input.
func DecodePacket(raw []byte) (InboundPacket, error) {
	var pkt InboundPacket
	if err := json.Unmarshal(raw, &pkt); err != nil {
		return InboundPacket{}, err
	}
	return pkt, nil
}

// inputFrameSize is struct.calcsize('<8s16sfi') in the reference
// implementation: 8-byte type tag + 16-byte identity + float32 angle +
// int32 boost, little-endian, no padding between fields.
const inputFrameSize = 8 + 16 + 4 + 4

// DecodeInputFrame parses the fixed 32-byte binary INPUT frame (spec
// §4.2 item 2, §6) tried when JSON decoding fails. Layout and byte
// order are grounded on original_source/client/server.py's
// INPUT_STRUCT_FMT = '<8s16sfi': both string fields are null-padded
// ASCII, cut at their first NUL byte. For a null-padded field this is
// the same string the reference's `.rstrip('\x00')` yields; a field
// with an interior NUL is cut there. Reports false if raw is not
// exactly 32 bytes.
func DecodeInputFrame(raw []byte) (InboundPacket, bool) {
	if len(raw) != inputFrameSize {
		return InboundPacket{}, false
	}
	r := bytes.NewReader(raw)

	var typeTag [8]byte
	var idTag [16]byte
	var angle float32
	var boost int32

	if err := binary.Read(r, binary.LittleEndian, &typeTag); err != nil {
		return InboundPacket{}, false
	}
	if err := binary.Read(r, binary.LittleEndian, &idTag); err != nil {
		return InboundPacket{}, false
	}
	if err := binary.Read(r, binary.LittleEndian, &angle); err != nil {
		return InboundPacket{}, false
	}
	if err := binary.Read(r, binary.LittleEndian, &boost); err != nil {
		return InboundPacket{}, false
	}

	a := float64(angle)
	b := boost != 0
	return InboundPacket{
		Type: trimNulString(typeTag[:]),
		UUID: trimNulString(idTag[:]),
		Inp:  &InboundInput{Angle: &a, Boost: &b},
	}, true
}

func trimNulString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// EncodeText serializes v (a DiscoverReceived or Snapshot) to the JSON
// wire form (spec §6).
func EncodeText(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
