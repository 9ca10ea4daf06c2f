package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Binary snapshot codec (spec §4.2 item 3, Open Question 1). The wire
// layout is grounded on original_source/client/packets.py's
// compress_packet: big-endian, unpadded, no length-prefixed container
// around the whole message — just the flat record sequence below.
// Only the identity "meowboy" (BinarySnapshotIdentity) receives this
// encoding; everyone else gets EncodeText.
//
//	uint16        player count
//	for each player:
//	  uint8       identity length
//	  []byte      identity bytes (utf8)
//	  float32     x
//	  float32     y
//	  uint16      angle, mapped from [0, 2*pi) onto [0, 65535]
//	  uint8       boost (0 or 1)
//	  float32     length
//	  uint16      segment count
//	  for each segment: float32 x, float32 y
//	uint16        food count
//	for each food: float32 x, float32 y, uint8 size

// angleScale matches original_source/client/packets.py's compress_packet,
// which maps angle_q = int((angle mod 2*pi) / (2*pi) * 65535) — 65535,
// not 65536, is the multiplier the reference binary client decodes.
const angleScale = 65535.0

func mapAngle(a float64) uint16 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	v := math.Floor((a / (2 * math.Pi)) * angleScale)
	if v >= 65536 {
		v = 65535
	}
	return uint16(v)
}

func unmapAngle(v uint16) float64 {
	return (float64(v) / angleScale) * (2 * math.Pi)
}

// EncodeBinary renders a Snapshot into the compact wire form. Player
// iteration order follows the map's natural (unspecified) order since
// the binary recipient is a single reserved identity, not a
// broadcast — ordering has no observable effect on it.
func EncodeBinary(snap Snapshot) ([]byte, error) {
	buf := new(bytes.Buffer)

	if len(snap.Players) > 0xFFFF {
		return nil, fmt.Errorf("codec: %d players exceeds uint16 range", len(snap.Players))
	}
	binary.Write(buf, binary.BigEndian, uint16(len(snap.Players)))
	for _, p := range snap.Players {
		if len(p.UUID) > 0xFF {
			return nil, fmt.Errorf("codec: identity %q exceeds 255 bytes", p.UUID)
		}
		buf.WriteByte(byte(len(p.UUID)))
		buf.WriteString(p.UUID)
		binary.Write(buf, binary.BigEndian, float32(p.X))
		binary.Write(buf, binary.BigEndian, float32(p.Y))
		binary.Write(buf, binary.BigEndian, mapAngle(p.Angle))
		if p.Boost {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
		binary.Write(buf, binary.BigEndian, float32(p.Length))

		if len(p.Segments) > 0xFFFF {
			return nil, fmt.Errorf("codec: %d segments exceeds uint16 range", len(p.Segments))
		}
		binary.Write(buf, binary.BigEndian, uint16(len(p.Segments)))
		for _, seg := range p.Segments {
			binary.Write(buf, binary.BigEndian, float32(seg[0]))
			binary.Write(buf, binary.BigEndian, float32(seg[1]))
		}
	}

	if len(snap.Food) > 0xFFFF {
		return nil, fmt.Errorf("codec: %d food items exceeds uint16 range", len(snap.Food))
	}
	binary.Write(buf, binary.BigEndian, uint16(len(snap.Food)))
	for _, f := range snap.Food {
		binary.Write(buf, binary.BigEndian, float32(f.X))
		binary.Write(buf, binary.BigEndian, float32(f.Y))
		if f.Size < 0 || f.Size > 0xFF {
			return nil, fmt.Errorf("codec: food size %d out of byte range", f.Size)
		}
		buf.WriteByte(byte(f.Size))
	}

	return buf.Bytes(), nil
}

// DecodeBinary parses the wire form produced by EncodeBinary. It exists
// primarily so codec_test.go can exercise a round trip; the reference
// binary recipient is a client, not this server.
func DecodeBinary(raw []byte) (Snapshot, error) {
	r := bytes.NewReader(raw)

	var playerCount uint16
	if err := binary.Read(r, binary.BigEndian, &playerCount); err != nil {
		return Snapshot{}, err
	}
	players := make(map[string]PlayerView, playerCount)
	for i := uint16(0); i < playerCount; i++ {
		idLen, err := r.ReadByte()
		if err != nil {
			return Snapshot{}, err
		}
		idBytes := make([]byte, idLen)
		if _, err := r.Read(idBytes); err != nil {
			return Snapshot{}, err
		}
		var x, y float32
		var angleRaw uint16
		var boostByte byte
		var length float32
		if err := binary.Read(r, binary.BigEndian, &x); err != nil {
			return Snapshot{}, err
		}
		if err := binary.Read(r, binary.BigEndian, &y); err != nil {
			return Snapshot{}, err
		}
		if err := binary.Read(r, binary.BigEndian, &angleRaw); err != nil {
			return Snapshot{}, err
		}
		if boostByte, err = r.ReadByte(); err != nil {
			return Snapshot{}, err
		}
		if err := binary.Read(r, binary.BigEndian, &length); err != nil {
			return Snapshot{}, err
		}

		var segCount uint16
		if err := binary.Read(r, binary.BigEndian, &segCount); err != nil {
			return Snapshot{}, err
		}
		segs := make([][2]float64, segCount)
		for j := uint16(0); j < segCount; j++ {
			var sx, sy float32
			if err := binary.Read(r, binary.BigEndian, &sx); err != nil {
				return Snapshot{}, err
			}
			if err := binary.Read(r, binary.BigEndian, &sy); err != nil {
				return Snapshot{}, err
			}
			segs[j] = [2]float64{float64(sx), float64(sy)}
		}

		id := string(idBytes)
		players[id] = PlayerView{
			UUID:     id,
			X:        float64(x),
			Y:        float64(y),
			Angle:    unmapAngle(angleRaw),
			Boost:    boostByte != 0,
			Length:   float64(length),
			Segments: segs,
		}
	}

	var foodCount uint16
	if err := binary.Read(r, binary.BigEndian, &foodCount); err != nil {
		return Snapshot{}, err
	}
	food := make([]FoodView, foodCount)
	for i := uint16(0); i < foodCount; i++ {
		var x, y float32
		if err := binary.Read(r, binary.BigEndian, &x); err != nil {
			return Snapshot{}, err
		}
		if err := binary.Read(r, binary.BigEndian, &y); err != nil {
			return Snapshot{}, err
		}
		size, err := r.ReadByte()
		if err != nil {
			return Snapshot{}, err
		}
		food[i] = FoodView{X: float64(x), Y: float64(y), Size: int(size)}
	}

	return Snapshot{Players: players, Food: food}, nil
}
