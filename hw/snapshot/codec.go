package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Save-state wire format: 4-byte magic, 1 version byte, then every field
// of the NES struct in declaration order, little-endian.
const Magic = "NESM"
const Version = 1

var (
	ErrVersion = errors.New("snapshot: unsupported version")
	ErrCorrupt = errors.New("snapshot: corrupt data")
)

// Encode serializes the machine state.
func Encode(state *NES) []byte {
	var buf bytes.Buffer
	buf.WriteString(Magic)
	buf.WriteByte(Version)
	if err := binary.Write(&buf, binary.LittleEndian, state); err != nil {
		// NES contains only fixed-size fields; failure here is a
		// programming error.
		panic(err)
	}
	return buf.Bytes()
}

// Decode parses a buffer produced by Encode.
func Decode(data []byte) (*NES, error) {
	if len(data) < 5 || string(data[:4]) != Magic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if data[4] != Version {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersion, data[4], Version)
	}

	state := new(NES)
	r := bytes.NewReader(data[5:])
	if err := binary.Read(r, binary.LittleEndian, state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, r.Len())
	}
	return state, nil
}
