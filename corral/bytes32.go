// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package corral

import (
	"encoding"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Bytes32 holds hashes, storage slots and values, and event topics.
// It is encoded as 0x prefixed hex in JSON and yaml.
type Bytes32 common.Hash

var (
	_ encoding.TextMarshaler   = Bytes32{}
	_ encoding.TextUnmarshaler = (*Bytes32)(nil)
)

func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

func (b Bytes32) Bytes() []byte {
	return b[:]
}

func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bytes32) UnmarshalText(text []byte) error {
	return decodeFixedHex(string(text), b[:])
}

// ParseBytes32 parses 64 hex digits, optionally 0x prefixed.
func ParseBytes32(s string) (Bytes32, error) {
	var b Bytes32
	if err := decodeFixedHex(s, b[:]); err != nil {
		return Bytes32{}, err
	}
	return b, nil
}

func MustParseBytes32(s string) Bytes32 {
	b, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BytesToBytes32 left pads b, or keeps its last 32 bytes when longer.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}

// decodeFixedHex fills out with the hex digits of s, which must match its length exactly.
func decodeFixedHex(s string, out []byte) error {
	if len(s) == len(out)*2+2 {
		if !strings.EqualFold(s[:2], "0x") {
			return errors.New("invalid prefix")
		}
		s = s[2:]
	}
	if len(s) != len(out)*2 {
		return errors.New("invalid length")
	}
	_, err := hex.Decode(out, []byte(s))
	return err
}
