// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/corral"
)

// ParseAddress parses a path or query address, rejecting the zero address.
func ParseAddress(s string) (corral.Address, error) {
	addr, err := corral.ParseAddress(s)
	if err != nil {
		return corral.Address{}, err
	}
	if addr.IsZero() {
		return corral.Address{}, errors.New("zero address")
	}
	return addr, nil
}

// ParseItemID parses a decimal or 0x prefixed item id.
func ParseItemID(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, errors.New("empty item id")
	}
	b, ok := math.ParseBig256(s)
	if !ok {
		return nil, errors.New("invalid item id")
	}
	return ToUint256((*math.HexOrDecimal256)(b))
}

// ParseUint32 parses an optional decimal block number. Empty string yields def.
func ParseUint32(s string, def uint32) (uint32, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// ToUint256 converts a decoded JSON integer.
func ToUint256(v *math.HexOrDecimal256) (*uint256.Int, error) {
	if v == nil {
		return nil, errors.New("missing value")
	}
	b := (*big.Int)(v)
	if b.Sign() < 0 {
		return nil, errors.New("negative value")
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.New("value exceeds 256 bits")
	}
	return u, nil
}

// RequireAddress checks a required address field of a request body.
func RequireAddress(name string, addr *corral.Address) (corral.Address, error) {
	if addr == nil || addr.IsZero() {
		return corral.Address{}, BadRequest(errors.Errorf("%s: missing or zero address", name))
	}
	return *addr, nil
}
