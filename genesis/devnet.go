// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/corral-labs/corral/corral"
)

const (
	devAccountCount = 10
	devItemsPerUser = 3
)

// DevAccount account for development.
type DevAccount struct {
	Address    corral.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts = func() []DevAccount {
	accounts := make([]DevAccount, 0, devAccountCount)
	for i := range devAccountCount {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(i))
		seed := corral.Blake2b([]byte("corral-dev-account"), b[:])
		pk, err := crypto.ToECDSA(seed.Bytes())
		if err != nil {
			panic(err)
		}
		accounts = append(accounts, DevAccount{corral.Address(crypto.PubkeyToAddress(pk.PublicKey)), pk})
	}
	return accounts
}()

// DevAccounts returns the well known accounts of the dev network. The first one owns the params.
func DevAccounts() []DevAccount {
	return append([]DevAccount(nil), devAccounts...)
}

// NewDevnet create genesis for the dev network. Every account except the owner
// holds a few items already approved for staking, and the reward pool holds
// one million tokens.
func NewDevnet() *Genesis {
	pool := new(big.Int).Mul(big.NewInt(1_000_000), new(big.Int).Exp(big.NewInt(10), big.NewInt(corral.TokenDecimals), nil))

	gen := &CustomGenesis{
		Name:       "devnet",
		Owner:      devAccounts[0].Address,
		RewardPool: (*math.HexOrDecimal256)(pool),
	}
	for i, acc := range devAccounts[1:] {
		for j := range devItemsPerUser {
			id := big.NewInt(int64((i+1)*100 + j))
			gen.Items = append(gen.Items, Item{
				Owner:          acc.Address,
				ID:             (*math.HexOrDecimal256)(id),
				ApproveStaking: true,
			})
		}
	}

	g, err := NewCustomNet(gen)
	if err != nil {
		panic(err)
	}
	return g
}
