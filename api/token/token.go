// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/builtin/token"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/runtime"
)

type Supply struct {
	Name        string                `json:"name"`
	Symbol      string                `json:"symbol"`
	Decimals    uint8                 `json:"decimals"`
	TotalSupply *math.HexOrDecimal256 `json:"totalSupply"`
	// unclaimed rewards held by the staking contract
	RewardPool *math.HexOrDecimal256 `json:"rewardPool"`
}

type Balance struct {
	Address corral.Address        `json:"address"`
	Balance *math.HexOrDecimal256 `json:"balance"`
}

type MintRequest struct {
	To     *corral.Address        `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type Token struct {
	rt     *runtime.Runtime
	devAPI bool
}

func New(rt *runtime.Runtime, devAPI bool) *Token {
	return &Token{
		rt,
		devAPI,
	}
}

func (t *Token) handleGetSupply(w http.ResponseWriter, _ *http.Request) error {
	supply := &Supply{
		Name:     token.Name,
		Symbol:   token.Symbol,
		Decimals: corral.TokenDecimals,
	}
	if err := t.rt.View(func(c *runtime.Contracts) error {
		total, err := c.Token.TotalSupply()
		if err != nil {
			return err
		}
		pool, err := c.Token.BalanceOf(c.StakeNFT.Address())
		if err != nil {
			return err
		}
		supply.TotalSupply = utils.Amount(total)
		supply.RewardPool = utils.Amount(pool)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, supply)
}

func (t *Token) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := corral.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	bal := &Balance{Address: addr}
	if err := t.rt.View(func(c *runtime.Contracts) error {
		b, err := c.Token.BalanceOf(addr)
		if err != nil {
			return err
		}
		bal.Balance = utils.Amount(b)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, bal)
}

func (t *Token) handleMint(w http.ResponseWriter, req *http.Request) error {
	var body MintRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	to, err := utils.RequireAddress("to", body.To)
	if err != nil {
		return err
	}
	amount, err := utils.ToUint256(body.Amount)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	return utils.InvokeUnsigned(w, t.rt, to, "mintReward", func(c *runtime.Contracts) error {
		return c.Token.Mint(to, amount)
	})
}

func (t *Token) Mount(root *mux.Router, pathPrefix string) {
	root.Path(pathPrefix).
		Methods(http.MethodGet).
		Name("token_get_supply").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetSupply))

	sub := root.PathPrefix(pathPrefix).Subrouter()
	if t.devAPI {
		sub.Path("/mint").
			Methods(http.MethodPost).
			Name("token_mint").
			HandlerFunc(utils.WrapHandlerFunc(t.handleMint))
	}
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("token_get_balance").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))
}
