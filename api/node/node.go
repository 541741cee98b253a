// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/builtin"
	"github.com/corral-labs/corral/runtime"
)

type Node struct {
	rt      *runtime.Runtime
	network string
	devAPI  bool
}

func New(rt *runtime.Runtime, network string, devAPI bool) *Node {
	return &Node{
		rt,
		network,
		devAPI,
	}
}

func (n *Node) handleGetInfo(w http.ResponseWriter, _ *http.Request) error {
	info := &Info{
		Network: n.network,
		Contracts: Contracts{
			Params:     builtin.Params.Address,
			Collection: builtin.Collection.Address,
			Token:      builtin.Token.Address,
			StakeNFT:   builtin.StakeNFT.Address,
		},
		DevAPI: n.devAPI,
	}
	if err := n.rt.View(func(c *runtime.Contracts) (err error) {
		info.Owner, err = c.Params.Owner()
		return
	}); err != nil {
		return err
	}
	head := n.rt.Chain().Head()
	info.BestBlock = head.Number
	info.PendingBlock = head.Number + 1
	info.PendingTxs = head.PendingTxs
	return utils.WriteJSON(w, info)
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	root.Path(pathPrefix).
		Methods(http.MethodGet).
		Name("node_get_info").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetInfo))
}
