// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes invocations against the builtin contracts one at a time.
package runtime

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/corral-labs/corral/builtin"
	"github.com/corral-labs/corral/builtin/collection"
	"github.com/corral-labs/corral/builtin/params"
	"github.com/corral-labs/corral/builtin/reverts"
	"github.com/corral-labs/corral/builtin/stakenft"
	"github.com/corral-labs/corral/builtin/token"
	"github.com/corral-labs/corral/chain"
	"github.com/corral-labs/corral/co"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/kv"
	"github.com/corral-labs/corral/log"
	"github.com/corral-labs/corral/logdb"
	"github.com/corral-labs/corral/state"
	"github.com/corral-labs/corral/tx"
)

var logger = log.WithContext("pkg", "runtime")

// MethodGenesis is the method name of the receipt recording genesis setup.
const MethodGenesis = "genesis"

var (
	// ErrCallExecuted is returned when a signed call is submitted again.
	ErrCallExecuted = errors.New("call already executed")
	// ErrReceiptNotRecorded is returned along with the receipt of an invocation
	// whose state was committed while its receipt failed to reach the log store.
	ErrReceiptNotRecorded = errors.New("receipt not recorded")
)

// Contracts are the builtin contracts bound to a single invocation.
type Contracts struct {
	// block the invocation executes in
	BlockNumber uint32
	Params      *params.Params
	Collection  *collection.Collection
	Token       *token.Token
	StakeNFT    *stakenft.StakeNFT
}

func bind(st *state.State, journal *tx.EventJournal, blockNum uint32) *Contracts {
	return &Contracts{
		BlockNumber: blockNum,
		Params:      builtin.Params.With(st, journal),
		Collection:  builtin.Collection.With(st, journal),
		Token:       builtin.Token.With(st, journal),
		StakeNFT:    builtin.StakeNFT.With(st, journal, stakenft.ClockFunc(func() uint32 { return blockNum })),
	}
}

// Runtime serializes invocations into one ordered log. Each invocation
// either commits all of its writes and events or none of them.
type Runtime struct {
	mu       sync.Mutex
	state    *state.State
	chain    *chain.Chain
	logDB    *logdb.LogDB
	automine bool
	tick     co.Signal
}

// New creates a runtime. With automine, every recorded invocation seals its own block.
func New(st *state.State, chain *chain.Chain, logDB *logdb.LogDB, automine bool) *Runtime {
	return &Runtime{
		state:    st,
		chain:    chain,
		logDB:    logDB,
		automine: automine,
	}
}

// NewTicker creates a Waiter woken whenever a receipt is recorded or blocks are mined.
func (r *Runtime) NewTicker() *co.Waiter {
	return r.tick.NewWaiter()
}

// Chain returns the block counter the runtime executes against.
func (r *Runtime) Chain() *chain.Chain {
	return r.chain
}

// Execute runs fn as one invocation issued by caller in the pending block.
// The caller is trusted, which suits genesis setup and dev tooling. Calls
// issued through the API go through ExecuteCall.
//
// A reverted invocation is recorded with its reason and the revert error is returned
// along with the receipt. Any other error during fn discards the invocation and
// returns a nil receipt. If the state is committed but the receipt cannot be
// recorded, the receipt is returned with ErrReceiptNotRecorded.
func (r *Runtime) Execute(caller corral.Address, method string, fn func(*Contracts) error) (*tx.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blockNum := r.chain.PendingBlock()
	return r.execute(blockNum, caller, method, nil, fn)
}

// ExecuteCall runs fn as the invocation described by call, which must be signed
// by its caller and not executed before. The call is marked executed whether fn
// succeeds or reverts. Results are reported as by Execute.
func (r *Runtime) ExecuteCall(call *tx.Call, fn func(*Contracts) error) (*tx.Receipt, error) {
	if err := call.Verify(); err != nil {
		return nil, err
	}
	id, err := call.SigningHash()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	executed, err := newCallRegistry(r.state).Executed(id)
	if err != nil {
		return nil, err
	}
	if executed {
		return nil, ErrCallExecuted
	}
	blockNum := r.chain.PendingBlock()
	return r.execute(blockNum, call.Caller, call.Method, &id, fn)
}

func (r *Runtime) execute(blockNum uint32, caller corral.Address, method string, callID *corral.Bytes32, fn func(*Contracts) error) (*tx.Receipt, error) {
	start := time.Now()
	journal := &tx.EventJournal{}

	execErr := fn(bind(r.state, journal, blockNum))
	if execErr != nil {
		r.state.Discard()
		journal.Reset()
		if !reverts.IsRevertErr(execErr) {
			observeExecution(method, "error", time.Since(start).Milliseconds())
			logger.Warn("invocation failed", "method", method, "caller", caller, "err", execErr)
			return nil, execErr
		}
	}
	if callID != nil {
		if err := newCallRegistry(r.state).Record(*callID); err != nil {
			r.state.Discard()
			return nil, err
		}
	}

	receipt := &tx.Receipt{
		BlockNumber:  blockNum,
		Caller:       caller,
		Method:       method,
		Events:       journal.Events(),
		Reverted:     execErr != nil,
		RevertReason: reverts.Reason(execErr),
	}
	// the receipt index is committed together with the state
	var stages []func(kv.Batch) error
	applyIndex := func() {}
	// block 0 holds the genesis receipt only
	if blockNum != 0 {
		stages = append(stages, func(batch kv.Batch) error {
			index, apply, err := r.chain.StageTx(batch)
			if err != nil {
				return err
			}
			receipt.Index = index
			applyIndex = apply
			return nil
		})
	}
	if err := r.state.Commit(stages...); err != nil {
		r.state.Discard()
		observeExecution(method, "error", time.Since(start).Milliseconds())
		return nil, errors.Wrap(err, "commit state")
	}
	applyIndex()
	defer r.tick.Broadcast()

	var recordErr error
	if err := r.logDB.Write(receipt); err != nil {
		logger.Error("receipt not recorded", "method", method, "caller", caller, "block", blockNum, "index", receipt.Index, "err", err)
		recordErr = fmt.Errorf("%w: %w", ErrReceiptNotRecorded, err)
	}

	if execErr != nil {
		observeExecution(method, "reverted", time.Since(start).Milliseconds())
		logger.Debug("invocation reverted", "method", method, "caller", caller, "block", blockNum, "reason", receipt.RevertReason)
	} else {
		observeExecution(method, "success", time.Since(start).Milliseconds())
		logger.Debug("invocation executed", "method", method, "caller", caller, "block", blockNum, "events", len(receipt.Events))
	}

	if r.automine && blockNum != 0 {
		if _, err := r.chain.Mine(1); err != nil {
			return nil, errors.Wrap(err, "mine")
		}
	}
	if recordErr != nil {
		return receipt, recordErr
	}
	return receipt, execErr
}

// Genesis runs fn in block 0 if the chain is still at genesis and the params
// contract has not been initialized. It reports whether fn ran. Reverts are
// fatal here.
func (r *Runtime) Genesis(fn func(*Contracts) error) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	initialized, err := builtin.Params.With(r.state, nil).Initialized()
	if err != nil {
		return false, err
	}
	if initialized {
		return false, nil
	}
	if r.chain.BestBlock() != 0 {
		return false, errors.New("chain has blocks but params are not initialized")
	}

	receipt, err := r.execute(0, corral.Address{}, MethodGenesis, nil, fn)
	if err != nil {
		if reverts.IsRevertErr(err) {
			return false, errors.Wrap(err, "genesis reverted")
		}
		return false, err
	}
	logger.Info("genesis applied", "events", len(receipt.Events))
	return true, nil
}

// View runs fn against the committed state. Writes made by fn are discarded.
func (r *Runtime) View(fn func(*Contracts) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer r.state.Discard()
	return fn(bind(r.state, nil, r.chain.PendingBlock()))
}

// Mine seals n blocks.
func (r *Runtime) Mine(n uint32) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	best, err := r.chain.Mine(n)
	if err != nil {
		return 0, err
	}
	r.tick.Broadcast()
	return best, nil
}
