// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package client provides an HTTP client for the REST API of a corral node.
package client

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"

	"github.com/corral-labs/corral/api/blocks"
	"github.com/corral-labs/corral/api/collection"
	"github.com/corral-labs/corral/api/events"
	"github.com/corral-labs/corral/api/node"
	"github.com/corral-labs/corral/api/params"
	"github.com/corral-labs/corral/api/rewards"
	"github.com/corral-labs/corral/api/stakes"
	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/corral"
)

var ErrNot200Status = errors.New("not 200 status code")

// StatusError is a response with a non 200 status. Message holds the
// response body, which is the revert reason of a reverted invocation.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http error - Status Code %d - %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrNot200Status
}

// Client talks to the REST API served at url.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: strings.TrimRight(url, "/"),
		c:   c,
	}
}

func amount(u *uint256.Int) *math.HexOrDecimal256 {
	return utils.Amount(u)
}

// Node returns the node info.
func (c *Client) Node() (*node.Info, error) {
	var info node.Info
	if err := c.get("/node", &info); err != nil {
		return nil, fmt.Errorf("unable to get node info - %w", err)
	}
	return &info, nil
}

// Params returns the staking parameters.
func (c *Client) Params() (*params.Params, error) {
	var p params.Params
	if err := c.get("/params", &p); err != nil {
		return nil, fmt.Errorf("unable to get params - %w", err)
	}
	return &p, nil
}

// Stake deposits item id of the account of key.
func (c *Client) Stake(key *ecdsa.PrivateKey, id *uint256.Int) (*utils.Receipt, error) {
	body := &stakes.StakeRequest{ItemID: amount(id)}
	return c.invoke("/stakes", key, &body.Signed, body, stakes.MethodStake, id)
}

// Unstake withdraws item id of the account of key.
func (c *Client) Unstake(key *ecdsa.PrivateKey, id *uint256.Int) (*utils.Receipt, error) {
	body := &stakes.StakeRequest{ItemID: amount(id)}
	return c.invoke("/stakes/unstake", key, &body.Signed, body, stakes.MethodUnstake, id)
}

// ClaimRewards claims every reward of the account of key.
func (c *Client) ClaimRewards(key *ecdsa.PrivateKey) (*utils.Receipt, error) {
	body := &rewards.ClaimRequest{}
	return c.invoke("/rewards/claim", key, &body.Signed, body, rewards.MethodClaim)
}

// PauseStaking stops new deposits.
func (c *Client) PauseStaking(key *ecdsa.PrivateKey) (*utils.Receipt, error) {
	body := &params.CallerRequest{}
	return c.invoke("/params/pause", key, &body.Signed, body, params.MethodPauseStaking)
}

// ResumeStaking allows new deposits again.
func (c *Client) ResumeStaking(key *ecdsa.PrivateKey) (*utils.Receipt, error) {
	body := &params.CallerRequest{}
	return c.invoke("/params/resume", key, &body.Signed, body, params.MethodResumeStaking)
}

// UpdateRewardRate sets the reward paid per block per staked item.
func (c *Client) UpdateRewardRate(key *ecdsa.PrivateKey, rate *uint256.Int) (*utils.Receipt, error) {
	body := &params.UpdateRequest{Value: amount(rate)}
	return c.invoke("/params/reward-rate", key, &body.Signed, body, params.MethodUpdateRewardRate, rate)
}

// UpdateClaimDelay sets the blocks between claims of a position.
func (c *Client) UpdateClaimDelay(key *ecdsa.PrivateKey, blocks uint32) (*utils.Receipt, error) {
	v := uint256.NewInt(uint64(blocks))
	body := &params.UpdateRequest{Value: amount(v)}
	return c.invoke("/params/claim-delay", key, &body.Signed, body, params.MethodUpdateClaimDelay, v)
}

// UpdateUnstakePeriod sets the blocks a position stays locked after staking.
func (c *Client) UpdateUnstakePeriod(key *ecdsa.PrivateKey, blocks uint32) (*utils.Receipt, error) {
	v := uint256.NewInt(uint64(blocks))
	body := &params.UpdateRequest{Value: amount(v)}
	return c.invoke("/params/unstake-period", key, &body.Signed, body, params.MethodUpdateUnstakePeriod, v)
}

// TransferOwnership hands the params over to newOwner.
func (c *Client) TransferOwnership(key *ecdsa.PrivateKey, newOwner corral.Address) (*utils.Receipt, error) {
	body := &params.OwnerRequest{Value: &newOwner}
	return c.invoke("/params/owner", key, &body.Signed, body, params.MethodTransferOwnership, newOwner)
}

// Approve lets to stake or move item id. A zero to clears the approval.
func (c *Client) Approve(key *ecdsa.PrivateKey, to corral.Address, id *uint256.Int) (*utils.Receipt, error) {
	body := &collection.ApproveRequest{ItemID: amount(id)}
	if !to.IsZero() {
		body.To = &to
	}
	return c.invoke("/collection/approve", key, &body.Signed, body, collection.MethodApprove, to, id)
}

// SetApprovalForAll grants or revokes operator over every item of the account of key.
func (c *Client) SetApprovalForAll(key *ecdsa.PrivateKey, operator corral.Address, approved bool) (*utils.Receipt, error) {
	body := &collection.ApprovalForAllRequest{Operator: &operator, Approved: approved}
	return c.invoke("/collection/approval-for-all", key, &body.Signed, body, collection.MethodSetApprovalForAll, operator, approved)
}

// Stakes returns the active positions of owner.
func (c *Client) Stakes(owner corral.Address) (*stakes.OwnerStakes, error) {
	var s stakes.OwnerStakes
	if err := c.get("/stakes/"+owner.String(), &s); err != nil {
		return nil, fmt.Errorf("unable to get stakes - %w", err)
	}
	return &s, nil
}

// Stake returns the position of (owner, id).
func (c *Client) GetStake(owner corral.Address, id *uint256.Int) (*stakes.Stake, error) {
	var s stakes.Stake
	if err := c.get("/stakes/"+owner.String()+"/"+id.Dec(), &s); err != nil {
		return nil, fmt.Errorf("unable to get stake - %w", err)
	}
	return &s, nil
}

// Rewards previews the rewards of owner. A zero block previews the pending block.
func (c *Client) Rewards(owner corral.Address, block uint32) (*rewards.Rewards, error) {
	path := "/rewards/" + owner.String()
	if block != 0 {
		path += "?block=" + strconv.FormatUint(uint64(block), 10)
	}
	var r rewards.Rewards
	if err := c.get(path, &r); err != nil {
		return nil, fmt.Errorf("unable to get rewards - %w", err)
	}
	return &r, nil
}

// Mine seals count blocks. Requires the dev API.
func (c *Client) Mine(count uint32) (*blocks.Head, error) {
	var head blocks.Head
	if err := c.post("/blocks/mine", &blocks.MineRequest{Count: &count}, &head); err != nil {
		return nil, fmt.Errorf("unable to mine - %w", err)
	}
	return &head, nil
}

// FilterEvents queries events. Recognized keys are name, owner, address, from, to, offset, limit and order.
func (c *Client) FilterEvents(query url.Values) ([]*events.FilteredEvent, error) {
	path := "/events"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var evs []*events.FilteredEvent
	if err := c.get(path, &evs); err != nil {
		return nil, fmt.Errorf("unable to filter events - %w", err)
	}
	return evs, nil
}

// Receipt returns the receipt of an invocation, nil if unknown.
func (c *Client) Receipt(id corral.Bytes32) (*utils.Receipt, error) {
	var receipt *utils.Receipt
	if err := c.get("/receipts/"+id.String(), &receipt); err != nil {
		return nil, fmt.Errorf("unable to get receipt - %w", err)
	}
	return receipt, nil
}

// invoke signs the call of method with args into signed, then posts body
// embedding it.
func (c *Client) invoke(path string, key *ecdsa.PrivateKey, signed *utils.Signed, body any, method string, args ...any) (*utils.Receipt, error) {
	if err := signed.Sign(key, method, args...); err != nil {
		return nil, fmt.Errorf("unable to sign %s - %w", method, err)
	}
	var receipt utils.Receipt
	if err := c.post(path, body, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) get(path string, out any) error {
	body, status, err := c.RawHTTPGet(path)
	if err != nil {
		return err
	}
	return decode(body, status, out)
}

func (c *Client) post(path string, payload any, out any) error {
	body, status, err := c.RawHTTPPost(path, payload)
	if err != nil {
		return err
	}
	return decode(body, status, out)
}

func decode(body []byte, status int, out any) error {
	if status != http.StatusOK {
		return &StatusError{Code: status, Message: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unable to unmarshal response - %w", err)
	}
	return nil
}

// RawHTTPPost sends a raw HTTP POST request to the specified path with the provided data.
func (c *Client) RawHTTPPost(path string, payload any) ([]byte, int, error) {
	data, ok := payload.([]byte)
	if !ok {
		var err error
		if data, err = json.Marshal(payload); err != nil {
			return nil, 0, fmt.Errorf("unable to marshal payload - %w", err)
		}
	}
	return c.rawHTTPRequest(http.MethodPost, c.url+path, bytes.NewReader(data))
}

// RawHTTPGet sends a raw HTTP GET request to the specified path.
func (c *Client) RawHTTPGet(path string) ([]byte, int, error) {
	return c.rawHTTPRequest(http.MethodGet, c.url+path, nil)
}

func (c *Client) rawHTTPRequest(method, url string, payload io.Reader) ([]byte, int, error) {
	req, err := http.NewRequest(method, url, payload)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("error reading response body: %w", err)
	}
	return body, resp.StatusCode, nil
}
