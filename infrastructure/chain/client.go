// Package chain provides Neo N3 blockchain interaction for the reference
// collectors and executors: a thin wrapper over neo-go's own RPC client
// rather than a hand-rolled JSON-RPC layer.
package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Client wraps a neo-go RPC client with the subset of calls the reference
// collectors and executors need: block height polling, application log
// lookups, and raw transaction broadcast.
type Client struct {
	rpcURL string
	rpc    *rpcclient.Client
}

// Config holds client configuration.
type Config struct {
	RPCURL  string
	Timeout time.Duration
}

// NewClient dials a Neo N3 RPC node.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("chain: RPC URL required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	rpc, err := rpcclient.New(ctx, cfg.RPCURL, rpcclient.Options{DialTimeout: timeout, RequestTimeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("chain: dial rpc: %w", err)
	}
	if err := rpc.Init(); err != nil {
		rpc.Close()
		return nil, fmt.Errorf("chain: init rpc: %w", err)
	}

	return &Client{rpcURL: cfg.RPCURL, rpc: rpc}, nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	if c != nil && c.rpc != nil {
		c.rpc.Close()
	}
}

// NetworkID returns the Neo N3 network magic this client connected to.
func (c *Client) NetworkID() uint32 {
	if c == nil || c.rpc == nil {
		return 0
	}
	return uint32(c.rpc.GetNetwork())
}

// GetBlockCount returns the current block height.
func (c *Client) GetBlockCount(ctx context.Context) (uint32, error) {
	count, err := c.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("chain: get block count: %w", err)
	}
	return count, nil
}

// GetBlockHash returns the hash of the block at the given index.
func (c *Client) GetBlockHash(ctx context.Context, index uint32) (util.Uint256, error) {
	hash, err := c.rpc.GetBlockHash(index)
	if err != nil {
		return util.Uint256{}, fmt.Errorf("chain: get block hash: %w", err)
	}
	return hash, nil
}

// GetApplicationLog returns the application log for a transaction.
func (c *Client) GetApplicationLog(ctx context.Context, txHash util.Uint256) (*result.ApplicationLog, error) {
	log, err := c.rpc.GetApplicationLog(txHash, nil)
	if err != nil {
		return nil, fmt.Errorf("chain: get application log: %w", err)
	}
	return log, nil
}

// SendRawTransaction broadcasts a fully signed transaction and returns its
// hash.
func (c *Client) SendRawTransaction(ctx context.Context, tx *transaction.Transaction) (util.Uint256, error) {
	hash, err := c.rpc.SendRawTransaction(tx)
	if err != nil {
		return util.Uint256{}, fmt.Errorf("chain: send raw transaction: %w", err)
	}
	return hash, nil
}
