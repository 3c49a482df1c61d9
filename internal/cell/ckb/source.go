// Package ckb talks to a CKB node over JSON-RPC.
package ckb

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
)

const (
	methodGetBlockByNumber  = "get_block_by_number"
	methodGetLiveCell       = "get_live_cell"
	methodGetTipBlockNumber = "get_tip_block_number"
	defaultRequestTimeout   = 30 * time.Second
)

// Source is the chain source backed by a CKB node.
type Source struct {
	client  Caller
	metrics RPCMetrics
	closer  func()
}

// Dial connects to the node's HTTP JSON-RPC endpoint.
func Dial(ctx context.Context, url string, httpClient *http.Client, metrics RPCMetrics) (*Source, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	client, err := rpc.DialOptions(ctx, url, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("dial ckb rpc %s: %w", url, err)
	}
	s := NewSource(client, metrics)
	s.closer = client.Close
	return s, nil
}

// NewSource wraps an existing JSON-RPC caller.
func NewSource(client Caller, metrics RPCMetrics) *Source {
	return &Source{client: client, metrics: metrics}
}

// Close releases the underlying client.
func (s *Source) Close() {
	if s.closer != nil {
		s.closer()
	}
}

// GetBlockByNumber returns the block at height n, or nil when the node has not reached it.
func (s *Source) GetBlockByNumber(ctx context.Context, n uint64) (block *model.Block, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe(methodGetBlockByNumber, err, started)
	}()

	if err = s.client.CallContext(ctx, &block, methodGetBlockByNumber, hexutil.Uint64(n)); err != nil {
		return nil, fmt.Errorf("%s %d: %w", methodGetBlockByNumber, n, err)
	}
	if block == nil {
		return nil, nil
	}
	if uint64(block.Header.Number) != n {
		err = fmt.Errorf("%s %d: node returned block %d", methodGetBlockByNumber, n, uint64(block.Header.Number))
		return nil, err
	}
	for i, tx := range block.Transactions {
		if len(tx.OutputsData) != len(tx.Outputs) {
			err = &model.ValidationError{
				Field:  fmt.Sprintf("block %d tx %d outputs_data", n, i),
				Reason: fmt.Sprintf("%d entries for %d outputs", len(tx.OutputsData), len(tx.Outputs)),
			}
			return nil, err
		}
	}
	return block, nil
}

// GetLiveCell returns the cell at op together with its live status.
func (s *Source) GetLiveCell(ctx context.Context, op model.OutPoint, withData bool) (res *model.LiveCellResult, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe(methodGetLiveCell, err, started)
	}()

	if err = s.client.CallContext(ctx, &res, methodGetLiveCell, op, withData); err != nil {
		return nil, fmt.Errorf("%s %s: %w", methodGetLiveCell, model.EncodeOutPointKey(op), err)
	}
	if res == nil {
		err = fmt.Errorf("%s %s: empty response", methodGetLiveCell, model.EncodeOutPointKey(op))
		return nil, err
	}
	return res, nil
}

// GetTipBlockNumber returns the node's tip height.
func (s *Source) GetTipBlockNumber(ctx context.Context) (n uint64, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe(methodGetTipBlockNumber, err, started)
	}()

	var tip hexutil.Uint64
	if err = s.client.CallContext(ctx, &tip, methodGetTipBlockNumber); err != nil {
		return 0, fmt.Errorf("%s: %w", methodGetTipBlockNumber, err)
	}
	return uint64(tip), nil
}
