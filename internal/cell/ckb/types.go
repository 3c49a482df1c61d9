package ckb

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// TipMetrics records tip subscription events.
	TipMetrics interface {
		ObserveTip(height uint64)
		ObserveReconnect()
	}

	// Caller issues JSON-RPC calls. *rpc.Client satisfies it.
	Caller interface {
		CallContext(ctx context.Context, result any, method string, args ...any) error
	}
)
