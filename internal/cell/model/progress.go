package model

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Scalar keys holding indexer progress.
const (
	KeyLastProcessedNumber     = "LAST_PROCESSED_NUMBER"
	KeyLastUnpurgedBlockNumber = "LAST_UNPURGED_BLOCK_NUMBER"
)

// BlockHashKey returns the scalar key holding the hash committed at height n.
func BlockHashKey(n uint64) string {
	return "BLOCK:" + hexutil.EncodeUint64(n) + ":HASH"
}

// EncodeNumber renders a height for a scalar value.
func EncodeNumber(n uint64) string {
	return hexutil.EncodeUint64(n)
}

// DecodeNumber parses a height written by EncodeNumber.
func DecodeNumber(key, s string) (uint64, error) {
	n, err := hexutil.DecodeUint64(s)
	if err != nil {
		return 0, &ValidationError{Field: key, Reason: err.Error()}
	}
	return n, nil
}
