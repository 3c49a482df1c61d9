package model

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Cell is the public view of an unspent cell served to consumers.
// Data is nil when it was not resolved.
type Cell struct {
	CellOutput CellOutput     `json:"cell_output"`
	OutPoint   OutPoint       `json:"out_point"`
	BlockHash  Hash           `json:"block_hash"`
	Data       *hexutil.Bytes `json:"data"`
}
