package model

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/ckb-cell-indexer/pkg/ckbhash"
	"github.com/goodnatureofminers/ckb-cell-indexer/pkg/molecule"
)

// MaxKeptBytes is the largest args or data payload stored verbatim on a record.
const MaxKeptBytes = 128

// LiveCellFetcher loads the full content of a cell by out-point.
type LiveCellFetcher interface {
	GetLiveCell(ctx context.Context, outPoint OutPoint, withData bool) (*LiveCellResult, error)
}

// CellCandidate is an output about to be projected into a LiveCell.
// Nil pointers and a nil Data slice mean the part is missing.
type CellCandidate struct {
	OutPoint    *OutPoint
	BlockHash   *Hash
	BlockNumber uint64
	CellOutput  *CellOutput
	Data        []byte
}

// LiveCell is the indexed projection of one transaction output.
type LiveCell struct {
	ID       string
	Capacity uint64

	LockHash       Hash
	LockCodeHash   Hash
	LockHashType   HashType
	LockArgs       []byte
	LockArgsLength uint64

	HasType        bool
	TypeHash       Hash
	TypeCodeHash   Hash
	TypeHashType   HashType
	TypeArgs       []byte
	TypeArgsLength uint64

	Data       []byte
	DataLength uint64

	BlockHash   Hash
	BlockNumber uint64

	Spent            bool
	SpentBlockHash   Hash
	SpentBlockNumber uint64

	fetched *CellWithStatus
}

// Serialize returns the canonical molecule encoding of the script.
func (s Script) Serialize() ([]byte, error) {
	ht, err := s.HashType.Byte()
	if err != nil {
		return nil, err
	}
	return molecule.Table(
		molecule.Byte32(s.CodeHash),
		[]byte{ht},
		molecule.Bytes(s.Args),
	), nil
}

// Hash returns the CKB hash of the serialized script.
func (s Script) Hash() (Hash, error) {
	raw, err := s.Serialize()
	if err != nil {
		return Hash{}, err
	}
	return Hash(ckbhash.Sum(raw)), nil
}

// SetCell validates candidate and overwrites the record's cell fields with it.
// The spent fields are kept so re-applying a block does not resurrect spent cells.
func (c *LiveCell) SetCell(candidate CellCandidate) error {
	switch {
	case candidate.OutPoint == nil:
		return &ValidationError{Field: "out_point", Reason: "is required"}
	case candidate.BlockHash == nil:
		return &ValidationError{Field: "block_hash", Reason: "is required"}
	case candidate.CellOutput == nil:
		return &ValidationError{Field: "cell_output", Reason: "is required"}
	case candidate.Data == nil:
		return &ValidationError{Field: "data", Reason: "is required"}
	}

	output := candidate.CellOutput
	if err := output.Validate(); err != nil {
		return err
	}
	lockHash, err := output.Lock.Hash()
	if err != nil {
		return prefixField("cell_output.lock", err)
	}

	next := LiveCell{
		ID:               EncodeOutPointKey(*candidate.OutPoint),
		Capacity:         uint64(output.Capacity),
		LockHash:         lockHash,
		LockCodeHash:     output.Lock.CodeHash,
		LockHashType:     output.Lock.HashType,
		LockArgs:         keep(output.Lock.Args),
		LockArgsLength:   uint64(len(output.Lock.Args)),
		Data:             keep(candidate.Data),
		DataLength:       uint64(len(candidate.Data)),
		BlockHash:        *candidate.BlockHash,
		BlockNumber:      candidate.BlockNumber,
		Spent:            c.Spent,
		SpentBlockHash:   c.SpentBlockHash,
		SpentBlockNumber: c.SpentBlockNumber,
	}
	if output.Type != nil {
		typeHash, err := output.Type.Hash()
		if err != nil {
			return prefixField("cell_output.type", err)
		}
		next.HasType = true
		next.TypeHash = typeHash
		next.TypeCodeHash = output.Type.CodeHash
		next.TypeHashType = output.Type.HashType
		next.TypeArgs = keep(output.Type.Args)
		next.TypeArgsLength = uint64(len(output.Type.Args))
	}

	*c = next
	return nil
}

func keep(v []byte) []byte {
	if len(v) > MaxKeptBytes {
		return nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

// MarkSpent flags the cell as consumed by the given block.
func (c *LiveCell) MarkSpent(blockHash Hash, blockNumber uint64) {
	c.Spent = true
	c.SpentBlockHash = blockHash
	c.SpentBlockNumber = blockNumber
}

// Unspend clears the spent flag and the consuming block.
func (c *LiveCell) Unspend() {
	c.Spent = false
	c.SpentBlockHash = Hash{}
	c.SpentBlockNumber = 0
}

// LockArgsTruncated reports whether the lock args were too large to keep.
func (c *LiveCell) LockArgsTruncated() bool { return c.LockArgsLength > MaxKeptBytes }

// TypeArgsTruncated reports whether the type args were too large to keep.
func (c *LiveCell) TypeArgsTruncated() bool { return c.HasType && c.TypeArgsLength > MaxKeptBytes }

// DataTruncated reports whether the data was too large to keep.
func (c *LiveCell) DataTruncated() bool { return c.DataLength > MaxKeptBytes }

// OutPoint decodes the record ID.
func (c *LiveCell) OutPoint() (OutPoint, error) {
	return DecodeOutPointKey(c.ID)
}

// SetOutPoint sets the record ID from op.
func (c *LiveCell) SetOutPoint(op OutPoint) {
	c.ID = EncodeOutPointKey(op)
}

// EncodeOutPointKey renders op as the tx hash followed by the hex index, e.g. 0x<64 hex>0x1.
func EncodeOutPointKey(op OutPoint) string {
	return op.TxHash.String() + hexutil.EncodeUint64(uint64(op.Index))
}

// DecodeOutPointKey parses a key produced by EncodeOutPointKey.
func DecodeOutPointKey(key string) (OutPoint, error) {
	const hashLen = 2 + 2*HashSize
	var op OutPoint
	if len(key) <= hashLen || !strings.HasPrefix(key, "0x") {
		return op, &ValidationError{Field: "out_point", Reason: fmt.Sprintf("malformed key %q", key)}
	}
	txHash, err := ParseHash(key[:hashLen])
	if err != nil {
		return op, prefixField("out_point", err)
	}
	var index Uint32
	if err := index.UnmarshalText([]byte(key[hashLen:])); err != nil {
		return op, prefixField("out_point", err)
	}
	op.TxHash = txHash
	op.Index = index
	return op, nil
}

// Lock returns the full lock script, fetching it when its args were truncated.
func (c *LiveCell) Lock(ctx context.Context, src LiveCellFetcher) (Script, error) {
	if !c.LockArgsTruncated() {
		return Script{CodeHash: c.LockCodeHash, HashType: c.LockHashType, Args: c.LockArgs}, nil
	}
	cell, err := c.fetch(ctx, src, "lock.args")
	if err != nil {
		return Script{}, err
	}
	return cell.Output.Lock, nil
}

// Type returns the full type script or nil when the cell has none.
func (c *LiveCell) Type(ctx context.Context, src LiveCellFetcher) (*Script, error) {
	if !c.HasType {
		return nil, nil
	}
	if !c.TypeArgsTruncated() {
		return &Script{CodeHash: c.TypeCodeHash, HashType: c.TypeHashType, Args: c.TypeArgs}, nil
	}
	cell, err := c.fetch(ctx, src, "type.args")
	if err != nil {
		return nil, err
	}
	if cell.Output.Type == nil {
		return nil, &ValidationError{Field: "type", Reason: "fetched cell has no type script"}
	}
	return cell.Output.Type, nil
}

// FullData returns the full cell data, fetching it when it was truncated.
func (c *LiveCell) FullData(ctx context.Context, src LiveCellFetcher) ([]byte, error) {
	if !c.DataTruncated() {
		return c.Data, nil
	}
	cell, err := c.fetch(ctx, src, "data")
	if err != nil {
		return nil, err
	}
	return cell.Data.Content, nil
}

func (c *LiveCell) fetch(ctx context.Context, src LiveCellFetcher, field string) (*CellWithStatus, error) {
	if c.fetched != nil {
		return c.fetched, nil
	}
	if src == nil {
		return nil, &MissingSourceError{Field: field}
	}
	op, err := c.OutPoint()
	if err != nil {
		return nil, err
	}
	res, err := src.GetLiveCell(ctx, op, true)
	if err != nil {
		return nil, fmt.Errorf("get live cell %s: %w", c.ID, err)
	}
	if res == nil || res.Cell == nil || res.Status != LiveCellStatusLive {
		return nil, fmt.Errorf("%s: %w", c.ID, ErrCellNotLive)
	}
	if err := c.verify(res.Cell); err != nil {
		return nil, err
	}
	c.fetched = res.Cell
	return c.fetched, nil
}

func (c *LiveCell) verify(cell *CellWithStatus) error {
	if err := cell.Output.Validate(); err != nil {
		return prefixField("fetched", err)
	}
	if cell.Data == nil {
		return &ValidationError{Field: "fetched.data", Reason: "is required"}
	}
	if uint64(len(cell.Data.Content)) != c.DataLength {
		return &ValidationError{Field: "fetched.data", Reason: fmt.Sprintf("length %d differs from indexed %d", len(cell.Data.Content), c.DataLength)}
	}
	if lockHash, err := cell.Output.Lock.Hash(); err != nil || lockHash != c.LockHash {
		return &ValidationError{Field: "fetched.lock", Reason: "does not match indexed lock script"}
	}
	if c.HasType != (cell.Output.Type != nil) {
		return &ValidationError{Field: "fetched.type", Reason: "does not match indexed type script"}
	}
	if c.HasType {
		if typeHash, err := cell.Output.Type.Hash(); err != nil || typeHash != c.TypeHash {
			return &ValidationError{Field: "fetched.type", Reason: "does not match indexed type script"}
		}
	}
	if !c.DataTruncated() && !bytes.Equal(cell.Data.Content, c.Data) {
		return &ValidationError{Field: "fetched.data", Reason: "does not match indexed data"}
	}
	return nil
}
