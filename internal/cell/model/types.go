// Package model defines domain models for CKB live-cell indexing.
package model

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/ckb-cell-indexer/pkg/safe"
)

// Network identifies the CKB chain the index follows.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// AddressPrefix returns the human-readable part used by addresses on the network.
func (n Network) AddressPrefix() (string, error) {
	switch strings.ToLower(string(n)) {
	case "mainnet", "main", "ckb":
		return "ckb", nil
	case "testnet", "test", "ckt", "dev", "devnet":
		return "ckt", nil
	default:
		return "", fmt.Errorf("unsupported network %q", n)
	}
}

// HashSize is the length of every CKB hash in bytes.
const HashSize = 32

// Hash is a 32-byte digest rendered as 0x-prefixed hex.
type Hash [HashSize]byte

// ParseHash decodes a 0x-prefixed 32-byte hex string.
func ParseHash(s string) (Hash, error) {
	var h Hash
	raw, err := hexutil.Decode(s)
	if err != nil {
		return h, &ValidationError{Field: "hash", Reason: err.Error()}
	}
	if len(raw) != HashSize {
		return h, &ValidationError{Field: "hash", Reason: fmt.Sprintf("must be %d bytes long, got %d", HashSize, len(raw))}
	}
	copy(h[:], raw)
	return h, nil
}

func (h Hash) String() string {
	return hexutil.Encode(h[:])
}

// IsZero reports whether every byte of the hash is zero.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// HashType tells how a script's code_hash refers to its code.
type HashType string

const (
	HashTypeData  HashType = "data"
	HashTypeType  HashType = "type"
	HashTypeData1 HashType = "data1"
	HashTypeData2 HashType = "data2"
)

// Byte returns the molecule encoding of the hash type.
func (t HashType) Byte() (byte, error) {
	switch t {
	case HashTypeData:
		return 0, nil
	case HashTypeType:
		return 1, nil
	case HashTypeData1:
		return 2, nil
	case HashTypeData2:
		return 4, nil
	default:
		return 0, &ValidationError{Field: "hash_type", Reason: fmt.Sprintf("unknown value %q", string(t))}
	}
}

// HashTypeFromByte maps the molecule encoding back to a HashType.
func HashTypeFromByte(b byte) (HashType, error) {
	switch b {
	case 0:
		return HashTypeData, nil
	case 1:
		return HashTypeType, nil
	case 2:
		return HashTypeData1, nil
	case 4:
		return HashTypeData2, nil
	default:
		return "", &ValidationError{Field: "hash_type", Reason: fmt.Sprintf("unknown byte %d", b)}
	}
}

func (t *HashType) UnmarshalText(text []byte) error {
	ht := HashType(text)
	if _, err := ht.Byte(); err != nil {
		return err
	}
	*t = ht
	return nil
}

// Uint32 is a uint32 rendered as 0x-prefixed hex.
type Uint32 uint32

func (u Uint32) MarshalText() ([]byte, error) {
	return []byte(hexutil.EncodeUint64(uint64(u))), nil
}

func (u *Uint32) UnmarshalText(text []byte) error {
	v, err := hexutil.DecodeUint64(string(text))
	if err != nil {
		return &ValidationError{Field: "uint32", Reason: err.Error()}
	}
	parsed, err := safe.Uint32(v)
	if err != nil {
		return &ValidationError{Field: "uint32", Reason: err.Error()}
	}
	*u = Uint32(parsed)
	return nil
}

// OutPoint identifies one transaction output.
type OutPoint struct {
	TxHash Hash   `json:"tx_hash"`
	Index  Uint32 `json:"index"`
}

// Script is a lock or type script.
type Script struct {
	CodeHash Hash          `json:"code_hash"`
	HashType HashType      `json:"hash_type"`
	Args     hexutil.Bytes `json:"args"`
}

// Validate checks the fields that can be malformed once decoded.
func (s Script) Validate() error {
	_, err := s.HashType.Byte()
	return err
}

// CellOutput is a transaction output without its payload.
type CellOutput struct {
	Capacity hexutil.Uint64 `json:"capacity"`
	Lock     Script         `json:"lock"`
	Type     *Script        `json:"type"`
}

// Validate checks lock and type scripts.
func (o CellOutput) Validate() error {
	if err := o.Lock.Validate(); err != nil {
		return prefixField("cell_output.lock", err)
	}
	if o.Type != nil {
		if err := o.Type.Validate(); err != nil {
			return prefixField("cell_output.type", err)
		}
	}
	return nil
}

// CellInput references the output a transaction consumes.
type CellInput struct {
	PreviousOutput OutPoint       `json:"previous_output"`
	Since          hexutil.Uint64 `json:"since"`
}

// Transaction carries the parts of a CKB transaction the index needs.
type Transaction struct {
	Hash        Hash            `json:"hash"`
	Inputs      []CellInput     `json:"inputs"`
	Outputs     []CellOutput    `json:"outputs"`
	OutputsData []hexutil.Bytes `json:"outputs_data"`
}

// Header carries the block header fields used for chain following.
type Header struct {
	Hash       Hash           `json:"hash"`
	ParentHash Hash           `json:"parent_hash"`
	Number     hexutil.Uint64 `json:"number"`
}

// Block is a block as returned by get_block_by_number.
type Block struct {
	Header       Header        `json:"header"`
	Transactions []Transaction `json:"transactions"`
}

// CellData is the payload part of a get_live_cell response.
type CellData struct {
	Content hexutil.Bytes `json:"content"`
	Hash    Hash          `json:"hash"`
}

// CellWithStatus is the cell part of a get_live_cell response.
type CellWithStatus struct {
	Output CellOutput `json:"output"`
	Data   *CellData  `json:"data"`
}

// LiveCellStatusLive is the status get_live_cell reports for unspent cells.
const LiveCellStatusLive = "live"

// LiveCellResult is the response of get_live_cell.
type LiveCellResult struct {
	Cell   *CellWithStatus `json:"cell"`
	Status string          `json:"status"`
}
