package model

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Record field names as persisted by the store engines.
const (
	FieldOutPoint         = "o"
	FieldCapacity         = "c"
	FieldLockHash         = "l"
	FieldLockCodeHash     = "lc"
	FieldLockHashType     = "lh"
	FieldLockArgs         = "la"
	FieldLockArgsLength   = "ll"
	FieldTypeHash         = "t"
	FieldTypeCodeHash     = "tc"
	FieldTypeHashType     = "th"
	FieldTypeArgs         = "ta"
	FieldTypeArgsLength   = "tl"
	FieldData             = "d"
	FieldDataLength       = "dl"
	FieldBlockHash        = "b"
	FieldBlockNumber      = "n"
	FieldSpent            = "s"
	FieldSpentBlockHash   = "sb"
	FieldSpentBlockNumber = "sn"
)

// Fields flattens the record into string fields. Absent values are omitted.
func (c *LiveCell) Fields() map[string]string {
	f := map[string]string{
		FieldOutPoint:       c.ID,
		FieldCapacity:       hexutil.EncodeUint64(c.Capacity),
		FieldLockHash:       c.LockHash.String(),
		FieldLockCodeHash:   c.LockCodeHash.String(),
		FieldLockHashType:   string(c.LockHashType),
		FieldLockArgsLength: hexutil.EncodeUint64(c.LockArgsLength),
		FieldDataLength:     hexutil.EncodeUint64(c.DataLength),
		FieldBlockHash:      c.BlockHash.String(),
		FieldBlockNumber:    hexutil.EncodeUint64(c.BlockNumber),
		FieldSpent:          strconv.FormatBool(c.Spent),
	}
	if !c.LockArgsTruncated() {
		f[FieldLockArgs] = hexutil.Encode(c.LockArgs)
	}
	if !c.DataTruncated() {
		f[FieldData] = hexutil.Encode(c.Data)
	}
	if c.HasType {
		f[FieldTypeHash] = c.TypeHash.String()
		f[FieldTypeCodeHash] = c.TypeCodeHash.String()
		f[FieldTypeHashType] = string(c.TypeHashType)
		f[FieldTypeArgsLength] = hexutil.EncodeUint64(c.TypeArgsLength)
		if !c.TypeArgsTruncated() {
			f[FieldTypeArgs] = hexutil.Encode(c.TypeArgs)
		}
	}
	if c.Spent {
		f[FieldSpentBlockHash] = c.SpentBlockHash.String()
		f[FieldSpentBlockNumber] = hexutil.EncodeUint64(c.SpentBlockNumber)
	}
	return f
}

// LiveCellFromFields rebuilds a record written by Fields.
func LiveCellFromFields(f map[string]string) (*LiveCell, error) {
	d := fieldDecoder{fields: f}
	c := &LiveCell{
		ID:             d.str(FieldOutPoint),
		Capacity:       d.uint(FieldCapacity),
		LockHash:       d.hash(FieldLockHash),
		LockCodeHash:   d.hash(FieldLockCodeHash),
		LockHashType:   d.hashType(FieldLockHashType),
		LockArgsLength: d.uint(FieldLockArgsLength),
		DataLength:     d.uint(FieldDataLength),
		BlockHash:      d.hash(FieldBlockHash),
		BlockNumber:    d.uint(FieldBlockNumber),
		Spent:          d.bool(FieldSpent),
	}
	if !c.LockArgsTruncated() {
		c.LockArgs = d.bytes(FieldLockArgs)
	}
	if !c.DataTruncated() {
		c.Data = d.bytes(FieldData)
	}
	if _, ok := f[FieldTypeHash]; ok {
		c.HasType = true
		c.TypeHash = d.hash(FieldTypeHash)
		c.TypeCodeHash = d.hash(FieldTypeCodeHash)
		c.TypeHashType = d.hashType(FieldTypeHashType)
		c.TypeArgsLength = d.uint(FieldTypeArgsLength)
		if !c.TypeArgsTruncated() {
			c.TypeArgs = d.bytes(FieldTypeArgs)
		}
	}
	if c.Spent {
		c.SpentBlockHash = d.hash(FieldSpentBlockHash)
		c.SpentBlockNumber = d.uint(FieldSpentBlockNumber)
	}
	if d.err != nil {
		return nil, d.err
	}
	return c, nil
}

// fieldDecoder keeps the first decoding error so callers can decode every field before checking.
type fieldDecoder struct {
	fields map[string]string
	err    error
}

func (d *fieldDecoder) str(name string) string {
	v, ok := d.fields[name]
	if !ok && d.err == nil {
		d.err = &ValidationError{Field: "record." + name, Reason: "is missing"}
	}
	return v
}

func (d *fieldDecoder) uint(name string) uint64 {
	raw := d.str(name)
	if d.err != nil {
		return 0
	}
	v, err := hexutil.DecodeUint64(raw)
	if err != nil {
		d.err = &ValidationError{Field: "record." + name, Reason: err.Error()}
	}
	return v
}

func (d *fieldDecoder) hash(name string) Hash {
	raw := d.str(name)
	if d.err != nil {
		return Hash{}
	}
	h, err := ParseHash(raw)
	if err != nil {
		d.err = prefixField("record."+name, err)
	}
	return h
}

func (d *fieldDecoder) hashType(name string) HashType {
	ht := HashType(d.str(name))
	if d.err != nil {
		return ""
	}
	if _, err := ht.Byte(); err != nil {
		d.err = prefixField("record."+name, err)
	}
	return ht
}

func (d *fieldDecoder) bytes(name string) []byte {
	raw := d.str(name)
	if d.err != nil {
		return nil
	}
	v, err := hexutil.Decode(raw)
	if err != nil {
		d.err = &ValidationError{Field: "record." + name, Reason: err.Error()}
	}
	return v
}

func (d *fieldDecoder) bool(name string) bool {
	raw := d.str(name)
	if d.err != nil {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		d.err = &ValidationError{Field: "record." + name, Reason: fmt.Sprintf("not a boolean: %q", raw)}
	}
	return v
}
