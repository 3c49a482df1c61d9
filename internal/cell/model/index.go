package model

import (
	"strconv"
)

// IndexKind tells how a store engine indexes a record field.
type IndexKind int

const (
	// IndexEquality supports exact-match lookups on the field's text value.
	IndexEquality IndexKind = iota
	// IndexOrdered supports inclusive range scans on the field's numeric value.
	IndexOrdered
)

// IndexDecl declares one secondary index.
type IndexDecl struct {
	Field string
	Kind  IndexKind
}

// Indexes lists every secondary index a store engine maintains for LiveCell records.
var Indexes = []IndexDecl{
	{Field: FieldLockHash, Kind: IndexEquality},
	{Field: FieldLockCodeHash, Kind: IndexEquality},
	{Field: FieldLockHashType, Kind: IndexEquality},
	{Field: FieldTypeHash, Kind: IndexEquality},
	{Field: FieldTypeCodeHash, Kind: IndexEquality},
	{Field: FieldTypeHashType, Kind: IndexEquality},
	{Field: FieldBlockHash, Kind: IndexEquality},
	{Field: FieldSpent, Kind: IndexEquality},
	{Field: FieldSpentBlockHash, Kind: IndexEquality},
	{Field: FieldBlockNumber, Kind: IndexOrdered},
	{Field: FieldSpentBlockNumber, Kind: IndexOrdered},
	{Field: FieldDataLength, Kind: IndexOrdered},
}

// Range is an inclusive numeric interval. A nil bound is open.
type Range struct {
	Min *uint64
	Max *uint64
}

// AtMost returns the range [0, v].
func AtMost(v uint64) *Range {
	return &Range{Max: &v}
}

// Exactly returns the range [v, v].
func Exactly(v uint64) *Range {
	return &Range{Min: &v, Max: &v}
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v uint64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Filter selects LiveCell records. Nil terms match everything; set terms are ANDed.
type Filter struct {
	LockHash     *Hash
	LockCodeHash *Hash
	LockHashType *HashType

	TypeHash     *Hash
	TypeCodeHash *Hash
	TypeHashType *HashType

	BlockHash      *Hash
	Spent          *bool
	SpentBlockHash *Hash

	BlockNumber      *Range
	SpentBlockNumber *Range
	DataLength       *Range
}

// Equalities returns the equality terms keyed by record field.
func (f Filter) Equalities() map[string]string {
	out := make(map[string]string)
	putHash := func(field string, h *Hash) {
		if h != nil {
			out[field] = h.String()
		}
	}
	putHash(FieldLockHash, f.LockHash)
	putHash(FieldLockCodeHash, f.LockCodeHash)
	putHash(FieldTypeHash, f.TypeHash)
	putHash(FieldTypeCodeHash, f.TypeCodeHash)
	putHash(FieldBlockHash, f.BlockHash)
	putHash(FieldSpentBlockHash, f.SpentBlockHash)
	if f.LockHashType != nil {
		out[FieldLockHashType] = string(*f.LockHashType)
	}
	if f.TypeHashType != nil {
		out[FieldTypeHashType] = string(*f.TypeHashType)
	}
	if f.Spent != nil {
		out[FieldSpent] = strconv.FormatBool(*f.Spent)
	}
	return out
}

// Ranges returns the ordered terms keyed by record field.
func (f Filter) Ranges() map[string]Range {
	out := make(map[string]Range)
	if f.BlockNumber != nil {
		out[FieldBlockNumber] = *f.BlockNumber
	}
	if f.SpentBlockNumber != nil {
		out[FieldSpentBlockNumber] = *f.SpentBlockNumber
	}
	if f.DataLength != nil {
		out[FieldDataLength] = *f.DataLength
	}
	return out
}

// Match reports whether c satisfies every term of the filter.
func (f Filter) Match(c *LiveCell) bool {
	eq := c.EqualityValues()
	for field, want := range f.Equalities() {
		if got, ok := eq[field]; !ok || got != want {
			return false
		}
	}
	ordered := c.OrderedValues()
	for field, r := range f.Ranges() {
		if got, ok := ordered[field]; !ok || !r.Contains(got) {
			return false
		}
	}
	return true
}

// EqualityValues returns the record's values for every equality index it participates in.
func (c *LiveCell) EqualityValues() map[string]string {
	out := map[string]string{
		FieldLockHash:     c.LockHash.String(),
		FieldLockCodeHash: c.LockCodeHash.String(),
		FieldLockHashType: string(c.LockHashType),
		FieldBlockHash:    c.BlockHash.String(),
		FieldSpent:        strconv.FormatBool(c.Spent),
	}
	if c.HasType {
		out[FieldTypeHash] = c.TypeHash.String()
		out[FieldTypeCodeHash] = c.TypeCodeHash.String()
		out[FieldTypeHashType] = string(c.TypeHashType)
	}
	if c.Spent {
		out[FieldSpentBlockHash] = c.SpentBlockHash.String()
	}
	return out
}

// OrderedValues returns the record's values for every ordered index it participates in.
func (c *LiveCell) OrderedValues() map[string]uint64 {
	out := map[string]uint64{
		FieldBlockNumber: c.BlockNumber,
		FieldDataLength:  c.DataLength,
	}
	if c.Spent {
		out[FieldSpentBlockNumber] = c.SpentBlockNumber
	}
	return out
}
