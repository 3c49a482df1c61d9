// Package storetest holds behavior checks every cell store engine must pass.
package storetest

import (
	"bytes"
	"context"
	"testing"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/stretchr/testify/require"
)

// Store is the engine surface under test.
type Store interface {
	GetScalar(ctx context.Context, key string) (string, bool, error)
	SetScalar(ctx context.Context, key, value string) error
	DelScalar(ctx context.Context, key string) error
	FindCell(ctx context.Context, id string) (*model.LiveCell, error)
	FindCellIDs(ctx context.Context, filter model.Filter) ([]string, error)
	FindCells(ctx context.Context, filter model.Filter) ([]*model.LiveCell, error)
	LoadCells(ctx context.Context, ids []string) ([]*model.LiveCell, error)
	Write(ctx context.Context, ws *model.WriteSet) error
}

// Run executes every check against fresh stores produced by open.
func Run(t *testing.T, open func(t *testing.T) Store) {
	t.Run("scalars", func(t *testing.T) { testScalars(t, open(t)) })
	t.Run("write and load", func(t *testing.T) { testWriteAndLoad(t, open(t)) })
	t.Run("index follows updates", func(t *testing.T) { testIndexFollowsUpdates(t, open(t)) })
	t.Run("ranges", func(t *testing.T) { testRanges(t, open(t)) })
	t.Run("delete", func(t *testing.T) { testDelete(t, open(t)) })
}

// Hash returns a hash with every byte set to b.
func Hash(b byte) model.Hash {
	var h model.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

// NewCell builds a record produced at blockNumber with the given lock args and data.
func NewCell(t *testing.T, txByte byte, index uint32, blockNumber uint64, lockArgs, data []byte, typ *model.Script) *model.LiveCell {
	t.Helper()

	op := model.OutPoint{TxHash: Hash(txByte), Index: model.Uint32(index)}
	blockHash := Hash(byte(blockNumber) + 0x80)
	var cell model.LiveCell
	require.NoError(t, cell.SetCell(model.CellCandidate{
		OutPoint:    &op,
		BlockHash:   &blockHash,
		BlockNumber: blockNumber,
		CellOutput: &model.CellOutput{
			Capacity: 100,
			Lock:     model.Script{CodeHash: Hash(0x01), HashType: model.HashTypeType, Args: lockArgs},
			Type:     typ,
		},
		Data: data,
	}))
	return &cell
}

func write(t *testing.T, s Store, build func(ws *model.WriteSet)) {
	t.Helper()
	ws := model.NewWriteSet()
	build(ws)
	require.NoError(t, s.Write(context.Background(), ws))
}

func ids(cells ...*model.LiveCell) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.ID)
	}
	return out
}

func testScalars(t *testing.T, s Store) {
	ctx := context.Background()

	_, ok, err := s.GetScalar(ctx, model.KeyLastProcessedNumber)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SetScalar(ctx, model.KeyLastProcessedNumber, "0x1"))
	v, ok, err := s.GetScalar(ctx, model.KeyLastProcessedNumber)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "0x1", v)

	write(t, s, func(ws *model.WriteSet) {
		ws.SetScalar(model.BlockHashKey(1), Hash(9).String())
		ws.DelScalar(model.KeyLastProcessedNumber)
	})
	_, ok, err = s.GetScalar(ctx, model.KeyLastProcessedNumber)
	require.NoError(t, err)
	require.False(t, ok)
	v, _, err = s.GetScalar(ctx, model.BlockHashKey(1))
	require.NoError(t, err)
	require.Equal(t, Hash(9).String(), v)

	require.NoError(t, s.DelScalar(ctx, model.BlockHashKey(1)))
	_, ok, err = s.GetScalar(ctx, model.BlockHashKey(1))
	require.NoError(t, err)
	require.False(t, ok)
}

func testWriteAndLoad(t *testing.T, s Store) {
	ctx := context.Background()
	big := bytes.Repeat([]byte{3}, model.MaxKeptBytes+1)
	typ := &model.Script{CodeHash: Hash(0x02), HashType: model.HashTypeData, Args: []byte{1}}

	plain := NewCell(t, 0x10, 0, 1, []byte{1}, []byte{}, nil)
	typed := NewCell(t, 0x10, 1, 1, big, big, typ)
	write(t, s, func(ws *model.WriteSet) {
		ws.Put(plain)
		ws.Put(typed)
	})

	got, err := s.FindCell(ctx, typed.ID)
	require.NoError(t, err)
	require.Equal(t, typed, got)

	missing, err := s.FindCell(ctx, "0xnope0x0")
	require.NoError(t, err)
	require.Nil(t, missing)

	loaded, err := s.LoadCells(ctx, []string{plain.ID, "0xnope0x0", typed.ID})
	require.NoError(t, err)
	require.Equal(t, []*model.LiveCell{plain, nil, typed}, loaded)

	all, err := s.FindCellIDs(ctx, model.Filter{})
	require.NoError(t, err)
	require.ElementsMatch(t, ids(plain, typed), all)

	typeHash := typed.TypeHash
	found, err := s.FindCells(ctx, model.Filter{TypeHash: &typeHash})
	require.NoError(t, err)
	require.Equal(t, []*model.LiveCell{typed}, found)

	lockHash := plain.LockHash
	unspent := false
	found, err = s.FindCells(ctx, model.Filter{LockHash: &lockHash, Spent: &unspent, DataLength: model.Exactly(0)})
	require.NoError(t, err)
	require.Equal(t, []*model.LiveCell{plain}, found)
}

func testIndexFollowsUpdates(t *testing.T, s Store) {
	ctx := context.Background()
	cell := NewCell(t, 0x20, 0, 2, nil, []byte{}, nil)
	write(t, s, func(ws *model.WriteSet) { ws.Put(cell) })

	spent := true
	unspent := false
	spender := Hash(0x99)

	updated := *cell
	updated.MarkSpent(spender, 3)
	write(t, s, func(ws *model.WriteSet) { ws.Put(&updated) })

	got, err := s.FindCellIDs(ctx, model.Filter{Spent: &unspent})
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = s.FindCellIDs(ctx, model.Filter{Spent: &spent, SpentBlockHash: &spender})
	require.NoError(t, err)
	require.Equal(t, ids(cell), got)

	updated.Unspend()
	write(t, s, func(ws *model.WriteSet) { ws.Put(&updated) })

	got, err = s.FindCellIDs(ctx, model.Filter{SpentBlockHash: &spender})
	require.NoError(t, err)
	require.Empty(t, got)
	got, err = s.FindCellIDs(ctx, model.Filter{SpentBlockNumber: model.AtMost(10)})
	require.NoError(t, err)
	require.Empty(t, got)
	got, err = s.FindCellIDs(ctx, model.Filter{Spent: &unspent})
	require.NoError(t, err)
	require.Equal(t, ids(cell), got)
}

func testRanges(t *testing.T, s Store) {
	ctx := context.Background()
	var cells []*model.LiveCell
	for n := uint64(1); n <= 5; n++ {
		c := NewCell(t, 0x30, uint32(n), n, nil, bytes.Repeat([]byte{1}, int(n-1)), nil)
		c.MarkSpent(Hash(0x77), n+10)
		cells = append(cells, c)
	}
	write(t, s, func(ws *model.WriteSet) {
		for _, c := range cells {
			ws.Put(c)
		}
	})

	got, err := s.FindCellIDs(ctx, model.Filter{BlockNumber: &model.Range{Min: ptr(uint64(2)), Max: ptr(uint64(4))}})
	require.NoError(t, err)
	require.Equal(t, ids(cells[1], cells[2], cells[3]), got)

	spent := true
	got, err = s.FindCellIDs(ctx, model.Filter{Spent: &spent, SpentBlockNumber: model.AtMost(12)})
	require.NoError(t, err)
	require.Equal(t, ids(cells[0], cells[1]), got)

	got, err = s.FindCellIDs(ctx, model.Filter{DataLength: model.Exactly(0)})
	require.NoError(t, err)
	require.Equal(t, ids(cells[0]), got)
}

func testDelete(t *testing.T, s Store) {
	ctx := context.Background()
	keep := NewCell(t, 0x40, 0, 7, nil, []byte{}, nil)
	drop := NewCell(t, 0x40, 1, 7, nil, []byte{}, nil)
	write(t, s, func(ws *model.WriteSet) {
		ws.Put(keep)
		ws.Put(drop)
	})

	write(t, s, func(ws *model.WriteSet) { ws.Delete(drop.ID) })

	got, err := s.FindCell(ctx, drop.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	blockHash := keep.BlockHash
	remaining, err := s.FindCellIDs(ctx, model.Filter{BlockHash: &blockHash})
	require.NoError(t, err)
	require.Equal(t, ids(keep), remaining)

	remaining, err = s.FindCellIDs(ctx, model.Filter{BlockNumber: model.Exactly(7)})
	require.NoError(t, err)
	require.Equal(t, ids(keep), remaining)

	require.NoError(t, s.Write(ctx, model.NewWriteSet()))
}

func ptr[T any](v T) *T { return &v }
