package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteSet_LastMutationWins(t *testing.T) {
	ws := NewWriteSet()
	require.True(t, ws.Empty())

	a := &LiveCell{ID: "a"}
	b := &LiveCell{ID: "b"}
	ws.Put(b)
	ws.Put(a)
	ws.Delete("b")
	ws.Delete("c")
	ws.Put(&LiveCell{ID: "c", Spent: true})

	require.Equal(t, []*LiveCell{a, {ID: "c", Spent: true}}, ws.Cells())
	require.Equal(t, []string{"b"}, ws.DeletedIDs())
	require.True(t, ws.Deleted("b"))
	pending, ok := ws.Pending("c")
	require.True(t, ok)
	require.True(t, pending.Spent)

	ws.SetScalar("k", "1")
	ws.DelScalar("k")
	ws.DelScalar("j")
	ws.SetScalar("j", "2")
	require.Equal(t, map[string]string{"j": "2"}, ws.Scalars())
	require.Equal(t, []string{"k"}, ws.DeletedScalars())
	require.False(t, ws.Empty())
}

func TestBlockHashKey(t *testing.T) {
	require.Equal(t, "BLOCK:0x0:HASH", BlockHashKey(0))
	require.Equal(t, "BLOCK:0x1f:HASH", BlockHashKey(31))

	n, err := DecodeNumber(KeyLastProcessedNumber, EncodeNumber(255))
	require.NoError(t, err)
	require.Equal(t, uint64(255), n)

	_, err = DecodeNumber(KeyLastProcessedNumber, "255")
	require.Error(t, err)
}
