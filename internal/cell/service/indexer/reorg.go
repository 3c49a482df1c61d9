package indexer

import (
	"context"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"go.uber.org/zap"
)

// checkReorg compares the hash stored for height-1 with the parent of block.
// On a mismatch it rolls back height-1 and reports reverted so the caller restarts from FETCH.
func (s *Indexer) checkReorg(ctx context.Context, height uint64, block *model.Block) (reverted bool, err error) {
	parent := height - 1
	raw, ok, err := s.store.GetScalar(ctx, model.BlockHashKey(parent))
	if err != nil {
		return false, model.Transient("get block hash", err)
	}
	var stale model.Hash
	if ok {
		if stale, err = model.ParseHash(raw); err != nil {
			return false, err
		}
		if stale == block.Header.ParentHash {
			return false, nil
		}
	}

	boundary, _, err := s.number(ctx, model.KeyLastUnpurgedBlockNumber)
	if err != nil {
		return false, err
	}
	if !ok || parent < boundary {
		return false, &model.ConsistencyError{Height: parent, Hash: stale, Boundary: boundary}
	}

	s.logger.Info("fork detected, rolling back",
		zap.Uint64("height", parent),
		zap.Stringer("stale", stale),
		zap.Stringer("parent", block.Header.ParentHash))
	return true, s.rollback(ctx, parent, stale)
}

// rollback undoes the block committed at height with hash stale: cells it created are deleted,
// cells it spent become unspent and the cursor moves back one height.
func (s *Indexer) rollback(ctx context.Context, height uint64, stale model.Hash) (err error) {
	defer func() {
		s.metrics.ObserveRollback(err, height)
	}()

	consumed, err := s.store.FindCells(ctx, model.Filter{SpentBlockHash: &stale})
	if err != nil {
		return model.Transient("find cells spent by stale block", err)
	}
	produced, err := s.store.FindCellIDs(ctx, model.Filter{BlockHash: &stale})
	if err != nil {
		return model.Transient("find cells created by stale block", err)
	}

	ws := model.NewWriteSet()
	for _, c := range consumed {
		c.Unspend()
		ws.Put(c)
	}
	for _, id := range produced {
		ws.Delete(id)
	}
	ws.DelScalar(model.BlockHashKey(height))
	if height == 0 {
		ws.DelScalar(model.KeyLastProcessedNumber)
	} else {
		ws.SetScalar(model.KeyLastProcessedNumber, model.EncodeNumber(height-1))
	}
	if err = s.store.Write(ctx, ws); err != nil {
		return model.Transient("commit rollback", err)
	}

	s.logger.Info("block rolled back",
		zap.Uint64("height", height),
		zap.Stringer("hash", stale),
		zap.Int("removed", len(produced)),
		zap.Int("unspent", len(consumed)))
	s.record(model.JournalReverted, height, stale, model.Hash{}, 0, len(consumed), len(produced))
	return nil
}
