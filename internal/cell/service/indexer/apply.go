package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/goodnatureofminers/ckb-cell-indexer/pkg/safe"
	"go.uber.org/zap"
)

// apply marks the block's inputs spent, upserts its outputs and advances the cursor in one write.
// Re-applying a block rewrites the same records.
func (s *Indexer) apply(ctx context.Context, height uint64, block *model.Block) (err error) {
	started := time.Now()
	var created, spent int
	defer func() {
		s.metrics.ObserveApply(err, height, created, started)
	}()

	existing, err := s.existingCells(ctx, block)
	if err != nil {
		return err
	}
	lookup := func(ws *model.WriteSet, id string) *model.LiveCell {
		if c, ok := ws.Pending(id); ok {
			return c
		}
		return existing[id]
	}

	blockHash := block.Header.Hash
	ws := model.NewWriteSet()
	for _, tx := range block.Transactions {
		for _, input := range tx.Inputs {
			if isCellbaseInput(input) {
				continue
			}
			cell := lookup(ws, model.EncodeOutPointKey(input.PreviousOutput))
			if cell == nil {
				s.logger.Debug("input refers to an unindexed cell",
					zap.Stringer("tx", input.PreviousOutput.TxHash),
					zap.Uint32("index", uint32(input.PreviousOutput.Index)))
				continue
			}
			cell.MarkSpent(blockHash, height)
			ws.Put(cell)
			spent++
		}

		for i := range tx.Outputs {
			index, err := safe.Uint32(i)
			if err != nil {
				return fmt.Errorf("tx %s output index: %w", tx.Hash, err)
			}
			op := model.OutPoint{TxHash: tx.Hash, Index: model.Uint32(index)}
			cell := lookup(ws, model.EncodeOutPointKey(op))
			if cell == nil {
				cell = &model.LiveCell{}
			}
			candidate := model.CellCandidate{
				OutPoint:    &op,
				BlockHash:   &blockHash,
				BlockNumber: height,
				CellOutput:  &tx.Outputs[i],
			}
			if i < len(tx.OutputsData) {
				candidate.Data = tx.OutputsData[i]
				if candidate.Data == nil {
					candidate.Data = []byte{}
				}
			}
			if err := cell.SetCell(candidate); err != nil {
				return fmt.Errorf("tx %s output %d: %w", tx.Hash, i, err)
			}
			ws.Put(cell)
			created++
		}
	}

	ws.SetScalar(model.BlockHashKey(height), blockHash.String())
	ws.SetScalar(model.KeyLastProcessedNumber, model.EncodeNumber(height))
	if err = s.store.Write(ctx, ws); err != nil {
		return model.Transient("commit block", err)
	}

	s.logger.Debug("block applied",
		zap.Uint64("height", height),
		zap.Stringer("hash", blockHash),
		zap.Int("created", created),
		zap.Int("spent", spent))
	s.record(model.JournalApplied, height, blockHash, block.Header.ParentHash, created, spent, 0)
	return nil
}

// existingCells batch-loads every stored record the block touches, keyed by ID.
func (s *Indexer) existingCells(ctx context.Context, block *model.Block) (map[string]*model.LiveCell, error) {
	var ids []string
	for _, tx := range block.Transactions {
		for _, input := range tx.Inputs {
			if !isCellbaseInput(input) {
				ids = append(ids, model.EncodeOutPointKey(input.PreviousOutput))
			}
		}
		for i := range tx.Outputs {
			index, err := safe.Uint32(i)
			if err != nil {
				return nil, fmt.Errorf("tx %s output index: %w", tx.Hash, err)
			}
			ids = append(ids, model.EncodeOutPointKey(model.OutPoint{TxHash: tx.Hash, Index: model.Uint32(index)}))
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	cells, err := s.store.LoadCells(ctx, ids)
	if err != nil {
		return nil, model.Transient("load block cells", err)
	}
	out := make(map[string]*model.LiveCell, len(cells))
	for _, c := range cells {
		if c != nil {
			out[c.ID] = c
		}
	}
	return out, nil
}

// isCellbaseInput reports whether input is the null out-point a cellbase transaction consumes.
func isCellbaseInput(input model.CellInput) bool {
	return input.PreviousOutput.TxHash.IsZero()
}
