package indexer

import (
	"context"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"go.uber.org/zap"
)

// purge deletes cells spent at or below height-RetentionWindow together with the block hashes
// up to that cutoff. It only runs once the cutoff is PurgeInterval heights past the boundary.
func (s *Indexer) purge(ctx context.Context, height uint64) error {
	window := s.cfg.RetentionWindow
	if window == 0 || height < window {
		return nil
	}
	cutoff := height - window

	boundary, _, err := s.number(ctx, model.KeyLastUnpurgedBlockNumber)
	if err != nil {
		return err
	}
	if cutoff < boundary || cutoff-boundary+1 < s.cfg.PurgeInterval {
		return nil
	}
	end := min(cutoff, boundary+purgeSpanLimit-1)
	return s.purgeRange(ctx, boundary, end)
}

func (s *Indexer) purgeRange(ctx context.Context, boundary, end uint64) (err error) {
	var removed int
	defer func() {
		s.metrics.ObservePurge(err, removed)
	}()

	spent := true
	ids, err := s.store.FindCellIDs(ctx, model.Filter{Spent: &spent, SpentBlockNumber: model.AtMost(end)})
	if err != nil {
		return model.Transient("find purgeable cells", err)
	}

	ws := model.NewWriteSet()
	for _, id := range ids {
		ws.Delete(id)
	}
	for n := boundary; n <= end; n++ {
		ws.DelScalar(model.BlockHashKey(n))
	}
	ws.SetScalar(model.KeyLastUnpurgedBlockNumber, model.EncodeNumber(end+1))
	if err = s.store.Write(ctx, ws); err != nil {
		return model.Transient("commit purge", err)
	}
	removed = len(ids)

	s.logger.Info("spent cells purged",
		zap.Uint64("from", boundary),
		zap.Uint64("to", end),
		zap.Int("removed", removed))
	s.record(model.JournalPurged, end, model.Hash{}, model.Hash{}, 0, 0, removed)
	return nil
}
