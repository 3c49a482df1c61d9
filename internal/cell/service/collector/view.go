package collector

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"go.uber.org/zap"
)

// view resolves rec into a public cell. A non-empty reason means the record is left out.
func (c *Collector) view(ctx context.Context, rec *model.LiveCell, opts Options) (*model.Cell, string, error) {
	switch {
	case rec == nil:
		return nil, skipDeleted, nil
	case rec.Spent:
		return nil, skipSpent, nil
	case opts.SkipCellWithContent && rec.DataLength > 0:
		return nil, skipContent, nil
	}

	op, err := rec.OutPoint()
	if err != nil {
		return nil, "", err
	}
	lock, err := rec.Lock(ctx, c.source)
	if err != nil {
		return c.unresolved(rec, err)
	}
	typ, err := rec.Type(ctx, c.source)
	if err != nil {
		return c.unresolved(rec, err)
	}

	cell := &model.Cell{
		CellOutput: model.CellOutput{
			Capacity: hexutil.Uint64(rec.Capacity),
			Lock:     lock,
			Type:     typ,
		},
		OutPoint:  op,
		BlockHash: rec.BlockHash,
	}
	switch {
	case opts.LoadData:
		data, err := rec.FullData(ctx, c.source)
		if err != nil {
			return c.unresolved(rec, err)
		}
		content := hexutil.Bytes(data)
		cell.Data = &content
	case opts.SkipCellWithContent:
		empty := hexutil.Bytes{}
		cell.Data = &empty
	}
	return cell, "", nil
}

// unresolved skips cells the chain no longer reports as live and fails on anything else.
func (c *Collector) unresolved(rec *model.LiveCell, err error) (*model.Cell, string, error) {
	if errors.Is(err, model.ErrCellNotLive) {
		c.logger.Debug("cell consumed since snapshot", zap.String("out_point", rec.ID))
		return nil, skipNotLive, nil
	}
	return nil, "", err
}
