// Package transport exposes the HTTP query API.
package transport

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/address"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/service/collector"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultCellsLimit   = 100
	maxCellsLimit       = 1000
	defaultJournalLimit = 50
	maxJournalLimit     = 1000
)

// CellsResponse is the body of GET /cells.
type CellsResponse struct {
	Cells []*model.Cell `json:"cells"`
	// More is set when the limit cut the result short.
	More bool `json:"more"`
}

// JournalResponse is the body of GET /journal.
type JournalResponse struct {
	Entries []JournalEntry `json:"entries"`
}

// JournalEntry is the JSON view of model.JournalEntry.
type JournalEntry struct {
	Action     model.JournalAction `json:"action"`
	Height     uint64              `json:"height"`
	Hash       model.Hash          `json:"hash"`
	ParentHash model.Hash          `json:"parent_hash"`
	Created    uint32              `json:"created"`
	Spent      uint32              `json:"spent"`
	Removed    uint32              `json:"removed"`
	Time       string              `json:"time"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// queryError marks a failure caused by the request's own parameters.
type queryError struct {
	err error
}

func (e *queryError) Error() string { return e.err.Error() }

func (e *queryError) Unwrap() error { return e.err }

// CellsHandler serves collector queries over HTTP.
type CellsHandler struct {
	network   model.Network
	collector Collector
	journal   JournalReader
	logger    *zap.Logger
}

// NewCellsHandler builds a CellsHandler. journal may be nil, which disables /journal.
func NewCellsHandler(network model.Network, c Collector, journal JournalReader, logger *zap.Logger) *CellsHandler {
	return &CellsHandler{
		network:   network,
		collector: c,
		journal:   journal,
		logger:    logger,
	}
}

// Routes registers the handler's endpoints on mux.
func (h *CellsHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /cells", h.Cells)
	mux.HandleFunc("GET /healthz", h.Health)
	if h.journal != nil {
		mux.HandleFunc("GET /journal", h.Journal)
	}
}

// Health reports server health.
func (h *CellsHandler) Health(w http.ResponseWriter, _ *http.Request) {
	h.write(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Cells answers GET /cells.
func (h *CellsHandler) Cells(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := h.parseFilter(q)
	if err != nil {
		h.fail(w, &queryError{err: err})
		return
	}
	opts := collector.DefaultOptions()
	if opts.SkipCellWithContent, err = parseBool(q, "skip_content", opts.SkipCellWithContent); err != nil {
		h.fail(w, &queryError{err: err})
		return
	}
	if opts.LoadData, err = parseBool(q, "load_data", opts.LoadData); err != nil {
		h.fail(w, &queryError{err: err})
		return
	}
	limit, err := parseLimit(q, defaultCellsLimit, maxCellsLimit)
	if err != nil {
		h.fail(w, &queryError{err: err})
		return
	}
	opts.BatchSize = min(int(limit), 100)

	ctx := r.Context()
	it, err := h.collector.Collect(ctx, filter, opts)
	if err != nil {
		h.fail(w, err)
		return
	}
	resp := CellsResponse{Cells: make([]*model.Cell, 0)}
	for {
		cell, ok, err := it.Next(ctx)
		if err != nil {
			h.fail(w, err)
			return
		}
		if !ok {
			break
		}
		if uint64(len(resp.Cells)) == limit {
			resp.More = true
			break
		}
		resp.Cells = append(resp.Cells, cell)
	}
	h.write(w, http.StatusOK, resp)
}

// Journal answers GET /journal with the newest indexer actions.
func (h *CellsHandler) Journal(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query(), defaultJournalLimit, maxJournalLimit)
	if err != nil {
		h.fail(w, &queryError{err: err})
		return
	}
	entries, err := h.journal.LatestJournalEntries(r.Context(), h.network, limit)
	if err != nil {
		h.fail(w, err)
		return
	}
	resp := JournalResponse{Entries: make([]JournalEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, JournalEntry{
			Action:     e.Action,
			Height:     e.Height,
			Hash:       e.Hash,
			ParentHash: e.ParentHash,
			Created:    e.Created,
			Spent:      e.Spent,
			Removed:    e.Removed,
			Time:       e.Time.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		})
	}
	h.write(w, http.StatusOK, resp)
}

func (h *CellsHandler) parseFilter(q url.Values) (model.Filter, error) {
	var (
		f   model.Filter
		err error
	)
	if f.LockHash, err = parseHash(q, "lock_hash"); err != nil {
		return f, err
	}
	if f.LockCodeHash, err = parseHash(q, "lock_code_hash"); err != nil {
		return f, err
	}
	if f.LockHashType, err = parseHashType(q, "lock_hash_type"); err != nil {
		return f, err
	}
	if f.TypeHash, err = parseHash(q, "type_hash"); err != nil {
		return f, err
	}
	if f.TypeCodeHash, err = parseHash(q, "type_code_hash"); err != nil {
		return f, err
	}
	if f.TypeHashType, err = parseHashType(q, "type_hash_type"); err != nil {
		return f, err
	}
	if f.BlockNumber, err = parseRange(q, "min_block_number", "max_block_number"); err != nil {
		return f, err
	}

	if raw := q.Get("address"); raw != "" {
		addr, err := address.Parse(raw)
		if err != nil {
			return f, err
		}
		if addr.Network != h.network {
			return f, &model.ValidationError{Field: "address", Reason: "belongs to " + string(addr.Network)}
		}
		lockHash, err := addr.Script.Hash()
		if err != nil {
			return f, err
		}
		if f.LockHash != nil && *f.LockHash != lockHash {
			return f, &model.ValidationError{Field: "address", Reason: "conflicts with lock_hash"}
		}
		f.LockHash = &lockHash
	}
	return f, nil
}

// fail maps err to a status. Validation failures outside the query itself come from
// stored records or node responses and are reported as internal errors.
func (h *CellsHandler) fail(w http.ResponseWriter, err error) {
	var (
		query   *queryError
		missing *model.MissingSourceError
	)
	switch {
	case errors.As(err, &query):
		h.write(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &missing):
		h.write(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("cells query failed", zap.Error(err))
		h.write(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (h *CellsHandler) write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}

func parseHash(q url.Values, key string) (*model.Hash, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	h, err := model.ParseHash(raw)
	if err != nil {
		return nil, &model.ValidationError{Field: key, Reason: err.Error()}
	}
	return &h, nil
}

func parseHashType(q url.Values, key string) (*model.HashType, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	ht := model.HashType(raw)
	if _, err := ht.Byte(); err != nil {
		return nil, &model.ValidationError{Field: key, Reason: err.Error()}
	}
	return &ht, nil
}

func parseUint(q url.Values, key string) (*uint64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return nil, &model.ValidationError{Field: key, Reason: "not an unsigned integer"}
	}
	return &v, nil
}

func parseRange(q url.Values, minKey, maxKey string) (*model.Range, error) {
	lo, err := parseUint(q, minKey)
	if err != nil {
		return nil, err
	}
	hi, err := parseUint(q, maxKey)
	if err != nil {
		return nil, err
	}
	if lo == nil && hi == nil {
		return nil, nil
	}
	return &model.Range{Min: lo, Max: hi}, nil
}

func parseBool(q url.Values, key string, def bool) (bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, &model.ValidationError{Field: key, Reason: "not a boolean"}
	}
	return v, nil
}

func parseLimit(q url.Values, def, ceiling uint64) (uint64, error) {
	v, err := parseUint(q, "limit")
	if err != nil {
		return 0, err
	}
	if v == nil {
		return def, nil
	}
	if *v == 0 || *v > ceiling {
		return 0, &model.ValidationError{Field: "limit", Reason: "must be between 1 and " + strconv.FormatUint(ceiling, 10)}
	}
	return *v, nil
}
