package ckb

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/clock"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const (
	tipTopic            = "new_tip_header"
	tipHandshakeTimeout = 10 * time.Second
	tipRetryBackoff     = time.Second
	tipMaxRetryBackoff  = 30 * time.Second
)

type subscribeRequest struct {
	JSONRPC string   `json:"jsonrpc"`
	ID      int      `json:"id"`
	Method  string   `json:"method"`
	Params  []string `json:"params"`
}

type tipMessage struct {
	ID     *int   `json:"id"`
	Method string `json:"method"`
	Result string `json:"result"`
	Params *struct {
		Result       string `json:"result"`
		Subscription string `json:"subscription"`
	} `json:"params"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// TipSubscriber turns the node's new_tip_header notifications into wake-up signals.
type TipSubscriber struct {
	url     string
	dialer  *websocket.Dialer
	metrics TipMetrics
	logger  *zap.Logger
	backoff *clock.Backoff
	notify  chan struct{}
}

// NewTipSubscriber builds a subscriber for the node's websocket endpoint.
func NewTipSubscriber(url string, metrics TipMetrics, logger *zap.Logger) *TipSubscriber {
	return &TipSubscriber{
		url:     url,
		dialer:  &websocket.Dialer{HandshakeTimeout: tipHandshakeTimeout},
		metrics: metrics,
		logger:  logger,
		backoff: clock.NewBackoff(tipRetryBackoff, tipMaxRetryBackoff),
		notify:  make(chan struct{}, 1),
	}
}

// C delivers at most one pending signal per announced tip.
func (s *TipSubscriber) C() <-chan struct{} {
	return s.notify
}

// Run keeps the subscription alive until ctx is done.
func (s *TipSubscriber) Run(ctx context.Context) error {
	for {
		err := s.session(ctx)
		if ctx.Err() != nil {
			return nil
		}
		s.metrics.ObserveReconnect()
		delay := s.backoff.Next()
		s.logger.Warn("tip subscription dropped, reconnecting", zap.Error(err), zap.Duration("backoff", delay))
		if err := clock.SleepWithContext(ctx, delay); err != nil {
			return nil
		}
	}
}

func (s *TipSubscriber) session(ctx context.Context) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.url, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	req := subscribeRequest{JSONRPC: "2.0", ID: 1, Method: "subscribe", Params: []string{tipTopic}}
	if err := conn.WriteJSON(req); err != nil {
		return fmt.Errorf("send subscribe: %w", err)
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		var msg tipMessage
		if err := jsoniter.Unmarshal(payload, &msg); err != nil {
			s.logger.Warn("skip malformed tip message", zap.Error(err))
			continue
		}
		switch {
		case msg.Error != nil:
			return fmt.Errorf("subscribe %s: %s (code %d)", tipTopic, msg.Error.Message, msg.Error.Code)
		case msg.Params != nil:
			s.announce(msg.Params.Result)
		case msg.ID != nil:
			s.backoff.Reset()
			s.logger.Info("subscribed to tip headers", zap.String("subscription", msg.Result))
		}
	}
}

func (s *TipSubscriber) announce(raw string) {
	var header struct {
		Number *hexutil.Uint64 `json:"number"`
	}
	if err := jsoniter.UnmarshalFromString(raw, &header); err != nil {
		s.logger.Warn("skip malformed tip header", zap.Error(err))
		return
	}
	if header.Number == nil {
		s.logger.Warn("skip tip header without number", zap.String("header", raw))
		return
	}
	s.metrics.ObserveTip(uint64(*header.Number))

	select {
	case s.notify <- struct{}{}:
	default:
	}
}
