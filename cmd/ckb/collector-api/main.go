package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/ckb"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/repository/clickhouse"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/repository/leveldb"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/repository/redis"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/service/collector"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/metrics"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/transport"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var config struct {
	Addr          string        `long:"addr" env:"CKB_COLLECTOR_ADDR" description:"HTTP listen address" default:":8001"`
	Network       model.Network `long:"network" env:"CKB_COLLECTOR_NETWORK" description:"network name" choice:"mainnet" choice:"testnet" required:"true"`
	StoreKind     string        `long:"store-kind" env:"CKB_COLLECTOR_STORE_KIND" description:"cell store engine" choice:"redis" choice:"leveldb" default:"redis"`
	RedisURL      string        `long:"redis-url" env:"CKB_COLLECTOR_REDIS_URL" description:"Redis URL shared with the indexer"`
	RedisPrefix   string        `long:"redis-prefix" env:"CKB_COLLECTOR_REDIS_PREFIX" description:"key prefix inside Redis" default:"ckb"`
	LevelDBPath   string        `long:"leveldb-path" env:"CKB_COLLECTOR_LEVELDB_PATH" description:"LevelDB directory, only while no indexer holds it; query a running indexer through its --http.addr"`
	RPCURL        string        `long:"rpc-url" env:"CKB_COLLECTOR_RPC_URL" description:"CKB node JSON-RPC URL for truncated fields, empty disables lookups"`
	HTTPTimeout   time.Duration `long:"http-timeout" env:"CKB_COLLECTOR_HTTP_TIMEOUT" description:"HTTP timeout for RPC requests" default:"30s"`
	CacheTTL      time.Duration `long:"cache-ttl" env:"CKB_COLLECTOR_CACHE_TTL" description:"how long live cell lookups are cached" default:"10s"`
	CacheCapacity uint64        `long:"cache-capacity" env:"CKB_COLLECTOR_CACHE_CAPACITY" description:"maximum cached live cell lookups" default:"10000"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"CKB_COLLECTOR_CLICKHOUSE_DSN" description:"ClickHouse DSN for /journal, empty disables it"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	if err := run(ctx, logger); err != nil {
		logger.Fatal("collector api failed", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return fmt.Errorf("open cell store: %w", err)
	}
	defer closeStore()

	var source model.LiveCellFetcher
	if config.RPCURL != "" {
		rpc, err := ckb.Dial(ctx, config.RPCURL, &http.Client{Timeout: config.HTTPTimeout}, metrics.NewRPCClient(config.Network))
		if err != nil {
			return err
		}
		defer rpc.Close()
		cached := ckb.NewCachedSource(rpc, config.CacheTTL, config.CacheCapacity)
		go cached.Start()
		defer cached.Stop()
		source = cached
	}

	c, err := collector.New(store, source, metrics.NewCollector(), logger.Named("collector"))
	if err != nil {
		return err
	}

	var journal transport.JournalReader
	if config.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewJournalRepository())
		if err != nil {
			return fmt.Errorf("init journal repository: %w", err)
		}
		defer func() {
			_ = repo.Close()
		}()
		journal = repo
	}

	mux := http.NewServeMux()
	transport.NewCellsHandler(config.Network, c, journal, logger.Named("http")).Routes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.Addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", config.Addr))
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	return g.Wait()
}

func openStore(ctx context.Context) (collector.Store, func(), error) {
	switch config.StoreKind {
	case "redis":
		repo, err := redis.Open(ctx, config.RedisURL, config.RedisPrefix, metrics.NewStore("redis"))
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	case "leveldb":
		repo, err := leveldb.Open(config.LevelDBPath, metrics.NewStore("leveldb"))
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", config.StoreKind)
	}
}
