package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/adapters"
	"github.com/effective-security/finmcp/callbacks"
	"github.com/effective-security/finmcp/config"
	"github.com/effective-security/finmcp/events"
	"github.com/effective-security/finmcp/httpapi"
	"github.com/effective-security/finmcp/mcpserver"
	"github.com/effective-security/finmcp/onboarding"
	"github.com/effective-security/finmcp/store"
	"github.com/effective-security/finmcp/tools"
	"github.com/effective-security/finmcp/tools/fintech"
	"github.com/effective-security/xlog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/finmcp", "cmd")

// Version is set at build time
var Version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "finmcp.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
	// stdout carries the MCP stdio transport
	setupLogger(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.KV(xlog.ERROR, "status", "exited", "err", err.Error())
		os.Exit(1)
	}
}

func setupLogger(cfg config.Log, out io.Writer) {
	if cfg.Format == "json" {
		xlog.SetFormatter(xlog.NewJSONFormatter(out))
	} else {
		xlog.SetFormatter(xlog.NewStringFormatter(out))
	}
	xlog.SetGlobalLogLevel(cfg.LogLevel())
}

// toolPrinter returns the tool call printer, or nil when disabled
func toolPrinter(cfg config.Log, out io.Writer) *callbacks.Printer {
	switch cfg.ToolCalls {
	case "brief":
		return callbacks.NewPrinter(out, callbacks.ModeDefault)
	case "verbose":
		return callbacks.NewPrinter(out, callbacks.ModeVerbose)
	default:
		return nil
	}
}

type app struct {
	store     store.Store
	publisher events.Publisher
	journal   *callbacks.Journal
	registry  *tools.Registry
	mcp       *mcpserver.Server
	router    *gin.Engine
}

// newApp wires the components of the service
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	a := &app{
		store:     st,
		publisher: events.NewNop(),
		journal:   callbacks.NewJournal(callbacks.ModeDefault, 1000),
	}
	if cfg.Events.Kafka != nil {
		pub, err := events.NewKafkaPublisher(cfg.Events.Kafka.Publisher())
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		a.publisher = pub
	}

	fanout := callbacks.NewFanout(
		callbacks.NewPackageLogger(logger),
		a.journal,
	)
	if printer := toolPrinter(cfg.Log, os.Stderr); printer != nil {
		fanout.Add(printer)
	}
	a.registry = tools.NewRegistry(fanout)

	fraudMode, err := adapters.ParseFailMode(cfg.Adapters.Fraud.FailMode)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	err = fintech.Register(a.registry, fintech.Deps{
		Onboarding:    onboarding.New(adapters.NewExtraction(cfg.Adapters.Extraction.Adapter()), st, st, a.publisher),
		Fraud:         adapters.NewFraud(cfg.Adapters.Fraud.Adapter()),
		FraudFailMode: fraudMode,
		Portfolio:     adapters.NewPortfolio(cfg.Adapters.Portfolio.Adapter()),
		LeadRelay:     adapters.NewLeadRelay(cfg.Adapters.LeadRelay.Adapter()),
		Brokerage:     adapters.NewBrokerage(cfg.Adapters.Brokerage.Adapter()),
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.mcp, err = mcpserver.New("finmcp", Version, a.registry)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	a.router = httpapi.NewRouter(httpapi.New(st, a.registry, a.journal))
	return a, nil
}

// Close releases the store and the event publisher
func (a *app) Close() error {
	return errors.CombineErrors(a.publisher.Close(), a.store.Close())
}

func openStore(ctx context.Context, cfg config.Store) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, errors.Wrap(err, "invalid redis url")
		}
		client := redis.NewClient(opts)
		if err = client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.Wrap(err, "failed to connect to redis")
		}
		return store.NewRedisStore(client, cfg.Prefix), nil
	case config.DriverPostgres:
		return store.OpenPostgres(ctx, cfg.DSN)
	case config.DriverMemory, "":
		return store.NewMemoryStore(), nil
	default:
		return nil, errors.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.KV(xlog.ERROR, "status", "close_failed", "err", err.Error())
		}
	}()

	logger.KV(xlog.INFO,
		"status", "starting",
		"version", Version,
		"store", cfg.Store.Driver,
		"mcp", cfg.MCP.Transport,
		"tools", a.registry.Names(),
	)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.HTTP.Listen != "" {
		serveHTTP(ctx, g, "http", cfg.HTTP.Listen, a.router)
	}

	switch cfg.MCP.Transport {
	case mcpserver.TransportStdio:
		g.Go(func() error {
			return a.mcp.ServeStdio(ctx, os.Stdin, os.Stdout)
		})
	case mcpserver.TransportHTTP:
		mux := http.NewServeMux()
		mux.Handle(cfg.MCP.Path, a.mcp.HTTPHandler(cfg.MCP.Path))
		serveHTTP(ctx, g, "mcp", cfg.MCP.Listen, mux)
	}

	return g.Wait()
}

// serveHTTP runs the server in g until ctx is done
func serveHTTP(ctx context.Context, g *errgroup.Group, name, addr string, h http.Handler) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		logger.KV(xlog.INFO, "status", "listening", "server", name, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "%s server failed", name)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.KV(xlog.INFO, "status", "shutting_down", "server", name)
		return srv.Shutdown(shutdownCtx)
	})
}
