package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// WarmUpFunc preloads data the server will need, e.g. holiday caches
type WarmUpFunc func(ctx context.Context) error

// Daemon runs the HTTP server until it is stopped or signalled
type Daemon struct {
	addr            string
	handler         http.Handler
	shutdownTimeout time.Duration
	warmUp          WarmUpFunc
	warmUpInterval  time.Duration
	logger          *zap.Logger
	ctx             context.Context
	cancel          context.CancelFunc

	mu       sync.Mutex
	listener net.Listener
	ready    chan struct{}
}

// NewDaemon creates a new daemon instance
func NewDaemon(addr string, handler http.Handler, shutdownTimeout time.Duration, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		addr:            addr,
		handler:         handler,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
		ctx:             ctx,
		cancel:          cancel,
		ready:           make(chan struct{}),
	}
}

// WithWarmUp runs fn once at start and then every interval while serving.
// A zero interval runs it only once.
func (d *Daemon) WithWarmUp(fn WarmUpFunc, interval time.Duration) *Daemon {
	d.warmUp = fn
	d.warmUpInterval = interval
	return d
}

// Start serves until Stop is called, SIGINT/SIGTERM arrives or the server
// fails. It shuts the server down gracefully before returning.
func (d *Daemon) Start() error {
	ln, err := net.Listen("tcp", d.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", d.addr, err)
	}

	d.mu.Lock()
	d.listener = ln
	d.mu.Unlock()

	server := &http.Server{
		Handler:           d.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	d.logger.Info("Daemon started",
		zap.String("addr", ln.Addr().String()))
	close(d.ready)

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var tick <-chan time.Time
	if d.warmUp != nil {
		go d.runWarmUp()
		if d.warmUpInterval > 0 {
			ticker := time.NewTicker(d.warmUpInterval)
			defer ticker.Stop()
			tick = ticker.C
		}
	}

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Daemon stopping")
			return d.shutdown(server)

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			d.Stop()
			return d.shutdown(server)

		case err, ok := <-serverErr:
			if ok && err != nil {
				d.logger.Error("Server failed", zap.Error(err))
				d.Stop()
				return fmt.Errorf("server failed: %w", err)
			}
			return nil

		case <-tick:
			go d.runWarmUp()
		}
	}
}

func (d *Daemon) shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	d.logger.Info("Daemon stopped")
	return nil
}

func (d *Daemon) runWarmUp() {
	start := time.Now()
	if err := d.warmUp(d.ctx); err != nil {
		if d.ctx.Err() == nil {
			d.logger.Warn("Warm-up failed", zap.Error(err))
		}
		return
	}
	d.logger.Debug("Warm-up completed", zap.Duration("duration", time.Since(start)))
}

// Ready is closed once the daemon accepts connections
func (d *Daemon) Ready() <-chan struct{} {
	return d.ready
}

// Addr returns the bound address, empty before Start
func (d *Daemon) Addr() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.listener == nil {
		return ""
	}
	return d.listener.Addr().String()
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}
