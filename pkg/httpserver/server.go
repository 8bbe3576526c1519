package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/wayfinder/pkg/logger"
)

// Server wraps http.Server with graceful shutdown and logging.
type Server struct {
	opts *options

	mu   sync.Mutex
	srv  *http.Server
	addr net.Addr
	once sync.Once
	err  error
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	o := &options{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
		log:             logger.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return &Server{opts: o}
}

// Addr is the bound listener address, nil before Run has bound it.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run serves handler and blocks until shutdown.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	ln, err := net.Listen("tcp", s.opts.addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, err)
	}
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  s.opts.readTimeout,
		WriteTimeout: s.opts.writeTimeout,
		IdleTimeout:  s.opts.idleTimeout,
	}
	s.srv = srv
	s.addr = ln.Addr()
	s.mu.Unlock()

	s.opts.log.InfoContext(ctx, "http server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-sigCtx.Done():
		runErr = s.Shutdown(context.WithoutCancel(ctx))
		if serveErr := <-errCh; !errors.Is(serveErr, http.ErrServerClosed) {
			runErr = errors.Join(runErr, serveErr)
		}
	case serveErr := <-errCh:
		if !errors.Is(serveErr, http.ErrServerClosed) {
			return errors.Join(ErrStart, serveErr)
		}
		runErr = s.Shutdown(context.WithoutCancel(ctx))
	}
	return runErr
}

// Shutdown stops the server and runs cleanup functions. It is safe for
// repeated calls; later calls return the first result.
func (s *Server) Shutdown(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(ctx, s.opts.shutdownTimeout)
		defer cancel()

		var errs []error
		if srv != nil {
			if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs = append(errs, err)
			}
		}
		for _, fn := range s.opts.onShutdown {
			if err := fn(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			s.err = errors.Join(append([]error{ErrShutdown}, errs...)...)
			s.opts.log.ErrorContext(ctx, "http server shutdown failed", logger.Errors(errs...))
			return
		}
		s.opts.log.InfoContext(ctx, "http server stopped")
	})
	return s.err
}
