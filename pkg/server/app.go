package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GearValue/internal/scheduler"
	xhttp "GearValue/pkg/http"
	applogger "GearValue/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	httpServer      *xhttp.Server
	scheduler       *scheduler.Scheduler
	closers         []namedCloser
	shutdownTimeout time.Duration
	l               *applogger.Logger
}

type namedCloser struct {
	name string
	c    io.Closer
}

// New creates a new App. Resources passed with AddCloser are closed in
// reverse order on shutdown.
func New(httpServer *xhttp.Server, sched *scheduler.Scheduler, shutdownTimeout time.Duration, l *applogger.Logger) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{
		httpServer:      httpServer,
		scheduler:       sched,
		shutdownTimeout: shutdownTimeout,
		l:               l,
	}
}

// AddCloser registers a resource released on shutdown.
func (a *App) AddCloser(name string, c io.Closer) {
	if c != nil {
		a.closers = append(a.closers, namedCloser{name: name, c: c})
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the application and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	if a.scheduler != nil {
		a.scheduler.Start()
	}

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}

	<-ctx.Done()
	a.l.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.scheduler != nil {
		a.scheduler.Stop(ctx)
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		nc := a.closers[i]
		if err := nc.c.Close(); err != nil {
			a.l.Warn(nc.name+" close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
