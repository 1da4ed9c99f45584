// Package server initializes and runs the account service: it wires the
// repository backend, the password hasher, the token issuer, and the HTTP
// endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dsemenov/accountd/internal/logging"
	"github.com/dsemenov/accountd/internal/metrics"
	"github.com/dsemenov/accountd/internal/server/auth"
	"github.com/dsemenov/accountd/internal/server/config"
	"github.com/dsemenov/accountd/internal/server/db"
	appHTTP "github.com/dsemenov/accountd/internal/server/http"
	"github.com/dsemenov/accountd/internal/server/password"
	"github.com/dsemenov/accountd/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	manager     db.RepositoryManager
	userService *services.UserService
	metrics     *metrics.Metrics
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var manager db.RepositoryManager
	if c.UseInMemoryStore {
		manager = db.NewInMemoryRepositoryManager()
	} else {
		pm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		manager = pm
	}

	m := metrics.New()
	us := services.NewUserService(
		manager.Users(),
		password.NewHasher(c.BcryptCost),
		auth.NewIssuer([]byte(c.SecretKey), c.TokenValidityDuration),
		m,
	)

	return &App{config: c, logger: logger, manager: manager, userService: us, metrics: m}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := appHTTP.NewServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.metrics, []byte(app.config.SecretKey))

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "closing repositories", "err", err.Error())
	}
}
