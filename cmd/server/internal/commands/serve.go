package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rusafhasan/agencymanagement/internal/api"
	"github.com/rusafhasan/agencymanagement/internal/api/metrics"
	"github.com/rusafhasan/agencymanagement/internal/core/authz"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
	"github.com/rusafhasan/agencymanagement/internal/core/service"
	"github.com/rusafhasan/agencymanagement/internal/core/session"
	"github.com/rusafhasan/agencymanagement/internal/infrastructure/config"
	"github.com/rusafhasan/agencymanagement/internal/infrastructure/db/memory"
	mongostore "github.com/rusafhasan/agencymanagement/internal/infrastructure/db/mongo"
	redisstore "github.com/rusafhasan/agencymanagement/internal/infrastructure/db/redis"
	"github.com/rusafhasan/agencymanagement/internal/infrastructure/http/handlers"
	"github.com/rusafhasan/agencymanagement/internal/infrastructure/queue"
)

const shutdownTimeout = 15 * time.Second

// ServeCmd starts the HTTP API and blocks until SIGINT or SIGTERM.
type ServeCmd struct{}

type repositories struct {
	users      ports.UserRepository
	workspaces ports.WorkspaceRepository
	projects   ports.ProjectRepository
	tasks      ports.TaskRepository
	comments   ports.CommentRepository
	payments   ports.PaymentRepository
	revenues   ports.RevenueRepository
	audit      ports.AuditRepository
}

func (c *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, log, err := setup(ctx, globals)
	if err != nil {
		return err
	}
	log.Info().Str("version", globals.Version).Str("env", cfg.Env).Str("store", cfg.Store).Msg("starting server")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Persistence ---
	var (
		repos  repositories
		checks []handlers.Check
	)
	switch cfg.Store {
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Mongo.ConnectTimeout,
		})
		if err != nil {
			return fmt.Errorf("connect to mongodb: %w", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		repos = repositories{
			users:      mongostore.NewUserRepository(db),
			workspaces: mongostore.NewWorkspaceRepository(db),
			projects:   mongostore.NewProjectRepository(db),
			tasks:      mongostore.NewTaskRepository(db),
			comments:   mongostore.NewCommentRepository(db),
			payments:   mongostore.NewPaymentRepository(db),
			revenues:   mongostore.NewRevenueRepository(db),
			audit:      mongostore.NewAuditRepository(db),
		}
		checks = append(checks, handlers.MongoCheck(db))
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	case config.StoreMemory:
		st := memory.New()
		repos = repositories{
			users:      st.Users(),
			workspaces: st.Workspaces(),
			projects:   st.Projects(),
			tasks:      st.Tasks(),
			comments:   st.Comments(),
			payments:   st.Payments(),
			revenues:   st.Revenues(),
			audit:      st.Audit(),
		}
		log.Warn().Msg("using in-memory store, data is lost on restart")
	}

	// --- Login throttling ---
	var limiter ports.LoginLimiter
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			RetryFor: 5 * time.Second,
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, login throttling disabled")
		} else {
			defer func() { _ = rdb.Close() }()
			limiter = redisstore.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Lockout)
			checks = append(checks, handlers.RedisCheck(rdb))
		}
	}

	// --- Sessions and authorization ---
	codec, err := session.NewCodec([]byte(cfg.Session.Secret), cfg.Session.Lifetime)
	if err != nil {
		return err
	}

	auditLog := log.With().Str("component", "audit").Logger()
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewAuditService(repos.audit, auditLog), auditLog)
	// Workers outlive the signal context so the backlog drains after shutdown.
	dispatcher.Start(context.WithoutCancel(ctx))

	guard := authz.NewGuard(log.With().Str("component", "authz").Logger(), metrics.AuthzObserver, dispatcher)
	resolver := authz.NewResolver(repos.workspaces, repos.projects, repos.tasks)
	cascade := service.NewCascade(repos.projects, repos.tasks, repos.comments)

	services := api.Services{
		Auth:       service.NewAuthService(repos.users, codec, service.BcryptHasher{}, limiter, guard, log),
		Users:      service.NewUserService(repos.users, guard, log),
		Workspaces: service.NewWorkspaceService(repos.workspaces, repos.projects, repos.users, cascade, resolver, guard, log),
		Projects:   service.NewProjectService(repos.workspaces, repos.projects, repos.users, cascade, resolver, guard, log),
		Tasks:      service.NewTaskService(repos.tasks, repos.comments, repos.users, resolver, guard, log),
		Comments:   service.NewCommentService(repos.comments, repos.users, resolver, guard, log),
		Payments:   service.NewPaymentService(repos.payments, repos.users, repos.projects, guard, log),
		Revenues:   service.NewRevenueService(repos.revenues, repos.users, repos.projects, guard, log),
	}

	// --- HTTP ---
	e := api.NewRouter(api.Options{
		Logger:   log,
		Verifier: codec,
		Services: services,
		Checks:   checks,
	})
	srv := configureHTTPServer(net.JoinHostPort("", cfg.Port), api.NewHandler(e, cfg.CORSAllowedOrigins))

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		dispatcher.Stop()
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	return shutdown(srv, dispatcher, log)
}

func shutdown(srv *http.Server, dispatcher *queue.Dispatcher, log zerolog.Logger) error {
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	dispatcher.Stop()
	if dropped := dispatcher.Dropped(); dropped > 0 {
		log.Warn().Int64("dropped", dropped).Msg("audit events dropped during run")
	}
	if err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
