package app

import (
	"context"
	"errors"
	"fmt"
	"go-blog-api/config"
	"go-blog-api/db"
	"go-blog-api/events"
	"go-blog-api/handler"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"
	"go-blog-api/repository/memory"
	mongorepo "go-blog-api/repository/mongo"
	"go-blog-api/repository/postgres"
	"go-blog-api/router"
	"go-blog-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// stores is the set of repositories behind the services, whichever backend
// holds them.
type stores struct {
	authors  repository.IActorRepository
	readers  repository.IActorRepository
	revoked  repository.IRevocationRepository
	posts    repository.IPostRepository
	comments repository.ICommentRepository
	checks   []handler.ReadinessCheck
	closers  []func(context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Storage.Driver {
	case "memory":
		logger.Log.Warn("Using in-memory storage; data is lost on restart")
		return &stores{
			authors:  memory.NewActorRepository(model.RoleAuthor),
			readers:  memory.NewActorRepository(model.RoleReader),
			revoked:  memory.NewRevocationRepository(),
			posts:    memory.NewPostRepository(),
			comments: memory.NewCommentRepository(),
		}, nil

	case "mongo":
		client, err := db.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		database := client.Database(cfg.Mongo.Database)
		if err := mongorepo.EnsureIndexes(ctx, database); err != nil {
			client.Disconnect(ctx)
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		return &stores{
			authors:  mongorepo.NewActorRepository(database, model.RoleAuthor),
			readers:  mongorepo.NewActorRepository(database, model.RoleReader),
			revoked:  mongorepo.NewRevocationRepository(database),
			posts:    mongorepo.NewPostRepository(database),
			comments: mongorepo.NewCommentRepository(database),
			checks: []handler.ReadinessCheck{{
				Name:  "mongo",
				Check: func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
			}},
			closers: []func(context.Context) error{client.Disconnect},
		}, nil

	default:
		if cfg.Database.Migrate {
			if err := db.Migrate(cfg.Database); err != nil {
				return nil, err
			}
		}
		database, err := db.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return &stores{
			authors:  postgres.NewActorRepository(database, model.RoleAuthor),
			readers:  postgres.NewActorRepository(database, model.RoleReader),
			revoked:  postgres.NewRevocationRepository(database),
			posts:    postgres.NewPostRepository(database),
			comments: postgres.NewCommentRepository(database),
			checks:   []handler.ReadinessCheck{{Name: "postgres", Check: database.PingContext}},
			closers:  []func(context.Context) error{func(context.Context) error { return database.Close() }},
		}, nil
	}
}

func (s *stores) close(ctx context.Context) {
	for _, c := range s.closers {
		if err := c(ctx); err != nil {
			logger.Log.WithError(err).Warn("Failed to close storage connection")
		}
	}
}

func Run() {
	logger.Init()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	if err := logger.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
		logger.Log.WithError(err).Warnf("Unknown log level %q, keeping default", cfg.Log.Level)
	}
	logger.Log.Info("Configuration loaded successfully")

	ctx := context.Background()

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("Error opening %s storage: %v", cfg.Storage.Driver, err)
	}
	defer st.close(context.Background())

	var cache service.ICacheClient
	if cfg.Redis.Enabled {
		rdb, err := db.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Log.WithError(err).Warn("Redis unavailable, published post cache disabled")
		} else {
			defer rdb.Close()
			cache = rdb
			st.checks = append(st.checks, handler.ReadinessCheck{
				Name:  "redis",
				Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			})
		}
	}

	var publisher service.IEventPublisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		kp := events.NewKafkaPublisher(cfg.Kafka)
		defer kp.Close()
		publisher = kp
		logger.Log.WithField("brokers", cfg.Kafka.Brokers).Info("Publishing domain events to Kafka")
	}

	// --- Wiring All Layers Together ---
	tokenCfg := service.TokenConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	}
	hasher := service.NewBcryptHasher(service.DefaultBcryptCost)
	cookies := handler.CookieSettings{Secure: cfg.Cookie.Secure}

	// Both roles share the revocation list.
	authorTokens := service.NewTokenService(tokenCfg, st.authors, st.revoked)
	readerTokens := service.NewTokenService(tokenCfg, st.readers, st.revoked)

	postService := service.NewPostService(st.posts, st.comments, st.authors, cache, cfg.Redis.PostsTTL, publisher)

	authorSessions := service.NewSessionService(model.RoleAuthor, authorTokens, st.authors, st.posts, hasher, publisher).
		OnProfileUpdated(postService.InvalidatePublished)
	readerSessions := service.NewSessionService(model.RoleReader, readerTokens, st.readers, st.posts, hasher, publisher)

	commentService := service.NewCommentService(st.comments, st.posts, st.readers, publisher)

	r := router.NewRouter(router.Handlers{
		Authors:   router.Role{Sessions: handler.NewSessionHandler(authorSessions, cookies), Tokens: authorTokens},
		Readers:   router.Role{Sessions: handler.NewSessionHandler(readerSessions, cookies), Tokens: readerTokens},
		Posts:     handler.NewAuthorPostHandler(postService),
		Feed:      handler.NewReaderHandler(postService, commentService),
		Readiness: st.checks,
	})

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("Server forced to shutdown: %v", err)
		return
	}

	logger.Log.Info("Server exited properly")
}
