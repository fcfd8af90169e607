package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"gitea.kood.tech/petrkubec/travel-buddy/chat"
	"gitea.kood.tech/petrkubec/travel-buddy/config"
	"gitea.kood.tech/petrkubec/travel-buddy/logging"
	"gitea.kood.tech/petrkubec/travel-buddy/matching"
	"gitea.kood.tech/petrkubec/travel-buddy/pool"
)

// app holds everything one server instance owns. The registry lives and
// dies with it.
type app struct {
	cfg     *config.Config
	log     *logging.Logger
	db      *sqlx.DB
	redis   *redis.Client
	engine  *matching.Engine
	relay   *chat.Relay
	gateway *chat.Gateway
}

func newApp(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*app, error) {
	db, err := openDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	store := chat.NewSQLStore(db)
	if err := migrate(ctx, db, store); err != nil {
		db.Close()
		return nil, err
	}

	a := &app{cfg: cfg, log: logger, db: db}

	var presence chat.Presence
	if cfg.Redis.Enabled() {
		client, err := newRedisClient(ctx, &cfg.Redis)
		if err != nil {
			// Presence is optional; fall back to the local registry.
			logger.WithError(err).Warn("redis unavailable, presence kept in process")
		} else {
			a.redis = client
			presence = chat.NewRedisPresence(client, cfg.Redis.PresenceTTL)
		}
	}

	a.engine = matching.NewEngine(buildPool(cfg, db, logger), logger.WithField("component", "matching"))
	a.relay = chat.NewRelay(store, chat.NewRegistry(), logger.WithField("component", "relay"))
	a.gateway = chat.NewGateway(a.relay, presence, logger.WithField("component", "gateway"))
	return a, nil
}

// buildPool wires the configured sources in their fixed order: dataset file,
// seeded trips table, then generated profiles.
func buildPool(cfg *config.Config, db *sqlx.DB, logger *logging.Logger) *pool.Assembler {
	var sources []pool.Source
	if path := cfg.Pool.CSVPath; path != "" {
		if _, err := os.Stat(path); err == nil {
			sources = append(sources, &pool.CSVSource{Path: path})
		} else {
			logger.WithField("path", path).Warn("profile dataset not found, skipping")
		}
	}
	if cfg.Pool.UseDB {
		sources = append(sources, &pool.SQLSource{DB: db})
	}
	if cfg.Pool.Generate {
		sources = append(sources, pool.NewGenerator(cfg.Pool.Seed))
	}
	for _, s := range sources {
		logger.WithField("source", s.Name()).Info("candidate pool source enabled")
	}
	return pool.NewAssembler(sources...)
}

func newRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// routes builds the handler tree. Live sessions are bound to base.
func (a *app) routes(base context.Context) http.Handler {
	validate := validator.New()
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Travel Buddy API"})
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Handle("/match", matchHandler(a.engine, validate, a.log))
	mux.Handle("/ws/", wsChatHandler(base, a.gateway, a.log))
	mux.Handle("/chat/history/", chatHistoryHandler(a.relay, a.log))
	mux.Handle("/presence/", presenceHandler(a.gateway.Presence(), a.log))

	return withRequestLog(a.log, withCORS(a.cfg.Server.AllowedOrigins, mux))
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.WithError(err).Warn("closing redis")
		}
	}
	if err := a.db.Close(); err != nil {
		a.log.WithError(err).Warn("closing database")
	}
}
