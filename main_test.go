package main

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"gitea.kood.tech/petrkubec/travel-buddy/chat"
	"gitea.kood.tech/petrkubec/travel-buddy/config"
	"gitea.kood.tech/petrkubec/travel-buddy/logging"
	"gitea.kood.tech/petrkubec/travel-buddy/matching"
)

// testServer is a full handler tree backed by a temporary SQLite file and a
// fixed candidate pool.
type testServer struct {
	app    *app
	server *httptest.Server
	cancel context.CancelFunc
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{AllowedOrigins: []string{"*"}},
		Database: config.DatabaseConfig{
			Driver: "sqlite3",
			URL:    filepath.Join(t.TempDir(), "travel_chat.db") + "?_busy_timeout=5000&_journal_mode=WAL",
		},
	}
}

func newTestApp(t *testing.T, pool matching.PoolSource) *app {
	t.Helper()
	cfg := testConfig(t)
	nullLog, _ := test.NewNullLogger()
	logger := &logging.Logger{Logger: nullLog}

	db, err := openDB(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := chat.NewSQLStore(db)
	require.NoError(t, migrate(context.Background(), db, store))

	relay := chat.NewRelay(store, chat.NewRegistry(), logger)
	return &app{
		cfg:     cfg,
		log:     logger,
		db:      db,
		engine:  matching.NewEngine(pool, logger),
		relay:   relay,
		gateway: chat.NewGateway(relay, nil, logger),
	}
}

func newTestServer(t *testing.T, candidates []matching.CandidateRecord) *testServer {
	t.Helper()
	a := newTestApp(t, fixedPool(candidates))
	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(a.routes(ctx))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return &testServer{app: a, server: srv, cancel: cancel}
}

func fixedPool(candidates []matching.CandidateRecord) matching.PoolSource {
	return matching.PoolFunc(func(ctx context.Context) ([]matching.CandidateRecord, error) {
		return candidates, nil
	})
}

func brokenPool() matching.PoolSource {
	return matching.PoolFunc(func(ctx context.Context) ([]matching.CandidateRecord, error) {
		return nil, errors.New("dataset unreadable")
	})
}

func trip(name, destination, start string) matching.CandidateRecord {
	return matching.CandidateRecord{
		TravelerName:       name,
		Destination:        destination,
		Nationality:        "Indian",
		AccommodationType:  "Hostel",
		TransportationType: "Train",
		TravelStyle:        "Backpacker",
		StartDate:          start,
	}
}
