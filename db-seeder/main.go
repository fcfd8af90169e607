// Command db-seeder fills the trips table (or a CSV dataset) with synthetic
// travelers. The same seed always produces the same travelers.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"gitea.kood.tech/petrkubec/travel-buddy/pool"
)

type cfg struct {
	Driver   string
	DSN      string
	Count    int
	Seed     int64
	Truncate bool
	Out      string // write a CSV file instead of the database
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var c cfg
	flag.StringVar(&c.Driver, "driver", envOr("DB_DRIVER", "sqlite3"), "Database driver: sqlite3 or postgres [env: DB_DRIVER]")
	flag.StringVar(&c.DSN, "dsn", envOr("DATABASE_URL", "travel_chat.db"), "Database DSN [env: DATABASE_URL]")
	flag.IntVar(&c.Count, "count", 100, "Number of travelers to create (split evenly domestic/international)")
	flag.Int64Var(&c.Seed, "seed", 42, "RNG seed (deterministic)")
	flag.BoolVar(&c.Truncate, "truncate", false, "Delete existing trips before seeding")
	flag.StringVar(&c.Out, "out", "", "Write the travelers to this CSV file instead of the database")
	flag.Parse()

	if c.Count < 1 {
		log.Fatal("--count must be at least 1")
	}

	gen := pool.NewGenerator(c.Seed)
	gen.Domestic = c.Count / 2
	gen.International = c.Count - gen.Domestic
	records := gen.Generate()

	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			log.WithError(err).Fatal("create csv")
		}
		defer f.Close()
		if err := pool.WriteCSV(f, records); err != nil {
			log.WithError(err).Fatal("write csv")
		}
		log.WithFields(logrus.Fields{"path": c.Out, "rows": len(records)}).Info("Seed complete")
		return
	}

	db, err := sqlx.Connect(c.Driver, c.DSN)
	if err != nil {
		log.WithError(err).Fatal("DB open error")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := pool.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("migrate trips")
	}
	if c.Truncate {
		if err := pool.TruncateTrips(ctx, db); err != nil {
			log.WithError(err).Fatal("truncate")
		}
		log.Println("Truncated trips.")
	}

	n, err := pool.InsertTrips(ctx, db, records)
	if err != nil {
		log.WithError(err).Fatal("insert trips")
	}
	log.WithField("rows", n).Info("Seed complete")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
