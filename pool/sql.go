package pool

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitea.kood.tech/petrkubec/travel-buddy/matching"
)

type tripRow struct {
	ID                 int64          `db:"id"`
	Destination        string         `db:"destination"`
	StartDate          sql.NullString `db:"start_date"`
	EndDate            sql.NullString `db:"end_date"`
	TravelerName       sql.NullString `db:"traveler_name"`
	TravelerAge        sql.NullInt64  `db:"traveler_age"`
	Nationality        sql.NullString `db:"nationality"`
	AccommodationType  sql.NullString `db:"accommodation_type"`
	TransportationType sql.NullString `db:"transportation_type"`
	TravelStyle        sql.NullString `db:"travel_style"`
	Interests          sql.NullString `db:"interests"`
}

func (t tripRow) record() matching.CandidateRecord {
	rec := matching.CandidateRecord{
		Destination:        t.Destination,
		StartDate:          t.StartDate.String,
		EndDate:            t.EndDate.String,
		TravelerName:       t.TravelerName.String,
		Nationality:        t.Nationality.String,
		AccommodationType:  t.AccommodationType.String,
		TransportationType: t.TransportationType.String,
		TravelStyle:        t.TravelStyle.String,
		Interests:          parseInterests(t.Interests.String),
	}
	if t.TravelerAge.Valid {
		age := int(t.TravelerAge.Int64)
		rec.TravelerAge = &age
	}
	return rec
}

// SQLSource reads seeded trips from the database.
type SQLSource struct {
	DB *sqlx.DB
}

func (s *SQLSource) Name() string { return "sql:trips" }

func (s *SQLSource) Load(ctx context.Context) ([]matching.CandidateRecord, error) {
	var rows []tripRow
	err := s.DB.SelectContext(ctx, &rows, `
		SELECT id, destination, start_date, end_date, traveler_name, traveler_age,
		       nationality, accommodation_type, transportation_type, travel_style, interests
		FROM trips
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	out := make([]matching.CandidateRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record()
	}
	return out, nil
}

// Migrate creates the trips table for the connected driver.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	id := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		id = "BIGSERIAL PRIMARY KEY"
	}
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS trips (
			id %s,
			destination TEXT NOT NULL,
			start_date TEXT,
			end_date TEXT,
			traveler_name TEXT,
			traveler_age INTEGER,
			nationality TEXT,
			accommodation_type TEXT,
			transportation_type TEXT,
			travel_style TEXT,
			interests TEXT
		)`, id))
	return err
}

// InsertTrips stores records in one transaction and returns how many were written.
func InsertTrips(ctx context.Context, db *sqlx.DB, records []matching.CandidateRecord) (int, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
		INSERT INTO trips (destination, start_date, end_date, traveler_name, traveler_age,
			nationality, accommodation_type, transportation_type, travel_style, interests)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	for i, r := range records {
		interests, err := json.Marshal(r.Interests)
		if err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		var age any
		if r.TravelerAge != nil {
			age = *r.TravelerAge
		}
		if _, err := stmt.ExecContext(ctx, r.Destination, r.StartDate, r.EndDate, r.TravelerName, age,
			r.Nationality, r.AccommodationType, r.TransportationType, r.TravelStyle, string(interests)); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert trip %d: %w", i, err)
		}
	}
	return len(records), tx.Commit()
}

// TruncateTrips removes every seeded trip.
func TruncateTrips(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `DELETE FROM trips`)
	return err
}
