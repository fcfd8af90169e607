package pool

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gitea.kood.tech/petrkubec/travel-buddy/matching"
)

// Column headers shared by the dataset CSV and the seeder output.
var csvHeader = []string{
	"Destination", "Start date", "End date", "Traveler name", "Traveler age",
	"Traveler nationality", "Accommodation type", "Transportation type", "Travel style", "Interests",
}

// CSVSource reads the static traveler dataset. Unknown columns are ignored and
// missing ones leave the attribute empty.
type CSVSource struct {
	Path string
}

func (s *CSVSource) Name() string { return "csv:" + s.Path }

func (s *CSVSource) Load(ctx context.Context) ([]matching.CandidateRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses candidate records from a headed CSV stream.
func ReadCSV(r io.Reader) ([]matching.CandidateRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}

	var records []matching.CandidateRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		records = append(records, matching.CandidateRecord{
			Destination:        get("Destination"),
			StartDate:          get("Start date"),
			EndDate:            get("End date"),
			TravelerName:       get("Traveler name"),
			TravelerAge:        parseAge(get("Traveler age")),
			Nationality:        get("Traveler nationality"),
			AccommodationType:  get("Accommodation type"),
			TransportationType: get("Transportation type"),
			TravelStyle:        get("Travel style"),
			Interests:          parseInterests(get("Interests")),
		})
	}
	return records, nil
}

// WriteCSV writes records with the same header ReadCSV understands.
func WriteCSV(w io.Writer, records []matching.CandidateRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		age := ""
		if r.TravelerAge != nil {
			age = strconv.Itoa(*r.TravelerAge)
		}
		interests, err := json.Marshal(r.Interests)
		if err != nil {
			return err
		}
		if err := cw.Write([]string{
			r.Destination, r.StartDate, r.EndDate, r.TravelerName, age,
			r.Nationality, r.AccommodationType, r.TransportationType, r.TravelStyle, string(interests),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// parseAge accepts "31" and "31.0"; anything else leaves the age absent.
func parseAge(s string) *int {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return nil
	}
	age := int(f)
	return &age
}

// parseInterests accepts a JSON array or a comma/semicolon separated list.
func parseInterests(s string) []string {
	if s == "" || s == "null" {
		return nil
	}
	var list []string
	if strings.HasPrefix(s, "[") && json.Unmarshal([]byte(s), &list) == nil {
		return list
	}
	s = strings.Trim(s, "[]")
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part != "" {
			list = append(list, part)
		}
	}
	return list
}
