package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"gitea.kood.tech/petrkubec/travel-buddy/matching"
)

// matchRequest is the body of POST /match. The three text fields must be
// present but may be empty.
type matchRequest struct {
	Destination *string `json:"destination" validate:"required"`
	TravelStyle *string `json:"travel_style" validate:"required"`
	Hobbies     *string `json:"hobbies" validate:"required"`
	FilterType  string  `json:"filter_type" validate:"omitempty,oneof=all destination dates"`
	TravelDate  string  `json:"travel_date"`
}

func (m matchRequest) seeker() matching.SeekerProfile {
	mode := matching.FilterMode(m.FilterType)
	if mode == "" {
		mode = matching.FilterAll
	}
	return matching.SeekerProfile{
		Destination: *m.Destination,
		TravelStyle: *m.TravelStyle,
		Hobbies:     *m.Hobbies,
		Mode:        mode,
		TravelDate:  m.TravelDate,
	}
}

type matchResponse struct {
	Matches []matching.MatchView `json:"matches"`
	Reason  matching.Reason      `json:"reason,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// POST /match
func matchHandler(engine *matching.Engine, validate *validator.Validate, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}

		var req matchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "validation_error")
			return
		}

		res, err := engine.Match(r.Context(), req.seeker())
		if err != nil {
			log.WithError(err).Error("match failed")
			writeJSON(w, http.StatusInternalServerError, matchResponse{
				Matches: []matching.MatchView{},
				Error:   "internal_failure",
			})
			return
		}

		writeJSON(w, http.StatusOK, matchResponse{
			Matches: matching.PresentAll(res.Matches),
			Reason:  res.Reason,
		})
	}
}
