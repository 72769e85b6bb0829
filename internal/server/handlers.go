package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/adapt"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/models"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleIngestWorkout(w http.ResponseWriter, r *http.Request) {
	var workout models.Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	loadValue, err := s.coach.IngestWorkout(r.Context(), &workout)
	if err != nil {
		s.writeCoachError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"load":     loadValue,
		"computed": loadValue > 0,
	})
}

func (s *Server) handleIngestWellness(w http.ResponseWriter, r *http.Request) {
	var wellness models.WellnessDay
	if err := json.NewDecoder(r.Body).Decode(&wellness); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if wellness.Date.IsZero() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date is required"})
		return
	}

	if err := s.db.UpsertWellness(r.Context(), &wellness); err != nil {
		s.log.Error("wellness ingest error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "stored"})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.db.GetProfile(r.Context())
	if err != nil {
		s.writeCoachError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.AthleteProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if profile.MaxHR <= profile.RestingHR {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "max_hr must exceed resting_hr"})
		return
	}

	if err := s.db.UpsertProfile(r.Context(), &profile); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleFitness(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 42)
	snaps, err := s.coach.FitnessSeries(r.Context(), asOf(r), days)
	if err != nil {
		s.writeCoachError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	result, err := s.coach.Readiness(r.Context(), asOf(r))
	if err != nil {
		s.writeCoachError(w, err)
		return
	}
	streak, err := s.coach.ReadinessStreak(r.Context(), asOf(r))
	if err != nil {
		s.writeCoachError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"readiness":        result,
		"green_day_streak": streak,
	})
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	rec, err := s.coach.Recommendation(r.Context(), asOf(r))
	if err != nil {
		s.writeCoachError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	hr, power, err := s.coach.Zones(r.Context())
	if err != nil {
		s.writeCoachError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"heart_rate": hr,
		"power":      power,
	})
}

func (s *Server) handlePrediction(w http.ResponseWriter, r *http.Request) {
	pred, err := s.coach.Prediction(r.Context(), asOf(r))
	if err != nil {
		s.writeCoachError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pred)
}

func (s *Server) handlePlanWorkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlannedDate time.Time `json:"planned_date"`
		Type        string    `json:"type"`
		DurationMin float64   `json:"duration_min"`
		Load        float64   `json:"load"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.PlannedDate.IsZero() || req.Type == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "planned_date and type are required"})
		return
	}

	c := adapt.Completion{
		WorkoutID:   uuid.New(),
		PlannedDate: req.PlannedDate,
		PlannedType: req.Type,
		PlannedMin:  req.DurationMin,
		PlannedLoad: req.Load,
	}
	if err := s.db.InsertPlannedWorkout(r.Context(), &c); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleLogResult(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	var req struct {
		CompletedDate time.Time `json:"completed_date"`
		ActualMin     *float64  `json:"actual_duration_min"`
		ActualLoad    *float64  `json:"actual_load"`
		AvgHR         *float64  `json:"avg_heart_rate"`
		DistanceKm    *float64  `json:"distance_km"`
		RPE           *int      `json:"rpe"`
		Feeling       string    `json:"feeling"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.CompletedDate.IsZero() {
		req.CompletedDate = time.Now().UTC()
	}

	res := adapt.Result{
		CompletedDate: req.CompletedDate,
		ActualMin:     req.ActualMin,
		ActualLoad:    req.ActualLoad,
		AvgHR:         req.AvgHR,
		DistanceKm:    req.DistanceKm,
		RPE:           req.RPE,
		Feeling:       req.Feeling,
	}
	if err := s.db.UpdateWorkoutResult(r.Context(), id, res); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged"})
}

func (s *Server) handleCompliance(w http.ResponseWriter, r *http.Request) {
	window := queryInt(r, "window", adapt.DefaultWindow)
	history, err := s.coach.History(r.Context(), asOf(r), window)
	if err != nil {
		s.writeCoachError(w, err)
		return
	}

	now := asOf(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"window_days":     window,
		"compliance_pct":  history.ComplianceRate(now, window),
		"load_compliance": history.LoadCompliance(now, window),
		"load_trend":      history.Trend(now, window, adapt.TrendLoad),
		"rpe_trend":       history.Trend(now, window, adapt.TrendRPE),
	})
}

func (s *Server) handleAdaptations(w http.ResponseWriter, r *http.Request) {
	now := asOf(r)
	unappliedOnly := r.URL.Query().Get("pending") == "true"
	recs, err := s.db.QueryAdaptations(r.Context(), now.AddDate(0, 0, -adapt.DefaultLongWindow), now.AddDate(0, 0, 7), unappliedOnly)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGenerateAdaptations(w http.ResponseWriter, r *http.Request) {
	recs, err := s.coach.Adaptations(r.Context(), asOf(r))
	if err != nil {
		s.writeCoachError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleApplyAdaptation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid adaptation ID"})
		return
	}

	if err := s.db.MarkAdaptationApplied(r.Context(), id, time.Now().UTC()); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "applied"})
}

// writeCoachError maps the missing-profile sentinel to a 409 with a hint;
// everything else is a 500.
func (s *Server) writeCoachError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNoProfile) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": "athlete profile not configured; PUT /api/v1/profile first",
		})
		return
	}
	s.log.Error("handler error", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// asOf reads the optional ?date=YYYY-MM-DD parameter, defaulting to now.
func asOf(r *http.Request) time.Time {
	if v := r.URL.Query().Get("date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

func queryInt(r *http.Request, name string, def int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
