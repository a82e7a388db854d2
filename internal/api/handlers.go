package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zachd/stretch-my-time-off/internal/allowance"
	"github.com/zachd/stretch-my-time-off/internal/calendar"
	"github.com/zachd/stretch-my-time-off/internal/optimizer"
	"github.com/zachd/stretch-my-time-off/internal/planner"
	"github.com/zachd/stretch-my-time-off/internal/prefs"
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// Handler holds the dependencies of the HTTP handlers
type Handler struct {
	planner *planner.Manager
	metrics *Metrics
	logger  *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(p *planner.Manager, metrics *Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		planner: p,
		metrics: metrics,
		logger:  logger,
	}
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// AllowanceResponse is the default allowance of a country
type AllowanceResponse struct {
	Country string `json:"country"`
	Days    int    `json:"days"`
}

// HiddenHolidayRequest hides or shows the holiday on Date
type HiddenHolidayRequest struct {
	Date   dateutil.Date `json:"date"`
	Hidden bool          `json:"hidden"`
}

// PreferencesResponse is the stored planning context
type PreferencesResponse struct {
	AppState    prefs.AppState `json:"app_state"`
	WeekendDays []int          `json:"weekend_days"`
}

// PreferencesUpdate changes the stored planning context; absent fields are kept
type PreferencesUpdate struct {
	AppState    prefs.AppStateUpdate `json:"app_state"`
	WeekendDays []int                `json:"weekend_days,omitempty"`
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Plan runs a planning call
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	var req planner.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	plan, err := h.planner.Plan(r.Context(), req)
	if err != nil {
		h.metrics.ObservePlan(metricCountry(req.Country), err, 0, nil)
		h.fail(w, r, err)
		return
	}

	lengths := make([]int, 0, len(plan.Periods))
	for _, p := range plan.Periods {
		lengths = append(lengths, p.TotalDays)
	}
	h.metrics.ObservePlan(metricCountry(plan.Country), nil, plan.DaysUsed, lengths)

	writeJSON(w, http.StatusOK, plan)
}

// ListHolidays returns the holidays of a country and year with hidden flags
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	holidays, err := h.planner.Holidays(r.Context(), country, r.URL.Query().Get("region"), year)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, holidays)
}

// SetHolidayHidden hides or shows one holiday of a country
func (h *Handler) SetHolidayHidden(w http.ResponseWriter, r *http.Request) {
	var req HiddenHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.planner.SetHolidayHidden(r.Context(), chi.URLParam(r, "country"), req.Date, req.Hidden); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetAllowance returns the default allowance of a country
func (h *Handler) GetAllowance(w http.ResponseWriter, r *http.Request) {
	country := calendar.NormalizeCountry(chi.URLParam(r, "country"))
	days, ok := allowance.Lookup(country)
	if !ok {
		writeError(w, http.StatusNotFound, "no allowance known for "+country)
		return
	}

	writeJSON(w, http.StatusOK, AllowanceResponse{Country: country, Days: days})
}

// GetPreferences returns the stored planning context
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	resp, err := h.preferences(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdatePreferences stores the given fields and returns the result
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req PreferencesUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	p := h.planner.Preferences()
	if req.WeekendDays != nil {
		weekend, err := optimizer.WeekendSetFromInts(req.WeekendDays)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := p.SetWeekendDays(r.Context(), weekend); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	if err := p.SaveAppState(r.Context(), req.AppState); err != nil {
		h.fail(w, r, err)
		return
	}

	resp, err := h.preferences(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) preferences(r *http.Request) (PreferencesResponse, error) {
	p := h.planner.Preferences()

	state, err := p.AppState(r.Context(), dateutil.Today().Year, "", -1)
	if err != nil {
		return PreferencesResponse{}, err
	}
	if state.DaysOff < 0 {
		state.DaysOff = allowance.Days(state.SelectedCountry)
	}

	weekend, err := p.WeekendDays(r.Context())
	if err != nil {
		return PreferencesResponse{}, err
	}

	return PreferencesResponse{AppState: state, WeekendDays: weekend.Ints()}, nil
}

// metricCountry keeps the country label bounded to known ISO codes
func metricCountry(country string) string {
	code := calendar.NormalizeCountry(country)
	if _, ok := allowance.Lookup(code); !ok {
		return "unknown"
	}
	return code
}

// fail maps err to a status code and writes it
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, planner.ErrInvalidRequest), errors.Is(err, optimizer.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, calendar.ErrUnknownCountry), errors.Is(err, prefs.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
