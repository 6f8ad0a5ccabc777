package review

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/straviz/internal/telemetry/tracing"
	"github.com/2beens/straviz/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/review/{year}", handler.HandleYearReview).Methods("GET", "OPTIONS").Name("year-review")
	r.HandleFunc("/review/{year}/summary", handler.HandleSummary).Methods("GET", "OPTIONS").Name("year-summary")
	r.HandleFunc("/review/{year}/routes", handler.HandleRoutes).Methods("GET", "OPTIONS").Name("year-routes")
	r.HandleFunc("/activities/{year}", handler.HandleActivities).Methods("GET", "OPTIONS").Name("year-activities")
}

// yearFromRequest resolves the {year} path variable; the "last_year"
// keyword maps to the previous calendar year.
func yearFromRequest(r *http.Request) (int, bool) {
	yearVar := mux.Vars(r)["year"]
	if yearVar == "last_year" {
		return time.Now().Year() - 1, true
	}

	year, err := strconv.Atoi(yearVar)
	if err != nil || year < 1900 || year > 9999 {
		return 0, false
	}
	return year, true
}

// HandleYearReview returns the complete review bundle for one year
func (handler *Handler) HandleYearReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.review.yearReview")
	defer span.End()

	year, ok := yearFromRequest(r)
	if !ok {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}

	rev, err := handler.service.YearReview(ctx, year)
	if err != nil {
		log.Errorf("failed to get year review for %d: %s", year, err)
		http.Error(w, "failed to get year review", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, rev)
}

// HandleSummary returns only the personalized summary card data
func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.review.summary")
	defer span.End()

	year, ok := yearFromRequest(r)
	if !ok {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}

	rev, err := handler.service.YearReview(ctx, year)
	if err != nil {
		log.Errorf("failed to get summary for %d: %s", year, err)
		http.Error(w, "failed to get summary", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, rev.Summary)
}

type routesResponse struct {
	Routes       map[int64]RouteClass `json:"routes"`
	Bounds       *Bounds              `json:"bounds,omitempty"`
	LongestRunID int64                `json:"longestRunId,omitempty"`
	LongestStyle Style                `json:"longestStyle"`
}

// HandleRoutes returns the map view data: per-activity route classification,
// the bounding box and the highlighted longest run
func (handler *Handler) HandleRoutes(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.review.routes")
	defer span.End()

	year, ok := yearFromRequest(r)
	if !ok {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}

	rev, err := handler.service.YearReview(ctx, year)
	if err != nil {
		log.Errorf("failed to get routes for %d: %s", year, err)
		http.Error(w, "failed to get routes", http.StatusInternalServerError)
		return
	}

	resp := routesResponse{
		Routes:       rev.Routes,
		Bounds:       rev.Bounds,
		LongestStyle: LongestRunStyle(),
	}
	if rev.LongestRun != nil {
		resp.LongestRunID = rev.LongestRun.ID
	}

	handler.writeJSON(w, resp)
}

// HandleActivities returns the raw stored activities of one year
func (handler *Handler) HandleActivities(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.review.activities")
	defer span.End()

	year, ok := yearFromRequest(r)
	if !ok {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}

	activities, err := handler.service.ActivitiesForYear(ctx, year)
	if err != nil {
		log.Errorf("failed to list activities for %d: %s", year, err)
		http.Error(w, "failed to list activities", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, activities)
}

func (handler *Handler) writeJSON(w http.ResponseWriter, payload any) {
	respJson, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(respJson))
}
