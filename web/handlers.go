package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"borough-recommender/models"
	"borough-recommender/services"
	"borough-recommender/validation"
)

const maxBodyBytes = 1 << 20

// Options populates the search form.
type Options struct {
	AccommodationTypes []string          `json:"accommodation_types"`
	VenueGroups        []string          `json:"venue_groups"`
	RentMin            int               `json:"rent_min"`
	RentMax            int               `json:"rent_max"`
	RentStep           int               `json:"rent_step"`
	RentMarks          []int             `json:"rent_marks"`
	RecommendationOpts []int             `json:"recommendation_options"`
	Defaults           models.Request    `json:"defaults"`
	Legend             map[string]string `json:"legend"`
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

type recommendResponse struct {
	Recommendation *models.Recommendation `json:"recommendation"`
	Summary        string                 `json:"summary"`
	Insight        *models.RentInsight    `json:"insight"`
}

type pageData struct {
	Options        Options
	Request        models.Request
	Summary        string
	Recommendation *models.Recommendation
	Insight        *models.RentInsight
	Error          string
	MapJSON        template.JS
	Submitted      bool
}

func (s *Server) options() Options {
	opts := Options{
		RentMin:  s.cfg.RentSliderMin,
		RentMax:  s.cfg.RentSliderMax,
		RentStep: s.cfg.RentSliderStep,
		Legend:   services.Legend(),
	}
	for _, t := range models.SelectableAccommodationTypes() {
		opts.AccommodationTypes = append(opts.AccommodationTypes, t.String())
	}
	for _, g := range models.AllVenueGroups() {
		opts.VenueGroups = append(opts.VenueGroups, g.String())
	}
	if step := s.cfg.RentSliderStep; step > 0 {
		for r := s.cfg.RentSliderMin; r <= s.cfg.RentSliderMax; r += step {
			opts.RentMarks = append(opts.RentMarks, r)
		}
	}
	for n := 1; n <= s.cfg.MaxRecommendations; n++ {
		opts.RecommendationOpts = append(opts.RecommendationOpts, n)
	}
	opts.Defaults = models.Request{
		Categories: []string{},
		RentMin:    float64(s.cfg.RentSliderMin),
		RentMax:    float64(s.cfg.RentSliderMax),
		Ranking:    []string{},
		TopN:       s.cfg.DefaultRecommendations,
	}
	return opts
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.options())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts := s.options()
	s.render(w, http.StatusOK, "index.html", pageData{Options: opts, Request: opts.Defaults})
}

func (s *Server) handleRecommendPage(w http.ResponseWriter, r *http.Request) {
	opts := s.options()
	data := pageData{Options: opts, Submitted: true}

	req, err := requestFromForm(r)
	if err != nil {
		data.Request = opts.Defaults
		data.Error = err.Error()
		s.render(w, http.StatusBadRequest, "index.html", data)
		return
	}
	data.Request = req
	data.Summary = services.Summarize(req)

	rec, insight, err := s.recommend(r, req)
	if err != nil {
		data.Error = err.Error()
		s.render(w, statusFor(err), "index.html", data)
		return
	}
	data.Recommendation = rec
	data.Insight = insight

	mapJSON, err := json.Marshal(s.maps.Build(rec))
	if err != nil {
		s.logger.Error("[web] Encode map view: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	data.MapJSON = template.JS(mapJSON)
	s.render(w, http.StatusOK, "index.html", data)
}

func (s *Server) handleRecommendJSON(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	rec, insight, err := s.recommend(r, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{
		Recommendation: rec,
		Summary:        services.Summarize(req),
		Insight:        insight,
	})
}

func (s *Server) handleMapJSON(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	rec, _, err := s.recommend(r, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.maps.Build(rec))
}

func (s *Server) handleSummaryJSON(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": services.Summarize(req)})
}

// recommend runs the pipeline and enforces the configured result cap.
func (s *Server) recommend(r *http.Request, req models.Request) (*models.Recommendation, *models.RentInsight, error) {
	if req.TopN > s.cfg.MaxRecommendations {
		return nil, nil, &validation.RequestValidationError{Fields: []validation.FieldError{{
			Field:   "TopN",
			Tag:     "max",
			Param:   strconv.Itoa(s.cfg.MaxRecommendations),
			Message: fmt.Sprintf("TopN must be at most %d", s.cfg.MaxRecommendations),
		}}}
	}

	rec, err := s.recommender.Run(r.Context(), req)
	if err != nil {
		return nil, nil, err
	}

	categories, err := services.ParseCategories(req.Categories)
	if err != nil {
		return nil, nil, err
	}
	records := s.recommender.Filter().MatchingRecords(categories, req.RentMin, req.RentMax)
	return rec, s.insights.Generate(records), nil
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (models.Request, bool) {
	req := models.Request{TopN: s.cfg.DefaultRecommendations}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return req, false
	}
	return req, true
}

// requestFromForm reads the HTML form. Ranking slots are submitted in rank
// order; blank slots are skipped.
func requestFromForm(r *http.Request) (models.Request, error) {
	if err := r.ParseForm(); err != nil {
		return models.Request{}, fmt.Errorf("invalid form: %w", err)
	}

	req := models.Request{
		Categories: r.Form["categories"],
		PlotVenues: r.FormValue("plot_venues") != "",
	}
	for _, g := range r.Form["ranking"] {
		if g = strings.TrimSpace(g); g != "" {
			req.Ranking = append(req.Ranking, g)
		}
	}

	var err error
	if req.RentMin, err = formFloat(r, "rent_min"); err != nil {
		return req, err
	}
	if req.RentMax, err = formFloat(r, "rent_max"); err != nil {
		return req, err
	}
	topN, err := strconv.Atoi(r.FormValue("top_n"))
	if err != nil {
		return req, fmt.Errorf("top_n: not a number: %q", r.FormValue("top_n"))
	}
	req.TopN = topN
	return req, nil
}

func formFloat(r *http.Request, key string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue(key)), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", key, r.FormValue(key))
	}
	return v, nil
}

func statusFor(err error) int {
	switch {
	case validation.IsValidationError(err),
		errors.Is(err, services.ErrEmptyRanking),
		errors.Is(err, services.ErrDuplicateGroup),
		errors.Is(err, services.ErrUnknownGroup),
		errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, services.ErrInvalidTopN):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}
	var ve *validation.RequestValidationError
	if errors.As(err, &ve) {
		resp.Fields = ve.Fields
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("[web] Request failed: %v", err)
		resp = errorResponse{Error: "internal error"}
	}
	writeJSON(w, status, resp)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("[web] Template %s: %v", name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
