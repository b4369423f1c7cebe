package dashboard

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/example/launchdash/internal/binding"
	"github.com/example/launchdash/internal/chart"
	"github.com/example/launchdash/internal/dataset"
	"github.com/example/launchdash/internal/render"
	"github.com/example/launchdash/internal/selection"
)

type pageData struct {
	Title     string
	ScriptURL string
	PieID     string
	ScatterID string
}

type metaResponse struct {
	Title   string                 `json:"title"`
	Sites   []selection.SiteOption `json:"sites"`
	Range   selection.RangeControl `json:"range"`
	Bounds  dataset.PayloadBounds  `json:"bounds"`
	Records int                    `json:"records"`
}

type figuresResponse struct {
	Site    selection.SiteFilter   `json:"site"`
	Payload selection.PayloadRange `json:"payload"`
	Pie     chart.Pie              `json:"pie"`
	Scatter chart.Scatter          `json:"scatter"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	err := s.page.Execute(&buf, pageData{
		Title:     s.settings.Title,
		ScriptURL: s.settings.Render.ScriptURL(),
		PieID:     string(binding.SlotPie),
		ScatterID: string(binding.SlotScatter),
	})
	if err != nil {
		s.logger.Error(err, "render dashboard page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleMeta(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, metaResponse{
		Title:   s.settings.Title,
		Sites:   selection.Options(s.ds),
		Range:   s.settings.Range,
		Bounds:  s.ds.Bounds(),
		Records: s.ds.Len(),
	})
}

func (s *Server) handleFigures(w http.ResponseWriter, r *http.Request) {
	state, err := s.stateFromQuery(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	pie, sc := s.figures(state)
	writeJSON(w, http.StatusOK, figuresResponse{
		Site:    state.Site,
		Payload: state.Payload,
		Pie:     pie,
		Scatter: sc,
	})
}

func (s *Server) handleViewCSV(w http.ResponseWriter, r *http.Request) {
	state, err := s.stateFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	view := selection.Select(s.ds, state)
	s.metrics.observeSelection(len(view))

	filename := fmt.Sprintf("launches-%s.csv", s.now().UTC().Format("20060102T150405Z"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		dataset.ColumnLaunchSite,
		dataset.ColumnPayloadMassKg,
		dataset.ColumnBoosterVersionCategory,
		dataset.ColumnClass,
	}
	if err := writer.Write(header); err != nil {
		return
	}
	for _, rec := range view {
		row := []string{
			rec.LaunchSite,
			strconv.FormatFloat(rec.PayloadMassKg, 'f', -1, 64),
			rec.BoosterVersionCategory,
			strconv.Itoa(rec.OutcomeClass),
		}
		if err := writer.Write(row); err != nil {
			s.logger.V(1).Info("view csv client went away", "error", err.Error())
			return
		}
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	state, err := s.stateFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pie, sc := s.figures(state)
	var buf bytes.Buffer
	if err := render.WritePage(&buf, s.settings.Title, pie, sc, s.settings.Render); err != nil {
		s.logger.Error(err, "render export page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) figures(state selection.State) (chart.Pie, chart.Scatter) {
	pie, sc := binding.Figures(s.ds, state)
	s.metrics.figureBuilt(binding.SlotPie)
	s.metrics.figureBuilt(binding.SlotScatter)
	s.metrics.observeSelection(sc.PointCount())
	s.logger.V(1).Info("figures built", "site", string(state.Site), "low", state.Payload.Low, "high", state.Payload.High, "points", sc.PointCount())
	return pie, sc
}

// stateFromQuery reads site, low and high. Missing values fall back to the
// default state; unparsable or non-finite numbers are rejected. An inverted
// range is accepted and selects nothing.
func (s *Server) stateFromQuery(q url.Values) (selection.State, error) {
	state := selection.DefaultState(s.ds.Bounds())
	if site := strings.TrimSpace(q.Get("site")); site != "" {
		state.Site = selection.SiteFilter(site)
	}
	for _, bound := range []struct {
		name string
		dst  *float64
	}{
		{"low", &state.Payload.Low},
		{"high", &state.Payload.High},
	} {
		raw := strings.TrimSpace(q.Get(bound.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return selection.State{}, fmt.Errorf("invalid %s %q: must be a finite number", bound.name, raw)
		}
		*bound.dst = v
	}
	return state, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
