package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vijaymanbajracharya/stratcol/pkg/buildinfo"
	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	stratio "github.com/vijaymanbajracharya/stratcol/pkg/io"
	"github.com/vijaymanbajracharya/stratcol/pkg/pipeline"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
	"github.com/vijaymanbajracharya/stratcol/pkg/store"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// columnRequest is the body of the layout, render and column write routes.
type columnRequest struct {
	Name    string            `json:"name,omitempty"`
	Column  stratio.Document  `json:"column"`
	Options *pipeline.Options `json:"options,omitempty"`
}

type columnResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Column    stratio.Document `json:"column"`
}

func newColumnResponse(c *store.Column) columnResponse {
	return columnResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Column:    stratio.NewDocument(c.Layers, store.CreatedWith),
	}
}

// baseOptions returns a copy of the server defaults.
func (s *Server) baseOptions() pipeline.Options {
	o := s.defaults
	o.Levels = append([]chrono.Level(nil), s.defaults.Levels...)
	o.Formats = nil
	o.Logger = nil
	if s.defaults.Window != nil {
		w := *s.defaults.Window
		o.Window = &w
	}
	return o
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	info := buildinfo.Current()
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": info.Version,
		"commit":  info.Commit,
		"date":    info.Date,
	})
}

// handleChrono returns the whole reference table, or only the units that
// overlap [min, max] when both are given.
func (s *Server) handleChrono(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mapper := s.runner.Mapper

	if !q.Has("min") && !q.Has("max") {
		t := mapper.Table()
		s.writeJSON(w, http.StatusOK, chrono.Result{
			Eras:    t.Units(chrono.LevelEra),
			Periods: t.Units(chrono.LevelPeriod),
			Epochs:  t.Units(chrono.LevelEpoch),
			Ages:    t.Units(chrono.LevelAge),
		})
		return
	}

	lo, err := parseFloat("min", q.Get("min"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	hi, err := parseFloat("max", q.Get("max"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := mapper.Map(lo, hi)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

type rockGroup struct {
	Category strat.Category `json:"category"`
	Rocks    []rockInfo     `json:"rocks"`
}

type rockInfo struct {
	Key     strat.RockType `json:"key"`
	Name    string         `json:"name"`
	Pattern string         `json:"pattern"`
}

func (s *Server) handleRocks(w http.ResponseWriter, _ *http.Request) {
	groups := make([]rockGroup, 0, len(strat.Categories))
	for _, c := range strat.Categories {
		g := rockGroup{Category: c}
		for _, rt := range strat.RockTypesByCategory(c) {
			g.Rocks = append(g.Rocks, rockInfo{Key: rt, Name: rt.DisplayName(), Pattern: rt.Pattern()})
		}
		groups = append(groups, g)
	}
	s.writeJSON(w, http.StatusOK, groups)
}

// decodeColumn reads a column request and decodes its layers.
func (s *Server) decodeColumn(w http.ResponseWriter, r *http.Request) (columnRequest, []strat.Layer, error) {
	var req columnRequest
	if err := s.decode(w, r, &req); err != nil {
		return req, nil, err
	}
	layers, err := req.Column.Decode()
	return req, layers, err
}

// requestOptions returns the posted options, or the defaults when the
// request carries none.
func (s *Server) requestOptions(req columnRequest) pipeline.Options {
	if req.Options == nil {
		return s.baseOptions()
	}
	return *req.Options
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, layers, err := s.decodeColumn(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.requestOptions(req)
	opts.Formats = []string{pipeline.FormatJSON}
	s.execute(w, r, layers, opts)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, layers, err := s.decodeColumn(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.requestOptions(req)
	if len(opts.Formats) > 1 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "render accepts one format per request, got %d", len(opts.Formats)))
		return
	}
	s.execute(w, r, layers, opts)
}

// execute runs the pipeline and writes the single requested artifact.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, layers []strat.Layer, opts pipeline.Options) {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	res, err := s.runner.Execute(r.Context(), layers, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	if res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Artifacts[format]); err != nil {
		s.logger.Warn("write artifact", "err", err)
	}
}

func (s *Server) handleListColumns(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateColumn(w http.ResponseWriter, r *http.Request) {
	req, layers, err := s.decodeColumn(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c := &store.Column{ID: uuid.NewString(), Name: req.Name, Layers: layers}
	if err := s.store.Put(r.Context(), c); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/columns/"+c.ID)
	s.writeJSON(w, http.StatusCreated, newColumnResponse(c))
}

func (s *Server) handleGetColumn(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newColumnResponse(c))
}

// handlePutColumn creates or replaces a column, keeping the original
// creation time on replace.
func (s *Server) handlePutColumn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, layers, err := s.decodeColumn(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	c := &store.Column{ID: id, Name: req.Name, Layers: layers}
	status := http.StatusCreated
	existing, err := s.store.Get(r.Context(), id)
	switch {
	case err == nil:
		c.CreatedAt = existing.CreatedAt
		status = http.StatusOK
	case !errors.Is(err, errors.ErrCodeNotFound):
		s.writeError(w, r, err)
		return
	}

	if err := s.store.Put(r.Context(), c); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, status, newColumnResponse(c))
}

func (s *Server) handleDeleteColumn(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleColumnLayout(w http.ResponseWriter, r *http.Request) {
	s.renderStored(w, r, pipeline.FormatJSON)
}

func (s *Server) handleColumnSVG(w http.ResponseWriter, r *http.Request) {
	s.renderStored(w, r, pipeline.FormatSVG)
}

func (s *Server) renderStored(w http.ResponseWriter, r *http.Request, format string) {
	c, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Title == "" {
		opts.Title = c.Name
	}
	opts.Formats = []string{format}
	s.execute(w, r, c.Layers, opts)
}
