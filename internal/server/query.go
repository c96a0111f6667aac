package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	"github.com/vijaymanbajracharya/stratcol/pkg/layout"
	"github.com/vijaymanbajracharya/stratcol/pkg/pipeline"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// optionsFromQuery overlays query parameters on the server defaults.
func (s *Server) optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := s.baseOptions()

	if v := q.Get("mode"); v != "" {
		m, err := layout.ParseMode(v)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	if v := q.Get("height"); v != "" {
		h, err := parseFloat("height", v)
		if err != nil {
			return opts, err
		}
		opts.Height = h
	}
	if v := q.Get("gaps"); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "gaps: %q is not a boolean", v)
		}
		opts.HideGaps = !show
	}
	if v := q.Get("env"); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "env: %q is not a boolean", v)
		}
		opts.NoEnvironment = !show
	}
	if q.Has("levels") {
		levels, err := parseLevels(q.Get("levels"))
		if err != nil {
			return opts, err
		}
		opts.Levels = levels
		opts.NoBands = len(levels) == 0
	}
	if q.Has("from") || q.Has("to") {
		w := strat.AllTime()
		var err error
		if v := q.Get("from"); v != "" {
			if w.From, err = parseFloat("from", v); err != nil {
				return opts, err
			}
		}
		if v := q.Get("to"); v != "" {
			if w.To, err = parseFloat("to", v); err != nil {
				return opts, err
			}
		}
		opts.Window = &w
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	return opts, nil
}

// parseLevels reads a comma-separated level list; "" or "none" disables
// the bands.
func parseLevels(s string) ([]chrono.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return nil, nil
	}
	var out []chrono.Level
	for _, part := range strings.Split(s, ",") {
		l, err := chrono.ParseLevel(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func parseFloat(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", name, v)
	}
	return f, nil
}
