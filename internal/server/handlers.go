package server

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/kozu/pkg/buildinfo"
	"github.com/matzehuels/kozu/pkg/errors"
	"github.com/matzehuels/kozu/pkg/gallery"
	"github.com/matzehuels/kozu/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"templates": s.runner.Selector.Names()})
}

func (s *Server) handleComposition(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set(HeaderTemplate, res.Template)
	h.Set(HeaderSeed, strconv.FormatUint(res.Seed, 10))
	if res.CacheInfo.RenderHit {
		h.Set(HeaderCache, "hit")
	} else {
		h.Set(HeaderCache, "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleGalleryCreate(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{pipeline.FormatPNG}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	c := res.Composition
	entry, err := gallery.NewEntry(res.Template, res.Seed, c.Width, c.Height, res.Artifacts[pipeline.FormatPNG])
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("saved to gallery", "id", entry.ID, "template", entry.Template, "seed", entry.Seed)
	w.Header().Set("Location", "/api/v1/gallery/"+entry.ID.String())
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleGalleryList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	entries, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]*gallery.Entry{"entries": entries})
}

// handleGalleryGet serves entry metadata for /gallery/{id} and the stored
// image for /gallery/{id}.png.
func (s *Server) handleGalleryGet(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	raw, wantPNG := strings.CutSuffix(ref, "."+pipeline.FormatPNG)

	id, err := gallery.ParseID(raw)
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if !wantPNG {
		writeJSON(w, http.StatusOK, entry)
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatPNG])
	w.Header().Set(HeaderTemplate, entry.Template)
	w.Header().Set(HeaderSeed, strconv.FormatUint(entry.Seed, 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(entry.PNG)
}

// optionsFromQuery reads generation parameters. Missing values keep the
// pipeline defaults.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{Template: q.Get("template")}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid seed %q", v)
		}
		opts.Seed = seed
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"scale", &opts.Scale},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || !(n > 0) || math.IsInf(n, 0) {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", f.name, v)
		}
		*f.dst = n
	}
	return opts, nil
}
