package api

import (
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/orgchart/pkg/chart"
	"github.com/matzehuels/orgchart/pkg/dataset"
	"github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/pipeline"
	"github.com/matzehuels/orgchart/pkg/render"
	"github.com/matzehuels/orgchart/pkg/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Data Sets
// =============================================================================

type dataSetInfo struct {
	Name    string `json:"name"`
	Nodes   int    `json:"nodes"`
	Default bool   `json:"default,omitempty"`
}

func (s *Server) handleListDataSets(w http.ResponseWriter, r *http.Request) {
	names := s.runner.Registry.Names()
	infos := make([]dataSetInfo, 0, len(names))
	for _, name := range names {
		ds, err := s.runner.Registry.Get(name)
		if err != nil {
			continue
		}
		infos = append(infos, dataSetInfo{
			Name:    name,
			Nodes:   len(ds.Nodes),
			Default: name == dataset.Default,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"datasets": infos})
}

// resolveDataSet applies the selection semantics: unknown names are a 404,
// Custom without a saved chart is an explicit 409 no-op.
func (s *Server) resolveDataSet(name string) (dataset.DataSet, error) {
	ds, err := s.runner.Registry.Get(name)
	if err != nil {
		return dataset.DataSet{}, errors.Wrap(errors.ErrCodeDataSetNotFound, err, "unknown data set: %s", name)
	}
	if name == dataset.Custom && ds.IsEmpty() {
		return dataset.DataSet{}, errors.New(errors.ErrCodeCustomEmpty, "no custom chart has been saved")
	}
	return ds, nil
}

func (s *Server) handleDataSetLayout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ds, err := s.resolveDataSet(name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	c := ds.Chart()
	l, err := s.runner.ComputeLayout(r.Context(), c, pipeline.Options{Dataset: name})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDataSetRender(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ds, err := s.resolveDataSet(name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		formatName = pipeline.DefaultFormat
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{
		Dataset: name,
		Formats: []string{string(format)},
		Style:   r.URL.Query().Get("style"),
	}
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, err)
		return
	}

	l, err := s.runner.ComputeLayout(r.Context(), ds.Chart(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[string(format)])
}

// =============================================================================
// Saved Charts
// =============================================================================

type savedChartInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Nodes int    `json:"nodes"`
}

func (s *Server) handleSaveChart(w http.ResponseWriter, r *http.Request) {
	c, err := chart.ReadChart(r.Body)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidChart, err, "invalid chart payload"))
		return
	}
	if _, err := chart.ToTree(c); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidChart, err, "invalid chart"))
		return
	}
	if len(c.Nodes) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidChart, "chart has no nodes"))
		return
	}

	rec := store.NewRecord(c)
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "save chart"))
		return
	}

	// The newest saved chart becomes the Custom data set.
	s.runner.Registry.Replace(dataset.DataSet{Name: dataset.Custom, Nodes: c.Nodes})

	writeJSON(w, http.StatusCreated, map[string]string{"id": rec.ID})
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "list charts"))
		return
	}
	infos := make([]savedChartInfo, 0, len(records))
	for _, rec := range records {
		infos = append(infos, savedChartInfo{
			ID:    rec.ID,
			Name:  rec.Chart.Name,
			Nodes: len(rec.Chart.Nodes),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"charts": infos})
}

func (s *Server) handleChartLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		s.writeError(w, errors.New(errors.ErrCodeChartNotFound, "no chart with id %s", id))
		return
	}
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "load chart %s", id))
		return
	}

	l, err := s.runner.ComputeLayout(r.Context(), rec.Chart, pipeline.Options{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		s.writeError(w, errors.New(errors.ErrCodeChartNotFound, "no chart with id %s", id))
		return
	}
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "delete chart %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
