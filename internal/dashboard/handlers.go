// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pdiddy/literature-analyzer/internal/export"
	"github.com/pdiddy/literature-analyzer/internal/pubmed"
	"github.com/pdiddy/literature-analyzer/internal/session"
	"github.com/pdiddy/literature-analyzer/internal/tabulate"
	"github.com/pdiddy/literature-analyzer/internal/wordcloud"
)

// stateResponse is the JSON view of a session snapshot.
type stateResponse struct {
	State      session.State   `json:"state"`
	Keyword    string          `json:"keyword,omitempty"`
	RunID      string          `json:"run_id,omitempty"`
	Total      int             `json:"total"`
	Rows       int             `json:"rows"`
	Progress   pubmed.Progress `json:"progress"`
	Error      string          `json:"error,omitempty"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	DurationMS int64           `json:"duration_ms,omitempty"`
}

func stateOf(snap session.Snapshot) stateResponse {
	resp := stateResponse{
		State:      snap.State,
		Keyword:    snap.Keyword,
		RunID:      snap.RunID,
		Total:      snap.Total,
		Rows:       snap.Table.Len(),
		Progress:   snap.Progress,
		DurationMS: snap.Duration.Milliseconds(),
	}
	if snap.Err != nil {
		resp.Error = snap.Err.Error()
	}
	if !snap.StartedAt.IsZero() {
		started := snap.StartedAt
		resp.StartedAt = &started
	}
	return resp
}

// aggregatesResponse carries every chart input for the cached table.
type aggregatesResponse struct {
	Keyword    string              `json:"keyword"`
	Aggregates tabulate.Aggregates `json:"aggregates"`
	Words      []wordcloud.Term    `json:"words"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	view := s.buildView(s.session.Snapshot(), page, r.URL.Query().Get("notice"))

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", view); err != nil {
		s.logger.Error("rendering dashboard failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "rendering dashboard failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// handleSearch runs the pipeline for the submitted keyword. The fetch is
// detached from request cancellation so a closed browser tab does not
// abort a run other viewers are waiting on.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.PostFormValue("keyword")
	s.logger.Debug("search request", zap.String("keyword", keyword))

	snap, err := s.session.Submit(context.WithoutCancel(r.Context()), keyword)
	status := http.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, session.ErrEmptyKeyword):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrBusy):
		status = http.StatusConflict
	default:
		status = http.StatusBadGateway
	}

	// Remote failures are part of the session state; the rest are notices.
	notice := err != nil && status != http.StatusBadGateway
	if wantsJSON(r) {
		if notice {
			s.respondError(w, status, err.Error())
			return
		}
		s.respondJSON(w, status, stateOf(snap))
		return
	}
	target := "/"
	if notice {
		target = "/?notice=" + url.QueryEscape(err.Error())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Reset(); err != nil {
		if wantsJSON(r) {
			s.respondError(w, http.StatusConflict, err.Error())
			return
		}
		http.Redirect(w, r, "/?notice="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		s.respondJSON(w, http.StatusOK, stateOf(s.session.Snapshot()))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	snap := s.session.Snapshot()
	if snap.State != session.Ready {
		s.respondError(w, http.StatusConflict, "no data to export")
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, snap.Table.Rows()); err != nil {
		if errors.Is(err, export.ErrNotStreamable) {
			s.respondError(w, http.StatusBadRequest, string(format)+" export is only available from the command line")
			return
		}
		if errors.Is(err, export.ErrCellTooLong) {
			s.respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("export failed", zap.String("format", string(format)), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	name := export.Filename(snap.Keyword, format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, stateOf(s.session.Snapshot()))
}

func (s *Server) handleAggregates(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()
	if snap.State != session.Ready {
		s.respondError(w, http.StatusConflict, "no data loaded")
		return
	}
	words := wordcloud.Generate(snap.Table.AbstractCorpus(), wordcloud.Options{MaxWords: s.config.MaxWords})
	if words == nil {
		words = []wordcloud.Term{}
	}
	s.respondJSON(w, http.StatusOK, aggregatesResponse{
		Keyword:    snap.Keyword,
		Aggregates: snap.Table.Aggregate(),
		Words:      words,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
