package admin

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"sentinel-sim/internal/inventory"
	"sentinel-sim/internal/logging"
	"sentinel-sim/internal/sim"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Session *sim.Session
	log     *slog.Logger
	tpl     *template.Template
	mux     *http.ServeMux
}

//go:embed templates/index.html
var content embed.FS

var funcs = template.FuncMap{
	"money": sim.FormatMoney,
	"statusClass": func(s inventory.Status) string {
		switch s {
		case inventory.StatusCritical:
			return "critical"
		case inventory.StatusWarning:
			return "warning"
		}
		return "nominal"
	},
}

func NewServer(s *sim.Session, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	tpl := template.Must(template.New("index.html").Funcs(funcs).ParseFS(content, "templates/index.html"))
	srv := &Server{Session: s, log: log, tpl: tpl, mux: http.NewServeMux()}
	srv.routes()
	return srv
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /inventory", s.handleInventory)
	s.mux.HandleFunc("GET /history", s.handleHistory)
	s.mux.HandleFunc("GET /events", s.handleEvents)
	s.mux.HandleFunc("POST /run", s.handleRun)
	s.mux.HandleFunc("POST /reset", s.handleReset)
}

// Handler exposes the routes for embedding or testing.
func (s *Server) Handler() http.Handler { return s.mux }

// Start serves on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("admin UI listening", "addr", addr)
		errCh <- hs.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("admin UI shutting down")
		return hs.Shutdown(shutCtx)
	}
}

func (s *Server) ctx(r *http.Request) context.Context {
	return logging.NewContext(r.Context(), s.log)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "err", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.tpl.Execute(w, s.Session.Snapshot()); err != nil {
		s.log.Error("render index", "err", err)
	}
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Session.Snapshot().Table)
}

type historyResponse struct {
	History       []sim.HistoryEntry `json:"history"`
	TotalNetValue decimal.Decimal    `json:"total_net_value"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	snap := s.Session.Snapshot()
	s.writeJSON(w, http.StatusOK, historyResponse{History: snap.History, TotalNetValue: snap.TotalNetValue})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	snap := s.Session.Snapshot()
	s.writeJSON(w, http.StatusOK, map[string]any{"events": snap.Events, "plans": snap.Plans})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Session.Run(s.ctx(r))
	if err != nil {
		s.log.Error("run failed", "err", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if r.FormValue("redirect") == "/" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.Session.Reset(s.ctx(r))
	if r.FormValue("redirect") == "/" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
