// Package server hosts the slash-command webhook surface. It is the thin
// adapter between a chat platform's outgoing webhooks and the panel worker;
// the worker itself only ever sees the chatops.Dispatcher interface.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/sabio/grafana-chatops/pkg/chatops"
)

// Server routes webhook requests to panel invocations.
type Server struct {
	worker      *chatops.Worker
	subcommands []chatops.Subcommand
	publicURL   string
	images      *imageStore
	router      chi.Router
}

// New builds the webhook server around a worker and its registered
// subcommands.
func New(worker *chatops.Worker, subcommands []chatops.Subcommand, publicURL string) *Server {
	s := &Server{
		worker:      worker,
		subcommands: subcommands,
		publicURL:   strings.TrimRight(publicURL, "/"),
		images:      newImageStore(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/chatops/grafana", s.handleCommand)
	r.Get("/commands", s.handleCommands)
	r.Get("/images/{name}", s.handleImage)
	r.Get("/healthz", s.handleHealthz)
	s.router = r

	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

// handleCommand accepts one slash-command webhook, acknowledges it
// immediately and runs the invocation on its own goroutine. Responses flow
// back through the platform's response_url.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	text := strings.TrimSpace(r.PostFormValue("text"))
	responseURL := r.PostFormValue("response_url")
	userID := r.PostFormValue("user_id")

	if responseURL == "" {
		http.Error(w, "response_url is required", http.StatusBadRequest)
		return
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"response_type": "ephemeral",
			"text":          "Which panel? See /commands for the available subcommands.",
		})
		return
	}

	subcommand, args := tokens[0], tokens[1:]
	log.Info().Str("subcommand", subcommand).Strs("args", args).Str("user", userID).Msg("Dispatching panel invocation")

	dispatcher := newWebhookDispatcher(responseURL, userID, s.publicURL, s.images)
	go func() {
		ok := s.worker.HandleSubcommand(context.Background(), dispatcher, subcommand, args)
		log.Info().Str("subcommand", subcommand).Bool("ok", ok).Msg("Panel invocation finished")
	}()

	s.writeJSON(w, http.StatusOK, map[string]string{"response_type": "ephemeral", "text": "Working on it."})
}

func (s *Server) handleCommands(w http.ResponseWriter, _ *http.Request) {
	type commandDoc struct {
		Name   string   `json:"name"`
		Params []string `json:"params"`
		Doc    string   `json:"doc"`
	}

	docs := make([]commandDoc, 0, len(s.subcommands))
	for _, sub := range s.subcommands {
		docs = append(docs, commandDoc{Name: sub.Name, Params: sub.Params, Doc: sub.Doc})
	}
	s.writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, ok := s.images.get(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
