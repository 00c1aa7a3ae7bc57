// Package server exposes the JSON API: the content generation endpoint and
// the hero lifecycle endpoints the dashboards drive.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/habuhtat/habuhtat/internal/database"
	"github.com/habuhtat/habuhtat/internal/generate"
	"github.com/habuhtat/habuhtat/internal/llm"
)

var md = goldmark.New()

// Server is the HTTP server for the Habuhtat Media backend.
type Server struct {
	db  *database.DB
	gen *generate.Generator
	mux *http.ServeMux
}

// New creates a new Server.
func New(db *database.DB, gen *generate.Generator) *Server {
	s := &Server{db: db, gen: gen, mux: http.NewServeMux()}
	s.routes()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/generate", s.handleGenerate)
	s.mux.HandleFunc("/api/heroes", s.handleHeroes)
	s.mux.HandleFunc("/api/heroes/", s.handleHeroAction)
	s.mux.HandleFunc("/api/content", s.handleContentList)
	s.mux.HandleFunc("/api/content/", s.handleContentAction)
}

// handleGenerate is the AI content generation endpoint. It carries the CORS
// contract the dashboard frontends rely on: any origin, POST/OPTIONS, and a
// trivially successful preflight.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req generate.Request
	if r.Body != nil {
		// A malformed body falls through to field validation.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	record, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		s.writeGenerateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) writeGenerateError(w http.ResponseWriter, err error) {
	var provErr *llm.ProviderError
	switch {
	case errors.Is(err, generate.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "heroProfileId, platform, and contentType are required.")
	case errors.Is(err, generate.ErrHeroNotFound):
		writeError(w, http.StatusNotFound, "Hero profile not found.")
	case errors.Is(err, generate.ErrNotConfigured):
		writeError(w, http.StatusInternalServerError, "Missing provider API key in environment.")
	case errors.As(err, &provErr):
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "OpenAI request failed.",
			"details": provErr.Body,
		})
	default:
		log.Printf("AI content generation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "AI content generation failed.")
	}
}

func (s *Server) handleHeroes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		heroes, err := s.db.GetHeroes(r.URL.Query().Get("status"))
		if err != nil {
			s.internalError(w, "listing heroes", err)
			return
		}
		if heroes == nil {
			heroes = []database.HeroProfile{}
		}
		writeJSON(w, http.StatusOK, heroes)

	case http.MethodPost:
		var hero database.HeroProfile
		if err := json.NewDecoder(r.Body).Decode(&hero); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body.")
			return
		}
		if hero.HeroName == "" {
			writeError(w, http.StatusBadRequest, "heroName is required.")
			return
		}
		hero.ID = ""
		hero.Status = database.HeroStatusReview
		if _, err := s.db.InsertHero(&hero); err != nil {
			s.internalError(w, "creating hero", err)
			return
		}
		writeJSON(w, http.StatusCreated, hero)

	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleHeroAction routes /api/heroes/{id} and /api/heroes/{id}/{action}.
func (s *Server) handleHeroAction(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/heroes/")
	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if id == "" {
		writeError(w, http.StatusNotFound, "Hero profile not found.")
		return
	}

	hero, err := s.db.GetHero(id)
	if err != nil {
		s.internalError(w, "loading hero", err)
		return
	}
	if hero == nil {
		writeError(w, http.StatusNotFound, "Hero profile not found.")
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		s.writeHeroDetail(w, hero)
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	switch parts[1] {
	case "claim":
		s.handleClaim(w, r, hero)
	case "story":
		s.handleStorySubmission(w, r, hero)
	case "approve":
		s.transitionHero(w, hero, database.HeroStatusApproved, func() error {
			return s.db.ApproveHero(hero.ID)
		})
	case "schedule":
		var body struct {
			ScheduledFor string `json:"scheduledFor"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.ScheduledFor == "" {
			writeError(w, http.StatusBadRequest, "scheduledFor is required.")
			return
		}
		s.transitionHero(w, hero, database.HeroStatusScheduled, func() error {
			return s.db.ScheduleHero(hero.ID, body.ScheduledFor)
		})
	case "publish":
		s.transitionHero(w, hero, database.HeroStatusPublished, func() error {
			return s.db.PublishHero(hero.ID)
		})
	default:
		writeError(w, http.StatusNotFound, "Unknown action.")
	}
}

func (s *Server) writeHeroDetail(w http.ResponseWriter, hero *database.HeroProfile) {
	story, err := s.db.GetLatestStory(hero.ID)
	if err != nil {
		s.internalError(w, "loading latest story", err)
		return
	}
	content, err := s.db.GetContentForHero(hero.ID)
	if err != nil {
		s.internalError(w, "loading content", err)
		return
	}
	if content == nil {
		content = []database.AIContent{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hero":        hero,
		"latestStory": story,
		"aiContent":   content,
	})
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request, hero *database.HeroProfile) {
	var body struct {
		JournalistID   string `json:"journalistId"`
		JournalistName string `json:"journalistName"`
	}
	json.NewDecoder(r.Body).Decode(&body)
	if body.JournalistID == "" || body.JournalistName == "" {
		writeError(w, http.StatusBadRequest, "journalistId and journalistName are required.")
		return
	}
	if !database.CanTransition(hero.Status, database.HeroStatusClaimed) {
		writeError(w, http.StatusConflict,
			fmt.Sprintf("Hero in status %q cannot be claimed.", hero.Status))
		return
	}

	if err := s.db.ClaimHero(hero.ID, body.JournalistID, body.JournalistName); err != nil {
		s.internalError(w, "claiming hero", err)
		return
	}
	s.writeHero(w, hero.ID)
}

func (s *Server) handleStorySubmission(w http.ResponseWriter, r *http.Request, hero *database.HeroProfile) {
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	json.NewDecoder(r.Body).Decode(&body)
	if body.Title == "" || body.Content == "" {
		writeError(w, http.StatusBadRequest, "title and content are required.")
		return
	}
	if !database.CanTransition(hero.Status, database.HeroStatusStorySubmitted) {
		writeError(w, http.StatusConflict,
			fmt.Sprintf("Hero in status %q cannot receive a story.", hero.Status))
		return
	}

	story := &database.Story{
		HeroProfileID: hero.ID,
		HeroName:      hero.HeroName,
		Title:         body.Title,
		Content:       body.Content,
		Status:        database.StoryStatusSubmitted,
	}
	if hero.JournalistID != nil {
		story.JournalistID = *hero.JournalistID
	}
	if hero.JournalistName != nil {
		story.JournalistName = *hero.JournalistName
	}

	if _, err := s.db.InsertStory(story); err != nil {
		s.internalError(w, "saving story", err)
		return
	}
	if err := s.db.MarkStorySubmitted(hero.ID); err != nil {
		s.internalError(w, "updating hero status", err)
		return
	}
	writeJSON(w, http.StatusCreated, story)
}

func (s *Server) transitionHero(w http.ResponseWriter, hero *database.HeroProfile, to string, update func() error) {
	if !database.CanTransition(hero.Status, to) {
		writeError(w, http.StatusConflict,
			fmt.Sprintf("Hero cannot move from %q to %q.", hero.Status, to))
		return
	}
	if err := update(); err != nil {
		s.internalError(w, "updating hero", err)
		return
	}
	s.writeHero(w, hero.ID)
}

func (s *Server) writeHero(w http.ResponseWriter, id string) {
	hero, err := s.db.GetHero(id)
	if err != nil || hero == nil {
		s.internalError(w, "reloading hero", err)
		return
	}
	writeJSON(w, http.StatusOK, hero)
}

func (s *Server) handleContentList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	items, err := s.db.GetAllContent(r.URL.Query().Get("status"))
	if err != nil {
		s.internalError(w, "listing content", err)
		return
	}
	if items == nil {
		items = []database.AIContent{}
	}
	writeJSON(w, http.StatusOK, items)
}

// handleContentAction routes /api/content/{id}/{action}.
func (s *Server) handleContentAction(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/content/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "Content not found.")
		return
	}

	record, err := s.db.GetContent(parts[0])
	if err != nil {
		s.internalError(w, "loading content", err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "Content not found.")
		return
	}

	if parts[1] == "preview" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		s.renderPreview(w, record)
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	switch parts[1] {
	case "approve":
		err = s.db.ApproveContent(record.ID)
	case "reject":
		err = s.db.RejectContent(record.ID)
	case "publish":
		err = s.db.PublishContent(record.ID)
	default:
		writeError(w, http.StatusNotFound, "Unknown action.")
		return
	}
	if err != nil {
		s.internalError(w, "updating content", err)
		return
	}

	updated, err := s.db.GetContent(record.ID)
	if err != nil || updated == nil {
		s.internalError(w, "reloading content", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// renderPreview renders generated text as HTML for the review dashboard.
// Blog articles come back from the model as markdown.
func (s *Server) renderPreview(w http.ResponseWriter, record *database.AIContent) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(record.Content), &buf); err != nil {
		s.internalError(w, "rendering preview", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) internalError(w http.ResponseWriter, context string, err error) {
	log.Printf("%s: %v", context, err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Serve starts the HTTP server on the given port.
func Serve(db *database.DB, gen *generate.Generator, port int) error {
	srv := New(db, gen)
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
