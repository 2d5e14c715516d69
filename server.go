package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"deckgen/config"
	"deckgen/logger"
	"deckgen/schema"
	"deckgen/synth"
)

// Generator is the upstream topic-to-structure producer. Its output
// conforms to the same validated spec as directly supplied input.
type Generator interface {
	GenerateStructure(ctx context.Context, topic string, slideCount int, language string) (*schema.PresentationSpec, error)
}

// Server wires the HTTP surface to the synthesis engine.
type Server struct {
	cfg       config.Config
	log       *logger.Logger
	synth     *synth.Synthesizer
	generator Generator // nil when no LLM credential is configured
}

// NewServer builds the HTTP layer around an assembled synthesizer.
func NewServer(cfg config.Config, log *logger.Logger, s *synth.Synthesizer, gen Generator) *Server {
	return &Server{cfg: cfg, log: log, synth: s, generator: gen}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/generate-ppt", s.handleGenerate).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.PathPrefix("/images/").Handler(
		http.StripPrefix("/images/", http.FileServer(http.Dir(s.cfg.ImagesDir))))
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	return r
}

// handleIndex serves the static landing page. Static assets mount under
// their own prefixes so API routes keep mux's method matching.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.cfg.StaticDir, "index.html"))
}

type generateRequest struct {
	Topic      string          `json:"topic"`
	SlideCount int             `json:"slide_count"`
	Language   string          `json:"language"`
	Slides     json.RawMessage `json:"slides"`
}

type generateResponse struct {
	Filename   string                   `json:"filename"`
	FileBase64 string                   `json:"file_base64"`
	Structure  *schema.PresentationSpec `json:"structure"`
}

type errorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// handleGenerate accepts either {topic, slide_count?, language?} for the
// LLM path or a full {title, slides: [...]} content graph, synthesizes the
// deck, and returns it base64-encoded alongside the structure used.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4<<20))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read request body", nil)
		return
	}
	var req generateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON", nil)
		return
	}

	var spec *schema.PresentationSpec
	switch {
	case req.Topic != "":
		if s.generator == nil {
			s.writeError(w, http.StatusInternalServerError,
				"OPENAI_API_KEY not configured; topic generation is unavailable", nil)
			return
		}
		s.log.Infof("[%s] generating deck for topic %q (slides=%d lang=%s)",
			reqID, req.Topic, req.SlideCount, req.Language)
		spec, err = s.generator.GenerateStructure(r.Context(), req.Topic, req.SlideCount, req.Language)
		if err != nil {
			s.log.Errorf("[%s] structure generation failed: %v", reqID, err)
			s.writeGenerationError(w, err)
			return
		}
	case req.Slides != nil:
		spec, err = schema.Parse(body)
		if err != nil {
			s.writeGenerationError(w, err)
			return
		}
	default:
		s.writeError(w, http.StatusBadRequest, "invalid request: provide 'topic' or 'slides'", nil)
		return
	}

	result, err := s.synth.Generate(r.Context(), spec)
	if err != nil {
		s.log.Errorf("[%s] synthesis failed: %v", reqID, err)
		s.writeGenerationError(w, err)
		return
	}
	s.log.Infof("[%s] synthesized %s (%d bytes)", reqID, result.Filename, len(result.Data))

	writeJSON(w, http.StatusOK, generateResponse{
		Filename:   result.Filename,
		FileBase64: base64.StdEncoding.EncodeToString(result.Data),
		Structure:  spec,
	})
}

// handleHealth reports operational readiness: whether the template catalog
// resolved and whether the LLM credential is configured.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	templateOK := true
	if s.cfg.TemplatePath != "" {
		_, statErr := os.Stat(s.cfg.TemplatePath)
		templateOK = statErr == nil
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":             "ok",
		"template":           templateOK,
		"api_key_configured": s.generator != nil,
	})
}

// writeGenerationError maps the error taxonomy onto HTTP: validation
// failures are the caller's to fix (400), configuration and internal
// failures are not (500). Payload shape stays structured either way.
func (s *Server) writeGenerationError(w http.ResponseWriter, err error) {
	var verrs schema.ValidationErrors
	if errors.As(err, &verrs) {
		s.writeError(w, http.StatusBadRequest, "validation error",
			map[string]interface{}{"fields": verrs.Fields()})
		return
	}
	var gerr *synth.GenerationError
	if errors.As(err, &gerr) {
		status := http.StatusInternalServerError
		if gerr.Kind == synth.KindValidation {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, gerr.Message, gerr.Details)
		return
	}
	s.writeError(w, http.StatusInternalServerError, "internal error", nil)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string, details map[string]interface{}) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
