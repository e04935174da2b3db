package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yaswanth-142004/EZ-Search/internal/pipeline"
	"github.com/yaswanth-142004/EZ-Search/internal/types"
)

// maxBodyBytes bounds request bodies; they carry three short strings.
const maxBodyBytes = 1 << 20

// CurationHeader reports how the returned payload was produced.
const CurationHeader = "X-Curation-Result"

// ResultEvent is the final event of a streamed generation
type ResultEvent struct {
	RunID            string           `json:"run_id"`
	Kind             types.ResultKind `json:"kind"`
	Reason           string           `json:"reason,omitempty"`
	SchemaViolations []string         `json:"schema_violations,omitempty"`
	Questions        any              `json:"questions"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "online",
		"message": "Interview question search API is running",
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

func (s *Server) decodeInterviewContext(w http.ResponseWriter, r *http.Request) (types.InterviewContext, error) {
	var ic types.InterviewContext
	if err := decodeBody(w, r, &ic); err != nil {
		return ic, err
	}
	if err := ic.Validate(); err != nil {
		return ic, err
	}
	return ic, nil
}

// handleGenerateInterviewQuestions harvests, normalizes and curates questions
// for the posted job context and returns the curated payload.
func (s *Server) handleGenerateInterviewQuestions(w http.ResponseWriter, r *http.Request) {
	ic, err := s.decodeInterviewContext(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, state, err := s.newGenerator(nil).Generate(r.Context(), ic)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.log.Info("generated interview questions",
		"request_id", requestID(r.Context()),
		"run_id", state.RunID.String(),
		"harvested", len(state.Questions),
		"kind", string(result.Kind),
	)
	w.Header().Set(CurationHeader, string(result.Kind))
	s.jsonResponse(w, http.StatusOK, result.Payload())
}

// handleGenerateInterviewQuestionsStream runs a generation and streams
// progress via SSE, ending with a "result" event.
func (s *Server) handleGenerateInterviewQuestionsStream(w http.ResponseWriter, r *http.Request) {
	ic, err := s.decodeInterviewContext(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	gen := s.newGenerator(func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			s.log.Warn("failed to write SSE event", "error", err)
		}
	})

	result, state, err := gen.Generate(r.Context(), ic)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	if err := sse.WriteEvent("result", ResultEvent{
		RunID:            state.RunID.String(),
		Kind:             result.Kind,
		Reason:           result.Reason,
		SchemaViolations: result.SchemaViolations,
		Questions:        result.Payload(),
	}); err != nil {
		s.log.Warn("failed to write SSE result", "error", err)
	}
	sse.WriteComplete(state.RunID.String(), string(result.Kind))
}

// handleGenerateDSAQuestions returns {company: [records]} from the static table.
func (s *Server) handleGenerateDSAQuestions(w http.ResponseWriter, r *http.Request) {
	var req types.CompanyRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if s.dsa == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "DSA question table is not loaded")
		return
	}

	found, err := s.dsa.Lookup(req.CompanyName)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, found)
}
