package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"sumpad/internal/domain"
	"sumpad/internal/extract"
	"sumpad/internal/summarizer"
)

const historyLimit = 10

type summarizeRequest struct {
	Text        string `json:"text"`
	TargetWords int64  `json:"target_words"`
}

type summarizeResponse struct {
	Summary     string `json:"summary"`
	TargetWords int64  `json:"target_words"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type historyEntry struct {
	ID          int64  `json:"id"`
	TargetWords int64  `json:"target_words"`
	SourceChars int64  `json:"source_chars"`
	Summary     string `json:"summary"`
	CreatedAt   string `json:"created_at"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	if _, err = w.Write(data); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to write index page",
			"error", err)
	}
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, &summarizer.Error{
			Kind:    summarizer.FailureInvalidInput,
			Message: "request body is not valid JSON",
			Err:     err,
		})
		return
	}

	text := req.Text
	if s.extractor != nil {
		if pageURL, ok := extract.SoleURL(text); ok {
			pageText, err := s.extractor.PageText(ctx, pageURL)
			if err != nil {
				s.log.WarnContext(ctx, "Failed to extract page text",
					"error", err,
					"pageURL", pageURL)
				s.writeError(w, r, &summarizer.Error{
					Kind:    summarizer.FailureInvalidInput,
					Message: "could not read any text from the page",
					Err:     err,
				})
				return
			}
			text = pageText
		}
	}

	targetWords := summarizer.ClampTargetWords(req.TargetWords)

	summary, err := s.summarizer.Summarize(ctx, summarizer.Request{
		Text:        text,
		TargetWords: targetWords,
	})
	if err != nil {
		s.log.WarnContext(ctx, "Summarization failed",
			"error", err,
			"kind", summarizer.KindOf(err),
			"targetWords", targetWords)
		s.writeError(w, r, err)
		return
	}

	s.saveHistory(r, targetWords, int64(len(text)), summary)

	s.writeJSON(w, r, http.StatusOK, summarizeResponse{
		Summary:     summary,
		TargetWords: targetWords,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries := []historyEntry{}

	if s.db != nil {
		records, err := s.db.RecentSummaries(r.Context(), historyLimit)
		if err != nil {
			s.log.ErrorContext(r.Context(), "Failed to load summary history",
				"error", err,
				"limit", historyLimit)
			s.writeJSON(w, r, http.StatusInternalServerError, errorResponse{
				Error: "could not load history",
				Kind:  "history_error",
			})
			return
		}

		for _, rec := range records {
			entries = append(entries, historyEntry{
				ID:          rec.ID,
				TargetWords: rec.TargetWords,
				SourceChars: rec.SourceChars,
				Summary:     rec.Summary,
				CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
	}

	s.writeJSON(w, r, http.StatusOK, entries)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) saveHistory(r *http.Request, targetWords, sourceChars int64, summary string) {
	if s.db == nil {
		return
	}

	rec := domain.SummaryRecord{
		TargetWords: targetWords,
		SourceChars: sourceChars,
		Summary:     summary,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.db.SaveSummary(r.Context(), rec); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to save summary history",
			"error", err,
			"targetWords", targetWords)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := summarizer.KindOf(err)

	message := "summarization failed"
	var sErr *summarizer.Error
	if errors.As(err, &sErr) {
		message = sErr.Message
	}

	s.writeJSON(w, r, statusForKind(kind), errorResponse{
		Error: message,
		Kind:  string(kind),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to encode response",
			"error", err,
			"status", status)
	}
}

func statusForKind(kind summarizer.FailureKind) int {
	switch kind {
	case summarizer.FailureInvalidInput:
		return http.StatusBadRequest
	case summarizer.FailureMissingCredential:
		return http.StatusServiceUnavailable
	case summarizer.FailureAuth:
		return http.StatusBadGateway
	case summarizer.FailureRateLimited:
		return http.StatusTooManyRequests
	case summarizer.FailureNetwork:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
