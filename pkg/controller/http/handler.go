package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/civic-lab/sevadesk/pkg/domain/model"
	"github.com/civic-lab/sevadesk/pkg/domain/types"
	"github.com/civic-lab/sevadesk/pkg/utils/errutil"
	"github.com/civic-lab/sevadesk/pkg/utils/safe"
)

// ChatUseCase is the inbound boundary of the core: a question in, an
// envelope (or typed failure) out.
type ChatUseCase interface {
	Chat(ctx context.Context, question string) (*model.ResponseEnvelope, error)
	Search(question string) (model.MatchResult, error)
	CatalogSize() int
	ProviderConfigured() bool
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	RequestID         string   `json:"request_id"`
	Response          string   `json:"response"`
	Timestamp         string   `json:"timestamp"`
	ServiceReferences []string `json:"service_references"`
}

func chatHandler(uc ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		envelope, err := uc.Chat(ctx, req.Message)
		switch {
		case errors.Is(err, types.ErrEmptyQuestion):
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		case errors.Is(err, types.ErrCompletionProvider):
			errutil.HandleHTTP(ctx, w, err, http.StatusBadGateway)
			return
		case err != nil:
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		refs := make([]string, 0, len(envelope.ServiceReferences))
		for _, id := range envelope.ServiceReferences {
			refs = append(refs, id.String())
		}

		writeJSON(ctx, w, http.StatusOK, chatResponse{
			RequestID:         envelope.RequestID,
			Response:          envelope.Response,
			Timestamp:         envelope.Timestamp.Format(time.RFC3339),
			ServiceReferences: refs,
		})
	}
}

type healthResponse struct {
	Status      string `json:"status"`
	CatalogSize int    `json:"catalog_size"`
	Provider    string `json:"provider"`
	Timestamp   string `json:"timestamp"`
}

func healthHandler(uc ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := "configured"
		if !uc.ProviderConfigured() {
			provider = "missing"
		}

		writeJSON(r.Context(), w, http.StatusOK, healthResponse{
			Status:      "healthy",
			CatalogSize: uc.CatalogSize(),
			Provider:    provider,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

type searchResult struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Department string `json:"department"`
	Score      int    `json:"score"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

func searchHandler(uc ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := r.URL.Query().Get("q")

		matches, err := uc.Search(query)
		if err != nil {
			if errors.Is(err, types.ErrEmptyQuestion) {
				errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
				return
			}
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		results := make([]searchResult, 0, len(matches))
		for _, m := range matches {
			results = append(results, searchResult{
				ID:         m.Record.ID.String(),
				Title:      m.Record.Title,
				Department: m.Record.Department,
				Score:      m.Score,
			})
		}

		writeJSON(ctx, w, http.StatusOK, searchResponse{
			Query:   query,
			Results: results,
		})
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	safe.Write(ctx, w, data)
}
