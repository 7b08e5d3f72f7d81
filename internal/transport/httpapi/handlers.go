package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sandevgo/askgate/internal/config"
	"github.com/sandevgo/askgate/internal/core"
	"github.com/sandevgo/askgate/pkg/log"
)

// maxUploadSize bounds the in-memory portion of multipart parsing;
// larger images spill to disk.
const maxUploadSize = 32 << 20

type handlers struct {
	cfg    *config.AppConfig
	repo   core.InteractionsRepository
	text   core.TextGenerator
	vision core.VisionGenerator
}

type generateRequest struct {
	Context      string `json:"context"`
	UserQuestion string `json:"user_question"`
	Model        string `json:"model"`
}

type ratingRequest struct {
	ResponseID int64 `json:"response_id"`
	Rating     int64 `json:"rating"`
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Message: "askgate is running!",
	})
}

func (h *handlers) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, core.Validationf("invalid request body: %v", err))
		return
	}
	if req.UserQuestion == "" {
		writeError(ctx, w, core.Validationf("user_question is required"))
		return
	}

	answer, err := h.text.Generate(ctx, req.Context, req.UserQuestion, req.Model)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if h.cfg.PersistText {
		if _, err := h.repo.Insert(ctx, req.Context, req.UserQuestion, answer); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, generateResponse{Response: answer})
}

func (h *handlers) handleGenerateVision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(ctx, w, core.Validationf("invalid multipart form: %v", err))
		return
	}

	question := r.FormValue("user_question")
	if question == "" {
		writeError(ctx, w, core.Validationf("user_question is required"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(ctx, w, core.Validationf("image file is required"))
		return
	}
	defer file.Close()

	answer, err := h.vision.Generate(ctx, question, core.Upload{
		Filename: header.Filename,
		Reader:   file,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if h.cfg.PersistVision {
		if _, err := h.repo.Insert(ctx, core.VisionContext, question, answer); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, generateResponse{Response: answer})
}

func (h *handlers) handleSaveRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, core.Validationf("invalid request body: %v", err))
		return
	}

	found, err := h.repo.UpdateRating(ctx, req.ResponseID, req.Rating)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !found {
		// Ratings for unknown ids still report success so that clients
		// racing a deletion do not surface an error to the user
		log.FromCtx(ctx).Warn().Int64("response_id", req.ResponseID).Msg("rating saved for unknown response id")
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Rating saved",
	})
}

func (h *handlers) handleListResponses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, core.Validationf("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}
	if limit > h.cfg.MaxListLimit {
		limit = h.cfg.MaxListLimit
	}

	records, err := h.repo.ListRecent(ctx, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if records == nil {
		records = []core.Interaction{}
	}

	writeJSON(w, http.StatusOK, records)
}

func (h *handlers) handleDeleteResponse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(ctx, w, core.Validationf("invalid response id"))
		return
	}

	// Deleting an absent record is a success, which makes the call
	// safely repeatable
	if err := h.repo.Delete(ctx, id); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: fmt.Sprintf("Response %d deleted", id),
	})
}
