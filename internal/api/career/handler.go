package career

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/career-agent/internal/entity"
	"github.com/futig/career-agent/internal/pkg/logger"
	"github.com/futig/career-agent/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 20

type Handler struct {
	analyzer    ProfileAnalyzer
	roadmaps    RoadmapCreator
	recommender ResourceRecommender
	coach       Troubleshooter
	validator   InputValidator
	formatters  FormatterFactory
}

func NewHandler(
	analyzer ProfileAnalyzer,
	roadmaps RoadmapCreator,
	recommender ResourceRecommender,
	coach Troubleshooter,
	validator InputValidator,
	formatters FormatterFactory,
) *Handler {
	return &Handler{
		analyzer:    analyzer,
		roadmaps:    roadmaps,
		recommender: recommender,
		coach:       coach,
		validator:   validator,
		formatters:  formatters,
	}
}

// AnalyzeProfile handles POST /api/v1/profile/analyze
func (h *Handler) AnalyzeProfile(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AnalyzeProfile")

	var req entity.AnalyzeProfileRequest
	if !h.decode(ctx, w, r, &req) {
		return
	}
	if err := h.validator.ValidateAnalyzeProfile(&req); err != nil {
		h.handleAgentError(ctx, w, err)
		return
	}

	result, err := h.analyzer.Execute(ctx, entity.ProfileAnalysisInput{ProfileText: req.ProfileText})
	if err != nil {
		h.handleAgentError(ctx, w, err)
		return
	}

	response.Success(w, result)
}

// CreateRoadmap handles POST /api/v1/roadmaps
func (h *Handler) CreateRoadmap(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateRoadmap")

	var req entity.CreateRoadmapRequest
	if !h.decode(ctx, w, r, &req) {
		return
	}
	if err := h.validator.ValidateCreateRoadmap(&req); err != nil {
		h.handleAgentError(ctx, w, err)
		return
	}

	result, err := h.roadmaps.Execute(ctx, entity.AnalysisResult{
		Analysis:    req.Analysis,
		Suggestions: req.Suggestions,
	})
	if err != nil {
		h.handleAgentError(ctx, w, err)
		return
	}

	response.Success(w, result)
}

// RecommendResources handles POST /api/v1/resources
func (h *Handler) RecommendResources(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RecommendResources")

	var req entity.RecommendResourcesRequest
	if !h.decode(ctx, w, r, &req) {
		return
	}
	if err := h.validator.ValidateRecommendResources(&req); err != nil {
		h.handleAgentError(ctx, w, err)
		return
	}

	result, err := h.recommender.Execute(ctx, entity.ResourceInput{Milestone: req.Milestone})
	if err != nil {
		h.handleAgentError(ctx, w, err)
		return
	}

	response.Success(w, result)
}

// Troubleshoot handles POST /api/v1/troubleshooting/messages.
// The caller sends the transcript it holds and receives it back with the new turns.
func (h *Handler) Troubleshoot(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Troubleshoot")

	var req entity.TroubleshootRequest
	if !h.decode(ctx, w, r, &req) {
		return
	}
	if err := h.validator.ValidateTroubleshoot(&req); err != nil {
		h.handleAgentError(ctx, w, err)
		return
	}

	session := entity.RestoreChatSession(req.SessionID, req.Milestone, toChatTurns(req.History))

	reply, err := h.coach.Converse(ctx, session, req.Question)
	if err != nil {
		h.handleAgentError(ctx, w, err)
		return
	}

	response.Success(w, toTroubleshootResponse(session, reply))
}

// ExportRoadmap handles POST /api/v1/roadmaps/export
func (h *Handler) ExportRoadmap(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportRoadmap")

	var req entity.ExportRoadmapRequest
	if !h.decode(ctx, w, r, &req) {
		return
	}
	if req.Format == "" {
		req.Format = entity.FormatMarkdown
	}
	if err := h.validator.ValidateExportRoadmap(&req); err != nil {
		h.handleAgentError(ctx, w, err)
		return
	}

	ctx = logger.AddFields(ctx, zap.String("format", string(req.Format)))

	fmtr, err := h.formatters.Create(req.Format)
	if err != nil {
		h.handleAgentError(ctx, w, err)
		return
	}

	doc, err := fmtr.Format(req.Title, req.Roadmap)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to render roadmap", err)
		return
	}

	ctxzap.Info(ctx, "roadmap exported", zap.Int("size", len(doc)))
	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"roadmap%s\"", fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *Handler) decode(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	return true
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.Error(w, status, message, "", "")
}

func (h *Handler) handleAgentError(ctx context.Context, w http.ResponseWriter, err error) {
	var (
		vErr     *entity.ValidationError
		parseErr *entity.ParseError
	)

	switch {
	case errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField):
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, entity.ErrNoSearchResults):
		h.respondError(ctx, w, http.StatusNotFound, "no search results for milestone", err)
	case errors.As(err, &vErr):
		ctxzap.Error(ctx, "generated response violated its contract", zap.Error(err))
		response.Error(w, http.StatusBadGateway,
			fmt.Sprintf("generated response violated its contract: %s", vErr.Rule), vErr.Field, vErr.Rule)
	case errors.As(err, &parseErr):
		h.respondError(ctx, w, http.StatusBadGateway, "generated response is not valid JSON", err)
	case errors.Is(err, entity.ErrGeneration):
		h.respondError(ctx, w, http.StatusBadGateway, "generation service failed", err)
	case errors.Is(err, context.DeadlineExceeded):
		h.respondError(ctx, w, http.StatusGatewayTimeout, "request timed out", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
