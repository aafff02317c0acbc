package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"cardcheck/internal/liveness"
	"cardcheck/internal/motion"
	"cardcheck/internal/spoof"
	dErrors "cardcheck/pkg/domain-errors"
	audit "cardcheck/pkg/platform/audit"
	"cardcheck/pkg/platform/httputil"
	"cardcheck/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/liveness-mocks.go -package=mocks Service

// Service defines the interface for liveness operations.
type Service interface {
	Generate(ctx context.Context, cfg motion.Config) (*liveness.StoredSequence, error)
	GetSequence(ctx context.Context, id uuid.UUID) (*liveness.StoredSequence, error)
	Spoof(ctx context.Context, sequenceID uuid.UUID, t spoof.Type) (*liveness.StoredSequence, error)
	SpoofDefault(ctx context.Context, t spoof.Type) (*liveness.StoredSequence, error)
	Classify(ctx context.Context, frames []motion.Frame) (*liveness.ClassificationRecord, error)
	ClassifySequence(ctx context.Context, sequenceID uuid.UUID) (*liveness.ClassificationRecord, error)
	ClassifyBatch(ctx context.Context, batches [][]motion.Frame) ([]*liveness.ClassificationRecord, error)
	GetResult(ctx context.Context, id uuid.UUID) (*liveness.ClassificationRecord, error)
	ListRecentResults(ctx context.Context, limit int) ([]*liveness.ClassificationRecord, error)
	ListAuditEvents(ctx context.Context, subjectID string, limit int) ([]audit.Event, error)
}

// Handler wires liveness endpoints to the liveness service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a liveness handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts liveness endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/liveness", func(r chi.Router) {
		r.Post("/sequences", h.HandleGenerate)
		r.Get("/sequences/{id}", h.HandleGetSequence)
		r.Post("/sequences/{id}/spoof", h.HandleSpoofSequence)
		r.Post("/sequences/{id}/classify", h.HandleClassifySequence)
		r.Post("/spoof", h.HandleSpoofDefault)
		r.Post("/classify", h.HandleClassify)
		r.Post("/classify/batch", h.HandleClassifyBatch)
		r.Get("/results", h.HandleListResults)
		r.Get("/results/{id}", h.HandleGetResult)
		r.Get("/audit", h.HandleListAuditEvents)
	})
}

// HandleGenerate handles POST /liveness/sequences. An empty body generates
// the default capture.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	cfg := motion.DefaultConfig()
	if r.ContentLength != 0 {
		req, ok := httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}
		cfg = req.ParsedConfig()
	}

	seq, err := h.service.Generate(ctx, cfg)
	if err != nil {
		h.logger.ErrorContext(ctx, "sequence generation failed",
			"request_id", requestID,
			"pattern", cfg.MotionPattern,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "sequence generated",
		"request_id", requestID,
		"sequence_id", seq.ID,
		"frames", seq.Sequence.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromSequence(seq))
}

// HandleGetSequence handles GET /liveness/sequences/{id}.
func (h *Handler) HandleGetSequence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.pathID(w, r, "sequence")
	if !ok {
		return
	}

	seq, err := h.service.GetSequence(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSequence(seq))
}

// HandleSpoofSequence handles POST /liveness/sequences/{id}/spoof.
func (h *Handler) HandleSpoofSequence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := h.pathID(w, r, "sequence")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SpoofRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	seq, err := h.service.Spoof(ctx, id, req.ParsedType())
	if err != nil {
		h.logger.ErrorContext(ctx, "sequence spoof failed",
			"request_id", requestID,
			"sequence_id", id,
			"spoof_type", req.SpoofType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromSequence(seq))
}

// HandleSpoofDefault handles POST /liveness/spoof.
func (h *Handler) HandleSpoofDefault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SpoofRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	seq, err := h.service.SpoofDefault(ctx, req.ParsedType())
	if err != nil {
		h.logger.ErrorContext(ctx, "default spoof failed",
			"request_id", requestID,
			"spoof_type", req.SpoofType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromSequence(seq))
}

// HandleClassify handles POST /liveness/classify.
func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ClassifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.service.Classify(ctx, req.Frames)
	if err != nil {
		h.logger.ErrorContext(ctx, "classification failed",
			"request_id", requestID,
			"frames", len(req.Frames),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "frames classified",
		"request_id", requestID,
		"result_id", record.ID,
		"verdict", record.Result.Verdict(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromRecord(record))
}

// HandleClassifySequence handles POST /liveness/sequences/{id}/classify.
func (h *Handler) HandleClassifySequence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := h.pathID(w, r, "sequence")
	if !ok {
		return
	}

	record, err := h.service.ClassifySequence(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "sequence classification failed",
			"request_id", requestID,
			"sequence_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(record))
}

// HandleClassifyBatch handles POST /liveness/classify/batch.
func (h *Handler) HandleClassifyBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchClassifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	records, err := h.service.ClassifyBatch(ctx, req.FrameSets())
	if err != nil {
		h.logger.ErrorContext(ctx, "batch classification failed",
			"request_id", requestID,
			"sequences", len(req.Sequences),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "batch classified",
		"request_id", requestID,
		"sequences", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}

// HandleGetResult handles GET /liveness/results/{id}.
func (h *Handler) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.pathID(w, r, "result")
	if !ok {
		return
	}

	record, err := h.service.GetResult(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(record))
}

// HandleListResults handles GET /liveness/results?limit=N.
func (h *Handler) HandleListResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	records, err := h.service.ListRecentResults(ctx, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}

// HandleListAuditEvents handles GET /liveness/audit. With ?subject_id= it
// returns that subject's trail; otherwise the most recent events.
func (h *Handler) HandleListAuditEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	subjectID := strings.TrimSpace(r.URL.Query().Get("subject_id"))
	if subjectID != "" {
		if _, err := uuid.Parse(subjectID); err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid subject id"))
			return
		}
	}

	events, err := h.service.ListAuditEvents(ctx, subjectID, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAuditEvents(events))
}

// queryLimit reads ?limit=. Absent means 0, which the service maps to its
// default.
func queryLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be an integer"))
		return 0, false
	}
	return n, true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid "+what+" id"))
		return uuid.Nil, false
	}
	return id, true
}
