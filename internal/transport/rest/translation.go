package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
	"github.com/omer-demir/CeviriDukkaniTS/internal/service/workflow"
)

// workflowService defines the minimal interface needed by TranslationHandler.
type workflowService interface {
	UpdateContent(ctx context.Context, role domain.Role, actorID, partID uuid.UUID, content string) (*domain.TranslationOperation, error)
	FinishStage(ctx context.Context, role domain.Role, actorID, partID uuid.UUID) (*workflow.FinishResult, error)
	ContentForRole(ctx context.Context, role domain.Role, actorID, partID uuid.UUID) (string, error)
	ContentForNextRole(ctx context.Context, role domain.Role, actorID, partID uuid.UUID) (string, error)
	AddComment(ctx context.Context, stage domain.Role, partID, authorID uuid.UUID, content string) (*domain.Comment, error)
	Comments(ctx context.Context, partID uuid.UUID) ([]domain.Comment, error)
	AssignedJobs(ctx context.Context, role domain.Role, actorID uuid.UUID) ([]domain.TranslationOperation, error)
	SaveOperations(ctx context.Context, ops []domain.NewOperation) ([]domain.TranslationOperation, error)
}

// ratingService defines the rating interface needed by TranslationHandler.
type ratingService interface {
	AverageDocumentPartCount(ctx context.Context, orderID uuid.UUID) (int, error)
}

// TranslationHandler serves the revision workflow REST endpoints.
type TranslationHandler struct {
	svc    workflowService
	rating ratingService
	log    *slog.Logger
}

// NewTranslationHandler creates a TranslationHandler.
func NewTranslationHandler(svc workflowService, rating ratingService, logger *slog.Logger) *TranslationHandler {
	return &TranslationHandler{svc: svc, rating: rating, log: logger.With("handler", "translation")}
}

// Register mounts every endpoint on the mux.
func (h *TranslationHandler) Register(mux *http.ServeMux) {
	const prefix = "/api/translationapi/"

	post := func(route string, fn http.HandlerFunc) {
		mux.HandleFunc("POST "+prefix+route, fn)
	}
	get := func(route string, fn http.HandlerFunc) {
		mux.HandleFunc("GET "+prefix+route, fn)
	}

	post("updateTranslatedDocumentPart", h.updateContent(domain.RoleTranslator))
	post("updateEditedDocumentPart", h.updateContent(domain.RoleEditor))
	post("updateProofReadDocumentPart", h.updateContent(domain.RoleProofReader))

	post("finishTranslation", h.finishStage(domain.RoleTranslator, "changerId"))
	post("finishEditing", h.finishStage(domain.RoleEditor, "changerId"))
	post("finishProofReading", h.finishStage(domain.RoleProofReader, "changerId"))
	post("markTranslatingAsFinished", h.finishStage(domain.RoleTranslator, "userId"))
	post("markEditingAsFinished", h.finishStage(domain.RoleEditor, "userId"))
	post("markProofReadingAsFinished", h.finishStage(domain.RoleProofReader, "userId"))

	get("getTranslatedContent", h.ownContent(domain.RoleTranslator))
	get("getEditedContent", h.ownContent(domain.RoleEditor))
	get("getProofReadContent", h.ownContent(domain.RoleProofReader))
	get("getTranslatedContentForEditor", h.reviewContent(domain.RoleEditor))
	get("getEditedContentForProofReader", h.reviewContent(domain.RoleProofReader))

	post("addCommentToTranslationOperation", h.addComment(domain.RoleTranslator))
	post("addCommentToEditionOperation", h.addComment(domain.RoleEditor))
	get("getTranslationOperationComments", h.comments)

	get("getAssignedJobsAsTranslator", h.assignedJobs(domain.RoleTranslator))
	get("getAssignedJobsAsEditor", h.assignedJobs(domain.RoleEditor))
	get("getAssignedJobsAsProofReader", h.assignedJobs(domain.RoleProofReader))

	post("saveTranslationOperations", h.saveOperations)
	get("getAverageDocumentPartCount", h.averageDocumentPartCount)
}

// ---------------------------------------------------------------------------
// Request / response shapes
// ---------------------------------------------------------------------------

type updateDocumentPartRequest struct {
	ChangerID                 uuid.UUID `json:"changerId"`
	TranslationDocumentPartID uuid.UUID `json:"translationDocumentPartId"`
	Content                   string    `json:"content"`
}

type finishDocumentPartRequest struct {
	ChangerID                 uuid.UUID `json:"changerId"`
	UserID                    uuid.UUID `json:"userId"`
	TranslationDocumentPartID uuid.UUID `json:"translationDocumentPartId"`
}

func (r finishDocumentPartRequest) actor(key string) uuid.UUID {
	if key == "userId" {
		return r.UserID
	}
	return r.ChangerID
}

type createCommentRequest struct {
	TranslationDocumentPartID uuid.UUID `json:"translationDocumentPartId"`
	CommentCreatorID          uuid.UUID `json:"commentCreatorId"`
	Content                   string    `json:"content"`
}

type operationResponse struct {
	ID                uuid.UUID  `json:"id"`
	DocumentPartID    uuid.UUID  `json:"documentPartId"`
	TranslatorID      *uuid.UUID `json:"translatorId,omitempty"`
	EditorID          *uuid.UUID `json:"editorId,omitempty"`
	ProofReaderID     *uuid.UUID `json:"proofReaderId,omitempty"`
	TranslatedContent string     `json:"translatedContent,omitempty"`
	EditedContent     string     `json:"editedContent,omitempty"`
	ProofReadContent  string     `json:"proofReadContent,omitempty"`
	StatusID          int        `json:"statusId"`
	Status            string     `json:"status"`
	Version           int64      `json:"version"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func toOperationResponse(op domain.TranslationOperation) operationResponse {
	return operationResponse{
		ID:                op.ID,
		DocumentPartID:    op.DocumentPartID,
		TranslatorID:      op.TranslatorID,
		EditorID:          op.EditorID,
		ProofReaderID:     op.ProofReaderID,
		TranslatedContent: op.TranslatedContent,
		EditedContent:     op.EditedContent,
		ProofReadContent:  op.ProofReadContent,
		StatusID:          int(op.Status),
		Status:            op.Status.String(),
		Version:           op.Version,
		CreatedAt:         op.CreatedAt,
		UpdatedAt:         op.UpdatedAt,
	}
}

func toOperationResponses(ops []domain.TranslationOperation) []operationResponse {
	out := make([]operationResponse, len(ops))
	for i, op := range ops {
		out[i] = toOperationResponse(op)
	}
	return out
}

type finishResponse struct {
	Operation       operationResponse `json:"operation"`
	OrderID         *uuid.UUID        `json:"orderId,omitempty"`
	OrderComplete   bool              `json:"orderComplete"`
	EventDispatched bool              `json:"eventDispatched"`
}

type commentResponse struct {
	ID          uuid.UUID `json:"id"`
	OperationID uuid.UUID `json:"operationId"`
	Content     string    `json:"content"`
	Active      bool      `json:"active"`
	FromUserID  uuid.UUID `json:"fromUserId"`
	ToUserID    uuid.UUID `json:"toUserId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{
		ID:          c.ID,
		OperationID: c.OperationID,
		Content:     c.Content,
		Active:      c.Active,
		FromUserID:  c.FromUserID,
		ToUserID:    c.ToUserID,
		CreatedAt:   c.CreatedAt,
	}
}

type contentResponse struct {
	Content string `json:"content"`
}

type ratingResponse struct {
	Rating int `json:"rating"`
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func (h *TranslationHandler) updateContent(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateDocumentPartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
			return
		}

		op, err := h.svc.UpdateContent(r.Context(), role, req.ChangerID, req.TranslationDocumentPartID, req.Content)
		if err != nil {
			writeDomainError(w, h.log, err)
			return
		}

		writeSuccess(w, http.StatusOK, toOperationResponse(*op))
	}
}

func (h *TranslationHandler) finishStage(role domain.Role, actorKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req finishDocumentPartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
			return
		}

		res, err := h.svc.FinishStage(r.Context(), role, req.actor(actorKey), req.TranslationDocumentPartID)
		if err != nil {
			writeDomainError(w, h.log, err)
			return
		}

		writeSuccess(w, http.StatusOK, finishResponse{
			Operation:       toOperationResponse(*res.Operation),
			OrderID:         res.OrderID,
			OrderComplete:   res.OrderComplete,
			EventDispatched: res.EventDispatched,
		})
	}
}

func (h *TranslationHandler) ownContent(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partID, userID, ok := partAndUserParams(w, r)
		if !ok {
			return
		}

		content, err := h.svc.ContentForRole(r.Context(), role, userID, partID)
		if err != nil {
			writeDomainError(w, h.log, err)
			return
		}

		writeSuccess(w, http.StatusOK, contentResponse{Content: content})
	}
}

func (h *TranslationHandler) reviewContent(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partID, userID, ok := partAndUserParams(w, r)
		if !ok {
			return
		}

		content, err := h.svc.ContentForNextRole(r.Context(), role, userID, partID)
		if err != nil {
			writeDomainError(w, h.log, err)
			return
		}

		writeSuccess(w, http.StatusOK, contentResponse{Content: content})
	}
}

func (h *TranslationHandler) addComment(stage domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
			return
		}

		created, err := h.svc.AddComment(r.Context(), stage, req.TranslationDocumentPartID, req.CommentCreatorID, req.Content)
		if err != nil {
			writeDomainError(w, h.log, err)
			return
		}

		writeSuccess(w, http.StatusCreated, toCommentResponse(*created))
	}
}

func (h *TranslationHandler) comments(w http.ResponseWriter, r *http.Request) {
	partID, ok := uuidParam(w, r, "translationDocumentPartId")
	if !ok {
		return
	}

	comments, err := h.svc.Comments(r.Context(), partID)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	out := make([]commentResponse, len(comments))
	for i, c := range comments {
		out[i] = toCommentResponse(c)
	}
	writeSuccess(w, http.StatusOK, out)
}

func (h *TranslationHandler) assignedJobs(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := uuidParam(w, r, "userId")
		if !ok {
			return
		}

		jobs, err := h.svc.AssignedJobs(r.Context(), role, userID)
		if err != nil {
			writeDomainError(w, h.log, err)
			return
		}

		writeSuccess(w, http.StatusOK, toOperationResponses(jobs))
	}
}

func (h *TranslationHandler) saveOperations(w http.ResponseWriter, r *http.Request) {
	var ops []domain.NewOperation
	if err := json.NewDecoder(r.Body).Decode(&ops); err != nil {
		writeFailure(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}

	created, err := h.svc.SaveOperations(r.Context(), ops)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeSuccess(w, http.StatusCreated, toOperationResponses(created))
}

func (h *TranslationHandler) averageDocumentPartCount(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uuidParam(w, r, "orderId")
	if !ok {
		return
	}

	rating, err := h.rating.AverageDocumentPartCount(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, ratingResponse{Rating: rating})
}

// ---------------------------------------------------------------------------
// Query parameter helpers
// ---------------------------------------------------------------------------

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		writeFailure(w, http.StatusBadRequest, "VALIDATION", name+" is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "VALIDATION", name+" must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}

func partAndUserParams(w http.ResponseWriter, r *http.Request) (partID, userID uuid.UUID, ok bool) {
	partID, ok = uuidParam(w, r, "translationDocumentPartId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	userID, ok = uuidParam(w, r, "userId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return partID, userID, true
}
