package rest

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
)

type Handler struct {
	progress     ProgressService
	achievements AchievementService
	catalog      CatalogService
	logger       *zap.Logger
}

func NewHandler(progress ProgressService, achievements AchievementService, catalog CatalogService, logger *zap.Logger) *Handler {
	return &Handler{
		progress:     progress,
		achievements: achievements,
		catalog:      catalog,
		logger:       logger,
	}
}

type completeLessonRequest struct {
	LessonID       string            `json:"lessonId"`
	Category       entities.Category `json:"category"`
	Score          *float64          `json:"score,omitempty"`
	CompletionTime *int              `json:"completionTime,omitempty"`
}

type completeLessonResponse struct {
	Progress      *entities.Progress      `json:"progress"`
	NewlyUnlocked []*entities.Achievement `json:"newlyUnlocked"`
}

type checkResponse struct {
	NewlyUnlocked []*entities.Achievement `json:"newlyUnlocked"`
}

type achievementRequest struct {
	Code        string                   `json:"code"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Icon        string                   `json:"icon"`
	Type        entities.AchievementType `json:"type"`
	Difficulty  entities.Difficulty      `json:"difficulty"`
	Conditions  []entities.Condition     `json:"conditions"`
	Hidden      bool                     `json:"hidden"`
}

func (req achievementRequest) toEntity() *entities.Achievement {
	return &entities.Achievement{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Type:        req.Type,
		Difficulty:  req.Difficulty,
		Conditions:  req.Conditions,
		Hidden:      req.Hidden,
	}
}

// ── Progress ────────────────────────────────────────────

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	p, err := h.progress.GetOrCreate(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// CompleteLesson records a finished lesson and runs the reconciliation
// sweep so the client gets new unlocks in the same round trip.
func (h *Handler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var req completeLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.progress.CompleteLesson(r.Context(), userID, entities.LessonCompletion{
		LessonID:       req.LessonID,
		Category:       req.Category,
		Score:          req.Score,
		CompletionTime: req.CompletionTime,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// The completion is already stored; a failed sweep is retried by the
	// client through /achievements/check.
	unlocked, err := h.achievements.CheckAndUnlock(r.Context(), userID)
	if err != nil {
		h.logger.Error("sweep after lesson completion failed", zap.Int64("user_id", userID), zap.Error(err))
		unlocked = []*entities.Achievement{}
	}

	writeJSON(w, http.StatusOK, completeLessonResponse{Progress: p, NewlyUnlocked: unlocked})
}

func (h *Handler) SetCurrentLesson(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var req entities.CurrentLesson
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.progress.SetCurrentLesson(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// ── Achievements ────────────────────────────────────────

func (h *Handler) CheckAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	unlocked, err := h.achievements.CheckAndUnlock(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, checkResponse{NewlyUnlocked: unlocked})
}

func (h *Handler) GetUserAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	list, err := h.achievements.GetUserAchievements(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetUserAchievementStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	stats, err := h.achievements.GetUserAchievementStats(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) MarkNotified(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid achievement id"})
		return
	}

	if err := h.achievements.MarkNotified(r.Context(), userID, id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ── Catalog administration ──────────────────────────────

func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalog.List(r.Context(), true)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, catalog)
}

func (h *Handler) GetCatalogEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid achievement id"})
		return
	}

	a, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) CreateAchievement(w http.ResponseWriter, r *http.Request) {
	var req achievementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	a, err := h.catalog.Create(r.Context(), req.toEntity())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) UpdateAchievement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid achievement id"})
		return
	}

	var req achievementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	a, err := h.catalog.Update(r.Context(), id, req.toEntity())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAchievement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid achievement id"})
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
