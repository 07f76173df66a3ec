package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"f1-bets.backend/internal/domain/entities"
	domainerrors "f1-bets.backend/internal/domain/errors"
	"f1-bets.backend/internal/interfaces/http/response"
	"f1-bets.backend/pkg/utils"
)

// BetService is the bet ledger as seen by the HTTP layer
type BetService interface {
	Create(ctx context.Context, userID int64, picks entities.Picks) (*entities.Bet, error)
	ListForUser(ctx context.Context, userID int64, page utils.PaginationParams) ([]*entities.Bet, int64, error)
	GetByID(ctx context.Context, betID int64) (*entities.Bet, error)
	UpdateStatus(ctx context.Context, betID, userID int64, status string) (*entities.Bet, error)
	Delete(ctx context.Context, betID, userID int64) error
}

// BetHandler handles top-3 bet endpoints
type BetHandler struct {
	betUsecase BetService
}

// NewBetHandler creates a new bet handler
func NewBetHandler(betUsecase BetService) *BetHandler {
	return &BetHandler{betUsecase: betUsecase}
}

type createBetRequest struct {
	UserID *FlexInt64 `json:"user_id"`
	Top1   *FlexInt64 `json:"top1"`
	Top2   *FlexInt64 `json:"top2"`
	Top3   *FlexInt64 `json:"top3"`
}

type updateStatusRequest struct {
	BetID  *FlexInt64 `json:"bet_id"`
	UserID *FlexInt64 `json:"user_id"`
	Status *string    `json:"status"`
}

// CreateBet places a top-3 bet
// POST /apuestas/top3
func (h *BetHandler) CreateBet(c *gin.Context) {
	var req createBetRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if req.UserID == nil || req.Top1 == nil || req.Top2 == nil || req.Top3 == nil {
		response.Error(c, domainerrors.Validation("user_id, top1, top2 and top3 are required"))
		return
	}

	userID := int64(*req.UserID)
	if err := authorizeCaller(c, userID); err != nil {
		response.Error(c, err)
		return
	}

	bet, err := h.betUsecase.Create(c.Request.Context(), userID, entities.Picks{
		Top1: int64(*req.Top1),
		Top2: int64(*req.Top2),
		Top3: int64(*req.Top3),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "bet created",
		"bet":     bet,
	})
}

// ListBets lists a user's bets, newest first
// GET /apuestas/top3?user_id=N[&page=P&limit=L]
func (h *BetHandler) ListBets(c *gin.Context) {
	userID, err := queryID(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := queryPagination(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := authorizeCaller(c, userID); err != nil {
		response.Error(c, err)
		return
	}

	bets, total, err := h.betUsecase.ListForUser(c.Request.Context(), userID, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"apuestas":   bets,
		"pagination": utils.CalculateMeta(total, page),
	})
}

// GetBet returns one bet
// GET /apuestas/top3/detalle?bet_id=N
func (h *BetHandler) GetBet(c *gin.Context) {
	betID, err := queryID(c, "bet_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	bet, err := h.betUsecase.GetByID(c.Request.Context(), betID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bet": bet})
}

// UpdateStatus changes the status of the caller's bet
// POST /apuestas/top3/status
func (h *BetHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if req.BetID == nil || req.UserID == nil || req.Status == nil {
		response.Error(c, domainerrors.Validation("bet_id, user_id and status are required"))
		return
	}

	userID := int64(*req.UserID)
	if err := authorizeCaller(c, userID); err != nil {
		response.Error(c, err)
		return
	}

	bet, err := h.betUsecase.UpdateStatus(c.Request.Context(), int64(*req.BetID), userID, *req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bet": bet})
}

// DeleteBet removes the caller's bet
// DELETE /apuestas/top3?bet_id=N&user_id=M
func (h *BetHandler) DeleteBet(c *gin.Context) {
	betID, err := queryID(c, "bet_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	userID, err := queryID(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := authorizeCaller(c, userID); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.betUsecase.Delete(c.Request.Context(), betID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "bet deleted"})
}
