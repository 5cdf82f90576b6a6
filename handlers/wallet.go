package handlers

import (
	"net/http"
	"strconv"

	"rentify/services/wallet"
	"rentify/utils"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 50

type WalletHandler struct {
	WalletSvc wallet.WalletService
}

func NewWalletHandler(walletSvc wallet.WalletService) *WalletHandler {
	return &WalletHandler{WalletSvc: walletSvc}
}

func (h *WalletHandler) GetBalanceHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	w, err := h.WalletSvc.Balance(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": w})
}

// GetHistoryHandler returns the newest transactions first; ?limit= caps the page.
func (h *WalletHandler) GetHistoryHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	limit := int64(defaultHistoryLimit)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	txs, err := h.WalletSvc.History(c.Request.Context(), actor.UserID, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
