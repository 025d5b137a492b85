package handlers

import (
	"errors"
	"net/http"

	walletRepo "soulspace/database/repository/wallet"
	"soulspace/middleware"
	"soulspace/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WalletRepo is wired by the composition root before the router starts.
var WalletRepo walletRepo.WalletRepository

// GetProviderWallet returns the authenticated provider's earnings wallet. A
// provider who has never been credited sees a zero wallet, not an error.
func GetProviderWallet(c *gin.Context) {
	providerID := middleware.ActorID(c)

	wallet, err := WalletRepo.GetByProviderID(c.Request.Context(), providerID)
	if errors.Is(err, walletRepo.ErrNotFound) {
		c.JSON(http.StatusOK, models.Wallet{ProviderID: providerID})
		return
	}
	if err != nil {
		zap.L().Error("wallet fetch failed", zap.String("providerId", providerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, wallet)
}
