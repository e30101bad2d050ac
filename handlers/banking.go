package handlers

import (
	"database/sql"
	"net/http"

	"bankfeed-api/middleware"
	"bankfeed-api/services"

	"github.com/gin-gonic/gin"
)

type BankingHandler struct {
	Service *services.BankingService
}

func NewBankingHandler(db *sql.DB) *BankingHandler {
	return &BankingHandler{
		Service: services.NewBankingService(db),
	}
}

// GetConnections lists the user's bank connections with their accounts.
func (h *BankingHandler) GetConnections(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	connections, err := h.Service.GetUserConnections(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch connections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"connections": connections})
}

// DeleteConnection removes a bank connection and its accounts.
func (h *BankingHandler) DeleteConnection(c *gin.Context) {
	userID := middleware.GetUserID(c)
	connID := c.Param("id")

	err := h.Service.DeleteConnection(c.Request.Context(), connID, userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Connection not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete connection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection deleted successfully"})
}
