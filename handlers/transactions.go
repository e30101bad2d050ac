package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"bankfeed-api/middleware"
	"bankfeed-api/services"
	"bankfeed-api/utils"

	"github.com/gin-gonic/gin"
)

// TransactionsHandler serves the enriched transaction feed: provider
// data in, reconstructed balances and categories out.
type TransactionsHandler struct {
	Banking   *services.BankingService
	GCService *services.GoCardlessService
	Pipeline  *services.EnrichmentPipeline
}

func NewTransactionsHandler(db *sql.DB, gc *services.GoCardlessService, pipeline *services.EnrichmentPipeline) *TransactionsHandler {
	return &TransactionsHandler{
		Banking:   services.NewBankingService(db),
		GCService: gc,
		Pipeline:  pipeline,
	}
}

// GetTransactions returns the enriched feed for one linked account.
// Query params: search (fuzzy title match), from/to (YYYY-MM-DD, both
// required for the window to apply), category (exact label).
func (h *TransactionsHandler) GetTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	accountID := c.Param("id")

	account, err := h.Banking.GetUserAccount(c.Request.Context(), accountID, userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	query, ok := parseFeedQuery(c)
	if !ok {
		return
	}

	token, err := h.GCService.AccessToken(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get access token"})
		return
	}

	balance, _, err := h.GCService.GetAccountBalance(c.Request.Context(), token, account.ExternalAccountID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch balance"})
		return
	}

	transactions, err := h.GCService.GetAccountTransactions(c.Request.Context(), token, account.ExternalAccountID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	feed, err := h.Pipeline.Run(transactions, balance, query)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrModelUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Categorization temporarily unavailable"})
		case errors.Is(err, services.ErrDataFormat):
			utils.Errorf("Provider sent malformed data for account %s: %v", accountID, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Provider returned malformed data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build feed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account_id":   account.ID,
		"transactions": feed,
		"count":        len(feed),
	})
}

// parseFeedQuery reads the filter params. A date that fails to parse is
// the caller's mistake and gets a 400; a missing one just leaves the
// window inactive.
func parseFeedQuery(c *gin.Context) (services.FeedQuery, bool) {
	query := services.FeedQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}

	for param, target := range map[string]**time.Time{
		"from": &query.From,
		"to":   &query.To,
	} {
		value := c.Query(param)
		if value == "" {
			continue
		}
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param + " date, expected YYYY-MM-DD"})
			return services.FeedQuery{}, false
		}
		*target = &parsed
	}

	return query, true
}
