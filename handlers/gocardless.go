package handlers

import (
	"database/sql"
	"net/http"

	"bankfeed-api/middleware"
	"bankfeed-api/models"
	"bankfeed-api/services"
	"bankfeed-api/utils"

	"github.com/gin-gonic/gin"
)

// GoCardlessHandler drives the bank link flow: list institutions, start
// a requisition, complete it after the user consents at their bank.
type GoCardlessHandler struct {
	Service     *services.BankingService
	GCService   *services.GoCardlessService
	FrontendURL string
	WS          *WSHandler
}

func NewGoCardlessHandler(db *sql.DB, gc *services.GoCardlessService, frontendURL string, ws *WSHandler) *GoCardlessHandler {
	return &GoCardlessHandler{
		Service:     services.NewBankingService(db),
		GCService:   gc,
		FrontendURL: frontendURL,
		WS:          ws,
	}
}

// GetInstitutions lists the banks available in a country.
func (h *GoCardlessHandler) GetInstitutions(c *gin.Context) {
	token, err := h.GCService.AccessToken(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get access token"})
		return
	}

	country := c.DefaultQuery("country", "FR")
	institutions, err := h.GCService.GetInstitutions(c.Request.Context(), token, country)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch institutions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"institutions": institutions})
}

// CreateBankConnection creates a requisition and hands the frontend the
// bank's consent URL. The connection stays pending until the callback.
func (h *GoCardlessHandler) CreateBankConnection(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.GCService.AccessToken(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get access token"})
		return
	}

	redirectURL := h.FrontendURL + "/accounts"

	requisitionID, authLink, err := h.GCService.CreateRequisition(
		c.Request.Context(),
		token,
		req.InstitutionID,
		redirectURL,
		userID,
	)

	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create requisition"})
		return
	}

	name := req.InstitutionName
	if name == "" {
		name = req.InstitutionID
	}

	connID, err := h.Service.SaveConnection(c.Request.Context(), userID, req.InstitutionID, name, requisitionID, "pending")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save connection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"connection_id":  connID,
		"requisition_id": requisitionID,
		"auth_link":      authLink,
	})
}

// CompleteConnection is called after the bank redirects the user back.
// It pulls the linked accounts from the provider and stores them under
// the pending connection.
func (h *GoCardlessHandler) CompleteConnection(c *gin.Context) {
	userID := middleware.GetUserID(c)
	requisitionID := c.Query("ref")

	if requisitionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing requisition ID"})
		return
	}

	conn, err := h.Service.GetConnectionByRequisition(c.Request.Context(), userID, requisitionID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown requisition"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	token, err := h.GCService.AccessToken(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get access token"})
		return
	}

	_, accountIDs, err := h.GCService.GetRequisitionAccounts(c.Request.Context(), token, requisitionID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch accounts"})
		return
	}

	saved := 0
	for _, accountID := range accountIDs {
		details, err := h.GCService.GetAccountDetails(c.Request.Context(), token, accountID)
		if err != nil {
			utils.Warnf("Skipping account %s: %v", accountID, err)
			continue
		}

		mask := ""
		if len(details.IBAN) >= 4 {
			mask = details.IBAN[len(details.IBAN)-4:]
		}

		err = h.Service.SaveAccount(c.Request.Context(), conn.ID, accountID, details.Name, mask, details.Currency)
		if err != nil {
			utils.Warnf("Failed to save account %s: %v", utils.MaskIBAN(details.IBAN), err)
			continue
		}
		saved++
	}

	if saved == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "No accounts could be linked"})
		return
	}

	if err := h.Service.MarkConnectionLinked(c.Request.Context(), conn.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate connection"})
		return
	}

	h.WS.BroadcastUpdate(userID, "accounts_linked")

	c.JSON(http.StatusOK, gin.H{
		"message":         "Bank connected successfully",
		"linked_accounts": saved,
	})
}
