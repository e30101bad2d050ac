package handlers

import (
	"database/sql"
	"net/http"

	"bankfeed-api/middleware"
	"bankfeed-api/models"
	"bankfeed-api/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	DB *sql.DB
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var user models.User
	err := h.DB.QueryRow(`
		SELECT id, email, name, totp_enabled, email_verified, created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID).Scan(&user.ID, &user.Email, &user.Name, &user.TOTPEnabled, &user.EmailVerified, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// SetupTOTP generates a fresh secret and stores it encrypted at rest.
// 2FA only becomes active once VerifyTOTP confirms a valid code.
func (h *UserHandler) SetupTOTP(c *gin.Context) {
	userID := middleware.GetUserID(c)
	email := c.GetString("email")

	secret, otpURL, err := utils.GenerateTOTPSecret(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate secret"})
		return
	}

	encrypted, err := utils.Encrypt([]byte(secret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to protect secret"})
		return
	}

	_, err = h.DB.Exec("UPDATE users SET totp_secret = $1, updated_at = NOW() WHERE id = $2", encrypted, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save secret"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"secret":      secret,
		"otpauth_url": otpURL,
	})
}

func (h *UserHandler) VerifyTOTP(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	secret, ok := h.loadTOTPSecret(c, userID)
	if !ok {
		return
	}

	valid, err := utils.VerifyTOTP(secret, req.Code)
	if err != nil || !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 2FA code"})
		return
	}

	_, err = h.DB.Exec("UPDATE users SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1", userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enable 2FA"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "2FA enabled"})
}

func (h *UserHandler) DisableTOTP(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	secret, ok := h.loadTOTPSecret(c, userID)
	if !ok {
		return
	}

	valid, err := utils.VerifyTOTP(secret, req.Code)
	if err != nil || !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 2FA code"})
		return
	}

	_, err = h.DB.Exec("UPDATE users SET totp_enabled = FALSE, totp_secret = NULL, updated_at = NOW() WHERE id = $1", userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disable 2FA"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "2FA disabled"})
}

func (h *UserHandler) loadTOTPSecret(c *gin.Context, userID string) (string, bool) {
	var encrypted sql.NullString
	err := h.DB.QueryRow("SELECT totp_secret FROM users WHERE id = $1", userID).Scan(&encrypted)
	if err != nil || !encrypted.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "2FA is not set up"})
		return "", false
	}

	secret, err := utils.Decrypt(encrypted.String)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read secret"})
		return "", false
	}

	return string(secret), true
}
