package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateBankConnection_RequiresInstitutionID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &GoCardlessHandler{}

	r := gin.New()
	r.POST("/banking/connections", h.CreateBankConnection)

	req := httptest.NewRequest(http.MethodPost, "/banking/connections",
		strings.NewReader(`{"institution_name": "Test Bank"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "InstitutionID")
}
