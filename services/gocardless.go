package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"bankfeed-api/models"
)

// GoCardlessService talks to the GoCardless Bank Account Data API. It
// caches the application access token (valid 24h) and refreshes it an
// hour early.
type GoCardlessService struct {
	SecretID  string
	SecretKey string
	BaseURL   string
	Client    *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewGoCardlessService(secretID, secretKey string) *GoCardlessService {
	return &GoCardlessService{
		SecretID:  secretID,
		SecretKey: secretKey,
		BaseURL:   "https://bankaccountdata.gocardless.com/api/v2",
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// AccessToken returns a valid application token, fetching a new one only
// when the cached token is missing or about to expire.
func (s *GoCardlessService) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.tokenExpiry) {
		return s.token, nil
	}

	payload := map[string]string{
		"secret_id":  s.SecretID,
		"secret_key": s.SecretKey,
	}

	body, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, "POST", s.BaseURL+"/token/new/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Access        string `json:"access"`
		AccessExpires int    `json:"access_expires"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.Access == "" {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	s.token = result.Access
	s.tokenExpiry = time.Now().Add(23 * time.Hour)
	return s.token, nil
}

// Institution is one bank the end user can link.
type Institution struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// GetInstitutions lists the banks available for a country code.
func (s *GoCardlessService) GetInstitutions(ctx context.Context, accessToken, countryCode string) ([]Institution, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", s.BaseURL+"/institutions/?country="+url.QueryEscape(countryCode), nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var institutions []Institution
	if err := json.NewDecoder(resp.Body).Decode(&institutions); err != nil {
		return nil, err
	}

	return institutions, nil
}

// CreateRequisition starts a bank link. The returned link is where the
// frontend sends the user; reference carries our user id so the callback
// can be matched back.
func (s *GoCardlessService) CreateRequisition(ctx context.Context, accessToken, institutionID, redirectURL, userID string) (string, string, error) {
	payload := map[string]string{
		"redirect":       redirectURL,
		"institution_id": institutionID,
		"reference":      userID,
	}

	body, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, "POST", s.BaseURL+"/requisitions/", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var result struct {
		ID   string `json:"id"`
		Link string `json:"link"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", "", fmt.Errorf("decode error: %v, body: %s", err, string(respBody))
	}
	if result.ID == "" {
		return "", "", fmt.Errorf("requisition endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return result.ID, result.Link, nil
}

// GetRequisitionAccounts returns the account ids linked under a
// requisition once the user finished the bank's consent flow.
func (s *GoCardlessService) GetRequisitionAccounts(ctx context.Context, accessToken, requisitionID string) (string, []string, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", s.BaseURL+"/requisitions/"+requisitionID+"/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	var result struct {
		InstitutionID string   `json:"institution_id"`
		Accounts      []string `json:"accounts"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", nil, err
	}

	return result.InstitutionID, result.Accounts, nil
}

// AccountDetails carries the identifying fields of a linked account.
type AccountDetails struct {
	IBAN     string `json:"iban"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

func (s *GoCardlessService) GetAccountDetails(ctx context.Context, accessToken, accountID string) (*AccountDetails, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", s.BaseURL+"/accounts/"+accountID+"/details/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result struct {
		Account AccountDetails `json:"account"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result.Account, nil
}

// GetAccountBalance returns the account's current balance as the exact
// decimal string the provider sent, preferring the interimAvailable
// balance and falling back to expected. The string is deliberately not
// parsed to a float here: the enrichment pipeline needs it exact.
func (s *GoCardlessService) GetAccountBalance(ctx context.Context, accessToken, accountID string) (string, string, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", s.BaseURL+"/accounts/"+accountID+"/balances/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	var result struct {
		Balances []struct {
			BalanceAmount struct {
				Amount   string `json:"amount"`
				Currency string `json:"currency"`
			} `json:"balanceAmount"`
			BalanceType string `json:"balanceType"`
		} `json:"balances"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", "", err
	}

	for _, balanceType := range []string{"interimAvailable", "expected"} {
		for _, bal := range result.Balances {
			if bal.BalanceType == balanceType {
				return bal.BalanceAmount.Amount, bal.BalanceAmount.Currency, nil
			}
		}
	}

	return "", "", fmt.Errorf("no suitable balance found")
}

// GetAccountTransactions returns the booked transactions for an account.
// The provider sends them newest-first; the order is passed through
// untouched because balance reconstruction depends on it.
func (s *GoCardlessService) GetAccountTransactions(ctx context.Context, accessToken, accountID string) ([]models.RawTransaction, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", s.BaseURL+"/accounts/"+accountID+"/transactions/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("transactions endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Transactions struct {
			Booked []models.RawTransaction `json:"booked"`
		} `json:"transactions"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result.Transactions.Booked, nil
}
