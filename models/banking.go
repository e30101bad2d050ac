package models

import (
	"time"
)

type BankConnection struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	InstitutionID   string        `json:"institution_id"`
	InstitutionName string        `json:"institution_name"`
	RequisitionID   string        `json:"-"` // Internal use only
	Status          string        `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	Accounts        []BankAccount `json:"accounts,omitempty"`
}

type BankAccount struct {
	ID                string    `json:"id"`
	ConnectionID      string    `json:"connection_id"`
	ExternalAccountID string    `json:"-"` // Internal use only
	Name              string    `json:"name"`
	Mask              string    `json:"mask"`
	Currency          string    `json:"currency"`
	CreatedAt         time.Time `json:"created_at"`
}

// Request to start a bank link.
type CreateConnectionRequest struct {
	InstitutionID   string `json:"institution_id" binding:"required"`
	InstitutionName string `json:"institution_name"`
}
