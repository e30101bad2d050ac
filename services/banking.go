package services

import (
	"context"
	"database/sql"
	"fmt"

	"bankfeed-api/models"
	"bankfeed-api/utils"
)

// BankingService persists linked bank connections and their accounts.
type BankingService struct {
	db *sql.DB
}

func NewBankingService(db *sql.DB) *BankingService {
	return &BankingService{db: db}
}

// GetUserConnections returns the user's connections, each with its
// accounts attached.
func (s *BankingService) GetUserConnections(ctx context.Context, userID string) ([]models.BankConnection, error) {
	query := `
		SELECT id, user_id, institution_id, institution_name, status, created_at
		FROM bank_connections
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var connections []models.BankConnection
	for rows.Next() {
		var conn models.BankConnection
		err := rows.Scan(&conn.ID, &conn.UserID, &conn.InstitutionID, &conn.InstitutionName, &conn.Status, &conn.CreatedAt)
		if err != nil {
			return nil, err
		}

		accounts, err := s.GetAccountsByConnection(ctx, conn.ID)
		if err == nil {
			conn.Accounts = accounts
		}

		connections = append(connections, conn)
	}

	return connections, rows.Err()
}

// GetAccountsByConnection fetches accounts for a specific connection.
func (s *BankingService) GetAccountsByConnection(ctx context.Context, connectionID string) ([]models.BankAccount, error) {
	query := `
		SELECT id, connection_id, external_account_id, name, mask, currency, created_at
		FROM bank_accounts
		WHERE connection_id = $1
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query, connectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.BankAccount
	for rows.Next() {
		var acc models.BankAccount
		err := rows.Scan(
			&acc.ID, &acc.ConnectionID, &acc.ExternalAccountID,
			&acc.Name, &acc.Mask, &acc.Currency, &acc.CreatedAt,
		)
		if err != nil {
			continue
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// GetUserAccount loads one account and checks it belongs to the user.
// sql.ErrNoRows doubles as "not yours".
func (s *BankingService) GetUserAccount(ctx context.Context, accountID, userID string) (*models.BankAccount, error) {
	query := `
		SELECT ba.id, ba.connection_id, ba.external_account_id, ba.name, ba.mask, ba.currency, ba.created_at
		FROM bank_accounts ba
		JOIN bank_connections bc ON ba.connection_id = bc.id
		WHERE ba.id = $1 AND bc.user_id = $2
	`

	var acc models.BankAccount
	err := s.db.QueryRowContext(ctx, query, accountID, userID).Scan(
		&acc.ID, &acc.ConnectionID, &acc.ExternalAccountID,
		&acc.Name, &acc.Mask, &acc.Currency, &acc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// SaveConnection upserts a connection for (user, institution) and
// returns its id. The requisition id is what the provider callback is
// matched against.
func (s *BankingService) SaveConnection(ctx context.Context, userID, institutionID, institutionName, requisitionID, status string) (string, error) {
	query := `
		INSERT INTO bank_connections (
			user_id, institution_id, institution_name, requisition_id, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (user_id, institution_id)
		DO UPDATE SET
			requisition_id = EXCLUDED.requisition_id,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id
	`

	var connectionID string
	err := s.db.QueryRowContext(ctx, query, userID, institutionID, institutionName, requisitionID, status).Scan(&connectionID)
	if err != nil {
		return "", fmt.Errorf("failed to save connection: %w", err)
	}

	return connectionID, nil
}

// GetConnectionByRequisition finds the pending connection a provider
// callback refers to.
func (s *BankingService) GetConnectionByRequisition(ctx context.Context, userID, requisitionID string) (*models.BankConnection, error) {
	query := `
		SELECT id, user_id, institution_id, institution_name, requisition_id, status, created_at
		FROM bank_connections
		WHERE user_id = $1 AND requisition_id = $2
	`

	var conn models.BankConnection
	err := s.db.QueryRowContext(ctx, query, userID, requisitionID).Scan(
		&conn.ID, &conn.UserID, &conn.InstitutionID, &conn.InstitutionName,
		&conn.RequisitionID, &conn.Status, &conn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// MarkConnectionLinked flips a connection to active once its accounts
// have been stored.
func (s *BankingService) MarkConnectionLinked(ctx context.Context, connectionID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE bank_connections SET status = 'active', updated_at = NOW() WHERE id = $1",
		connectionID)
	return err
}

// SaveAccount upserts a provider account under a connection.
func (s *BankingService) SaveAccount(ctx context.Context, connectionID, externalAccountID, name, mask, currency string) error {
	query := `
		INSERT INTO bank_accounts (
			connection_id, external_account_id, name, mask, currency, created_at
		) VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (connection_id, external_account_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			mask = EXCLUDED.mask,
			currency = EXCLUDED.currency
	`

	_, err := s.db.ExecContext(ctx, query, connectionID, externalAccountID, name, mask, currency)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	return nil
}

// DeleteConnection removes a connection and its accounts. The user id
// guards against deleting someone else's link.
func (s *BankingService) DeleteConnection(ctx context.Context, connectionID, userID string) error {
	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		var owner string
		err := tx.QueryRowContext(ctx, "SELECT user_id FROM bank_connections WHERE id = $1", connectionID).Scan(&owner)
		if err != nil {
			return err
		}
		if owner != userID {
			return sql.ErrNoRows
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM bank_accounts WHERE connection_id = $1", connectionID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM bank_connections WHERE id = $1", connectionID); err != nil {
			return err
		}
		return nil
	})
}
