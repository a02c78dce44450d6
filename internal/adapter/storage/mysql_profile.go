package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/port"
)

// MySQLProfileAdapter persists user-owned reference data: addresses and saved
// payment methods. Setting a default clears every other default for the user
// in the same transaction, keeping the one-default-per-user invariant.
type MySQLProfileAdapter struct {
	db *sql.DB
}

func NewMySQLProfileAdapter(db *sql.DB) *MySQLProfileAdapter {
	return &MySQLProfileAdapter{db: db}
}

const addressColumns = `id, user_id, full_name, phone, address_line_1, address_line_2,
	city, state, postal_code, country, is_default, created_at, updated_at`

func (m *MySQLProfileAdapter) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT `+addressColumns+` FROM addresses
		WHERE user_id = ?
		ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, *a)
	}
	return addresses, rows.Err()
}

func (m *MySQLProfileAdapter) GetAddress(ctx context.Context, id string) (*domain.Address, error) {
	a, err := scanAddress(m.db.QueryRowContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	return a, err
}

func (m *MySQLProfileAdapter) InsertAddress(ctx context.Context, a domain.Address) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if a.IsDefault {
		if _, err := tx.ExecContext(ctx,
			`UPDATE addresses SET is_default = 0 WHERE user_id = ?`, a.UserID); err != nil {
			return fmt.Errorf("clear default addresses: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO addresses (`+addressColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.FullName, a.Phone, a.Line1, a.Line2,
		a.City, a.State, a.PostalCode, a.Country, a.IsDefault, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return tx.Commit()
}

func (m *MySQLProfileAdapter) UpdateAddress(ctx context.Context, a domain.Address) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if a.IsDefault {
		if _, err := tx.ExecContext(ctx,
			`UPDATE addresses SET is_default = 0 WHERE user_id = ? AND id <> ?`, a.UserID, a.ID); err != nil {
			return fmt.Errorf("clear default addresses: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE addresses SET full_name = ?, phone = ?, address_line_1 = ?, address_line_2 = ?,
			city = ?, state = ?, postal_code = ?, country = ?, is_default = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		a.FullName, a.Phone, a.Line1, a.Line2, a.City, a.State, a.PostalCode,
		a.Country, a.IsDefault, a.UpdatedAt, a.ID, a.UserID,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if rows == 0 {
		return port.ErrNotFound
	}
	return tx.Commit()
}

func (m *MySQLProfileAdapter) DeleteAddress(ctx context.Context, id, userID string) error {
	result, err := m.db.ExecContext(ctx,
		`DELETE FROM addresses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if rows == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (m *MySQLProfileAdapter) SetDefaultAddress(ctx context.Context, id, userID string) error {
	return m.setDefault(ctx, "addresses", id, userID)
}

const paymentMethodColumns = `id, user_id, holder_name, card_brand, card_last_four,
	expiry_month, expiry_year, is_default, created_at, updated_at`

func (m *MySQLProfileAdapter) ListPaymentMethods(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT `+paymentMethodColumns+` FROM payment_methods
		WHERE user_id = ?
		ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query payment methods: %w", err)
	}
	defer rows.Close()

	var methods []domain.PaymentMethod
	for rows.Next() {
		pm, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, err
		}
		methods = append(methods, *pm)
	}
	return methods, rows.Err()
}

func (m *MySQLProfileAdapter) GetPaymentMethod(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	pm, err := scanPaymentMethod(m.db.QueryRowContext(ctx,
		`SELECT `+paymentMethodColumns+` FROM payment_methods WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	return pm, err
}

func (m *MySQLProfileAdapter) InsertPaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if pm.IsDefault {
		if _, err := tx.ExecContext(ctx,
			`UPDATE payment_methods SET is_default = 0 WHERE user_id = ?`, pm.UserID); err != nil {
			return fmt.Errorf("clear default payment methods: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO payment_methods (`+paymentMethodColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pm.ID, pm.UserID, pm.HolderName, pm.CardBrand, pm.CardLastFour,
		pm.ExpiryMonth, pm.ExpiryYear, pm.IsDefault, pm.CreatedAt, pm.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment method: %w", err)
	}
	return tx.Commit()
}

func (m *MySQLProfileAdapter) DeletePaymentMethod(ctx context.Context, id, userID string) error {
	result, err := m.db.ExecContext(ctx,
		`DELETE FROM payment_methods WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete payment method: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete payment method: %w", err)
	}
	if rows == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (m *MySQLProfileAdapter) SetDefaultPaymentMethod(ctx context.Context, id, userID string) error {
	return m.setDefault(ctx, "payment_methods", id, userID)
}

// setDefault flips the default flag to a single row of the given table.
func (m *MySQLProfileAdapter) setDefault(ctx context.Context, table, id, userID string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE "+table+" SET is_default = 0 WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("clear defaults: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE "+table+" SET is_default = 1 WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("set default: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set default: %w", err)
	}
	if rows == 0 {
		return port.ErrNotFound
	}
	return tx.Commit()
}

func scanAddress(r rowScanner) (*domain.Address, error) {
	var a domain.Address
	var phone, line2, state, postal sql.NullString
	err := r.Scan(&a.ID, &a.UserID, &a.FullName, &phone, &a.Line1, &line2,
		&a.City, &state, &postal, &a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Phone = phone.String
	a.Line2 = line2.String
	a.State = state.String
	a.PostalCode = postal.String
	return &a, nil
}

func scanPaymentMethod(r rowScanner) (*domain.PaymentMethod, error) {
	var pm domain.PaymentMethod
	err := r.Scan(&pm.ID, &pm.UserID, &pm.HolderName, &pm.CardBrand, &pm.CardLastFour,
		&pm.ExpiryMonth, &pm.ExpiryYear, &pm.IsDefault, &pm.CreatedAt, &pm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &pm, nil
}
