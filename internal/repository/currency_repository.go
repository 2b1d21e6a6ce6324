package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/model"
)

// CurrencyRepository provides data access methods for the currency table.
// It is the local cache of the last successfully synced record set.
type CurrencyRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewCurrencyRepository creates a new CurrencyRepository with the provided database connection.
func NewCurrencyRepository(db *sql.DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) WithTx(tx *sql.Tx) *CurrencyRepository {
	return &CurrencyRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *CurrencyRepository) getQuerier() interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// ReadAll retrieves every cached currency ordered by code.
// Returns an empty slice if the cache is empty.
func (r *CurrencyRepository) ReadAll(ctx context.Context) ([]model.Currency, error) {
	query := `
        SELECT id, code, value, country, flag_url
		FROM currency
		ORDER BY code ASC
      `

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency table: %w", err)
	}
	defer rows.Close()

	currencies := []model.Currency{}

	for rows.Next() {
		var c model.Currency
		var country, flagURL sql.NullString

		if err := rows.Scan(&c.ID, &c.Code, &c.Value, &country, &flagURL); err != nil {
			return nil, fmt.Errorf("failed to scan currency table results: %w", err)
		}
		c.Country = country.String
		c.FlagURL = flagURL.String
		currencies = append(currencies, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency table: %w", err)
	}

	return currencies, nil
}

// Insert stores a single currency record. A record without an ID gets a new UUID.
func (r *CurrencyRepository) Insert(ctx context.Context, c model.Currency) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
        INSERT INTO currency (id, code, value, country, flag_url)
        VALUES (?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		c.ID,
		c.Code,
		c.Value,
		nullString(c.Country),
		nullString(c.FlagURL),
	)
	if err != nil {
		return fmt.Errorf("failed to insert currency %s: %w", c.Code, err)
	}
	return nil
}

// DeleteAll removes every cached currency.
func (r *CurrencyRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM currency`); err != nil {
		return fmt.Errorf("failed to clear currency table: %w", err)
	}
	return nil
}

// ReplaceAll clears the cache and inserts currencies inside a single transaction,
// so readers see either the old or the new record set.
func (r *CurrencyRepository) ReplaceAll(ctx context.Context, currencies []model.Currency) error {
	if r.tx != nil {
		return r.replace(ctx, currencies)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.WithTx(tx).replace(ctx, currencies); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit currency replacement: %w", err)
	}
	return nil
}

func (r *CurrencyRepository) replace(ctx context.Context, currencies []model.Currency) error {
	if err := r.DeleteAll(ctx); err != nil {
		return err
	}
	for _, c := range currencies {
		if err := r.Insert(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
