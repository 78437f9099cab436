package repository

import (
	"context"
	"errors"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentAccountRepository interface {
	// Get returns the configured tax and service-fee rates. When no account
	// row exists the zero value is returned; domain.PaymentAccount falls
	// back to the default rates in that case.
	Get(ctx context.Context) (domain.PaymentAccount, error)
}

type PGPaymentAccountRepository struct {
	db *pgxpool.Pool
}

func NewPaymentAccountRepository(db *pgxpool.Pool) PaymentAccountRepository {
	return &PGPaymentAccountRepository{db: db}
}

func (r *PGPaymentAccountRepository) Get(ctx context.Context) (domain.PaymentAccount, error) {
	var account domain.PaymentAccount
	err := r.db.QueryRow(ctx, `SELECT tax_rate, service_fee_rate FROM payment_accounts ORDER BY id LIMIT 1`).
		Scan(&account.TaxRate, &account.ServiceFeeRate)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PaymentAccount{}, nil
	}
	if err != nil {
		return domain.PaymentAccount{}, err
	}
	return account, nil
}

var _ PaymentAccountRepository = (*PGPaymentAccountRepository)(nil)
