package reports

import (
	// Go Internal Packages
	"context"

	// Local Packages
	errors "card-ledger/errors"
	models "card-ledger/models"

	// External Packages
	"go.uber.org/zap"
)

type LedgerReader interface {
	Accounts(ctx context.Context) ([]models.Account, error)
	RejectedTransactions(ctx context.Context) ([]models.RejectedTransaction, error)
	AccountTransactions(ctx context.Context, accountID string) ([]models.Transaction, error)
}

// Builder serves the read side: single-account lookup, per-account
// history, and the report with its collections projection. Everything is
// recomputed from the current snapshot on each request, nothing is
// persisted here.
type Builder struct {
	logger *zap.Logger
	ledger LedgerReader
}

func NewBuilder(logger *zap.Logger, ledger LedgerReader) *Builder {
	return &Builder{logger: logger, ledger: ledger}
}

type Report struct {
	Accounts             []models.Account             `json:"accounts"`
	RejectedTransactions []models.RejectedTransaction `json:"badTransactions"`
	Collections          []models.Account             `json:"collections"`
}

// Report returns the full aggregate state plus the collections view.
func (b *Builder) Report(ctx context.Context) (*Report, error) {
	accounts, err := b.ledger.Accounts(ctx)
	if err != nil {
		return nil, errors.E(errors.Internal, "failed to load account snapshot", err)
	}
	rejected, err := b.ledger.RejectedTransactions(ctx)
	if err != nil {
		return nil, errors.E(errors.Internal, "failed to load rejected snapshot", err)
	}

	return &Report{
		Accounts:             accounts,
		RejectedTransactions: rejected,
		Collections:          Collections(accounts),
	}, nil
}

// Collections returns the accounts holding at least one negative card
// balance. Pure projection over the snapshot.
func Collections(accounts []models.Account) []models.Account {
	collections := []models.Account{}
	for _, account := range accounts {
		for _, balance := range account.Cards {
			if balance.IsNegative() {
				collections = append(collections, account)
				break
			}
		}
	}
	return collections
}

// Account returns one account by id.
func (b *Builder) Account(ctx context.Context, accountID string) (*models.Account, error) {
	accounts, err := b.ledger.Accounts(ctx)
	if err != nil {
		return nil, errors.E(errors.Internal, "failed to load account snapshot", err)
	}
	for _, account := range accounts {
		if account.AccountID == accountID {
			return &account, nil
		}
	}
	return nil, errors.NotFoundErr("account", accountID)
}

// AccountHistory returns the append-only transaction log for one
// account. An account with no log entries is reported as not found, the
// same as an unknown id.
func (b *Builder) AccountHistory(ctx context.Context, accountID string) ([]models.Transaction, error) {
	txs, err := b.ledger.AccountTransactions(ctx, accountID)
	if err != nil {
		return nil, errors.E(errors.Internal, "failed to load transaction log", err)
	}
	if len(txs) == 0 {
		return nil, errors.NotFoundErr("transactions for account", accountID)
	}
	return txs, nil
}
