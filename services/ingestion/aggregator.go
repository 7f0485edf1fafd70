package ingestion

import (
	// Go Internal Packages
	"fmt"

	// Local Packages
	errors "card-ledger/errors"
	models "card-ledger/models"

	// External Packages
	"github.com/shopspring/decimal"
)

// Aggregate folds validated transactions, in row order, into the account
// snapshot and returns the updated snapshot. Unseen account ids get a
// fresh account ordered by first appearance; amounts carry their own
// sign, no debit/credit normalization happens here.
//
// The fold is additive: running the same batch against an already
// updated snapshot double-counts. Callers must load a fresh snapshot
// per batch.
func Aggregate(accounts []models.Account, txs []models.Transaction) ([]models.Account, error) {
	index := make(map[string]int, len(accounts))
	for i, account := range accounts {
		index[account.AccountID] = i
	}

	for _, tx := range txs {
		// Validation guarantees parseability; a failure here means a
		// transaction bypassed the validator.
		amount, err := decimal.NewFromString(tx.Amount)
		if err != nil {
			return nil, errors.E(errors.Internal, fmt.Sprintf("unparseable amount %q reached aggregation", tx.Amount), err)
		}

		i, ok := index[tx.AccountID]
		if !ok {
			accounts = append(accounts, models.Account{
				AccountName: tx.AccountName,
				AccountID:   tx.AccountID,
				Cards:       map[string]decimal.Decimal{},
				Balance:     decimal.Zero,
			})
			i = len(accounts) - 1
			index[tx.AccountID] = i
		}

		account := &accounts[i]
		account.Cards[tx.CardNumber] = account.Cards[tx.CardNumber].Add(amount)
		account.Balance = account.Balance.Add(amount)
	}

	return accounts, nil
}
