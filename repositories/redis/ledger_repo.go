package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"

	// Local Packages
	models "card-ledger/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store keys. The account and rejected collections are whole-snapshot
// JSON blobs; per-account logs are append-only lists keyed by id.
const (
	accountsKey  = "accounts"
	rejectedKey  = "badTransactions"
	txListKeyFmt = "transactions:%s"
)

type LedgerRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewLedgerRepository(client *redis.Client, logger *zap.Logger) *LedgerRepository {
	return &LedgerRepository{client: client, logger: logger}
}

// Accounts loads the full account snapshot. A missing key is an empty
// collection, not an error.
func (r *LedgerRepository) Accounts(ctx context.Context) ([]models.Account, error) {
	raw, err := r.client.Get(ctx, accountsKey).Result()
	if err == redis.Nil {
		return []models.Account{}, nil
	}
	if err != nil {
		return nil, err
	}

	var accounts []models.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// RejectedTransactions loads the full rejected-transaction snapshot.
func (r *LedgerRepository) RejectedTransactions(ctx context.Context) ([]models.RejectedTransaction, error) {
	raw, err := r.client.Get(ctx, rejectedKey).Result()
	if err == redis.Nil {
		return []models.RejectedTransaction{}, nil
	}
	if err != nil {
		return nil, err
	}

	var rejected []models.RejectedTransaction
	if err := json.Unmarshal([]byte(raw), &rejected); err != nil {
		return nil, err
	}
	return rejected, nil
}

// SaveAccounts overwrites the whole account snapshot.
func (r *LedgerRepository) SaveAccounts(ctx context.Context, accounts []models.Account) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, accountsKey, data, 0).Err()
}

// SaveRejectedTransactions overwrites the whole rejected snapshot.
func (r *LedgerRepository) SaveRejectedTransactions(ctx context.Context, rejected []models.RejectedTransaction) error {
	data, err := json.Marshal(rejected)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, rejectedKey, data, 0).Err()
}

// AppendTransaction appends one validated transaction to the account's
// ordered log. Entries are never mutated or removed.
func (r *LedgerRepository) AppendTransaction(ctx context.Context, tx models.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return err
	}
	key := fmt.Sprintf(txListKeyFmt, tx.AccountID)
	return r.client.RPush(ctx, key, data).Err()
}

// AccountTransactions reads back the full log for one account, in
// append order. An unknown account yields an empty list.
func (r *LedgerRepository) AccountTransactions(ctx context.Context, accountID string) ([]models.Transaction, error) {
	key := fmt.Sprintf(txListKeyFmt, accountID)
	entries, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0, len(entries))
	for _, entry := range entries {
		var tx models.Transaction
		if err := json.Unmarshal([]byte(entry), &tx); err != nil {
			r.logger.Error("failed to unmarshal log entry",
				zap.String("key", key), zap.Error(err))
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// Reset wipes every key in the store.
func (r *LedgerRepository) Reset(ctx context.Context) error {
	return r.client.FlushAll(ctx).Err()
}
