package ingestion

import (
	// Go Internal Packages
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	// Local Packages
	apperrors "card-ledger/errors"
	models "card-ledger/models"

	// External Packages
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLedger struct {
	accounts  []models.Account
	rejected  []models.RejectedTransaction
	logs      map[string][]models.Transaction
	saveErr   error
	resetErr  error
	wasSaved  bool
	wasReset  bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{logs: map[string][]models.Transaction{}}
}

func (f *fakeLedger) Accounts(context.Context) ([]models.Account, error) {
	return f.accounts, nil
}

func (f *fakeLedger) RejectedTransactions(context.Context) ([]models.RejectedTransaction, error) {
	return f.rejected, nil
}

func (f *fakeLedger) SaveAccounts(_ context.Context, accounts []models.Account) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.accounts = accounts
	f.wasSaved = true
	return nil
}

func (f *fakeLedger) SaveRejectedTransactions(_ context.Context, rejected []models.RejectedTransaction) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.rejected = rejected
	return nil
}

func (f *fakeLedger) AppendTransaction(_ context.Context, tx models.Transaction) error {
	f.logs[tx.AccountID] = append(f.logs[tx.AccountID], tx)
	return nil
}

func (f *fakeLedger) Reset(context.Context) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.accounts = nil
	f.rejected = nil
	f.logs = map[string][]models.Transaction{}
	f.wasReset = true
	return nil
}

type fakeUploads struct {
	records []models.UploadRecord
	err     error
}

func (f *fakeUploads) RecordUpload(_ context.Context, record models.UploadRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func TestProcessUpload_HappyPath(t *testing.T) {
	ledger := newFakeLedger()
	uploads := &fakeUploads{}
	p := NewProcessor(zap.NewNop(), ledger, uploads, t.TempDir())

	csv := "Alice,1111,100,Credit,,\nAlice,1111,-30,Debit,,\n"
	result, err := p.ProcessUpload(context.Background(), "batch.csv", []byte(csv))
	require.NoError(t, err)

	assert.Equal(t, "File uploaded and transactions processed.", result.Message)
	require.Len(t, result.Accounts, 1)
	assert.True(t, result.Accounts[0].Balance.Equal(decimal.RequireFromString("70")))
	assert.Empty(t, result.RejectedTransactions)

	// Snapshots persisted, per-account log appended per valid row.
	assert.True(t, ledger.wasSaved)
	assert.Len(t, ledger.logs["Alice_1111"], 2)

	// Audit entry recorded with the batch counts.
	require.Len(t, uploads.records, 1)
	record := uploads.records[0]
	assert.Equal(t, "batch.csv", record.Filename)
	assert.Equal(t, 2, record.RowCount)
	assert.Equal(t, 2, record.AcceptedCount)
	assert.Equal(t, 0, record.RejectedCount)
	assert.NotEmpty(t, record.ID)
}

func TestProcessUpload_PartialSuccessIsNormal(t *testing.T) {
	ledger := newFakeLedger()
	p := NewProcessor(zap.NewNop(), ledger, nil, t.TempDir())

	csv := "Alice,1111,100,Credit,,\n,,,,,\nBob,2222,oops,Debit,,\n"
	result, err := p.ProcessUpload(context.Background(), "batch.csv", []byte(csv))
	require.NoError(t, err)

	assert.Len(t, result.Accounts, 1)
	assert.Len(t, result.RejectedTransactions, 2)
	assert.Len(t, ledger.logs, 1)
}

func TestProcessUpload_AccumulatesAcrossBatches(t *testing.T) {
	ledger := newFakeLedger()
	p := NewProcessor(zap.NewNop(), ledger, nil, t.TempDir())

	batch := []byte("Alice,1111,100,Credit,,\n")
	_, err := p.ProcessUpload(context.Background(), "one.csv", batch)
	require.NoError(t, err)
	result, err := p.ProcessUpload(context.Background(), "two.csv", batch)
	require.NoError(t, err)

	// Each upload is additive against the persisted snapshot.
	require.Len(t, result.Accounts, 1)
	assert.True(t, result.Accounts[0].Balance.Equal(decimal.RequireFromString("200")))
	assert.Len(t, ledger.logs["Alice_1111"], 2)
}

func TestProcessUpload_StagesTheFile(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(zap.NewNop(), newFakeLedger(), nil, dir)

	_, err := p.ProcessUpload(context.Background(), "../sneaky.csv", []byte("Alice,1111,100\n"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "sneaky.csv"))
	assert.NoError(t, err)
}

func TestProcessUpload_MalformedCsvIsInvalid(t *testing.T) {
	p := NewProcessor(zap.NewNop(), newFakeLedger(), nil, t.TempDir())

	_, err := p.ProcessUpload(context.Background(), "bad.csv", []byte("\"Alice,1111\n"))
	require.Error(t, err)
	assert.Equal(t, apperrors.Invalid, apperrors.KindOf(err))
}

func TestProcessUpload_StoreFailureAbortsTheBatch(t *testing.T) {
	ledger := newFakeLedger()
	ledger.saveErr = errors.New("connection refused")
	p := NewProcessor(zap.NewNop(), ledger, nil, t.TempDir())

	_, err := p.ProcessUpload(context.Background(), "batch.csv", []byte("Alice,1111,100\n"))
	require.Error(t, err)
	assert.Equal(t, apperrors.Internal, apperrors.KindOf(err))
}

func TestProcessUpload_AuditFailureDoesNotFailTheUpload(t *testing.T) {
	uploads := &fakeUploads{err: errors.New("mongo down")}
	p := NewProcessor(zap.NewNop(), newFakeLedger(), uploads, t.TempDir())

	_, err := p.ProcessUpload(context.Background(), "batch.csv", []byte("Alice,1111,100\n"))
	assert.NoError(t, err)
}

func TestReset_ClearsStoreAndStagedFiles(t *testing.T) {
	dir := t.TempDir()
	ledger := newFakeLedger()
	p := NewProcessor(zap.NewNop(), ledger, nil, dir)

	_, err := p.ProcessUpload(context.Background(), "batch.csv", []byte("Alice,1111,100\n"))
	require.NoError(t, err)

	require.NoError(t, p.Reset(context.Background()))

	assert.True(t, ledger.wasReset)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReset_MissingStagingDirIsFine(t *testing.T) {
	p := NewProcessor(zap.NewNop(), newFakeLedger(), nil, filepath.Join(t.TempDir(), "never-created"))

	assert.NoError(t, p.Reset(context.Background()))
}
