package ingestion

import (
	// Go Internal Packages
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	// Local Packages
	errors "card-ledger/errors"
	models "card-ledger/models"

	// External Packages
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LedgerRepository interface {
	Accounts(ctx context.Context) ([]models.Account, error)
	RejectedTransactions(ctx context.Context) ([]models.RejectedTransaction, error)
	SaveAccounts(ctx context.Context, accounts []models.Account) error
	SaveRejectedTransactions(ctx context.Context, rejected []models.RejectedTransaction) error
	AppendTransaction(ctx context.Context, tx models.Transaction) error
	Reset(ctx context.Context) error
}

type UploadsRepository interface {
	RecordUpload(ctx context.Context, record models.UploadRecord) error
}

// Processor runs one upload at a time: stage the file, parse, validate,
// fold into the account snapshot, write the snapshots back. The mutex
// serializes batches (and resets) because the store update is a
// whole-snapshot read-modify-write; concurrent writers would lose updates.
type Processor struct {
	logger     *zap.Logger
	ledger     LedgerRepository
	uploads    UploadsRepository // nil disables the audit trail
	stagingDir string
	mu         sync.Mutex
}

func NewProcessor(logger *zap.Logger, ledger LedgerRepository, uploads UploadsRepository, stagingDir string) *Processor {
	return &Processor{logger: logger, ledger: ledger, uploads: uploads, stagingDir: stagingDir}
}

// Result is the full post-batch state returned to the uploader.
// Partial success (some rows rejected) is the normal case, not an error.
type Result struct {
	Message              string                       `json:"message"`
	Accounts             []models.Account             `json:"accounts"`
	RejectedTransactions []models.RejectedTransaction `json:"badTransactions"`
}

// ProcessUpload processes one uploaded file as a single batch.
func (p *Processor) ProcessUpload(ctx context.Context, filename string, data []byte) (*Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	receivedAt := time.Now().UTC()

	if err := p.stageFile(filename, data); err != nil {
		return nil, errors.E(errors.Internal, "failed to stage uploaded file", err)
	}

	rows, err := ParseRows(data)
	if err != nil {
		return nil, err
	}

	accounts, err := p.ledger.Accounts(ctx)
	if err != nil {
		return nil, errors.E(errors.Internal, "failed to load account snapshot", err)
	}
	rejected, err := p.ledger.RejectedTransactions(ctx)
	if err != nil {
		return nil, errors.E(errors.Internal, "failed to load rejected snapshot", err)
	}

	valid := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, rej := ValidateRow(row)
		if rej != nil {
			p.logger.Info("invalid transaction",
				zap.Int("row", i+1), zap.String("reason", rej.Error))
			rejected = append(rejected, *rej)
			continue
		}
		valid = append(valid, *tx)
	}

	accounts, err = Aggregate(accounts, valid)
	if err != nil {
		return nil, err
	}

	// Log appends happen before the snapshot writes; they are not rolled
	// back if a later write fails.
	for _, tx := range valid {
		if err := p.ledger.AppendTransaction(ctx, tx); err != nil {
			return nil, errors.E(errors.Internal, "failed to append transaction log", err)
		}
	}

	if err := p.ledger.SaveAccounts(ctx, accounts); err != nil {
		return nil, errors.E(errors.Internal, "failed to save account snapshot", err)
	}
	if err := p.ledger.SaveRejectedTransactions(ctx, rejected); err != nil {
		return nil, errors.E(errors.Internal, "failed to save rejected snapshot", err)
	}

	p.recordAudit(ctx, filename, receivedAt, len(rows), len(valid))

	p.logger.Info("processed upload",
		zap.String("filename", filename),
		zap.Int("rows", len(rows)),
		zap.Int("accepted", len(valid)),
		zap.Int("rejected", len(rows)-len(valid)))

	return &Result{
		Message:              "File uploaded and transactions processed.",
		Accounts:             accounts,
		RejectedTransactions: rejected,
	}, nil
}

// Reset wipes the store and removes every staged upload file.
func (p *Processor) Reset(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ledger.Reset(ctx); err != nil {
		return errors.E(errors.Internal, "failed to reset store", err)
	}

	entries, err := os.ReadDir(p.stagingDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.E(errors.Internal, "failed to read uploads directory", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(p.stagingDir, entry.Name())); err != nil {
			return errors.E(errors.Internal, "failed to remove staged upload", err)
		}
	}

	p.logger.Info("system reset", zap.String("uploads_dir", p.stagingDir))
	return nil
}

func (p *Processor) stageFile(filename string, data []byte) error {
	if err := os.MkdirAll(p.stagingDir, 0o755); err != nil {
		return err
	}
	// Base strips any path the client smuggled into the filename.
	target := filepath.Join(p.stagingDir, filepath.Base(filename))
	return os.WriteFile(target, data, 0o644)
}

// recordAudit is best effort: a failed insert is logged, never surfaced.
func (p *Processor) recordAudit(ctx context.Context, filename string, receivedAt time.Time, rows, accepted int) {
	if p.uploads == nil {
		return
	}
	record := models.UploadRecord{
		ID:            uuid.NewString(),
		Filename:      filepath.Base(filename),
		ReceivedAt:    receivedAt,
		RowCount:      rows,
		AcceptedCount: accepted,
		RejectedCount: rows - accepted,
	}
	if err := p.uploads.RecordUpload(ctx, record); err != nil {
		p.logger.Warn("failed to record upload audit", zap.Error(err))
	}
}
