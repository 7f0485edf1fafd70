package ingestion

import (
	// Go Internal Packages
	"strings"

	// Local Packages
	errors "card-ledger/errors"
	models "card-ledger/models"

	// External Packages
	"github.com/shopspring/decimal"
)

// Column order is the wire format of an uploaded file:
// accountName, cardNumber, amount, type, description, targetCardNumber.
const columnCount = 6

const (
	colAccountName = iota
	colCardNumber
	colAmount
	colType
	colDescription
	colTargetCardNumber
)

// Sentinels for rejection display fields that had no usable value.
const (
	unknownValue  = "Unknown"
	noDescription = "No Description"
	noID          = "No ID"
	zeroAmount    = "0"
)

// ValidateRow maps one raw row to a typed transaction. Exactly one of
// the two results is non-nil: a transaction when every rule passes, a
// rejection carrying all collected violations otherwise. Missing
// trailing fields count as absent, not as an error by themselves.
func ValidateRow(fields []string) (*models.Transaction, *models.RejectedTransaction) {
	row := make([]string, columnCount)
	copy(row, fields)

	accountName := row[colAccountName]
	cardNumber := row[colCardNumber]
	amount := row[colAmount]
	txType := models.ParseTransactionType(row[colType])
	description := row[colDescription]
	targetCardNumber := row[colTargetCardNumber]

	// The identity is derived before validation so rejections can still
	// reference a stable account id. Upstream-supplied ids are ignored.
	accountID := models.DeriveAccountID(accountName, cardNumber)

	candidate := models.Transaction{
		AccountName:      accountName,
		AccountID:        accountID,
		CardNumber:       cardNumber,
		Amount:           amount,
		Type:             txType,
		Description:      description,
		TargetCardNumber: targetCardNumber,
	}

	ve := errors.ValidationErrs()
	if strings.TrimSpace(accountName) == "" {
		ve.Add("Account Name", "is required")
	}
	if strings.TrimSpace(cardNumber) == "" {
		ve.Add("Card Number", "is required")
	}
	if amount == "" {
		ve.Add("Amount", "is required")
	} else if _, err := decimal.NewFromString(amount); err != nil {
		ve.Add("Amount", "must be a decimal number")
	}

	if ve.Empty() {
		return &candidate, nil
	}

	displayID := accountID
	if strings.TrimSpace(accountName) == "" && strings.TrimSpace(cardNumber) == "" {
		displayID = noID
	}

	return nil, &models.RejectedTransaction{
		Error:             ve.Err().Error(),
		RawData:           candidate,
		TransactionAmount: orDefault(amount, zeroAmount),
		CardNumber:        orDefault(cardNumber, unknownValue),
		AccountName:       orDefault(accountName, unknownValue),
		Description:       orDefault(description, noDescription),
		AccountID:         displayID,
		Type:              txType,
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
