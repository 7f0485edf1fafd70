package models

import (
	// Go Internal Packages
	"strings"

	// External Packages
	"github.com/shopspring/decimal"
)

func init() {
	// Balances travel as bare JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type TransactionType string

const (
	TypeCredit   TransactionType = "Credit"
	TypeDebit    TransactionType = "Debit"
	TypeTransfer TransactionType = "Transfer"
	TypeUnknown  TransactionType = "Unknown"
)

// ParseTransactionType normalizes a raw type value case-insensitively.
// Anything outside Credit/Debit/Transfer, including an absent value,
// becomes Unknown.
func ParseTransactionType(raw string) TransactionType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "credit":
		return TypeCredit
	case "debit":
		return TypeDebit
	case "transfer":
		return TypeTransfer
	default:
		return TypeUnknown
	}
}

// Transaction is one validated row of an uploaded CSV file. Amount keeps
// the original string encoding; the aggregator parses it when folding.
type Transaction struct {
	AccountName      string          `json:"accountName"`
	AccountID        string          `json:"accountId"`
	CardNumber       string          `json:"cardNumber"`
	Amount           string          `json:"amount"`
	Type             TransactionType `json:"type"`
	Description      string          `json:"description,omitempty"`
	TargetCardNumber string          `json:"targetCardNumber,omitempty"`
}

// RejectedTransaction is a row that failed validation, kept inspectable
// with best-effort display fields defaulted to sentinels.
type RejectedTransaction struct {
	Error             string          `json:"error"`
	RawData           Transaction     `json:"rawData"`
	TransactionAmount string          `json:"transactionAmount"`
	CardNumber        string          `json:"cardNumber"`
	AccountName       string          `json:"accountName"`
	Description       string          `json:"description"`
	AccountID         string          `json:"accountId"`
	Type              TransactionType `json:"type"`
}

// Account is the aggregated state for one account id.
// Balance always equals the sum of the card balances.
type Account struct {
	AccountName string                     `json:"accountName"`
	AccountID   string                     `json:"accountId"`
	Cards       map[string]decimal.Decimal `json:"cards"`
	Balance     decimal.Decimal            `json:"balance"`
}

// DeriveAccountID computes the account identity from the name and card
// number: whitespace runs in the trimmed name collapse to single
// underscores, the card number is trimmed, and the two join with "_".
// The id is always recomputed here, never taken from upstream input.
func DeriveAccountID(accountName, cardNumber string) string {
	name := strings.Join(strings.Fields(accountName), "_")
	return name + "_" + strings.TrimSpace(cardNumber)
}
