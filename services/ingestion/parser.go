package ingestion

import (
	// Go Internal Packages
	"bytes"
	"encoding/csv"

	// Local Packages
	errors "card-ledger/errors"
)

// ParseRows splits raw CSV bytes into ordered rows of string fields.
// Splitting is purely lexical: rows keep whatever arity the file gave
// them and short rows are left for the validator to reject. Empty lines
// are skipped. A lexically broken file (unbalanced quotes) fails as a
// whole since no row stream can be recovered from it.
func ParseRows(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.E(errors.Invalid, "malformed csv", err)
	}
	return rows, nil
}
