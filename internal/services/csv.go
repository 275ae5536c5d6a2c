package services

import (
	"strings"

	"moneymap/internal/models"
)

// RenderTransactionsCSV renders transactions as CSV in the export format:
// a Date,Description,Category,Amount header, ISO dates, description and
// category always double-quoted with embedded quotes doubled, and amounts
// written bare with no forced decimal places. encoding/csv is deliberately
// not used here: it only quotes fields when it must, while this format
// quotes the two text columns unconditionally and the other two never.
func RenderTransactionsCSV(transactions []models.Transaction) string {
	var b strings.Builder
	b.WriteString("Date,Description,Category,Amount\n")

	for i, t := range transactions {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(t.Date.UTC().Format("2006-01-02"))
		b.WriteByte(',')
		writeQuoted(&b, t.Description)
		b.WriteByte(',')
		writeQuoted(&b, t.Category)
		b.WriteByte(',')
		b.WriteString(t.Amount.String())
	}

	return b.String()
}

func writeQuoted(b *strings.Builder, field string) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(field, `"`, `""`))
	b.WriteByte('"')
}
