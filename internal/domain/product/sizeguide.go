package product

import "strings"

// SizeRow is one entry of a parsed size guide.
type SizeRow struct {
	Size    string `json:"size"`
	Details string `json:"details"`
}

// ParseSizeGuide splits "S: Chest 90cm | M: Chest 95cm" into rows.
// Entries without a colon keep the whole text as Size.
func ParseSizeGuide(guide string) []SizeRow {
	if strings.TrimSpace(guide) == "" {
		return nil
	}
	parts := strings.Split(guide, " | ")
	rows := make([]SizeRow, 0, len(parts))
	for _, part := range parts {
		size, details, _ := strings.Cut(part, ": ")
		rows = append(rows, SizeRow{Size: size, Details: details})
	}
	return rows
}
