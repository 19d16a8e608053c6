package store

import (
	"encoding/json"
	"fmt"
	"slices"
)

func encodeRecord(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	return string(data), nil
}

// encodeRecords converts records to hash fields keyed by id.
func encodeRecords[T any](records []T, id func(T) string) (map[string]string, error) {
	fields := make(map[string]string, len(records))
	for _, rec := range records {
		row, err := encodeRecord(rec)
		if err != nil {
			return nil, err
		}
		fields[id(rec)] = row
	}
	return fields, nil
}

// decodeRecords parses hash fields back into records, ordered by field id.
func decodeRecords[T any](fields map[string]string) ([]T, error) {
	ids := make([]string, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		var rec T
		if err := json.Unmarshal([]byte(fields[id]), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal record %q: %w", id, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
