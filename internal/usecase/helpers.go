package usecase

import (
	"time"

	"clinic-records/internal/converter"
	"clinic-records/internal/domain/entity"
)

// parseDate reads a YYYY-MM-DD value as UTC midnight.
func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(converter.DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return entity.DateOnly(t), nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// uniqueInts drops duplicates and keeps first-seen order.
func uniqueInts(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	out := make([]int, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
