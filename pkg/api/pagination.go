package api

import "strconv"

const (
	// DefaultPage is used when the page query parameter is absent or malformed.
	DefaultPage = 1

	// DefaultLimit is used when the limit query parameter is absent or malformed.
	DefaultLimit = 10
)

// ParsePage coerces a raw page query value to a positive integer.
// Absent, malformed, or non-positive values fall back to DefaultPage
// rather than failing the request.
func ParsePage(raw string) int {
	return parsePositive(raw, DefaultPage)
}

// ParseLimit coerces a raw limit query value to a positive integer.
// Absent, malformed, or non-positive values fall back to DefaultLimit.
func ParseLimit(raw string) int {
	return parsePositive(raw, DefaultLimit)
}

func parsePositive(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Offset computes the number of records to skip for the given page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// TotalPages computes ceil(totalCount / limit). The count comes from an
// independent store query, never from the returned page's length.
func TotalPages(totalCount, limit int) int {
	if totalCount <= 0 {
		return 0
	}
	return (totalCount + limit - 1) / limit
}
