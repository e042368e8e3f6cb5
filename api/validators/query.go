package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/metalldk/storefront/pkg/errors"
)

const (
	minYear = 1900
	maxYear = 9999
)

// ParseYear reads the ?year= filter. Empty and "all" mean no filter and yield 0.
func ParseYear(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("year"))
	if raw == "" || strings.EqualFold(raw, "all") {
		return 0, nil
	}
	return parseInt(raw, "year", minYear, maxYear)
}

func parseInt(raw, key string, min, max int) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}
