// Package query holds the request-independent rules of paginated recipe and
// review retrieval: parameter normalization, visibility predicates and the
// page-overrun decision.
package query

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/pageza/cookbook/backend/config"
)

var (
	ErrPaginationRequired = errors.New("page number OR limit is required")
	ErrInvalidParams      = errors.New("Some query params are missing or invalid")
)

var digits = regexp.MustCompile(`^\d+$`)

// RawPage carries the page and limit query values as received. A nil field
// means the parameter was absent.
type RawPage struct {
	Page  *string
	Limit *string
}

// Page is a normalized pagination window.
type Page struct {
	Number     int `json:"page"`
	Limit      int `json:"limit"`
	StartIndex int `json:"-"`
}

// Normalize resolves raw pagination values against the configured bounds.
// At least one of page and limit must be present. Values must be unsigned
// integers; page is raised to at least 1 and limit is capped to [1, MaxLimit].
func Normalize(raw RawPage, limits config.PaginationLimits) (Page, error) {
	if raw.Page == nil && raw.Limit == nil {
		return Page{}, ErrPaginationRequired
	}

	page, err := parseOr(raw.Page, limits.DefaultPage)
	if err != nil {
		return Page{}, err
	}
	limit, err := parseOr(raw.Limit, limits.DefaultLimit)
	if err != nil {
		return Page{}, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > limits.MaxLimit {
		limit = limits.MaxLimit
	}

	return Page{
		Number:     page,
		Limit:      limit,
		StartIndex: (page - 1) * limit,
	}, nil
}

func parseOr(raw *string, fallback int) (int, error) {
	if raw == nil {
		return fallback, nil
	}
	if !digits.MatchString(*raw) {
		return 0, ErrInvalidParams
	}
	n, err := strconv.Atoi(*raw)
	if err != nil {
		// overflow
		return 0, ErrInvalidParams
	}
	return n, nil
}
