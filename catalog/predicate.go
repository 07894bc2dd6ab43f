package catalog

import (
	"strings"

	"storefront/models"
)

type Predicate func(*models.Product) bool

func InCategory(slug string) Predicate {
	return func(p *models.Product) bool {
		return p.Category == slug
	}
}

func HasFlag(flag Flag) Predicate {
	return func(p *models.Product) bool {
		switch flag {
		case FlagNew:
			return p.New()
		case FlagRestocked:
			return p.Restocked()
		case FlagSoldOut:
			return p.SoldOut()
		}
		return false
	}
}

// PriceBetween matches min <= price <= max. A bound of zero or less is open.
func PriceBetween(min, max int) Predicate {
	return func(p *models.Product) bool {
		if min > 0 && p.Price < min {
			return false
		}
		if max > 0 && p.Price > max {
			return false
		}
		return true
	}
}

func NameContains(query string) Predicate {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(p *models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q)
	}
}

// All matches when every non-nil predicate matches.
func All(preds ...Predicate) Predicate {
	return func(p *models.Product) bool {
		for _, pred := range preds {
			if pred != nil && !pred(p) {
				return false
			}
		}
		return true
	}
}

func ParseFlag(s string) (Flag, bool) {
	switch strings.ToLower(s) {
	case "new", "is_new":
		return FlagNew, true
	case "restocked", "is_restocked":
		return FlagRestocked, true
	case "sold-out", "sold_out", "is_sold_out":
		return FlagSoldOut, true
	}
	return 0, false
}
