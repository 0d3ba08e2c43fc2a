package validate

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidTypes     = errors.New("invalid or incorrect data types")
	ErrProductsNotArray = errors.New("products field is required and must be an array")
	ErrProductIDs       = errors.New("all product ids must be integers")
	ErrNegativeQuantity = errors.New("all product quantities must be 0 or greater")
	ErrInvalidIDs       = errors.New("cart id and product id must be valid integers")
	ErrInvalidQuantity  = errors.New("quantity must be a number greater than 0")
)

var productRequired = []string{"title", "description", "code", "price", "stock", "category"}

// Product checks a decoded product body. status defaults to true and
// thumbnails to an empty list when absent or malformed.
func Product(raw map[string]any) (domain.Product, error) {
	for _, k := range productRequired {
		if v, ok := raw[k]; !ok || v == nil {
			return domain.Product{}, ErrMissingFields
		}
	}

	title, ok1 := raw["title"].(string)
	desc, ok2 := raw["description"].(string)
	code, ok3 := raw["code"].(string)
	category, ok4 := raw["category"].(string)
	price, ok5 := raw["price"].(float64)
	stock, ok6 := raw["stock"].(float64)
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6) {
		return domain.Product{}, ErrInvalidTypes
	}
	if price < 0 || stock < 0 {
		return domain.Product{}, ErrInvalidTypes
	}

	status := true
	if v, present := raw["status"]; present && v != nil {
		b, ok := v.(bool)
		if !ok {
			return domain.Product{}, ErrInvalidTypes
		}
		status = b
	}

	return domain.Product{
		Title:       title,
		Description: desc,
		Code:        code,
		Price:       price,
		Status:      status,
		Stock:       stock,
		Category:    category,
		Thumbnails:  thumbnails(raw["thumbnails"]),
	}, nil
}

func thumbnails(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return []string{}
		}
		out = append(out, s)
	}
	return out
}

// CartItems checks the products list of a cart body. A quantity that is not
// a number counts as 0; any other non-negative number is kept as sent.
func CartItems(raw map[string]any) ([]domain.CartItem, error) {
	list, ok := raw["products"].([]any)
	if !ok {
		return nil, ErrProductsNotArray
	}
	items := make([]domain.CartItem, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, ErrProductIDs
		}
		pid, ok := obj["productId"].(float64)
		if !ok || !isInteger(pid) {
			return nil, ErrProductIDs
		}
		items = append(items, domain.CartItem{ProductID: int64(pid)})
	}
	for i, entry := range list {
		qty, ok := entry.(map[string]any)["quantity"].(float64)
		if !ok {
			continue
		}
		if qty < 0 {
			return nil, ErrNegativeQuantity
		}
		items[i].Quantity = qty
	}
	return items, nil
}

// ID parses a path identifier.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

// Quantity derives the amount to add to a cart line. Missing or unparseable
// values mean 1; numbers and numeric strings are truncated to an integer.
func Quantity(v any) (float64, error) {
	var f float64
	switch q := v.(type) {
	case float64:
		f = q
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 1, nil
		}
		f = parsed
	default:
		return 1, nil
	}
	f = math.Trunc(f)
	if f <= 0 {
		return 0, ErrInvalidQuantity
	}
	return f, nil
}

// isInteger reports whether f converts to int64 without loss. 1<<63 itself
// is representable as a float64 but not as an int64.
func isInteger(f float64) bool {
	return f == math.Trunc(f) && f >= -(1<<63) && f < 1<<63
}
