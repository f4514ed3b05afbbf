package services

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	"firmanager-backend/models"
)

// Route planning: pick customers by pasted facility numbers or by area, then
// order the stops deterministically. Like the results engine this operates on
// plain slices; handlers load the tenant's customers and hand them in.

var (
	// ErrNoCustomersSelected means the selection resolved to zero customers.
	ErrNoCustomersSelected = errors.New("no customers selected for route")
	// ErrNoFacilityNumbers means the pasted input contained no tokens at all.
	ErrNoFacilityNumbers = errors.New("no facility numbers provided")
)

// SplitFacilityNumbers tokenizes pasted facility-number text. Any run of
// whitespace (spaces, tabs, newlines) or commas separates tokens, so input
// copied from spreadsheets, CSV exports and chat messages all parse the same.
func SplitFacilityNumbers(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}

// MatchFacilityNumbers resolves tokens against the customer register by exact
// anleggsnr match. Matched customers come back in register order, each at
// most once; unmatched tokens come back in input order so the caller can
// report exactly what was pasted but not found.
func MatchFacilityNumbers(tokens []string, customers []models.Customer) (matched []models.Customer, unmatched []string) {
	wanted := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		wanted[tok] = true
	}

	found := make(map[string]bool, len(tokens))
	for i := range customers {
		if wanted[customers[i].Anleggsnr] {
			matched = append(matched, customers[i])
			found[customers[i].Anleggsnr] = true
		}
	}

	for _, tok := range tokens {
		if !found[tok] {
			unmatched = append(unmatched, tok)
		}
	}
	return matched, unmatched
}

// Area selects customers by postal code, city, or both. Empty fields match
// everything, so {City: "Oslo"} selects all of Oslo.
type Area struct {
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

func (a Area) contains(c *models.Customer) bool {
	if a.PostalCode != "" && c.PostalCode != a.PostalCode {
		return false
	}
	if a.City != "" && !strings.EqualFold(c.City, a.City) {
		return false
	}
	return true
}

// CustomersInAreas selects every customer falling inside at least one area,
// in register order.
func CustomersInAreas(customers []models.Customer, areas []Area) []models.Customer {
	var selected []models.Customer
	for i := range customers {
		for _, area := range areas {
			if area.contains(&customers[i]) {
				selected = append(selected, customers[i])
				break
			}
		}
	}
	return selected
}

// OptimizeStops orders a selection for driving: ascending numeric postal
// code, then address within the same code. The sort is stable, so customers
// tied on both keys keep their selection order. The input slice is not
// modified.
func OptimizeStops(customers []models.Customer) []models.Customer {
	ordered := make([]models.Customer, len(customers))
	copy(ordered, customers)

	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := numericPrefix(ordered[i].PostalCode), numericPrefix(ordered[j].PostalCode)
		if pi != pj {
			return pi < pj
		}
		return ordered[i].Address < ordered[j].Address
	})
	return ordered
}

// numericPrefix parses the leading digit run of a postal code; codes without
// one sort as 0.
func numericPrefix(s string) int {
	s = strings.TrimSpace(s)
	n := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		seen = true
		n = n*10 + int(r-'0')
	}
	if !seen {
		return 0
	}
	return n
}

// StopList projects an ordered customer selection to the facility numbers a
// route record stores.
func StopList(customers []models.Customer) []string {
	stops := make([]string, len(customers))
	for i := range customers {
		stops[i] = customers[i].Anleggsnr
	}
	return stops
}
