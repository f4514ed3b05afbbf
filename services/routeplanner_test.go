package services

import (
	"testing"

	"firmanager-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFacilityNumbers(t *testing.T) {
	tokens := SplitFacilityNumbers("100, 200\t300\n400  500,,600")
	assert.Equal(t, []string{"100", "200", "300", "400", "500", "600"}, tokens)

	assert.Empty(t, SplitFacilityNumbers(""))
	assert.Empty(t, SplitFacilityNumbers("  , \n\t "))
}

func TestMatchFacilityNumbers(t *testing.T) {
	customers := []models.Customer{
		{Id: "c1", Anleggsnr: "100"},
		{Id: "c2", Anleggsnr: "200"},
		{Id: "c3", Anleggsnr: "300"},
	}

	matched, unmatched := MatchFacilityNumbers([]string{"300", "999", "100", "888"}, customers)

	// Matched follows register order, not paste order.
	require.Len(t, matched, 2)
	assert.Equal(t, "100", matched[0].Anleggsnr)
	assert.Equal(t, "300", matched[1].Anleggsnr)

	// Unmatched preserves paste order.
	assert.Equal(t, []string{"999", "888"}, unmatched)
}

func TestMatchFacilityNumbersAllUnmatched(t *testing.T) {
	matched, unmatched := MatchFacilityNumbers([]string{"1", "2"}, nil)
	assert.Empty(t, matched)
	assert.Equal(t, []string{"1", "2"}, unmatched)
}

func TestCustomersInAreas(t *testing.T) {
	customers := []models.Customer{
		{Id: "c1", PostalCode: "0150", City: "Oslo"},
		{Id: "c2", PostalCode: "5003", City: "Bergen"},
		{Id: "c3", PostalCode: "0170", City: "Oslo"},
	}

	oslo := CustomersInAreas(customers, []Area{{City: "oslo"}})
	require.Len(t, oslo, 2)
	assert.Equal(t, "c1", oslo[0].Id)
	assert.Equal(t, "c3", oslo[1].Id)

	exact := CustomersInAreas(customers, []Area{{PostalCode: "5003", City: "Bergen"}})
	require.Len(t, exact, 1)
	assert.Equal(t, "c2", exact[0].Id)

	assert.Empty(t, CustomersInAreas(customers, []Area{{PostalCode: "9999"}}))
}

func TestOptimizeStops(t *testing.T) {
	customers := []models.Customer{
		{Id: "c1", Anleggsnr: "1", PostalCode: "5003", Address: "Bryggen 2"},
		{Id: "c2", Anleggsnr: "2", PostalCode: "0150", Address: "Karl Johans gate 10"},
		{Id: "c3", Anleggsnr: "3", PostalCode: "0150", Address: "Akersgata 5"},
		{Id: "c4", Anleggsnr: "4", PostalCode: "abc", Address: "Ukjent vei 1"}, // non-numeric sorts as 0
	}

	ordered := OptimizeStops(customers)
	assert.Equal(t, []string{"4", "3", "2", "1"}, StopList(ordered))

	// Input order untouched.
	assert.Equal(t, "c1", customers[0].Id)
}

func TestOptimizeStopsIsIdempotent(t *testing.T) {
	customers := []models.Customer{
		{Anleggsnr: "1", PostalCode: "0170", Address: "B"},
		{Anleggsnr: "2", PostalCode: "0150", Address: "A"},
		{Anleggsnr: "3", PostalCode: "0150", Address: "A"}, // full tie with 2
	}

	once := OptimizeStops(customers)
	twice := OptimizeStops(once)
	assert.Equal(t, StopList(once), StopList(twice))

	// Ties keep their relative input order.
	assert.Equal(t, []string{"2", "3", "1"}, StopList(once))
}

func TestOptimizeStopsSingleAndEmpty(t *testing.T) {
	one := []models.Customer{{Anleggsnr: "1"}}
	assert.Equal(t, []string{"1"}, StopList(OptimizeStops(one)))
	assert.Empty(t, OptimizeStops(nil))
}

func TestNumericPrefix(t *testing.T) {
	assert.Equal(t, 150, numericPrefix("0150"))
	assert.Equal(t, 12, numericPrefix("12ab"))
	assert.Equal(t, 0, numericPrefix("ab12"))
	assert.Equal(t, 0, numericPrefix(""))
	assert.Equal(t, 5003, numericPrefix(" 5003 "))
}
