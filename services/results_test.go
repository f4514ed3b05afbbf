package services

import (
	"testing"
	"time"

	"firmanager-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestMonthKeyUsesUTC(t *testing.T) {
	oslo := time.FixedZone("CET", 3600)
	// 2025-04-01 00:30 local is still 2025-03-31 in UTC.
	ts := time.Date(2025, time.April, 1, 0, 30, 0, 0, oslo)
	assert.Equal(t, "2025-03", MonthKey(ts))
}

func TestInternalPayroll(t *testing.T) {
	ds := Dataset{
		Employees: []models.Employee{
			{Id: "e1", Name: "Anna", Initials: "AN", InternalRate: 400},
			{Id: "e2", Name: "Bjorn", Initials: "BJ", InternalRate: 350},
			{Id: "e3", Name: "Carl", Initials: "CA", InternalRate: 500},
		},
		InternalOrders: []models.InternalOrder{
			{EmployeeId: "e1", Date: date(2025, 3, 3), WorkHours: 5},
			{EmployeeId: "e1", Date: date(2025, 3, 10), WorkHours: 2.5},
			{EmployeeId: "e2", Date: date(2025, 2, 28), WorkHours: 8}, // wrong month
			{EmployeeId: "missing", Date: date(2025, 3, 5), WorkHours: 3},
		},
	}

	rows := InternalPayroll("2025-03", ds)
	require.Len(t, rows, 1)
	assert.Equal(t, "Anna", rows[0].Name)
	assert.InDelta(t, 7.5, rows[0].Hours, 1e-9)
	assert.InDelta(t, 3000, rows[0].Amount, 1e-9)
}

func TestInternalPayrollEmptyMonth(t *testing.T) {
	ds := Dataset{
		Employees: []models.Employee{{Id: "e1", Name: "Anna", InternalRate: 400}},
		InternalOrders: []models.InternalOrder{
			{EmployeeId: "e1", Date: date(2025, 3, 3), WorkHours: 5},
		},
	}
	assert.Empty(t, InternalPayroll("2025-06", ds))
}

func TestCommissionPayroll(t *testing.T) {
	ds := Dataset{
		Employees: []models.Employee{
			{Id: "e1", Name: "Anna", Initials: "AN",
				PAServiceRate: 250, PAInstallationRate: 600, PAHourlyRate: 300, PADriveRate: 150, PAKmRate: 4},
			{Id: "e2", Name: "Bjorn", Initials: "BJ", PAServiceRate: 200},
		},
		WorkOrders: []models.WorkOrder{
			{EmployeeId: "e1", Date: date(2025, 3, 3), OrderType: models.OrderTypeService, Status: models.StatusCompleted, DriveHours: 1, DrivenKm: 20},
			{EmployeeId: "e1", Date: date(2025, 3, 4), OrderType: models.OrderTypeInstallation, Status: models.StatusCompleted},
			{EmployeeId: "e1", Date: date(2025, 3, 5), OrderType: models.OrderTypeExtra, Status: models.StatusCompleted, WorkHours: 2},
			// planned and cancelled orders never pay out
			{EmployeeId: "e1", Date: date(2025, 3, 6), OrderType: models.OrderTypeService, Status: models.StatusPlanned},
			{EmployeeId: "e2", Date: date(2025, 3, 7), OrderType: models.OrderTypeService, Status: models.StatusCancelled},
		},
	}

	rows := CommissionPayroll("2025-03", ds)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "Anna", row.Name)
	assert.Equal(t, 1, row.ServiceCount)
	assert.InDelta(t, 250, row.ServiceAmount, 1e-9)
	assert.Equal(t, 1, row.InstallationCount)
	assert.InDelta(t, 600, row.InstallationAmount, 1e-9)
	assert.InDelta(t, 2, row.ExtraHours, 1e-9)
	assert.InDelta(t, 600, row.ExtraAmount, 1e-9)
	assert.InDelta(t, 1, row.DriveHours, 1e-9)
	assert.InDelta(t, 150, row.DriveAmount, 1e-9)
	assert.InDelta(t, 20, row.Km, 1e-9)
	assert.InDelta(t, 80, row.KmAmount, 1e-9)

	sum := row.ServiceAmount + row.InstallationAmount + row.ExtraAmount + row.DriveAmount + row.KmAmount
	assert.InDelta(t, sum, row.Total, 1e-9)
	assert.InDelta(t, 1680, row.Total, 1e-9)
}

func TestCommissionPayrollOmitsZeroTotals(t *testing.T) {
	ds := Dataset{
		Employees: []models.Employee{
			{Id: "e1", Name: "Anna"}, // all rates zero
		},
		WorkOrders: []models.WorkOrder{
			{EmployeeId: "e1", Date: date(2025, 3, 3), OrderType: models.OrderTypeService, Status: models.StatusCompleted},
		},
	}
	assert.Empty(t, CommissionPayroll("2025-03", ds))
}

func TestResolveRateCard(t *testing.T) {
	cards := []models.SupplierRate{
		{Id: "r1", Name: "Nordic", WorkHourRate: 500, DriveHourRate: 300, KmRate: 5},
		{Id: "r2", Name: "Coastal", WorkHourRate: 550, DriveHourRate: 320, KmRate: 6},
	}

	t.Run("linked card wins", func(t *testing.T) {
		svc := &models.Service{RateCardId: "r2"}
		card := ResolveRateCard(svc, cards)
		assert.Equal(t, "Coastal", card.Name)
		assert.InDelta(t, 550, card.WorkHourRate, 1e-9)
	})

	t.Run("no link falls back to first card", func(t *testing.T) {
		card := ResolveRateCard(&models.Service{}, cards)
		assert.Equal(t, "Nordic", card.Name)
	})

	t.Run("dangling link falls back to first card", func(t *testing.T) {
		svc := &models.Service{RateCardId: "gone"}
		card := ResolveRateCard(svc, cards)
		assert.Equal(t, "Nordic", card.Name)
	})

	t.Run("nil service falls back to first card", func(t *testing.T) {
		card := ResolveRateCard(nil, cards)
		assert.Equal(t, "Nordic", card.Name)
	})

	t.Run("no cards at all yields zero card", func(t *testing.T) {
		card := ResolveRateCard(nil, nil)
		assert.Equal(t, "Standard", card.Name)
		assert.Zero(t, card.WorkHourRate)
	})
}

func revenueFixture() Dataset {
	return Dataset{
		Customers: []models.Customer{
			{Id: "c1", Anleggsnr: "100", TypeNumber: "S1"},
			{Id: "c2", Anleggsnr: "200", ServiceNumber: "S2"}, // legacy link only
			{Id: "c3", Anleggsnr: "300"},                      // no service link
		},
		Services: []models.Service{
			{ServiceNumber: "S1", RateCardId: "r1", FixedPrice: 1500, ExtraTier1: 700, ExtraTier3: 900},
			{ServiceNumber: "S2", FixedPrice: 2000}, // ExtraTier3 unset
		},
		SupplierRates: []models.SupplierRate{
			{Id: "r1", Name: "Nordic", WorkHourRate: 500, DriveHourRate: 300, KmRate: 5},
		},
	}
}

func TestCompanyRevenueServiceAndTime(t *testing.T) {
	ds := revenueFixture()
	ds.WorkOrders = []models.WorkOrder{
		{CustomerId: "c1", Date: date(2025, 3, 3), OrderType: models.OrderTypeService, Status: models.StatusCompleted, WorkHours: 2, DriveHours: 1, DrivenKm: 30},
		{CustomerId: "c1", Date: date(2025, 3, 4), OrderType: models.OrderTypeExtra, Status: models.StatusCompleted},
		{CustomerId: "c1", Date: date(2025, 3, 5), OrderType: models.OrderTypeService, Status: models.StatusPlanned}, // ignored
	}

	report := CompanyRevenue("2025-03", ds)

	assert.Equal(t, 1, report.ServiceRevenue.Count)
	assert.InDelta(t, 1500, report.ServiceRevenue.Amount, 1e-9)
	assert.Equal(t, 1, report.ExtraRevenue.Count)
	assert.InDelta(t, 700, report.ExtraRevenue.Amount, 1e-9)

	assert.InDelta(t, 2, report.WorkTimeRevenue.Hours, 1e-9)
	assert.InDelta(t, 1000, report.WorkTimeRevenue.Amount, 1e-9)
	assert.InDelta(t, 300, report.DriveTimeRevenue.Amount, 1e-9)
	assert.InDelta(t, 150, report.KmRevenue.Amount, 1e-9)

	assert.InDelta(t, 2200, report.ServiceBasedTotal, 1e-9)
	assert.InDelta(t, 1450, report.TimeBasedTotal, 1e-9)
	assert.InDelta(t, 3650, report.GrandTotal, 1e-9)

	require.Contains(t, report.BySupplier, "Nordic")
	assert.InDelta(t, 1000, report.BySupplier["Nordic"].WorkTime.Amount, 1e-9)
}

func TestCompanyRevenueInstallationFallsBackToFixedPrice(t *testing.T) {
	ds := revenueFixture()
	ds.WorkOrders = []models.WorkOrder{
		// S1 has a tier-3 rate, S2 does not.
		{CustomerId: "c1", Date: date(2025, 3, 3), OrderType: models.OrderTypeInstallation, Status: models.StatusCompleted},
		{CustomerId: "c2", Date: date(2025, 3, 4), OrderType: models.OrderTypeInstallation, Status: models.StatusCompleted},
	}

	report := CompanyRevenue("2025-03", ds)
	assert.Equal(t, 2, report.InstallationRevenue.Count)
	assert.InDelta(t, 900+2000, report.InstallationRevenue.Amount, 1e-9)
}

func TestCompanyRevenueOrderWithoutServiceStillEarnsTime(t *testing.T) {
	ds := revenueFixture()
	ds.WorkOrders = []models.WorkOrder{
		{CustomerId: "c3", Date: date(2025, 3, 3), OrderType: models.OrderTypeService, Status: models.StatusCompleted, WorkHours: 1},
	}

	report := CompanyRevenue("2025-03", ds)
	// No flat revenue without a resolvable service...
	assert.Zero(t, report.ServiceRevenue.Count)
	// ...but time still bills at the fallback card's rates.
	assert.InDelta(t, 500, report.WorkTimeRevenue.Amount, 1e-9)
	assert.Contains(t, report.BySupplier, "Nordic")
}

func TestCompanyRevenueZeroTimeOrderStillRegistersSupplier(t *testing.T) {
	ds := revenueFixture()
	ds.WorkOrders = []models.WorkOrder{
		{CustomerId: "c1", Date: date(2025, 3, 3), OrderType: models.OrderTypeService, Status: models.StatusCompleted},
	}

	report := CompanyRevenue("2025-03", ds)
	require.Contains(t, report.BySupplier, "Nordic")
	assert.Zero(t, report.BySupplier["Nordic"].WorkTime.Hours)
	assert.Zero(t, report.BySupplier["Nordic"].WorkTime.Amount)
}

func TestComputeMonthlyResultsProfitIdentity(t *testing.T) {
	ds := revenueFixture()
	ds.Employees = []models.Employee{
		{Id: "e1", Name: "Anna", InternalRate: 400, PAServiceRate: 250},
	}
	ds.WorkOrders = []models.WorkOrder{
		{CustomerId: "c1", EmployeeId: "e1", Date: date(2025, 3, 3), OrderType: models.OrderTypeService, Status: models.StatusCompleted, WorkHours: 2},
	}
	ds.InternalOrders = []models.InternalOrder{
		{EmployeeId: "e1", Date: date(2025, 3, 10), WorkHours: 3},
	}

	res := ComputeMonthlyResults("2025-03", ds)
	assert.Equal(t, "2025-03", res.Month)
	assert.InDelta(t, 1200, res.Summary.InternalTotal, 1e-9)
	assert.InDelta(t, 250, res.Summary.CommissionTotal, 1e-9)
	assert.InDelta(t, res.Revenue.GrandTotal, res.Summary.RevenueTotal, 1e-9)
	assert.InDelta(t,
		res.Summary.RevenueTotal-res.Summary.CommissionTotal-res.Summary.InternalTotal,
		res.Summary.Profit, 1e-9)
}

func TestComputeMonthlyResultsEmptyMonth(t *testing.T) {
	res := ComputeMonthlyResults("1999-01", revenueFixture())
	assert.Empty(t, res.Internal)
	assert.Empty(t, res.Commission)
	assert.Zero(t, res.Summary.Profit)
	assert.Empty(t, res.Revenue.BySupplier)
}
