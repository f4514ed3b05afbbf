package services

import (
	"time"

	"firmanager-backend/models"
)

// The monthly results engine. Everything in this file is a pure function of
// the Dataset snapshot it is handed: no queries, no mutation of inputs.
// Handlers load the tenant collections once and compute against that
// snapshot, so a concurrent refresh never changes an in-flight report.

// Dataset is the in-memory snapshot a monthly report is computed over.
type Dataset struct {
	Employees      []models.Employee
	Customers      []models.Customer
	Services       []models.Service
	SupplierRates  []models.SupplierRate
	WorkOrders     []models.WorkOrder
	InternalOrders []models.InternalOrder
}

// MonthKey truncates a timestamp to its ISO year-month in UTC ("2006-01").
// Bucketing is by this 7-character prefix, not by a timezone-aware calendar
// month.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// InternalPayrollRow is one employee's internal (non-billable) pay for a
// month.
type InternalPayrollRow struct {
	Name         string  `json:"name"`
	Initials     string  `json:"initials"`
	InternalRate float64 `json:"internal_rate"`
	Hours        float64 `json:"hours"`
	Amount       float64 `json:"amount"`
}

// InternalPayroll computes hours × internal rate per employee over the
// month's internal orders. Employees with no qualifying hours are omitted.
// Orders referencing an unknown employee are skipped.
func InternalPayroll(month string, ds Dataset) []InternalPayrollRow {
	byEmployee := make(map[string]*InternalPayrollRow, len(ds.Employees))
	for i := range ds.Employees {
		emp := &ds.Employees[i]
		byEmployee[emp.Id] = &InternalPayrollRow{
			Name:         emp.Name,
			Initials:     emp.Initials,
			InternalRate: emp.InternalRate,
		}
	}

	for i := range ds.InternalOrders {
		order := &ds.InternalOrders[i]
		if MonthKey(order.Date) != month {
			continue
		}
		row, ok := byEmployee[order.EmployeeId]
		if !ok {
			continue
		}
		row.Hours += order.WorkHours
		row.Amount += order.WorkHours * row.InternalRate
	}

	rows := make([]InternalPayrollRow, 0, len(ds.Employees))
	for i := range ds.Employees {
		if row := byEmployee[ds.Employees[i].Id]; row.Hours > 0 {
			rows = append(rows, *row)
		}
	}
	return rows
}

// CommissionRow is one employee's commission ("PA") pay for a month, broken
// into its five components. Total is always the sum of the five amounts.
type CommissionRow struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`

	PAServiceRate      float64 `json:"pa_service_rate"`
	PAInstallationRate float64 `json:"pa_installation_rate"`
	PAHourlyRate       float64 `json:"pa_hourly_rate"`
	PADriveRate        float64 `json:"pa_drive_rate"`
	PAKmRate           float64 `json:"pa_km_rate"`

	ServiceCount       int     `json:"service_count"`
	ServiceAmount      float64 `json:"service_amount"`
	InstallationCount  int     `json:"installation_count"`
	InstallationAmount float64 `json:"installation_amount"`
	ExtraHours         float64 `json:"extra_hours"`
	ExtraAmount        float64 `json:"extra_amount"`
	DriveHours         float64 `json:"drive_hours"`
	DriveAmount        float64 `json:"drive_amount"`
	Km                 float64 `json:"km"`
	KmAmount           float64 `json:"km_amount"`
	Total              float64 `json:"total"`
}

// CommissionPayroll computes the per-employee commission ledger from the
// month's completed work orders. Service and installation commissions are
// flat per occurrence; extra work pays per hour (extra orders only); drive
// time and kilometers pay on every completed order. Employees whose total
// comes out to exactly 0 are omitted.
func CommissionPayroll(month string, ds Dataset) []CommissionRow {
	byEmployee := make(map[string]*CommissionRow, len(ds.Employees))
	for i := range ds.Employees {
		emp := &ds.Employees[i]
		byEmployee[emp.Id] = &CommissionRow{
			Name:               emp.Name,
			Initials:           emp.Initials,
			PAServiceRate:      emp.PAServiceRate,
			PAInstallationRate: emp.PAInstallationRate,
			PAHourlyRate:       emp.PAHourlyRate,
			PADriveRate:        emp.PADriveRate,
			PAKmRate:           emp.PAKmRate,
		}
	}

	for i := range ds.WorkOrders {
		order := &ds.WorkOrders[i]
		if MonthKey(order.Date) != month || order.Status != models.StatusCompleted {
			continue
		}
		row, ok := byEmployee[order.EmployeeId]
		if !ok {
			continue
		}

		switch order.OrderType {
		case models.OrderTypeService:
			row.ServiceCount++
			row.ServiceAmount += row.PAServiceRate
		case models.OrderTypeInstallation:
			row.InstallationCount++
			row.InstallationAmount += row.PAInstallationRate
		}

		if order.OrderType == models.OrderTypeExtra && order.WorkHours > 0 {
			row.ExtraHours += order.WorkHours
			row.ExtraAmount += order.WorkHours * row.PAHourlyRate
		}
		if order.DriveHours > 0 {
			row.DriveHours += order.DriveHours
			row.DriveAmount += order.DriveHours * row.PADriveRate
		}
		if order.DrivenKm > 0 {
			row.Km += order.DrivenKm
			row.KmAmount += order.DrivenKm * row.PAKmRate
		}
	}

	rows := make([]CommissionRow, 0, len(ds.Employees))
	for i := range ds.Employees {
		row := byEmployee[ds.Employees[i].Id]
		row.Total = row.ServiceAmount + row.InstallationAmount + row.ExtraAmount + row.DriveAmount + row.KmAmount
		if row.Total > 0 {
			rows = append(rows, *row)
		}
	}
	return rows
}

// RateCard is the resolved supplier rate set an order's time-based revenue
// is priced with. Name is the aggregation key of the by-supplier breakdown.
type RateCard struct {
	Name          string  `json:"name"`
	WorkHourRate  float64 `json:"work_hour_rate"`
	DriveHourRate float64 `json:"drive_hour_rate"`
	KmRate        float64 `json:"km_rate"`
}

const (
	fallbackCardName = "Standard"
	unnamedCardName  = "Unknown"
)

// ResolveRateCard picks the rate card for a service: the service's linked
// card if it exists, else the first card in the collection, else a
// zero-valued default. The fallback order is load-bearing for revenue
// reproducibility; do not reorder.
func ResolveRateCard(service *models.Service, cards []models.SupplierRate) RateCard {
	firstOrZero := func() RateCard {
		if len(cards) == 0 {
			return RateCard{Name: fallbackCardName}
		}
		first := cards[0]
		name := first.Name
		if name == "" {
			name = fallbackCardName
		}
		return RateCard{
			Name:          name,
			WorkHourRate:  first.WorkHourRate,
			DriveHourRate: first.DriveHourRate,
			KmRate:        first.KmRate,
		}
	}

	if service == nil || service.RateCardId == "" {
		return firstOrZero()
	}
	for i := range cards {
		if cards[i].Id == service.RateCardId {
			name := cards[i].Name
			if name == "" {
				name = unnamedCardName
			}
			return RateCard{
				Name:          name,
				WorkHourRate:  cards[i].WorkHourRate,
				DriveHourRate: cards[i].DriveHourRate,
				KmRate:        cards[i].KmRate,
			}
		}
	}
	return firstOrZero()
}

// CountBucket accumulates a flat-priced revenue category.
type CountBucket struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// HoursBucket accumulates an hourly-priced revenue category.
type HoursBucket struct {
	Hours  float64 `json:"hours"`
	Amount float64 `json:"amount"`
}

// KmBucket accumulates a distance-priced revenue category.
type KmBucket struct {
	Km     float64 `json:"km"`
	Amount float64 `json:"amount"`
}

// SupplierBreakdown is the time-based revenue attributed to one supplier
// rate card.
type SupplierBreakdown struct {
	WorkTime  HoursBucket `json:"work_time"`
	DriveTime HoursBucket `json:"drive_time"`
	Km        KmBucket    `json:"km"`
}

// RevenueReport is the company's invoiced/earned income for a month:
// flat service prices plus supplier-rate time and distance charges.
type RevenueReport struct {
	ServiceRevenue      CountBucket `json:"service_revenue"`
	InstallationRevenue CountBucket `json:"installation_revenue"`
	ExtraRevenue        CountBucket `json:"extra_revenue"`

	WorkTimeRevenue  HoursBucket `json:"work_time_revenue"`
	DriveTimeRevenue HoursBucket `json:"drive_time_revenue"`
	KmRevenue        KmBucket    `json:"km_revenue"`

	ServiceBasedTotal float64 `json:"service_based_total"`
	TimeBasedTotal    float64 `json:"time_based_total"`
	GrandTotal        float64 `json:"grand_total"`

	BySupplier map[string]*SupplierBreakdown `json:"by_supplier"`
}

// CompanyRevenue computes the month's revenue ledger from completed work
// orders. Per order, the customer's service is resolved via its type number
// (legacy service number as fallback); an order with no resolvable service
// still earns time-based revenue through the fallback rate card. A
// by-supplier entry is recorded for every completed order, so suppliers with
// only flat-priced work show up zero-valued.
func CompanyRevenue(month string, ds Dataset) RevenueReport {
	report := RevenueReport{BySupplier: make(map[string]*SupplierBreakdown)}

	customersByID := make(map[string]*models.Customer, len(ds.Customers))
	for i := range ds.Customers {
		customersByID[ds.Customers[i].Id] = &ds.Customers[i]
	}
	servicesByNumber := make(map[string]*models.Service, len(ds.Services))
	for i := range ds.Services {
		servicesByNumber[ds.Services[i].ServiceNumber] = &ds.Services[i]
	}

	for i := range ds.WorkOrders {
		order := &ds.WorkOrders[i]
		if MonthKey(order.Date) != month || order.Status != models.StatusCompleted {
			continue
		}

		var service *models.Service
		if customer := customersByID[order.CustomerId]; customer != nil {
			serviceNr := customer.TypeNumber
			if serviceNr == "" {
				serviceNr = customer.ServiceNumber
			}
			if serviceNr != "" {
				service = servicesByNumber[serviceNr]
			}
		}

		rates := ResolveRateCard(service, ds.SupplierRates)

		breakdown := report.BySupplier[rates.Name]
		if breakdown == nil {
			breakdown = &SupplierBreakdown{}
			report.BySupplier[rates.Name] = breakdown
		}

		if service != nil {
			switch order.OrderType {
			case models.OrderTypeService:
				report.ServiceRevenue.Count++
				report.ServiceRevenue.Amount += service.FixedPrice
			case models.OrderTypeInstallation:
				report.InstallationRevenue.Count++
				// Tier-3 rate, falling back to the flat price when the tier
				// is unset. Observed billing behavior; keep as-is pending
				// product-owner confirmation.
				if service.ExtraTier3 != 0 {
					report.InstallationRevenue.Amount += service.ExtraTier3
				} else {
					report.InstallationRevenue.Amount += service.FixedPrice
				}
			case models.OrderTypeExtra:
				report.ExtraRevenue.Count++
				report.ExtraRevenue.Amount += service.ExtraTier1
			}
		}

		if order.WorkHours > 0 {
			report.WorkTimeRevenue.Hours += order.WorkHours
			report.WorkTimeRevenue.Amount += order.WorkHours * rates.WorkHourRate
			breakdown.WorkTime.Hours += order.WorkHours
			breakdown.WorkTime.Amount += order.WorkHours * rates.WorkHourRate
		}
		if order.DriveHours > 0 {
			report.DriveTimeRevenue.Hours += order.DriveHours
			report.DriveTimeRevenue.Amount += order.DriveHours * rates.DriveHourRate
			breakdown.DriveTime.Hours += order.DriveHours
			breakdown.DriveTime.Amount += order.DriveHours * rates.DriveHourRate
		}
		if order.DrivenKm > 0 {
			report.KmRevenue.Km += order.DrivenKm
			report.KmRevenue.Amount += order.DrivenKm * rates.KmRate
			breakdown.Km.Km += order.DrivenKm
			breakdown.Km.Amount += order.DrivenKm * rates.KmRate
		}
	}

	report.ServiceBasedTotal = report.ServiceRevenue.Amount + report.InstallationRevenue.Amount + report.ExtraRevenue.Amount
	report.TimeBasedTotal = report.WorkTimeRevenue.Amount + report.DriveTimeRevenue.Amount + report.KmRevenue.Amount
	report.GrandTotal = report.ServiceBasedTotal + report.TimeBasedTotal

	return report
}

// Summary is the month's bottom line.
type Summary struct {
	InternalTotal   float64 `json:"internal_total"`
	CommissionTotal float64 `json:"commission_total"`
	RevenueTotal    float64 `json:"revenue_total"`
	Profit          float64 `json:"profit"`
}

// MonthlyResults bundles the three ledgers and the derived summary.
type MonthlyResults struct {
	Month      string               `json:"month"`
	Internal   []InternalPayrollRow `json:"internal_payroll"`
	Commission []CommissionRow      `json:"commission_payroll"`
	Revenue    RevenueReport        `json:"company_revenue"`
	Summary    Summary              `json:"summary"`
}

// ComputeMonthlyResults runs all three ledgers for a month and derives
// profit = revenue − commission − internal.
func ComputeMonthlyResults(month string, ds Dataset) MonthlyResults {
	internal := InternalPayroll(month, ds)
	commission := CommissionPayroll(month, ds)
	revenue := CompanyRevenue(month, ds)

	var summary Summary
	for i := range internal {
		summary.InternalTotal += internal[i].Amount
	}
	for i := range commission {
		summary.CommissionTotal += commission[i].Total
	}
	summary.RevenueTotal = revenue.GrandTotal
	summary.Profit = summary.RevenueTotal - summary.CommissionTotal - summary.InternalTotal

	return MonthlyResults{
		Month:      month,
		Internal:   internal,
		Commission: commission,
		Revenue:    revenue,
		Summary:    summary,
	}
}
