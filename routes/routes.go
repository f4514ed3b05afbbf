package routes

import (
	"github.com/gofiber/fiber/v2"

	"firmanager-backend/controllers"
	"firmanager-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)

	// License key generation is operator-only (admin key), not tenant-scoped.
	api.Post("/license/generate", controllers.GenerateLicense)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// License context, then the read-only gate for expired accounts.
	// RequireWritable exempts key activation so expired accounts can renew.
	protected.Use(middlewares.LoadLicense())
	protected.Use(middlewares.RequireWritable())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request tenant transaction (pins search_path and commits/rolls back)
	protected.Use(middlewares.TenantTx())

	protected.Get("/me", controllers.Me)

	// License self-service
	protected.Get("/license", controllers.CheckLicense)
	protected.Post("/license/validate", controllers.ValidateLicense)

	// Customers
	protected.Post("/customer", controllers.CreateCustomer)
	protected.Get("/customers", controllers.GetCustomers)
	protected.Get("/customer/:id", controllers.GetCustomer)
	protected.Put("/customer/:id", controllers.UpdateCustomer)
	protected.Delete("/customer/:id", controllers.DeleteCustomer)
	protected.Post("/customers/import", controllers.ImportCustomersExcel)

	// Employees
	protected.Post("/employee", controllers.CreateEmployee)
	protected.Get("/employees", controllers.GetEmployees)
	protected.Get("/employee/:id", controllers.GetEmployee)
	protected.Put("/employee/:id", controllers.UpdateEmployee)
	protected.Delete("/employee/:id", controllers.DeleteEmployee)

	// Services and supplier rate cards
	protected.Post("/service", controllers.CreateService)
	protected.Get("/services", controllers.GetServices)
	protected.Put("/service/:id", controllers.UpdateService)
	protected.Delete("/service/:id", controllers.DeleteService)
	protected.Post("/services/import", controllers.ImportServicesExcel)
	protected.Post("/supplier-rate", controllers.CreateSupplierRate)
	protected.Get("/supplier-rates", controllers.GetSupplierRates)
	protected.Put("/supplier-rate/:id", controllers.UpdateSupplierRate)
	protected.Delete("/supplier-rate/:id", controllers.DeleteSupplierRate)

	// Work orders
	protected.Post("/work-order", controllers.CreateWorkOrder)
	protected.Get("/work-orders", controllers.GetWorkOrders)
	protected.Get("/work-order/:id", controllers.GetWorkOrder)
	protected.Put("/work-order/:id", controllers.UpdateWorkOrder)
	protected.Delete("/work-order/:id", controllers.DeleteWorkOrder)

	// Internal orders
	protected.Post("/internal-order", controllers.CreateInternalOrder)
	protected.Get("/internal-orders", controllers.GetInternalOrders)
	protected.Put("/internal-order/:id", controllers.UpdateInternalOrder)
	protected.Delete("/internal-order/:id", controllers.DeleteInternalOrder)

	// Products
	protected.Post("/product", controllers.CreateProduct)
	protected.Get("/products", controllers.GetProducts)
	protected.Put("/product/:id", controllers.UpdateProduct)
	protected.Delete("/product/:id", controllers.DeleteProduct)
	protected.Post("/products/import", controllers.ImportProductsExcel)

	// Routes
	protected.Post("/routes", controllers.CreateRoute)
	protected.Get("/routes", controllers.GetRoutes)
	protected.Get("/routes/:id", controllers.GetRoute)
	protected.Delete("/routes/:id", controllers.DeleteRoute)

	// Monthly results and dashboard
	protected.Get("/results", controllers.GetResults)
	protected.Get("/dashboard", controllers.GetDashboard)

	// Economy
	protected.Post("/payout", controllers.CreatePayout)
	protected.Get("/payouts", controllers.GetPayouts)
	protected.Delete("/payout/:id", controllers.DeletePayout)

	// HSE, behind the hms license feature
	hse := protected.Group("/hse", middlewares.RequireFeature("hms"))
	hse.Post("/risk-assessment", controllers.CreateRiskAssessment)
	hse.Get("/risk-assessments", controllers.GetRiskAssessments)
	hse.Post("/incident", controllers.CreateIncident)
	hse.Get("/incidents", controllers.GetIncidents)
	hse.Post("/training", controllers.CreateTraining)
	hse.Get("/trainings", controllers.GetTrainings)
	hse.Post("/equipment", controllers.CreateEquipment)
	hse.Get("/equipment", controllers.GetEquipment)
}
