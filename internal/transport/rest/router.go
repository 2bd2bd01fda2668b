package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/openclerk/backoffice/internal/activitylog"
	"github.com/openclerk/backoffice/internal/audittrail"
	"github.com/openclerk/backoffice/internal/auth"
	"github.com/openclerk/backoffice/internal/authz"
	"github.com/openclerk/backoffice/internal/core/entity"
	"github.com/openclerk/backoffice/internal/transport/middleware"
	"github.com/openclerk/backoffice/internal/transport/swagger"
)

// Handlers collects everything the router mounts.
type Handlers struct {
	Auth        *auth.Handler
	Authz       *authz.Handler
	ActivityLog *activitylog.Handler
	AuditTrail  *audittrail.Handler

	Customers      *EntityHandler[entity.Customer]
	Leads          *EntityHandler[entity.Lead]
	Employees      *EntityHandler[entity.Employee]
	LeaveRequests  *EntityHandler[entity.LeaveRequest]
	PayrollRecords *EntityHandler[entity.PayrollRecord]
	Accounts       *EntityHandler[entity.Account]
	Transactions   *EntityHandler[entity.Transaction]
	Budgets        *EntityHandler[entity.Budget]
	Products       *EntityHandler[entity.Product]
	StockMovements *EntityHandler[entity.StockMovement]
	Warehouses     *EntityHandler[entity.Warehouse]
	Projects       *EntityHandler[entity.Project]
	ProjectTasks   *EntityHandler[entity.ProjectTask]
	TimeEntries    *EntityHandler[entity.TimeEntry]
	Roles          *EntityHandler[entity.Role]
	Permissions    *EntityHandler[entity.Permission]
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		if h.Auth == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			guard := middleware.RequirePermission

			mountEntity(pr, "/customers", h.Customers, "Customer", guard)
			mountEntity(pr, "/leads", h.Leads, "Lead", guard)
			mountEntity(pr, "/employees", h.Employees, "Employee", guard)
			mountEntity(pr, "/leave-requests", h.LeaveRequests, "LeaveRequest", guard)
			mountEntity(pr, "/payroll-records", h.PayrollRecords, "PayrollRecord", guard)
			mountEntity(pr, "/accounts", h.Accounts, "Account", guard)
			mountEntity(pr, "/transactions", h.Transactions, "Transaction", guard)
			mountEntity(pr, "/budgets", h.Budgets, "Budget", guard)
			mountEntity(pr, "/products", h.Products, "Product", guard)
			mountEntity(pr, "/stock-movements", h.StockMovements, "StockMovement", guard)
			mountEntity(pr, "/warehouses", h.Warehouses, "Warehouse", guard)
			mountEntity(pr, "/projects", h.Projects, "Project", guard)
			mountEntity(pr, "/project-tasks", h.ProjectTasks, "ProjectTask", guard)
			mountEntity(pr, "/time-entries", h.TimeEntries, "TimeEntry", guard)
			mountEntity(pr, "/roles", h.Roles, "Role", guard)
			mountEntity(pr, "/permissions", h.Permissions, "Permission", guard)

			// Role and permission assignment
			if h.Authz != nil {
				pr.Group(func(ar chi.Router) {
					ar.Use(guard("Role", "Update"))
					ar.Get("/users/{userID}/roles", h.Authz.GetUserRoles)
					ar.Get("/users/{userID}/permissions", h.Authz.GetUserPermissions)
					ar.Get("/users/{userID}/access", h.Authz.CheckPermission)
					ar.Post("/users/{userID}/roles", h.Authz.AssignRole)
					ar.Delete("/users/{userID}/roles/{roleID}", h.Authz.RemoveRole)
					ar.Post("/roles/{roleID}/permissions", h.Authz.GrantPermission)
					ar.Delete("/roles/{roleID}/permissions/{permissionID}", h.Authz.RevokePermission)
				})
			}

			// Activity log and audit trail, read-only
			if h.ActivityLog != nil {
				pr.Group(func(lr chi.Router) {
					lr.Use(guard("ActivityLog", "Read"))
					lr.Get("/activities", h.ActivityLog.GetRecent)
					lr.Get("/users/{userID}/activities", h.ActivityLog.GetByUser)
				})
			}
			if h.AuditTrail != nil {
				pr.Group(func(tr chi.Router) {
					tr.Use(guard("AuditTrail", "Read"))
					tr.Get("/audit/{entityType}/{entityID}", h.AuditTrail.GetEntityTrail)
					tr.Get("/users/{userID}/audit", h.AuditTrail.GetUserTrail)
				})
			}
		})
	})
}

func mountEntity[T any](r chi.Router, pattern string, h *EntityHandler[T], module string, guard func(module, action string) func(http.Handler) http.Handler) {
	if h == nil {
		return
	}
	r.Route(pattern, func(er chi.Router) {
		RegisterCRUDRoutes(er, h, module, guard)
	})
}
