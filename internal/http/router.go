package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jrs-backend/internal/handlers"
	"jrs-backend/internal/middleware"
	"jrs-backend/internal/models"
	"jrs-backend/internal/realtime"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	priceHandler *handlers.PriceHandler,
	jobHandler *handlers.JobHandler,
	auditLogHandler *handlers.AuditLogHandler,
	reportHandler *handlers.ReportHandler,
	dashboardHandler *handlers.DashboardHandler,
	monitoringHandler *handlers.MonitoringHandler,
	healthHandler *handlers.HealthHandler,
	hub *realtime.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/healthz", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Realtime updates for the operations board
	r.HandleFunc("/ws", hub.ServeWS).Methods("GET")

	// Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.Use(authMiddleware.RequireAdmin)
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("", userHandler.CreateUser).Methods("POST")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.UpdateUser).Methods("PUT")
	usersAPI.HandleFunc("/{id}", userHandler.DeleteUser).Methods("DELETE")
	usersAPI.HandleFunc("/{id}/toggle-active", userHandler.ToggleActiveStatus).Methods("PATCH")

	// Price catalog. Everyone logged in can read and quote, only admins
	// replace the catalog.
	pricesAPI := r.PathPrefix("/api/prices").Subrouter()
	pricesAPI.Use(authMiddleware.Authenticate)
	pricesAPI.HandleFunc("", priceHandler.ListCatalog).Methods("GET")
	pricesAPI.HandleFunc("/quote", priceHandler.Quote).Methods("GET")
	pricesAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(priceHandler.ReplaceCatalog)).ServeHTTP).Methods("PUT")

	booking := authMiddleware.RequireRole(models.RoleAdmin, models.RoleBooking)
	dispatch := authMiddleware.RequireRole(models.RoleAdmin, models.RoleDispatcher)
	accounting := authMiddleware.RequireRole(models.RoleAdmin, models.RoleAccountant)

	// Jobs
	jobsAPI := r.PathPrefix("/api/jobs").Subrouter()
	jobsAPI.Use(authMiddleware.Authenticate)
	jobsAPI.HandleFunc("", jobHandler.ListJobs).Methods("GET")
	jobsAPI.HandleFunc("", booking(http.HandlerFunc(jobHandler.CreateJob)).ServeHTTP).Methods("POST")
	jobsAPI.HandleFunc("/{id}", jobHandler.GetJob).Methods("GET")
	jobsAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(jobHandler.DeleteJob)).ServeHTTP).Methods("DELETE")
	jobsAPI.HandleFunc("/{id}/assign", dispatch(http.HandlerFunc(jobHandler.AssignJob)).ServeHTTP).Methods("POST")
	jobsAPI.HandleFunc("/{id}/complete", dispatch(http.HandlerFunc(jobHandler.CompleteJob)).ServeHTTP).Methods("POST")
	jobsAPI.HandleFunc("/{id}/drops/{drop}/pod", dispatch(http.HandlerFunc(jobHandler.UploadPOD)).ServeHTTP).Methods("POST")
	jobsAPI.HandleFunc("/{id}/cancel", booking(http.HandlerFunc(jobHandler.CancelJob)).ServeHTTP).Methods("POST")
	jobsAPI.HandleFunc("/{id}/approve", accounting(http.HandlerFunc(jobHandler.ApproveJob)).ServeHTTP).Methods("POST")
	jobsAPI.HandleFunc("/{id}/reject", accounting(http.HandlerFunc(jobHandler.RejectJob)).ServeHTTP).Methods("POST")
	jobsAPI.HandleFunc("/{id}/billing", accounting(http.HandlerFunc(jobHandler.SetBilling)).ServeHTTP).Methods("POST")
	jobsAPI.HandleFunc("/{id}/paid", accounting(http.HandlerFunc(jobHandler.MarkPaid)).ServeHTTP).Methods("POST")
	jobsAPI.HandleFunc("/{id}/cost", dispatch(http.HandlerFunc(jobHandler.SetBaseCost)).ServeHTTP).Methods("PATCH")
	jobsAPI.HandleFunc("/{id}/selling-price", accounting(http.HandlerFunc(jobHandler.SetSellingPrice)).ServeHTTP).Methods("PATCH")
	jobsAPI.HandleFunc("/{id}/extra-charges", accounting(http.HandlerFunc(jobHandler.AddExtraCharge)).ServeHTTP).Methods("POST")
	jobsAPI.HandleFunc("/{id}/extra-charges/{charge_id}", accounting(http.HandlerFunc(jobHandler.RemoveExtraCharge)).ServeHTTP).Methods("DELETE")

	// Audit logs
	auditAPI := r.PathPrefix("/api/audit-logs").Subrouter()
	auditAPI.Use(authMiddleware.Authenticate)
	auditAPI.HandleFunc("", auditLogHandler.ListAuditLogs).Methods("GET")
	auditAPI.HandleFunc("/job/{id}", auditLogHandler.ListJobAuditLogs).Methods("GET")

	// Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/jobs.xlsx", reportHandler.ExportJobs).Methods("GET")
	reportsAPI.HandleFunc("/billing/{id}.pdf", accounting(http.HandlerFunc(reportHandler.BillingPDF)).ServeHTTP).Methods("GET")

	// Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("/stats", dashboardHandler.Stats).Methods("GET")

	// Infrastructure monitoring (admin only)
	monitoringAPI := r.PathPrefix("/api/monitoring").Subrouter()
	monitoringAPI.Use(authMiddleware.Authenticate)
	monitoringAPI.Use(authMiddleware.RequireAdmin)
	monitoringAPI.HandleFunc("", monitoringHandler.Snapshot).Methods("GET")

	return r
}
