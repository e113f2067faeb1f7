package web

import (
	"net/http"

	"clubhouse/internal/adapters/http/middleware"
	accountDomain "clubhouse/internal/domain/account"
)

// registerRoutes attaches every handler to the mux. Capability gates follow
// the static permission table: clerks take payments, treasurers also read
// reports, admins do everything.
func registerRoutes(mux *http.ServeMux) {
	perm := middleware.RequirePermission

	// Session
	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.Handle("/api/accounts", middleware.RequireRole(accountDomain.RoleAdmin)(http.HandlerFunc(handleCreateAccount)))

	// People and payments
	fees := perm(accountDomain.PermFees)
	mux.Handle("/api/members", fees(http.HandlerFunc(handleMembers)))
	mux.Handle("/api/members/{dni}", fees(http.HandlerFunc(handleMemberByDNI)))
	mux.Handle("/api/guests", fees(http.HandlerFunc(handleGuests)))
	mux.Handle("/api/nonmembers", fees(http.HandlerFunc(handleNonMembers)))
	mux.Handle("/api/people/{dni}", fees(http.HandlerFunc(handlePersonByDNI)))
	mux.Handle("/api/enrollments", fees(http.HandlerFunc(handleEnrollments)))

	// Catalog
	catalog := perm(accountDomain.PermCatalog)
	mux.Handle("GET /api/sports", fees(http.HandlerFunc(handleSports)))
	mux.Handle("POST /api/sports", catalog(http.HandlerFunc(handleSports)))
	mux.Handle("GET /api/sports/{name}", fees(http.HandlerFunc(handleSportByName)))
	mux.Handle("DELETE /api/sports/{name}", catalog(http.HandlerFunc(handleSportByName)))
	mux.Handle("/api/sports/{name}/roster", fees(http.HandlerFunc(handleSportRoster)))

	// Instructors
	instructors := perm(accountDomain.PermInstructors)
	mux.Handle("/api/instructors", instructors(http.HandlerFunc(handleInstructors)))
	mux.Handle("/api/instructors/{dni}", instructors(http.HandlerFunc(handleInstructorByDNI)))

	// Reporting
	reporting := perm(accountDomain.PermReporting)
	mux.Handle("/api/reports/monthly", reporting(http.HandlerFunc(handleMonthlyReport)))
	mux.Handle("/api/reports/lifetime", reporting(http.HandlerFunc(handleLifetimeReport)))
}
