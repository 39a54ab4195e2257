package web

import "net/http"

// registerRoutes maps URL paths to handlers. Authentication is enforced
// per-handler via requireSession so unauthenticated page requests redirect
// to /login while API requests get 401.
func registerRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/register", handleRegister)
	mux.HandleFunc("/logout", handleLogout)

	// Dashboard
	mux.HandleFunc("/", handleDashboard)

	// Settings
	mux.HandleFunc("/settings", handleSettings)
	mux.HandleFunc("/settings/password", handleChangePassword)

	// 90-day tracker
	mux.HandleFunc("/90day", handleDay90Board)
	mux.HandleFunc("/90day/note", handleDay90SaveNote)
	mux.HandleFunc("/90day/settings", handleDay90SaveSettings)
	mux.HandleFunc("/90day/goal", handleDay90SaveGoal)
	mux.HandleFunc("/90day/remark", handleDay90SaveRemark)

	// Learning progress
	mux.HandleFunc("/learnprogress", handleLearnWeek)
	mux.HandleFunc("/learnprogress/entry", handleLearnSaveEntry)

	// Life calendar
	mux.HandleFunc("/lifecalendar", handleLifeCalendar)
	mux.HandleFunc("/lifecalendar/cell", handleLifeSaveCell)

	// Admin
	mux.HandleFunc("/perf", handlePerfSnapshot)
}
