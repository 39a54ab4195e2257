package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"wholenow/internal/adapters/http/middleware"
	"wholenow/internal/application/orchestrators"
	"wholenow/internal/application/projections"
	accountDomain "wholenow/internal/domain/account"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func isFormRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

// requireSession resolves the authenticated session or terminates the request:
// page requests redirect to /login, API requests get 401.
func requireSession(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		} else {
			http.Error(w, "authentication required", http.StatusUnauthorized)
		}
		return middleware.Session{}, false
	}
	return sess, true
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	email := ""
	if ok {
		role = sess.Role
		email = sess.Email
	}

	funcMap := template.FuncMap{
		"currentRole":  func() string { return role },
		"currentEmail": func() string { return email },
		"isLoggedIn":   func() bool { return role != "" },
		"isAdmin":      func() bool { return role == accountDomain.RoleAdmin },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"seq": func(from, to int) []int {
			if to < from {
				return nil
			}
			s := make([]int, 0, to-from+1)
			for i := from; i <= to; i++ {
				s = append(s, i)
			}
			return s
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleLogin handles GET (form) and POST (credential check) for /login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "login.html", map[string]any{})
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.LoginInput{}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Email = r.FormValue("Email")
		input.Password = r.FormValue("Password")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		if isHTMLRequest(r) {
			renderTemplate(w, r, "login.html", map[string]any{"Error": err.Error(), "Email": input.Email})
		} else {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleRegister handles GET (form) and POST (sign-up) for /register.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "register.html", map[string]any{})
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.CreateAccountInput{Role: accountDomain.RoleUser}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Email = r.FormValue("Email")
		input.Password = r.FormValue("Password")
		input.DisplayName = r.FormValue("DisplayName")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.Role = accountDomain.RoleUser
	}

	deps := orchestrators.CreateAccountDeps{
		AccountStore: stores.AccountStore,
		ProfileStore: stores.ProfileStore,
		EmailSender:  emailSender,
		FromAddress:  emailFromAddress,
	}
	accountID, err := orchestrators.ExecuteCreateAccount(r.Context(), input, deps)
	if err != nil {
		if isHTMLRequest(r) {
			renderTemplate(w, r, "register.html", map[string]any{
				"Error": err.Error(), "Email": input.Email, "DisplayName": input.DisplayName,
			})
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	// Sign the new account in directly
	token, err := sessions.Create(accountID, input.Email, accountDomain.RoleUser)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusCreated)
	}
}

// handleLogout handles POST /logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if cookie, err := r.Cookie("wholenow_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleDashboard handles GET / — the landing page with board shortcuts.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := projections.QueryGetSettings(r.Context(), projections.GetSettingsQuery{UserID: sess.AccountID},
		projections.GetSettingsDeps{ProfileStore: stores.ProfileStore, Now: timeNow})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "dashboard.html", map[string]any{
		"DisplayName": result.DisplayName,
		"HasAge":      result.HasAge,
		"Age":         result.Age,
		"Lifespan":    result.ExpectedLifespan,
	})
}

// handleSettings handles GET (page) and POST (save) for /settings.
func handleSettings(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	if r.Method == "GET" {
		result, err := projections.QueryGetSettings(ctx, projections.GetSettingsQuery{UserID: sess.AccountID},
			projections.GetSettingsDeps{ProfileStore: stores.ProfileStore, Now: timeNow})
		if err != nil {
			internalError(w, err)
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "settings.html", map[string]any{
				"Settings": result,
				"Saved":    r.URL.Query().Get("saved") == "1",
				"PwSaved":  r.URL.Query().Get("pwsaved") == "1",
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.UpdateProfileInput{UserID: sess.AccountID}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.DisplayName = r.FormValue("DisplayName")
		input.BirthDate = r.FormValue("BirthDate")
		if v := r.FormValue("ExpectedLifespan"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "Expected lifespan must be a number", http.StatusBadRequest)
				return
			}
			input.ExpectedLifespan = n
		}
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.UserID = sess.AccountID
	}

	err := orchestrators.ExecuteUpdateProfile(ctx, input, orchestrators.UpdateProfileDeps{
		ProfileStore: stores.ProfileStore,
		Now:          timeNow,
	})
	if err != nil {
		if isHTMLRequest(r) {
			result, qerr := projections.QueryGetSettings(ctx, projections.GetSettingsQuery{UserID: sess.AccountID},
				projections.GetSettingsDeps{ProfileStore: stores.ProfileStore, Now: timeNow})
			if qerr != nil {
				internalError(w, qerr)
				return
			}
			renderTemplate(w, r, "settings.html", map[string]any{"Settings": result, "Error": err.Error()})
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/settings?saved=1", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleChangePassword handles POST /settings/password.
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.ChangePasswordInput{AccountID: sess.AccountID}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.CurrentPassword = r.FormValue("CurrentPassword")
		input.NewPassword = r.FormValue("NewPassword")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.AccountID = sess.AccountID
	}

	err := orchestrators.ExecuteChangePassword(r.Context(), input, orchestrators.ChangePasswordDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		if isHTMLRequest(r) {
			result, qerr := projections.QueryGetSettings(r.Context(), projections.GetSettingsQuery{UserID: sess.AccountID},
				projections.GetSettingsDeps{ProfileStore: stores.ProfileStore, Now: timeNow})
			if qerr != nil {
				internalError(w, qerr)
				return
			}
			renderTemplate(w, r, "settings.html", map[string]any{"Settings": result, "PwError": err.Error()})
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/settings?pwsaved=1", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handlePerfSnapshot handles GET /perf — admin-only JSON dump of request and
// query timings from the ring buffer.
func handlePerfSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !middleware.IsAdmin(r.Context()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}

	since := timeNow().Add(-15 * time.Minute)
	if v := r.URL.Query().Get("minutes"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			since = timeNow().Add(-time.Duration(n) * time.Minute)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(perfCollector.Snapshot(since, 10))
}
