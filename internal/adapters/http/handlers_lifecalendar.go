package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wholenow/internal/application/orchestrators"
	"wholenow/internal/application/projections"
	"wholenow/internal/domain/grid"
)

// handleLifeCalendar handles GET /lifecalendar. The optional ?edit=N query
// opens one age-year cell in edit mode for the no-script form flow.
func handleLifeCalendar(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetLifeCalendar(r.Context(), projections.GetLifeCalendarQuery{UserID: sess.AccountID},
		projections.GetLifeCalendarDeps{
			LifeStore:    stores.LifeStore,
			ProfileStore: stores.ProfileStore,
			Now:          timeNow,
		})
	if err != nil {
		internalError(w, err)
		return
	}

	if !isHTMLRequest(r) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	editor := grid.NewEditor(calendarContents(result))
	editingYear := 0
	if v := r.URL.Query().Get("edit"); v != "" {
		if year, err := strconv.Atoi(v); err == nil && year >= 1 && year <= result.Lifespan {
			editor.Begin(year)
			editingYear = year
		}
	}

	renderTemplate(w, r, "lifecalendar.html", map[string]any{
		"Calendar":    result,
		"EditingYear": editingYear,
		"Draft":       editor.Draft(),
	})
}

func calendarContents(result projections.LifeCalendarResult) map[int]string {
	cells := make(map[int]string)
	for _, row := range result.Rows {
		for _, c := range row {
			if c.Content != "" {
				cells[c.Year] = c.Content
			}
		}
	}
	return cells
}

// handleLifeSaveCell handles POST /lifecalendar/cell.
func handleLifeSaveCell(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.SaveLifeCellInput{UserID: sess.AccountID}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		year, err := strconv.Atoi(r.FormValue("Year"))
		if err != nil {
			http.Error(w, "Year must be a number", http.StatusBadRequest)
			return
		}
		input.Year = year
		input.Content = r.FormValue("Content")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.UserID = sess.AccountID
	}

	err := orchestrators.ExecuteSaveLifeCell(r.Context(), input, orchestrators.SaveLifeCellDeps{
		LifeStore:    stores.LifeStore,
		ProfileStore: stores.ProfileStore,
		Now:          timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/lifecalendar", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}
