package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"wholenow/internal/application/orchestrators"
	"wholenow/internal/application/projections"
	"wholenow/internal/domain/day90"
	"wholenow/internal/domain/grid"
)

// handleDay90Board handles GET /90day. The optional ?edit=day-N query opens
// one cell in edit mode for the no-script form flow; the same state machine
// backs the script-assisted blur saves.
func handleDay90Board(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetDay90Board(r.Context(), projections.GetDay90BoardQuery{UserID: sess.AccountID},
		projections.GetDay90BoardDeps{TrackerStore: stores.TrackerStore, Now: timeNow})
	if err != nil {
		internalError(w, err)
		return
	}

	if !isHTMLRequest(r) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	// Single-focus edit state: at most one cell renders as a textarea.
	editor := grid.NewEditor(boardContents(result))
	editingIndex := 0
	if key := r.URL.Query().Get("edit"); key != "" {
		if n, err := day90.ParseKey(key); err == nil {
			editor.Begin(n)
			editingIndex = n
		}
	}

	renderTemplate(w, r, "day90.html", map[string]any{
		"Board":        result,
		"EditingIndex": editingIndex,
		"Draft":        editor.Draft(),
	})
}

func boardContents(result projections.Day90BoardResult) map[int]string {
	cells := make(map[int]string, len(result.Cells))
	for _, c := range result.Cells {
		cells[c.Index] = c.Content
	}
	return cells
}

// handleDay90SaveNote handles POST /90day/note — the commit produced by
// defocusing a cell.
func handleDay90SaveNote(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.SaveDayNoteInput{UserID: sess.AccountID}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		n, err := strconv.Atoi(r.FormValue("Index"))
		if err != nil {
			http.Error(w, "Index must be a number", http.StatusBadRequest)
			return
		}
		input.Index = n
		input.Content = r.FormValue("Content")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.UserID = sess.AccountID
	}

	err := orchestrators.ExecuteSaveDayNote(r.Context(), input, orchestrators.SaveDayNoteDeps{
		TrackerStore: stores.TrackerStore,
		Now:          timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/90day", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleDay90SaveSettings handles POST /90day/settings.
func handleDay90SaveSettings(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.SaveTrackerSettingsInput{UserID: sess.AccountID}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.StartDate = r.FormValue("StartDate")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.UserID = sess.AccountID
	}

	err := orchestrators.ExecuteSaveTrackerSettings(r.Context(), input, orchestrators.SaveTrackerSettingsDeps{
		TrackerStore: stores.TrackerStore,
		Now:          timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/90day", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleDay90SaveGoal handles POST /90day/goal.
func handleDay90SaveGoal(w http.ResponseWriter, r *http.Request) {
	saveDay90Meta(w, r, orchestrators.ExecuteSaveTrackerGoal)
}

// handleDay90SaveRemark handles POST /90day/remark.
func handleDay90SaveRemark(w http.ResponseWriter, r *http.Request) {
	saveDay90Meta(w, r, orchestrators.ExecuteSaveTrackerRemark)
}

// saveDay90Meta is the shared POST handler for the goal and remark documents.
func saveDay90Meta(w http.ResponseWriter, r *http.Request,
	execute func(ctx context.Context, input orchestrators.SaveDayNoteInput, deps orchestrators.SaveTrackerSettingsDeps) error) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.SaveDayNoteInput{UserID: sess.AccountID}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Content = r.FormValue("Content")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.UserID = sess.AccountID
	}

	err := execute(r.Context(), input, orchestrators.SaveTrackerSettingsDeps{
		TrackerStore: stores.TrackerStore,
		Now:          timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/90day", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}
