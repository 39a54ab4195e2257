package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"wholenow/internal/application/orchestrators"
	"wholenow/internal/application/projections"
	"wholenow/internal/domain/learnprogress"
)

// handleLearnWeek handles GET /learnprogress?year=&month=&week=. Without
// query parameters the week containing today is selected.
func handleLearnWeek(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := projections.GetLearnWeekQuery{UserID: sess.AccountID}
	q := r.URL.Query()
	if y, err := strconv.Atoi(q.Get("year")); err == nil {
		query.Year = y
	}
	if m, err := strconv.Atoi(q.Get("month")); err == nil && m >= 1 && m <= 12 {
		query.Month = time.Month(m)
	}
	if wk, err := strconv.Atoi(q.Get("week")); err == nil {
		query.Week = wk
	}
	// A partial selection falls back to the current week.
	if query.Month == 0 {
		query.Year = 0
	}

	result, err := projections.QueryGetLearnWeek(r.Context(), query,
		projections.GetLearnWeekDeps{LearnStore: stores.LearnStore, Now: timeNow})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "learnprogress.html", map[string]any{"Week": result})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// learnEntryRequest is the JSON body for the autosave endpoint: one day's
// full record, saved on every edit.
type learnEntryRequest struct {
	Year  int                 `json:"year"`
	Month int                 `json:"month"` // 1-based
	Week  int                 `json:"week"`
	Day   int                 `json:"day"`
	Entry learnprogress.Entry `json:"entry"`
}

// handleLearnSaveEntry handles POST /learnprogress/entry.
func handleLearnSaveEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.SaveLearnEntryInput{UserID: sess.AccountID}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		year, err1 := strconv.Atoi(r.FormValue("Year"))
		month, err2 := strconv.Atoi(r.FormValue("Month"))
		week, err3 := strconv.Atoi(r.FormValue("Week"))
		day, err4 := strconv.Atoi(r.FormValue("Day"))
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			http.Error(w, "Year, Month, Week and Day must be numbers", http.StatusBadRequest)
			return
		}
		input.Year, input.Month, input.Week, input.Day = year, time.Month(month), week, day
		input.Entry = learnprogress.Entry{
			Goal:        r.FormValue("Goal"),
			Achievement: r.FormValue("Achievement"),
			Hours:       r.FormValue("Hours"),
			Notes:       r.FormValue("Notes"),
			Keywords:    r.FormValue("Keywords"),
			Question:    r.FormValue("Question"),
			Ideas:       r.FormValue("Ideas"),
		}
	} else {
		var req learnEntryRequest
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.Year = req.Year
		input.Month = time.Month(req.Month)
		input.Week = req.Week
		input.Day = req.Day
		input.Entry = req.Entry
	}

	if input.Month < time.January || input.Month > time.December {
		http.Error(w, "Month must be between 1 and 12", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteSaveLearnEntry(r.Context(), input, orchestrators.SaveLearnEntryDeps{
		LearnStore: stores.LearnStore,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, weekURL(input.Year, input.Month, input.Week), http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

func weekURL(year int, month time.Month, week int) string {
	return "/learnprogress?year=" + strconv.Itoa(year) +
		"&month=" + strconv.Itoa(int(month)) +
		"&week=" + strconv.Itoa(week)
}
