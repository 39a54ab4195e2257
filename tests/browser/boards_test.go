package browser_test

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// TestDay90_SetupAndEditCell tests configuring the tracker and saving a day note.
func TestDay90_SetupAndEditCell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/90day"); err != nil {
		t.Fatal(err)
	}

	// First visit: no start date yet, the setup form shows.
	if err := page.Locator("input[name=StartDate]").Fill("2025-01-01"); err != nil {
		t.Fatal(err)
	}
	if err := page.Locator("form[action='/90day/settings'] button[type=submit]").Click(); err != nil {
		t.Fatal(err)
	}
	if err := page.WaitForURL(app.BaseURL+"/90day", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("settings save did not land on the board: %v", err)
	}

	// 90 day cells plus the completion cell.
	count, err := page.Locator(".day90grid .cell").Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 91 {
		t.Fatalf("expected 91 cells, got %d", count)
	}

	// Open cell 1 in edit mode and save a note through the form flow.
	if _, err := page.Goto(app.BaseURL + "/90day?edit=day-1"); err != nil {
		t.Fatal(err)
	}
	if err := page.Locator(".day90grid textarea[name=Content]").Fill("ran 5k"); err != nil {
		t.Fatal(err)
	}
	if err := page.Locator(".day90grid button[type=submit]").Click(); err != nil {
		t.Fatal(err)
	}
	if err := page.WaitForURL(app.BaseURL+"/90day", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("note save did not land on the board: %v", err)
	}

	body, err := page.Locator(".day90grid").InnerText()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, "ran 5k") {
		t.Error("expected the saved note rendered in the grid")
	}
}

// TestLifeCalendar_EditCell tests saving a year cell through the form flow.
func TestLifeCalendar_EditCell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/lifecalendar?edit=25"); err != nil {
		t.Fatal(err)
	}
	if err := page.Locator(".lifegrid textarea[name=Content]").Fill("graduated"); err != nil {
		t.Fatal(err)
	}
	if err := page.Locator(".lifegrid button[type=submit]").Click(); err != nil {
		t.Fatal(err)
	}
	if err := page.WaitForURL(app.BaseURL+"/lifecalendar", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("cell save did not land on the calendar: %v", err)
	}

	body, err := page.Locator(".lifegrid").InnerText()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, "graduated") {
		t.Error("expected the saved cell rendered in the grid")
	}
}

// TestLearnProgress_AutosaveEntry tests the per-keystroke autosave on the weekly table.
func TestLearnProgress_AutosaveEntry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/learnprogress"); err != nil {
		t.Fatal(err)
	}

	// Type into Monday's goal; the script posts the record after a debounce.
	goal := page.Locator(`textarea[form="day-0"][name=Goal]`)
	if err := goal.Fill("read ch. 4"); err != nil {
		t.Fatal(err)
	}
	page.WaitForTimeout(1000)

	// Reload: the entry must have been persisted without a form submit.
	if _, err := page.Reload(); err != nil {
		t.Fatal(err)
	}
	saved, err := page.Locator(`textarea[form="day-0"][name=Goal]`).InputValue()
	if err != nil {
		t.Fatal(err)
	}
	if saved != "read ch. 4" {
		t.Errorf("expected autosaved goal after reload, got %q", saved)
	}
}
