package projections

import (
	"context"
	"time"

	trackerStore "wholenow/internal/adapters/storage/day90"
	"wholenow/internal/domain/day90"
	"wholenow/internal/domain/grid"
)

// Day90BoardStore defines the tracker store interface needed by the board projection.
type Day90BoardStore interface {
	LoadBoard(ctx context.Context, userID string) (trackerStore.Board, error)
}

// GetDay90BoardQuery carries input for the board projection.
type GetDay90BoardQuery struct {
	UserID string
}

// GetDay90BoardDeps holds dependencies for the board projection.
type GetDay90BoardDeps struct {
	TrackerStore Day90BoardStore
	Now          func() time.Time
}

// Day90Cell is one cell of the rendered tracker grid.
type Day90Cell struct {
	Index        int
	Key          string // stable storage key, e.g. "day-37"
	DateLabel    string // "Jan 2"; empty for the completion cell
	Phase        grid.Phase
	Content      string // markdown, verbatim
	IsCompletion bool
	IsToday      bool
}

// Day90BoardResult carries the output of the board projection.
type Day90BoardResult struct {
	Configured bool   // a start date has been set
	StartDate  string // ISO date
	EndLabel   string // "Mar 31" for the configured window
	Goal       string
	Remark     string
	Cells      []Day90Cell // 91 cells when configured, nil otherwise
}

// QueryGetDay90Board assembles the tracker page view: the 90 dated cells plus
// the completion cell, classified against today.
func QueryGetDay90Board(ctx context.Context, query GetDay90BoardQuery, deps GetDay90BoardDeps) (Day90BoardResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	today := now()

	board, err := deps.TrackerStore.LoadBoard(ctx, query.UserID)
	if err != nil {
		return Day90BoardResult{}, err
	}

	result := Day90BoardResult{
		StartDate: board.Settings.StartDate,
		Goal:      board.Goal.Content,
		Remark:    board.Remark.Content,
	}

	start, ok := board.Settings.Start()
	if !ok {
		return result, nil
	}
	result.Configured = true
	result.EndLabel = day90.DateFor(start, day90.TotalDays).Format("Jan 2")

	cells := make([]Day90Cell, 0, day90.CompletionIndex)
	for n := 1; n <= day90.CompletionIndex; n++ {
		cell := Day90Cell{
			Index:        n,
			Key:          day90.Key(n),
			Phase:        day90.PhaseFor(start, n, today),
			Content:      board.Notes[n].Content,
			IsCompletion: n == day90.CompletionIndex,
		}
		if !cell.IsCompletion {
			date := day90.DateFor(start, n)
			cell.DateLabel = date.Format("Jan 2")
			cell.IsToday = cell.Phase == grid.Current
		}
		cells = append(cells, cell)
	}
	result.Cells = cells
	return result, nil
}
