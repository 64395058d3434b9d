package agenda

import (
	"sort"

	"github.com/therogue/tskr/internal/model"
	"github.com/therogue/tskr/internal/recur"
)

// View selects which slice of the collection a screen shows.
type View string

const (
	ViewDay       View = "day"
	ViewAll       View = "all"
	ViewCompleted View = "completed"
)

// TaskSection is one rendered heading with its tasks.
type TaskSection struct {
	Title string
	Tasks []model.Task
}

// CategoryTitle maps built-in category letters to headings.
func CategoryTitle(category string) string {
	switch category {
	case model.CategoryMeeting:
		return "Meetings"
	case model.CategoryDaily:
		return "Daily"
	case model.CategoryTask:
		return "Tasks"
	}
	return category
}

// categoryRank orders sections: meetings, dailies, tasks, then custom
// categories alphabetically.
func categoryRank(category string) int {
	switch category {
	case model.CategoryMeeting:
		return 0
	case model.CategoryDaily:
		return 1
	case model.CategoryTask:
		return 2
	}
	return 3
}

// GroupByCategory splits tasks into category sections. Within a
// section real tasks come before projected ones, and higher priority
// sorts first inside each half; order is otherwise stable.
func GroupByCategory(tasks []model.Task) []TaskSection {
	byCat := map[string][]model.Task{}
	var cats []string
	for _, t := range tasks {
		if _, seen := byCat[t.Category]; !seen {
			cats = append(cats, t.Category)
		}
		byCat[t.Category] = append(byCat[t.Category], t)
	}
	sort.SliceStable(cats, func(i, j int) bool {
		ri, rj := categoryRank(cats[i]), categoryRank(cats[j])
		if ri != rj {
			return ri < rj
		}
		return cats[i] < cats[j]
	})

	sections := make([]TaskSection, 0, len(cats))
	for _, cat := range cats {
		ts := byCat[cat]
		sort.SliceStable(ts, func(i, j int) bool {
			if ts[i].Projected != ts[j].Projected {
				return !ts[i].Projected
			}
			return priorityOf(ts[i]) > priorityOf(ts[j])
		})
		sections = append(sections, TaskSection{Title: CategoryTitle(cat), Tasks: ts})
	}
	return sections
}

func priorityOf(t model.Task) int {
	if t.Priority == nil {
		return 0
	}
	return *t.Priority
}

// ForView builds the sections a view renders. The day view expects an
// already-projected task list (ProjectForDate output); the other views
// take the full collection.
func ForView(tasks []model.Task, view View) []TaskSection {
	switch view {
	case ViewCompleted:
		var done []model.Task
		for _, t := range tasks {
			if !t.IsTemplate && t.Completed {
				done = append(done, t)
			}
		}
		return GroupByCategory(done)
	case ViewAll:
		var open []model.Task
		var templates []model.Task
		for _, t := range tasks {
			switch {
			case t.IsTemplate:
				templates = append(templates, t)
			case !t.Completed:
				open = append(open, t)
			}
		}
		sections := GroupByCategory(open)
		for _, s := range recur.Group(templates) {
			sections = append(sections, TaskSection{
				Title: "Recurring: " + s.Bucket.String(),
				Tasks: s.Tasks,
			})
		}
		return sections
	default:
		return GroupByCategory(tasks)
	}
}

// Linear flattens sections into the selection ordering.
func Linear(sections []TaskSection) []model.Task {
	var out []model.Task
	for _, s := range sections {
		out = append(out, s.Tasks...)
	}
	return out
}
