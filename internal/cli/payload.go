package cli

import (
	"github.com/therogue/tskr/internal/agenda"
	"github.com/therogue/tskr/internal/model"
)

type sectionPayload struct {
	Title string       `json:"title"`
	Tasks []model.Task `json:"tasks"`
}

func sectionsPayload(sections []agenda.TaskSection) []sectionPayload {
	out := make([]sectionPayload, 0, len(sections))
	for _, s := range sections {
		out = append(out, sectionPayload{Title: s.Title, Tasks: s.Tasks})
	}
	return out
}

type blockPayload struct {
	Task   model.Task `json:"task"`
	Top    int        `json:"top"`
	Height int        `json:"height"`
}

// tasksOrEmpty keeps empty lists as [] in JSON instead of null.
func tasksOrEmpty(ts []model.Task) []model.Task {
	if ts == nil {
		return []model.Task{}
	}
	return ts
}
