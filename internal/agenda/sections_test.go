package agenda

import (
	"testing"

	"github.com/therogue/tskr/internal/model"
)

func TestGroupByCategoryOrder(t *testing.T) {
	tasks := []model.Task{
		{ID: "z", Category: "ZED"},
		{ID: "t1", Category: "T"},
		{ID: "d1", Category: "D"},
		{ID: "m1", Category: "M"},
		{ID: "a", Category: "APP"},
	}
	sections := GroupByCategory(tasks)
	want := []string{"Meetings", "Daily", "Tasks", "APP", "ZED"}
	if len(sections) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(sections))
	}
	for i, title := range want {
		if sections[i].Title != title {
			t.Fatalf("section %d: expected %q, got %q", i, title, sections[i].Title)
		}
	}
}

func TestGroupByCategoryProjectedLast(t *testing.T) {
	tasks := []model.Task{
		{ID: "p1", Category: "D", Projected: true},
		{ID: "r1", Category: "D"},
		{ID: "r2", Category: "D"},
		{ID: "p2", Category: "D", Projected: true},
	}
	sections := GroupByCategory(tasks)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if ids := idsOf(sections[0].Tasks); ids[0] != "r1" || ids[1] != "r2" || ids[2] != "p1" || ids[3] != "p2" {
		t.Fatalf("expected real before projected, got %v", ids)
	}
}

func TestGroupByCategoryPriority(t *testing.T) {
	tasks := []model.Task{
		{ID: "low", Category: "T"},
		{ID: "high", Category: "T", Priority: intPtr(2)},
		{ID: "mid", Category: "T", Priority: intPtr(1)},
	}
	sections := GroupByCategory(tasks)
	if ids := idsOf(sections[0].Tasks); ids[0] != "high" || ids[1] != "mid" || ids[2] != "low" {
		t.Fatalf("expected priority order [high mid low], got %v", ids)
	}
}

func TestForViewAll(t *testing.T) {
	tasks := []model.Task{
		{ID: "open", Category: "T"},
		{ID: "done", Category: "T", Completed: true},
		{ID: "tpl1", Category: "D", IsTemplate: true, Recurrence: "daily"},
		{ID: "tpl2", Category: "D", IsTemplate: true, Recurrence: "daily"},
		{ID: "tpl3", Category: "D", IsTemplate: true, Recurrence: "someday"},
	}
	sections := ForView(tasks, ViewAll)
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	if sections[0].Title != "Tasks" || len(sections[0].Tasks) != 1 {
		t.Fatalf("expected Tasks section with the open task, got %q (%d)", sections[0].Title, len(sections[0].Tasks))
	}
	if sections[1].Title != "Recurring: Daily" || len(sections[1].Tasks) != 2 {
		t.Fatalf("expected Recurring: Daily with 2 templates, got %q (%d)", sections[1].Title, len(sections[1].Tasks))
	}
	if sections[2].Title != "Recurring: Other" || len(sections[2].Tasks) != 1 {
		t.Fatalf("expected Recurring: Other with 1 template, got %q (%d)", sections[2].Title, len(sections[2].Tasks))
	}
}

func TestForViewCompleted(t *testing.T) {
	tasks := []model.Task{
		{ID: "open", Category: "T"},
		{ID: "done", Category: "T", Completed: true},
		{ID: "tpl", Category: "D", IsTemplate: true, Recurrence: "daily"},
	}
	sections := ForView(tasks, ViewCompleted)
	if len(sections) != 1 || len(sections[0].Tasks) != 1 || sections[0].Tasks[0].ID != "done" {
		t.Fatalf("expected only the completed task, got %+v", sections)
	}
}

func TestLinearFlattens(t *testing.T) {
	sections := []TaskSection{
		{Title: "A", Tasks: []model.Task{{ID: "1"}, {ID: "2"}}},
		{Title: "B", Tasks: []model.Task{{ID: "3"}}},
	}
	if ids := idsOf(Linear(sections)); len(ids) != 3 || ids[0] != "1" || ids[2] != "3" {
		t.Fatalf("expected [1 2 3], got %v", ids)
	}
}
