package progress

import (
	"testing"

	"ead-service/internal/domain/course"
	"ead-service/internal/domain/progress"
)

func twoModuleCourse() course.Course {
	return course.Course{
		ID:    "course-1",
		Title: "Curso",
		Modules: []course.Module{
			{ID: "mod-1", Lessons: []course.Lesson{
				{ID: "les-1", Duration: 60},
				{ID: "les-2", Duration: 90},
			}},
			{ID: "mod-2", Lessons: []course.Lesson{
				{ID: "les-3", Duration: 75},
			}},
		},
	}
}

func TestSummarizeEmptyProgress(t *testing.T) {
	sum := Summarize(progress.Progress{}, twoModuleCourse())
	if sum.Completed != 0 || sum.Total != 3 || sum.Percentage != 0 {
		t.Fatalf("got %+v, want 0/3 at 0%%", sum)
	}
}

func TestSummarizePartial(t *testing.T) {
	p := progress.Progress{
		"les-1": {SecondsWatched: 60, Completed: true},
	}
	sum := Summarize(p, twoModuleCourse())
	if sum.Completed != 1 || sum.Total != 3 {
		t.Fatalf("got %d/%d, want 1/3", sum.Completed, sum.Total)
	}
	if sum.Percentage != 33 {
		t.Fatalf("got %d%%, want 33%%", sum.Percentage)
	}
}

func TestSummarizeFull(t *testing.T) {
	p := progress.Progress{
		"les-1": {Completed: true},
		"les-2": {Completed: true},
		"les-3": {Completed: true},
	}
	sum := Summarize(p, twoModuleCourse())
	if sum.Completed != 3 || sum.Total != 3 || sum.Percentage != 100 {
		t.Fatalf("got %+v, want 3/3 at 100%%", sum)
	}
}

func TestSummarizeNoLessons(t *testing.T) {
	sum := Summarize(progress.Progress{}, course.Course{ID: "empty"})
	if sum.Total != 0 || sum.Percentage != 0 {
		t.Fatalf("got %+v, want 0 total at 0%%", sum)
	}
}

func TestSummarizePercentageBounds(t *testing.T) {
	c := twoModuleCourse()
	p := progress.Progress{}
	for _, lesson := range c.Lessons() {
		sum := Summarize(p, c)
		if sum.Percentage < 0 || sum.Percentage > 100 {
			t.Fatalf("percentage out of range: %d", sum.Percentage)
		}
		if (sum.Percentage == 100) != (sum.Completed == sum.Total) {
			t.Fatalf("100%% must coincide with full completion: %+v", sum)
		}
		p[lesson.ID] = progress.LessonProgress{Completed: true}
	}
	if sum := Summarize(p, c); sum.Percentage != 100 {
		t.Fatalf("got %d%%, want 100%%", sum.Percentage)
	}
}

func TestUnlockedFirstLessonAlways(t *testing.T) {
	if !Unlocked(progress.Progress{}, twoModuleCourse(), "les-1") {
		t.Fatal("first lesson must be unlocked with no progress")
	}
}

func TestUnlockedRequiresPreviousCompletion(t *testing.T) {
	c := twoModuleCourse()
	p := progress.Progress{}

	if Unlocked(p, c, "les-2") {
		t.Fatal("les-2 unlocked without les-1 completed")
	}

	p["les-1"] = progress.LessonProgress{Completed: true}
	if !Unlocked(p, c, "les-2") {
		t.Fatal("les-2 locked after les-1 completed")
	}

	// les-3 sits in the next module; the chain spans module boundaries.
	if Unlocked(p, c, "les-3") {
		t.Fatal("les-3 unlocked without les-2 completed")
	}
	p["les-2"] = progress.LessonProgress{Completed: true}
	if !Unlocked(p, c, "les-3") {
		t.Fatal("les-3 locked after les-2 completed")
	}
}

func TestUnlockedUnknownLesson(t *testing.T) {
	if Unlocked(progress.Progress{}, twoModuleCourse(), "les-99") {
		t.Fatal("unknown lesson must not be unlocked")
	}
}
