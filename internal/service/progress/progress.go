package progress

import (
	"context"
	"math"

	"ead-service/internal/domain/course"
	"ead-service/internal/domain/progress"
)

// Store is the slice of the progress repository this service reads.
type Store interface {
	GetProgress(ctx context.Context, principal string) progress.Progress
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ProgressMap returns the principal's raw progress records.
func (s *Service) ProgressMap(ctx context.Context, principal string) progress.Progress {
	return s.store.GetProgress(ctx, principal)
}

// CourseProgress counts completed lessons across all modules. Percentage is
// 0 for a course with no lessons.
func (s *Service) CourseProgress(ctx context.Context, principal string, c course.Course) progress.CourseProgress {
	return Summarize(s.store.GetProgress(ctx, principal), c)
}

// IsCourseComplete reports whether every lesson of a non-empty course is
// completed.
func (s *Service) IsCourseComplete(ctx context.Context, principal string, c course.Course) bool {
	sum := s.CourseProgress(ctx, principal, c)
	return sum.Total > 0 && sum.Completed == sum.Total
}

// IsLessonUnlocked enforces strictly sequential consumption: the first
// lesson of the first module is always unlocked, every other lesson
// unlocks when the immediately preceding one (module-spanning) is
// completed.
func (s *Service) IsLessonUnlocked(ctx context.Context, principal string, c course.Course, lessonID string) bool {
	return Unlocked(s.store.GetProgress(ctx, principal), c, lessonID)
}

// Summarize is the pure completion computation over a progress map.
func Summarize(p progress.Progress, c course.Course) progress.CourseProgress {
	total := 0
	completed := 0
	for _, mod := range c.Modules {
		for _, lesson := range mod.Lessons {
			total++
			if p[lesson.ID].Completed {
				completed++
			}
		}
	}

	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return progress.CourseProgress{Completed: completed, Total: total, Percentage: pct}
}

// Unlocked is the pure unlock-policy check over a progress map.
func Unlocked(p progress.Progress, c course.Course, lessonID string) bool {
	flat := c.Lessons()
	for i, lesson := range flat {
		if lesson.ID != lessonID {
			continue
		}
		if i == 0 {
			return true
		}
		return p[flat[i-1].ID].Completed
	}
	return false
}
