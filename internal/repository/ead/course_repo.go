package ead

import (
	"context"
	"encoding/json"
	"time"

	"ead-service/internal/domain/course"
	"ead-service/internal/pkg/kv"

	"go.uber.org/zap"
)

type CourseRepository struct {
	store  kv.Store
	logger *zap.Logger
}

func NewCourseRepository(store kv.Store, logger *zap.Logger) *CourseRepository {
	return &CourseRepository{store: store, logger: logger}
}

// GetCourses returns the full course catalog. An empty store is seeded with
// the demo course and the seed is persisted immediately so subsequent reads
// are stable; a store that cannot be read falls back to the demo course
// without persisting.
func (r *CourseRepository) GetCourses(ctx context.Context) []course.Course {
	data, found, err := r.store.Get(ctx, coursesKey())
	if err != nil {
		r.logger.Warn("kv read failed", zap.String("key", coursesKey()), zap.Error(err))
		return []course.Course{course.DemoCourse(time.Now().UnixMilli())}
	}
	if !found {
		seed := []course.Course{course.DemoCourse(time.Now().UnixMilli())}
		if err := storeJSON(ctx, r.store, coursesKey(), seed); err != nil {
			r.logger.Warn("failed to persist seeded courses", zap.Error(err))
		}
		return seed
	}

	var courses []course.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		r.logger.Warn("kv payload malformed", zap.String("key", coursesKey()), zap.Error(err))
		return []course.Course{course.DemoCourse(time.Now().UnixMilli())}
	}
	return courses
}

// SaveCourses overwrites the whole catalog. Callers read-modify-write.
func (r *CourseRepository) SaveCourses(ctx context.Context, courses []course.Course) error {
	return storeJSON(ctx, r.store, coursesKey(), courses)
}

func (r *CourseRepository) GetCourse(ctx context.Context, id string) (course.Course, bool) {
	for _, c := range r.GetCourses(ctx) {
		if c.ID == id {
			return c, true
		}
	}
	return course.Course{}, false
}
