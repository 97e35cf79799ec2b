package course

import (
	"context"
	"time"

	"ead-service/internal/domain/course"
	xerrors "ead-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Store is the slice of the course repository this service uses. The
// catalog is one value; every mutation is a read-modify-write of the whole
// collection.
type Store interface {
	GetCourses(ctx context.Context) []course.Course
	SaveCourses(ctx context.Context, courses []course.Course) error
	GetCourse(ctx context.Context, id string) (course.Course, bool)
}

type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

func (s *Service) ListCourses(ctx context.Context) []course.Course {
	return s.store.GetCourses(ctx)
}

func (s *Service) GetCourse(ctx context.Context, id string) (course.Course, error) {
	c, ok := s.store.GetCourse(ctx, id)
	if !ok {
		return course.Course{}, xerrors.ErrNotFound
	}
	return c, nil
}

// CreateCourse adds an empty course to the catalog.
func (s *Service) CreateCourse(ctx context.Context, req *course.CreateCourseRequest) (course.Course, error) {
	c := course.Course{
		ID:          "course-" + ulid.Make().String(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   s.now().UnixMilli(),
		Modules:     []course.Module{},
	}

	courses := s.store.GetCourses(ctx)
	courses = append(courses, c)
	if err := s.store.SaveCourses(ctx, courses); err != nil {
		return course.Course{}, xerrors.Wrap(err, "failed to save course")
	}

	s.logger.Info("course created", zap.String("course_id", c.ID), zap.String("title", c.Title))
	return c, nil
}

// DeleteCourse removes a course; its modules and lessons go with it.
func (s *Service) DeleteCourse(ctx context.Context, id string) error {
	courses := s.store.GetCourses(ctx)
	kept := courses[:0]
	found := false
	for _, c := range courses {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return xerrors.ErrNotFound
	}
	if err := s.store.SaveCourses(ctx, kept); err != nil {
		return xerrors.Wrap(err, "failed to save courses")
	}
	s.logger.Info("course deleted", zap.String("course_id", id))
	return nil
}

// AddModule appends a module to a course.
func (s *Service) AddModule(ctx context.Context, courseID string, req *course.CreateModuleRequest) (course.Module, error) {
	mod := course.Module{
		ID:      "mod-" + ulid.Make().String(),
		Title:   req.Title,
		Lessons: []course.Lesson{},
	}

	err := s.mutateCourse(ctx, courseID, func(c *course.Course) error {
		c.Modules = append(c.Modules, mod)
		return nil
	})
	if err != nil {
		return course.Module{}, err
	}
	return mod, nil
}

// DeleteModule removes a module and cascades to its lessons.
func (s *Service) DeleteModule(ctx context.Context, courseID, moduleID string) error {
	return s.mutateCourse(ctx, courseID, func(c *course.Course) error {
		kept := c.Modules[:0]
		found := false
		for _, m := range c.Modules {
			if m.ID == moduleID {
				found = true
				continue
			}
			kept = append(kept, m)
		}
		if !found {
			return xerrors.ErrNotFound
		}
		c.Modules = kept
		return nil
	})
}

// AddLesson appends a lesson to a module.
func (s *Service) AddLesson(ctx context.Context, courseID, moduleID string, req *course.CreateLessonRequest) (course.Lesson, error) {
	lesson := course.Lesson{
		ID:       "les-" + ulid.Make().String(),
		Title:    req.Title,
		VideoURL: req.VideoURL,
		Duration: req.Duration,
	}

	err := s.mutateCourse(ctx, courseID, func(c *course.Course) error {
		for i := range c.Modules {
			if c.Modules[i].ID == moduleID {
				c.Modules[i].Lessons = append(c.Modules[i].Lessons, lesson)
				return nil
			}
		}
		return xerrors.ErrNotFound
	})
	if err != nil {
		return course.Lesson{}, err
	}
	return lesson, nil
}

// DeleteLesson removes a lesson from a module.
func (s *Service) DeleteLesson(ctx context.Context, courseID, moduleID, lessonID string) error {
	return s.mutateCourse(ctx, courseID, func(c *course.Course) error {
		for i := range c.Modules {
			if c.Modules[i].ID != moduleID {
				continue
			}
			lessons := c.Modules[i].Lessons
			kept := lessons[:0]
			found := false
			for _, l := range lessons {
				if l.ID == lessonID {
					found = true
					continue
				}
				kept = append(kept, l)
			}
			if !found {
				return xerrors.ErrNotFound
			}
			c.Modules[i].Lessons = kept
			return nil
		}
		return xerrors.ErrNotFound
	})
}

func (s *Service) mutateCourse(ctx context.Context, courseID string, fn func(*course.Course) error) error {
	courses := s.store.GetCourses(ctx)
	for i := range courses {
		if courses[i].ID != courseID {
			continue
		}
		if err := fn(&courses[i]); err != nil {
			return err
		}
		if err := s.store.SaveCourses(ctx, courses); err != nil {
			return xerrors.Wrap(err, "failed to save courses")
		}
		return nil
	}
	return xerrors.ErrNotFound
}
