package player

import (
	"context"
	"sync"
	"time"

	"ead-service/internal/domain/certificate"
	"ead-service/internal/domain/course"
	"ead-service/internal/domain/progress"
	xerrors "ead-service/internal/pkg/errors"
	progresssvc "ead-service/internal/service/progress"

	"go.uber.org/zap"
)

type ProgressStore interface {
	GetProgress(ctx context.Context, principal string) progress.Progress
	UpdateLessonProgress(ctx context.Context, principal, lessonID string, secondsWatched, duration int) error
}

type CourseStore interface {
	GetCourse(ctx context.Context, id string) (course.Course, bool)
}

type CertIssuer interface {
	Issue(ctx context.Context, principal, studentName, cpf string, c course.Course) (certificate.Certificate, error)
	ForStudent(ctx context.Context, principal, courseID string) (certificate.Certificate, bool)
}

// Event is one progress update pushed to watch-session subscribers.
type Event struct {
	LessonID        string `json:"lessonId"`
	SecondsWatched  int    `json:"secondsWatched"`
	Duration        int    `json:"duration"`
	Completed       bool   `json:"completed"`
	CertificateCode string `json:"certificateCode,omitempty"`
}

// Status describes a lesson's watch state for one principal.
type Status struct {
	LessonID       string `json:"lessonId"`
	SecondsWatched int    `json:"secondsWatched"`
	Duration       int    `json:"duration"`
	Completed      bool   `json:"completed"`
	Playing        bool   `json:"playing"`
	Unlocked       bool   `json:"unlocked"`
	NextLessonID   string `json:"nextLessonId,omitempty"`
}

type session struct {
	principal   string
	courseID    string
	lessonID    string
	duration    int
	seconds     int
	playing     bool
	studentName string
	cpf         string
	stop        chan struct{}
}

// Service runs watch sessions. While a session is playing, a 1 Hz ticker
// advances secondsWatched and persists every tick (write-through). Crossing
// the duration threshold is the single completion edge: the ticker stops,
// the lesson is marked complete, and whole-course completion is re-checked
// exactly once to issue the certificate.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*session
	subs     map[string]map[chan Event]struct{}

	courses  CourseStore
	progress ProgressStore
	certs    CertIssuer
	logger   *zap.Logger
	interval time.Duration
}

func NewService(courses CourseStore, progressStore ProgressStore, certs CertIssuer, logger *zap.Logger) *Service {
	return &Service{
		sessions: make(map[string]*session),
		subs:     make(map[string]map[chan Event]struct{}),
		courses:  courses,
		progress: progressStore,
		certs:    certs,
		logger:   logger,
		interval: time.Second,
	}
}

func sessionKey(principal, lessonID string) string {
	return principal + "|" + lessonID
}

// Play starts (or resumes) the watch timer for a lesson. The lesson must be
// unlocked; playing an already-completed lesson is a no-op.
func (s *Service) Play(ctx context.Context, principal, courseID, lessonID, studentName, cpf string) (Status, error) {
	c, ok := s.courses.GetCourse(ctx, courseID)
	if !ok {
		return Status{}, xerrors.ErrNotFound
	}
	lesson, _ := c.FindLesson(lessonID)
	if lesson == nil {
		return Status{}, xerrors.ErrNotFound
	}

	prog := s.progress.GetProgress(ctx, principal)
	if !progresssvc.Unlocked(prog, c, lessonID) {
		return Status{}, xerrors.ErrLessonLocked
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey(principal, lessonID)
	sess, exists := s.sessions[key]
	if !exists {
		sess = &session{
			principal: principal,
			courseID:  courseID,
			lessonID:  lessonID,
			duration:  lesson.Duration,
			seconds:   prog[lessonID].SecondsWatched,
		}
		s.sessions[key] = sess
	}
	sess.studentName = studentName
	sess.cpf = cpf

	if prog[lessonID].Completed || sess.seconds >= sess.duration {
		return s.statusLocked(sess), nil
	}
	if sess.playing {
		return s.statusLocked(sess), nil
	}

	sess.playing = true
	sess.stop = make(chan struct{})
	go s.run(key, sess.stop)

	return s.statusLocked(sess), nil
}

// Pause stops the watch timer without discarding accumulated seconds.
func (s *Service) Pause(principal, lessonID string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey(principal, lessonID)]
	if !ok {
		return Status{}, xerrors.ErrNotFound
	}
	s.pauseLocked(sess)
	return s.statusLocked(sess), nil
}

// Status reports the watch state of a lesson for a principal.
func (s *Service) Status(ctx context.Context, principal, courseID, lessonID string) (Status, error) {
	c, ok := s.courses.GetCourse(ctx, courseID)
	if !ok {
		return Status{}, xerrors.ErrNotFound
	}
	lesson, next := c.FindLesson(lessonID)
	if lesson == nil {
		return Status{}, xerrors.ErrNotFound
	}

	prog := s.progress.GetProgress(ctx, principal)
	st := Status{
		LessonID:       lessonID,
		SecondsWatched: prog[lessonID].SecondsWatched,
		Duration:       lesson.Duration,
		Completed:      prog[lessonID].Completed,
		Unlocked:       progresssvc.Unlocked(prog, c, lessonID),
	}
	if next != nil {
		st.NextLessonID = next.ID
	}

	s.mu.Lock()
	if sess, ok := s.sessions[sessionKey(principal, lessonID)]; ok {
		st.SecondsWatched = sess.seconds
		st.Playing = sess.playing
	}
	s.mu.Unlock()

	return st, nil
}

// Subscribe registers a listener for a lesson's watch events. Listeners are
// tracked apart from watch sessions, so observing a lesson never creates
// one. The returned cancel func must be called when the listener goes away.
func (s *Service) Subscribe(principal, lessonID string) (<-chan Event, func()) {
	ch := make(chan Event, 8)
	key := sessionKey(principal, lessonID)

	s.mu.Lock()
	set, ok := s.subs[key]
	if !ok {
		set = make(map[chan Event]struct{})
		s.subs[key] = set
	}
	set[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(set, ch)
		if cur, ok := s.subs[key]; ok && len(cur) == 0 {
			delete(s.subs, key)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Service) run(key string, stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick(key)
		}
	}
}

// tick advances one watched second and persists it. The completion
// threshold is edge-triggered: certificate issuance happens here once, not
// on every tick.
func (s *Service) tick(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok || !sess.playing {
		return
	}

	// The tick outlives the request that started the session.
	ctx := context.Background()

	sess.seconds++
	if err := s.progress.UpdateLessonProgress(ctx, sess.principal, sess.lessonID, sess.seconds, sess.duration); err != nil {
		s.logger.Warn("failed to persist lesson progress",
			zap.String("lesson_id", sess.lessonID),
			zap.Error(err),
		)
	}

	event := Event{
		LessonID:       sess.lessonID,
		SecondsWatched: sess.seconds,
		Duration:       sess.duration,
	}

	if sess.seconds >= sess.duration {
		s.pauseLocked(sess)
		event.Completed = true
		event.CertificateCode = s.completeLocked(ctx, sess)
	}

	s.broadcastLocked(key, event)

	// A completed session is fully persisted; drop it from memory.
	if event.Completed {
		delete(s.sessions, key)
	}
}

// completeLocked handles the completion edge: if the whole course is now
// complete, no certificate exists yet and a profile name is known, one is
// issued. Returns the issued code, if any.
func (s *Service) completeLocked(ctx context.Context, sess *session) string {
	if sess.studentName == "" {
		return ""
	}
	if _, exists := s.certs.ForStudent(ctx, sess.principal, sess.courseID); exists {
		return ""
	}

	c, ok := s.courses.GetCourse(ctx, sess.courseID)
	if !ok {
		return ""
	}
	sum := progresssvc.Summarize(s.progress.GetProgress(ctx, sess.principal), c)
	if sum.Total == 0 || sum.Completed != sum.Total {
		return ""
	}

	cert, err := s.certs.Issue(ctx, sess.principal, sess.studentName, sess.cpf, c)
	if err != nil {
		s.logger.Warn("failed to issue certificate",
			zap.String("course_id", sess.courseID),
			zap.Error(err),
		)
		return ""
	}
	return cert.Code
}

func (s *Service) pauseLocked(sess *session) {
	if !sess.playing {
		return
	}
	sess.playing = false
	if sess.stop != nil {
		close(sess.stop)
		sess.stop = nil
	}
}

func (s *Service) broadcastLocked(key string, event Event) {
	for ch := range s.subs[key] {
		select {
		case ch <- event:
		default:
			// Slow subscriber; drop rather than stall the ticker.
		}
	}
}

func (s *Service) statusLocked(sess *session) Status {
	return Status{
		LessonID:       sess.lessonID,
		SecondsWatched: sess.seconds,
		Duration:       sess.duration,
		Completed:      sess.seconds >= sess.duration && sess.duration > 0,
		Playing:        sess.playing,
		Unlocked:       true,
	}
}
