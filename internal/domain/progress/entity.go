package progress

// LessonProgress is a single lesson's watch record for one principal.
type LessonProgress struct {
	SecondsWatched int   `json:"secondsWatched"`
	Completed      bool  `json:"completed"`
	LastWatched    int64 `json:"lastWatched"` // unix millis
}

// Progress maps lesson ID to its watch record.
type Progress map[string]LessonProgress

// CourseProgress is the derived completion summary for one course.
type CourseProgress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// AccessLog records one platform session. SessionEnd is zero while the
// session is open; an open session that is never closed is dropped when the
// next one starts.
type AccessLog struct {
	ID           string `json:"id"`
	SessionStart int64  `json:"sessionStart"`
	SessionEnd   int64  `json:"sessionEnd,omitempty"`
	Device       string `json:"device"`
}
