package course

type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type CreateModuleRequest struct {
	Title string `json:"title" binding:"required"`
}

type CreateLessonRequest struct {
	Title    string `json:"title" binding:"required"`
	VideoURL string `json:"videoUrl" binding:"required"`
	Duration int    `json:"duration" binding:"required,min=1"` // seconds
}
