package course

type Lesson struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl"`
	Duration int    `json:"duration"` // seconds
}

type Module struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CreatedAt   int64    `json:"createdAt"`
	Modules     []Module `json:"modules"`
}

// Lessons returns every lesson of the course flattened in module order.
// Lesson order across module boundaries defines the sequential-unlock chain.
func (c Course) Lessons() []Lesson {
	var out []Lesson
	for _, m := range c.Modules {
		out = append(out, m.Lessons...)
	}
	return out
}

// FindLesson locates a lesson and the one immediately following it
// (possibly in the next module). next is nil for the last lesson.
func (c Course) FindLesson(lessonID string) (lesson, next *Lesson) {
	flat := c.Lessons()
	for i := range flat {
		if flat[i].ID == lessonID {
			lesson = &flat[i]
			if i+1 < len(flat) {
				next = &flat[i+1]
			}
			return lesson, next
		}
	}
	return nil, nil
}

// DemoCourse is seeded into an empty store so a fresh install has content.
func DemoCourse(now int64) Course {
	return Course{
		ID:          "course-demo",
		Title:       "Treinamento Corporativo - Segurança no Trabalho",
		Description: "Curso completo sobre normas de segurança e boas práticas no ambiente de trabalho.",
		CreatedAt:   now,
		Modules: []Module{
			{
				ID:    "mod-1",
				Title: "Módulo 1: Introdução à Segurança",
				Lessons: []Lesson{
					{ID: "les-1", Title: "Aula 1: Conceitos Básicos", VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", Duration: 60},
					{ID: "les-2", Title: "Aula 2: Equipamentos de Proteção", VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", Duration: 90},
				},
			},
			{
				ID:    "mod-2",
				Title: "Módulo 2: Procedimentos de Emergência",
				Lessons: []Lesson{
					{ID: "les-3", Title: "Aula 3: Evacuação", VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", Duration: 75},
				},
			},
		},
	}
}
