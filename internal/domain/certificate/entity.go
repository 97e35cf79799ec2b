package certificate

// Certificate is issued once per (principal, course) pair when a course
// reaches 100% completion. The code is a human-readable lookup key for the
// public validation surface, not a security credential.
type Certificate struct {
	Code           string `json:"code"`
	StudentName    string `json:"studentName"`
	CPF            string `json:"cpf"`
	CourseName     string `json:"courseName"`
	CourseID       string `json:"courseId"`
	CompletionDate int64  `json:"completionDate"` // unix millis
	PrincipalID    string `json:"principalId"`
}
