package ead

// Key scheme for the platform's key-value store. Courses and certificates
// are global; everything else is scoped per principal.

func coursesKey() string                 { return "ead_courses" }
func certificatesKey() string            { return "ead_certificates" }
func profileKey(principal string) string { return "ead_profile_" + principal }
func progressKey(principal string) string {
	return "ead_progress_" + principal
}
func logsKey(principal string) string    { return "ead_logs_" + principal }
func sessionKey(principal string) string { return "ead_session_" + principal }
