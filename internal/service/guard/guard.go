package guard

import (
	"strings"

	"ead-service/internal/domain/profile"
)

// Page is the set of views the platform can resolve to.
type Page string

const (
	PageLoading        Page = "loading"
	PageCheckingAccess Page = "checking_access"
	PageLanding        Page = "landing"
	PageRegister       Page = "register"
	PagePending        Page = "pending"
	PageDashboard      Page = "dashboard"
	PageCourse         Page = "course"
	PageLesson         Page = "lesson"
	PageCertificate    Page = "certificate"
	PageValidateCert   Page = "validate_cert"
	PageAdmin          Page = "admin"
)

// Flag is a tri-state asynchronous fact: still loading, or resolved to a
// boolean. Query failures resolve to FlagFalse (fail-closed).
type Flag int

const (
	FlagLoading Flag = iota
	FlagFalse
	FlagTrue
)

func FlagOf(b bool) Flag {
	if b {
		return FlagTrue
	}
	return FlagFalse
}

// ProfileState is the explicit tagged variant for the backend profile query:
// loading, loaded-but-absent, or present.
type profileKind int

const (
	profileLoading profileKind = iota
	profileAbsent
	profilePresent
)

type ProfileState struct {
	kind    profileKind
	profile profile.UserProfile
}

func ProfileLoading() ProfileState { return ProfileState{kind: profileLoading} }
func ProfileAbsent() ProfileState  { return ProfileState{kind: profileAbsent} }
func ProfilePresent(p profile.UserProfile) ProfileState {
	return ProfileState{kind: profilePresent, profile: p}
}

func (s ProfileState) IsLoading() bool { return s.kind == profileLoading }
func (s ProfileState) IsAbsent() bool  { return s.kind == profileAbsent }
func (s ProfileState) Get() (profile.UserProfile, bool) {
	return s.profile, s.kind == profilePresent
}

// Input is the full tuple the guard decides on. The resolution is a pure,
// level-triggered function of this tuple: re-evaluating with the same input
// always yields the same decision, regardless of the order in which the
// asynchronous facts arrived.
type Input struct {
	Principal    string // empty means no identity
	Initializing bool
	Profile      ProfileState
	Admin        Flag
	Approved     Flag
	Path         string
}

// Decision is what the guard resolved: the page to render and, when the
// current path is not canonical for the resolved state, the location to
// steer toward. The redirect is data; applying it is the Navigator's job,
// never part of resolution.
type Decision struct {
	Page       Page   `json:"page"`
	RedirectTo string `json:"redirectTo,omitempty"`

	// Route parameters for content pages.
	CourseID string `json:"courseId,omitempty"`
	LessonID string `json:"lessonId,omitempty"`
	CertCode string `json:"certCode,omitempty"`
}

// Resolve maps the input tuple to a page. First match wins:
//
//  1. public certificate validation, regardless of auth state
//  2. identity still initializing
//  3. no identity
//  4. profile query unresolved
//  5. profile absent (registered identity, no backend row)
//  6. admin role
//  7. not approved
//  8. content routes, defaulting to the dashboard
func Resolve(in Input) Decision {
	path := normalize(in.Path)

	if code, ok := matchValidate(path); ok {
		return Decision{Page: PageValidateCert, CertCode: code}
	}

	if in.Initializing {
		return Decision{Page: PageLoading}
	}

	if in.Principal == "" {
		d := Decision{Page: PageLanding}
		if path != "/" {
			d.RedirectTo = "/"
		}
		return d
	}

	if in.Profile.IsLoading() {
		return Decision{Page: PageCheckingAccess}
	}

	if in.Profile.IsAbsent() {
		d := Decision{Page: PageRegister}
		if path != "/register" {
			d.RedirectTo = "/register"
		}
		return d
	}

	if in.Admin == FlagLoading {
		return Decision{Page: PageCheckingAccess}
	}

	if in.Admin == FlagTrue {
		d := Decision{Page: PageAdmin}
		if !strings.HasPrefix(path, "/admin") {
			d.RedirectTo = "/admin"
		}
		return d
	}

	if in.Approved == FlagLoading {
		return Decision{Page: PageCheckingAccess}
	}

	if in.Approved == FlagFalse {
		d := Decision{Page: PagePending}
		if path != "/pending" {
			d.RedirectTo = "/pending"
		}
		return d
	}

	return resolveContent(path)
}

// resolveContent matches an approved, non-admin principal's path against the
// content routes. Guest-only paths and anything unrecognized steer to the
// dashboard.
func resolveContent(path string) Decision {
	switch {
	case path == "/dashboard":
		return Decision{Page: PageDashboard}
	case path == "/" || path == "/register" || path == "/pending":
		return Decision{Page: PageDashboard, RedirectTo: "/dashboard"}
	}

	parts := split(path)
	switch {
	case len(parts) == 2 && parts[0] == "course":
		return Decision{Page: PageCourse, CourseID: parts[1]}
	case len(parts) == 3 && parts[0] == "lesson":
		return Decision{Page: PageLesson, CourseID: parts[1], LessonID: parts[2]}
	case len(parts) == 2 && parts[0] == "certificate":
		return Decision{Page: PageCertificate, CourseID: parts[1]}
	}

	return Decision{Page: PageDashboard, RedirectTo: "/dashboard"}
}

func matchValidate(path string) (string, bool) {
	parts := split(path)
	if len(parts) == 2 && parts[0] == "validate" && parts[1] != "" {
		return parts[1], true
	}
	return "", false
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func split(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
