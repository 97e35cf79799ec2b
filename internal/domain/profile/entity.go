package profile

// UserProfile is the backend-owned profile row. The backend actor is the
// single authority for it; this service only caches it per request.
type UserProfile struct {
	Name string `json:"name"`
}

// LocalProfile is supplementary personal data kept only in this platform's
// store, never sent to the backend actor.
type LocalProfile struct {
	Email   string `json:"email"`
	CPF     string `json:"cpf"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
	RoleGuest UserRole = "guest"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// UserApprovalInfo is one row of the admin approval queue.
type UserApprovalInfo struct {
	Principal string         `json:"principal"`
	Status    ApprovalStatus `json:"status"`
}
