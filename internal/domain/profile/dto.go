package profile

type RegisterRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	CPF     string `json:"cpf" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Company string `json:"company"`
}

type SetApprovalRequest struct {
	Status ApprovalStatus `json:"status" binding:"required"`
}

type AssignRoleRequest struct {
	Role UserRole `json:"role" binding:"required"`
}
