package inventory

type CreateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"min=0"`
}

type WithdrawRequest struct {
	BeneficiaryName string           `json:"beneficiaryName" binding:"required"`
	Items           []WithdrawalItem `json:"items" binding:"required,min=1"`
}
