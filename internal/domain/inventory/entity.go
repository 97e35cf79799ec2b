package inventory

import "time"

// Product is one stock line. Names are unique; quantity never goes negative.
type Product struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type WithdrawalItem struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// WithdrawalRecord is one finalized stock withdrawal: every item was
// validated against available stock and decremented in the same transaction.
type WithdrawalRecord struct {
	ID              int64            `json:"id" db:"id"`
	BeneficiaryName string           `json:"beneficiaryName" db:"beneficiary_name"`
	Date            time.Time        `json:"date" db:"date"`
	Items           []WithdrawalItem `json:"items"`
}
