package admin

import "templeseva/internal/domain"

type CheckAdminRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CheckAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

type AddAdminRequest struct {
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

type OfflineDonationRequest struct {
	DonorName string `json:"donorName" binding:"required"`
	Amount    int64  `json:"amount" binding:"required"`
	BankTxnID string `json:"bankTxnId" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
}

type OfflineDonationResponse struct {
	Success  bool            `json:"success"`
	Donation domain.Donation `json:"donation"`
}

type TempleContactRequest struct {
	TempleEmail *string `json:"temple_email" validate:"omitempty,email"`
	TemplePhone *string `json:"temple_phone" validate:"omitempty,min=6"`
	UPIID       *string `json:"upi_id" validate:"omitempty,min=3,contains=@"`
}
