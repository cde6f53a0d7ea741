package model

import "servana/shared/model"

const (
	TableName  = "providers"
	EntityName = "provider"

	FieldID              = "id"
	FieldFullName        = "full_name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldPassword        = "password"
	FieldRole            = "role"
	FieldServiceType     = "service_type"
	FieldStatus          = "status"
	FieldExperienceYears = "experience_years"
	FieldLanguage        = "language"
	FieldKycDocURL       = "kyc_doc_url"
	FieldIntroVideoURL   = "intro_video_url"
	FieldIsOnline        = "is_online"
	FieldBankAccount     = "bank_account"
	FieldIfscCode        = "ifsc_code"
)

// Provider is a service worker account. New providers start in the pending
// status and cannot receive bookings until an admin accepts them.
type Provider struct {
	ID              string `db:"id"`
	FullName        string `db:"full_name"`
	Email           string `db:"email"`
	Phone           string `db:"phone"`
	Password        string `db:"password"`
	Role            string `db:"role"`
	ServiceType     string `db:"service_type"`
	Status          string `db:"status"`
	ExperienceYears string `db:"experience_years"`
	Language        string `db:"language"`
	KycDocURL       string `db:"kyc_doc_url"`
	IntroVideoURL   string `db:"intro_video_url"`
	IsOnline        bool   `db:"is_online"`
	BankAccount     string `db:"bank_account"`
	IfscCode        string `db:"ifsc_code"`
	model.Metadata
}
