package model

import (
	"database/sql"
	"servana/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldCustomerName  = "customer_name"
	FieldCustomerPhone = "customer_phone"
	FieldAddress       = "address"
	FieldServiceType   = "service_type"
	FieldPlanName      = "plan_name"
	FieldAmount        = "amount"
	FieldBookingDate   = "booking_date"
	FieldStatus        = "status"
	FieldServiceOtp    = "service_otp"
	FieldProviderID    = "provider_id"
	FieldWorkDuration  = "work_duration"
	FieldCompletedAt   = "completed_at"
)

// Booking is a service request tied to the provider matched for it. Amount is
// stored as text exactly as the client sent it; coercion to a number only
// happens when revenue is totalled.
type Booking struct {
	ID            string         `db:"id"`
	CustomerName  string         `db:"customer_name"`
	CustomerPhone string         `db:"customer_phone"`
	Address       string         `db:"address"`
	ServiceType   string         `db:"service_type"`
	PlanName      string         `db:"plan_name"`
	Amount        string         `db:"amount"`
	BookingDate   string         `db:"booking_date"`
	Status        string         `db:"status"`
	ServiceOtp    sql.NullString `db:"service_otp"`
	ProviderID    sql.NullString `db:"provider_id"`
	WorkDuration  string         `db:"work_duration"`
	CompletedAt   sql.NullTime   `db:"completed_at"`

	ProviderName       sql.NullString `db:"provider_name"       table:"providers" column:"full_name"`
	ProviderPhone      sql.NullString `db:"provider_phone"      table:"providers" column:"phone"`
	ProviderService    sql.NullString `db:"provider_service"    table:"providers" column:"service_type"`
	ProviderLanguage   sql.NullString `db:"provider_language"   table:"providers" column:"language"`
	ProviderExperience sql.NullString `db:"provider_experience" table:"providers" column:"experience_years"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN providers ON providers.id = bookings.provider_id"
}

// ServiceDemand is one row of the per-service booking tally.
type ServiceDemand struct {
	Service string `db:"service" json:"service"`
	Total   int    `db:"total"   json:"total"`
}
