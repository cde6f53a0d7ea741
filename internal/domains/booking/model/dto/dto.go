package dto

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"servana/internal/domains/booking/model"
	providerModel "servana/internal/domains/provider/model"
	"servana/shared"
	"servana/shared/constant"
	gModel "servana/shared/model"
	"servana/shared/timezone"
)

// AssignProviderRequest carries a new service request. ExcludeID is set when
// the customer declines the first match and asks for a different provider.
type AssignProviderRequest struct {
	ServiceType   string `json:"serviceType"   validate:"required,servicecategory"`
	CustomerName  string `json:"customerName"  validate:"required,max=100"`
	CustomerPhone string `json:"customerPhone" validate:"required,max=20"`
	Address       string `json:"address"       validate:"required"`
	Amount        string `json:"amount"        validate:"omitempty,max=20"`
	PlanName      string `json:"planName"      validate:"omitempty,max=100"`
	DateString    string `json:"dateString"    validate:"omitempty,max=50"`
	ExcludeID     string `json:"excludeId"     validate:"omitempty,uuid"`
}

func (c *AssignProviderRequest) ToModel(providerID, user string) model.Booking {
	amount := strings.TrimSpace(c.Amount)
	if amount == constant.Empty {
		amount = "0"
	}

	return model.Booking{
		ID:            uuid.NewString(),
		CustomerName:  c.CustomerName,
		CustomerPhone: c.CustomerPhone,
		Address:       c.Address,
		ServiceType:   c.ServiceType,
		PlanName:      c.PlanName,
		Amount:        amount,
		BookingDate:   c.DateString,
		Status:        constant.BookingStatusPending,
		ProviderID:    sql.NullString{String: providerID, Valid: true},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// MatchedProvider is the subset of the provider profile shared with the
// customer once a match is made.
type MatchedProvider struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	ServiceType string `json:"serviceType"`
}

func (r *MatchedProvider) FromModel(mod providerModel.Provider) {
	r.ID = mod.ID
	r.FullName = mod.FullName
	r.Phone = mod.Phone
	r.ServiceType = mod.ServiceType
}

type AssignProviderResponse struct {
	BookingID string          `json:"bookingId"`
	Provider  MatchedProvider `json:"provider"`
}

type BookingProvider struct {
	ID              string `json:"id"`
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	ServiceType     string `json:"serviceType,omitempty"`
	Language        string `json:"language,omitempty"`
	ExperienceYears string `json:"experienceYears,omitempty"`
}

type BookingResponse struct {
	ID            string           `json:"id"`
	CustomerName  string           `json:"customerName"`
	CustomerPhone string           `json:"customerPhone"`
	Address       string           `json:"address"`
	ServiceType   string           `json:"serviceType"`
	PlanName      string           `json:"planName"`
	Amount        string           `json:"amount"`
	DateString    string           `json:"dateString"`
	Status        string           `json:"status"`
	ServiceOtp    string           `json:"serviceOtp,omitempty"`
	WorkDuration  string           `json:"workDuration,omitempty"`
	CompletedAt   string           `json:"completedAt,omitempty"`
	Provider      *BookingProvider `json:"provider,omitempty"`
	CreatedAt     string           `json:"createdAt"`
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.CustomerName = mod.CustomerName
	r.CustomerPhone = mod.CustomerPhone
	r.Address = mod.Address
	r.ServiceType = mod.ServiceType
	r.PlanName = mod.PlanName
	r.Amount = mod.Amount
	r.DateString = mod.BookingDate
	r.Status = mod.Status
	r.ServiceOtp = mod.ServiceOtp.String
	r.WorkDuration = mod.WorkDuration
	r.CreatedAt = mod.CreatedAt.Format(constant.DateFormat)

	if mod.CompletedAt.Valid {
		r.CompletedAt = mod.CompletedAt.Time.Format(constant.DateFormat)
	}

	if mod.ProviderID.Valid {
		r.Provider = &BookingProvider{
			ID:              mod.ProviderID.String,
			FullName:        mod.ProviderName.String,
			Phone:           mod.ProviderPhone.String,
			ServiceType:     mod.ProviderService.String,
			Language:        mod.ProviderLanguage.String,
			ExperienceYears: mod.ProviderExperience.String,
		}
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"totalPage"`
	TotalData int               `json:"totalData"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// UpdateBookingOtpRequest issues or reissues the service start code. When
// ServiceOtp is empty a fresh code is generated server side. Reissuing
// replaces any previously stored code.
type UpdateBookingOtpRequest struct {
	BookingID  string `json:"bookingId"  validate:"required,uuid"`
	ServiceOtp string `json:"serviceOtp" validate:"omitempty,max=10"`
	Amount     string `json:"amount"     validate:"omitempty,max=20"`
}

type UpdateBookingOtpResponse struct {
	BookingID  string `json:"bookingId"`
	ServiceOtp string `json:"serviceOtp"`
	Amount     string `json:"amount"`
}

type VerifyServiceOtpRequest struct {
	BookingID string `json:"bookingId" validate:"required,uuid"`
	Otp       string `json:"otp"       validate:"required"`
}

// VerifyServiceOtpResponse echoes the amount stored on the booking. Client
// supplied amounts are never trusted at this step.
type VerifyServiceOtpResponse struct {
	BookingID string `json:"bookingId"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
}

type CompleteServiceRequest struct {
	BookingID string `json:"bookingId" validate:"required,uuid"`
	Duration  string `json:"duration"  validate:"omitempty,max=50"`
}

// BookingEvent is the payload published to the booking events topic on
// lifecycle changes.
type BookingEvent struct {
	BookingID   string `json:"bookingId"`
	ProviderID  string `json:"providerId,omitempty"`
	ServiceType string `json:"serviceType"`
	Status      string `json:"status"`
	OccurredAt  string `json:"occurredAt"`
}
