package dto

import (
	"servana/internal/domains/provider/model"
)

// ProviderResponse is the public view of a provider account.
type ProviderResponse struct {
	ID              string `json:"id"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Role            string `json:"role"`
	ServiceType     string `json:"serviceType"`
	Status          string `json:"status"`
	ExperienceYears string `json:"experienceYears"`
	Language        string `json:"language"`
	KycDocURL       string `json:"kycDocUrl"`
	IntroVideoURL   string `json:"introVideoUrl"`
	IsOnline        bool   `json:"isOnline"`
}

func (r *ProviderResponse) FromModel(mod model.Provider) {
	r.ID = mod.ID
	r.FullName = mod.FullName
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Role = mod.Role
	r.ServiceType = mod.ServiceType
	r.Status = mod.Status
	r.ExperienceYears = mod.ExperienceYears
	r.Language = mod.Language
	r.KycDocURL = mod.KycDocURL
	r.IntroVideoURL = mod.IntroVideoURL
	r.IsOnline = mod.IsOnline
}

// UpdateOnlineRequest toggles a provider's availability for matching.
type UpdateOnlineRequest struct {
	IsOnline *bool `json:"isOnline" validate:"required"`
}
