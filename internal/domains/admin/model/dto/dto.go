package dto

import (
	bookingModel "servana/internal/domains/booking/model"
	providerModel "servana/internal/domains/provider/model"
	providerDto "servana/internal/domains/provider/model/dto"
)

// ApproveProviderRequest settles a pending provider application.
type ApproveProviderRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

type ListProvidersResponse struct {
	Providers []providerDto.ProviderResponse `json:"providers"`
	Total     int                            `json:"total"`
}

func (r *ListProvidersResponse) FromModels(models []providerModel.Provider) {
	r.Total = len(models)

	r.Providers = make([]providerDto.ProviderResponse, len(models))
	for i, mod := range models {
		r.Providers[i].FromModel(mod)
	}
}

// StatsResponse is the admin dashboard summary. TotalRevenue is the rounded
// sum of booking amounts; amounts that do not parse as numbers count as zero.
type StatsResponse struct {
	Accepted      int                          `json:"accepted"`
	Pending       int                          `json:"pending"`
	TotalBookings int                          `json:"totalBookings"`
	ServiceDemand []bookingModel.ServiceDemand `json:"serviceDemand"`
	TotalRevenue  float64                      `json:"totalRevenue"`
}
