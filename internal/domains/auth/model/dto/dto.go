package dto

import (
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"servana/infras/jwt"
	providerModel "servana/internal/domains/provider/model"
	providerDto "servana/internal/domains/provider/model/dto"
	userModel "servana/internal/domains/user/model"
	userDto "servana/internal/domains/user/model/dto"
	"servana/shared/constant"
	gModel "servana/shared/model"
	"servana/shared/timezone"
)

// RegisterRequest covers both account variants. Customer registrations only
// use the common fields; provider registrations add the service profile and
// the KYC uploads.
type RegisterRequest struct {
	Role            string `json:"role"        validate:"required,oneof=User Provider"`
	FullName        string `json:"fullName"    validate:"required,max=100"`
	Email           string `json:"email"       validate:"required,email,max=100"`
	Phone           string `json:"phone"       validate:"required,max=20"`
	Password        string `json:"password"    validate:"required,min=6"`
	ServiceType     string `json:"serviceType" validate:"required_if=Role Provider,omitempty,servicecategory"`
	ExperienceYears string `json:"experience"  validate:"omitempty,max=10"`
	Language        string `json:"language"    validate:"omitempty,max=50"`
	BankAccount     string `json:"bankAccount" validate:"omitempty,max=30"`
	IfscCode        string `json:"ifsc"        validate:"omitempty,max=20"`

	KycDoc     *multipart.FileHeader `json:"-" validate:"omitempty,mimetypes=application/pdf image/jpeg image/png,maxfilesize=10"`
	IntroVideo *multipart.FileHeader `json:"-" validate:"omitempty,mimetypes=video/mp4 video/quicktime,maxfilesize=100"`
}

// FromRequest populates the request from a parsed multipart form.
func (c *RegisterRequest) FromRequest(r *http.Request) {
	c.Role = r.FormValue("role")
	c.FullName = r.FormValue("fullName")
	c.Email = r.FormValue("email")
	c.Phone = r.FormValue("phone")
	c.Password = r.FormValue("password")
	c.ServiceType = r.FormValue("serviceType")
	c.ExperienceYears = r.FormValue("experience")
	c.Language = r.FormValue("language")
	c.BankAccount = r.FormValue("bankAccount")
	c.IfscCode = r.FormValue("ifsc")

	if _, header, err := r.FormFile(constant.FormFieldKycDoc); err == nil {
		c.KycDoc = header
	}

	if _, header, err := r.FormFile(constant.FormFieldIntroVideo); err == nil {
		c.IntroVideo = header
	}
}

func (c *RegisterRequest) ToUserModel(user, hashedPassword string) userModel.User {
	return userModel.User{
		ID:       uuid.NewString(),
		FullName: c.FullName,
		Email:    c.Email,
		Phone:    c.Phone,
		Password: hashedPassword,
		Role:     constant.RoleUser,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// ToProviderModel builds the provider row for a registration. New providers
// start pending review but default to online, so an accepted provider is
// matchable right away.
func (c *RegisterRequest) ToProviderModel(user, hashedPassword, kycDocURL, introVideoURL string) providerModel.Provider {
	experience := c.ExperienceYears
	if experience == constant.Empty {
		experience = "0"
	}

	language := c.Language
	if language == constant.Empty {
		language = "English"
	}

	return providerModel.Provider{
		ID:              uuid.NewString(),
		FullName:        c.FullName,
		Email:           c.Email,
		Phone:           c.Phone,
		Password:        hashedPassword,
		Role:            constant.RoleProvider,
		ServiceType:     c.ServiceType,
		Status:          constant.ProviderStatusPending,
		ExperienceYears: experience,
		Language:        language,
		KycDocURL:       kycDocURL,
		IntroVideoURL:   introVideoURL,
		IsOnline:        true,
		BankAccount:     c.BankAccount,
		IfscCode:        c.IfscCode,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the token pair plus the profile of whichever store
// the email resolved to.
type LoginResponse struct {
	AccessToken  string                        `json:"accessToken"`
	RefreshToken string                        `json:"refreshToken"`
	Role         string                        `json:"role"`
	User         *userDto.UserResponse         `json:"user,omitempty"`
	Provider     *providerDto.ProviderResponse `json:"provider,omitempty"`
}

func (r *LoginResponse) FromTokenPair(pair *jwt.TokenPair) {
	r.AccessToken = pair.AccessToken
	r.RefreshToken = pair.RefreshToken
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (r *RefreshTokenResponse) FromTokenPair(pair *jwt.TokenPair) {
	r.AccessToken = pair.AccessToken
	r.RefreshToken = pair.RefreshToken
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}
