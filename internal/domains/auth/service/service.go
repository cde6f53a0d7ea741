package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"servana/config"
	"servana/infras/jwt"
	"servana/infras/otel"
	"servana/infras/s3"
	"servana/internal/domains/auth/model/dto"
	providerModel "servana/internal/domains/provider/model"
	providerDto "servana/internal/domains/provider/model/dto"
	providerRepo "servana/internal/domains/provider/repository"
	userModel "servana/internal/domains/user/model"
	userDto "servana/internal/domains/user/model/dto"
	userRepo "servana/internal/domains/user/repository"
	"servana/shared"
	"servana/shared/constant"
	gDto "servana/shared/dto"
	"servana/shared/failure"
	"servana/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	s3DirKycDocs     = "kyc-docs"
	s3DirIntroVideos = "intro-videos"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
}

type serviceImpl struct {
	userRepo     userRepo.User
	providerRepo providerRepo.Provider
	cfg          *config.Config
	otel         otel.Otel
	jwtService   jwt.JWT
	s3           s3.S3
}

func New(userRepo userRepo.User, providerRepo providerRepo.Provider, cfg *config.Config, otel otel.Otel, jwt jwt.JWT, s3 s3.S3) Auth {
	return &serviceImpl{
		userRepo:     userRepo,
		providerRepo: providerRepo,
		cfg:          cfg,
		otel:         otel,
		jwtService:   jwt,
		s3:           s3,
	}
}

func emailFilter(email, field, table string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    table,
			},
		},
	}
}

// emailTaken checks both account stores. An email registered as a customer
// cannot be reused for a provider and vice versa.
func (s *serviceImpl) emailTaken(ctx context.Context, email string) (bool, error) {
	exists, err := s.userRepo.Exist(ctx, emailFilter(email, userModel.FieldEmail, userModel.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return true, nil
	}

	exists, err = s.providerRepo.Exist(ctx, emailFilter(email, providerModel.FieldEmail, providerModel.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to check if provider exists: %w", err)
	}

	return exists, nil
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	taken, err := s.emailTaken(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to check email availability")

		return err
	}

	if taken {
		return failure.BadRequestFromString("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	username := constant.ContextGuest

	if req.Role == constant.RoleProvider {
		return s.registerProvider(ctx, req, username, hashedPassword)
	}

	if err = s.userRepo.Insert(ctx, req.ToUserModel(username, hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *serviceImpl) registerProvider(ctx context.Context, req dto.RegisterRequest, username, hashedPassword string) error {
	if req.KycDoc == nil {
		return failure.BadRequestFromString("aadhaar document is required") // nolint:wrapcheck
	}

	if req.IntroVideo == nil {
		return failure.BadRequestFromString("introduction video is required") // nolint:wrapcheck
	}

	kycDocURL, err := s.uploadRegistrationFile(ctx, s3DirKycDocs, req.KycDoc)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload kyc document")

		return fmt.Errorf("failed to upload kyc document: %w", err)
	}

	introVideoURL, err := s.uploadRegistrationFile(ctx, s3DirIntroVideos, req.IntroVideo)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload intro video")

		return fmt.Errorf("failed to upload intro video: %w", err)
	}

	provider := req.ToProviderModel(username, hashedPassword, kycDocURL, introVideoURL)

	if err = s.providerRepo.Insert(ctx, provider); err != nil {
		log.Error().Err(err).Msg("failed to create provider")

		s.removeRegistrationFiles(ctx, req)

		return fmt.Errorf("failed to create provider: %w", err)
	}

	return nil
}

// removeRegistrationFiles deletes the uploaded KYC objects when the provider
// row could not be created, so a failed registration leaves nothing behind in
// the bucket.
func (s *serviceImpl) removeRegistrationFiles(ctx context.Context, req dto.RegisterRequest) {
	bucket := s.cfg.External.S3.BucketName

	if err := s.s3.DeleteFile(ctx, bucket, s3DirKycDocs, req.KycDoc.Filename); err != nil {
		log.Error().Err(err).Msg("failed to remove kyc document after registration failure")
	}

	if err := s.s3.DeleteFile(ctx, bucket, s3DirIntroVideos, req.IntroVideo.Filename); err != nil {
		log.Error().Err(err).Msg("failed to remove intro video after registration failure")
	}
}

func (s *serviceImpl) uploadRegistrationFile(ctx context.Context, directory string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	return s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, directory, file, header, header.Filename) //nolint:wrapcheck
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userRepo.Get(ctx, emailFilter(req.Email, userModel.FieldEmail, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID != constant.Empty {
		if err := password.Verify(req.Password, user.Password); err != nil {
			log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

			return res, failure.Unauthorized("invalid password") // nolint:wrapcheck
		}

		tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
		if err != nil {
			log.Error().Err(err).Msg("failed to generate tokens")

			return res, fmt.Errorf("failed to generate tokens: %w", err)
		}

		var profile userDto.UserResponse
		profile.FromModel(user)

		res.FromTokenPair(tokenPair)
		res.Role = user.Role
		res.User = &profile

		return res, nil
	}

	provider, err := s.providerRepo.Get(ctx, emailFilter(req.Email, providerModel.FieldEmail, providerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get provider")

		return res, fmt.Errorf("failed to get provider: %w", err)
	}

	if provider.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with unknown email")

		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, provider.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized("invalid password") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, provider.ID, provider.Email, provider.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	var profile providerDto.ProviderResponse
	profile.FromModel(provider)

	res.FromTokenPair(tokenPair)
	res.Role = provider.Role
	res.Provider = &profile

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role == constant.RoleProvider {
		return s.changeProviderPassword(ctx, req, userID)
	}

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}
	updatedFields := shared.TransformFields(updatePassword, userID)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) changeProviderPassword(ctx context.Context, req dto.ChangePasswordRequest, providerID string) error {
	filter := shared.FilterByID(providerID, providerModel.FieldID, providerModel.TableName)

	provider, err := s.providerRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get provider")

		return fmt.Errorf("failed to get provider: %w", err)
	}

	if provider.ID == constant.Empty {
		return failure.NotFound("provider not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, provider.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}
	updatedFields := shared.TransformFields(updatePassword, providerID)

	if err = s.providerRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
