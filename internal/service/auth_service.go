package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

// ErrEmailTaken indicates the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials indicates an unknown email or wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

const dateLayout = "2006-01-02"

// AuthService exposes account registration and sign-in use cases.
type AuthService interface {
	SignUpStudent(ctx context.Context, payload dto.StudentSignUpRequest) (dto.AuthResponse, error)
	SignUpInstitute(ctx context.Context, payload dto.InstituteSignUpRequest) (dto.AuthResponse, error)
	SignIn(ctx context.Context, payload dto.SignInRequest) (dto.AuthResponse, error)
}

type authService struct {
	users      repository.UserRepository
	students   repository.StudentRepository
	institutes repository.InstituteRepository
	validator  *validator.Validate
	secret     string
	expiry     time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAuthService builds a new auth service.
func NewAuthService(repos repository.Repositories, validate *validator.Validate, secret string, expiry time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		users:      repos.Users,
		students:   repos.Students,
		institutes: repos.Institutes,
		validator:  validate,
		secret:     secret,
		expiry:     expiry,
		logger:     logger.With().Str("component", "auth_service").Logger(),
		now:        time.Now,
	}
}

func (s *authService) SignUpStudent(ctx context.Context, payload dto.StudentSignUpRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := s.createUser(ctx, payload.Name, payload.Email, payload.Phone, payload.Password, models.RoleStudent)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	student := models.Student{
		StudID:       models.NewID("stud"),
		UserID:       user.UserID,
		DGShippingID: payload.DGShippingID,
		Rank:         payload.Rank,
		COCNumber:    payload.COCNumber,
		DateOfBirth:  payload.DateOfBirth,
		Nationality:  payload.Nationality,
	}
	if err := s.students.Create(ctx, &student); err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Str("userid", user.UserID).Str("studid", student.StudID).Msg("student registered")

	return s.issue(user)
}

func (s *authService) SignUpInstitute(ctx context.Context, payload dto.InstituteSignUpRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	validFrom, err := time.Parse(dateLayout, payload.ValidFrom)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("invalid valid_from date: %w", err)
	}
	validTo, err := time.Parse(dateLayout, payload.ValidTo)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("invalid valid_to date: %w", err)
	}
	if !validTo.After(validFrom) {
		return dto.AuthResponse{}, fmt.Errorf("valid_to must be after valid_from")
	}

	user, err := s.createUser(ctx, payload.Name, payload.Email, payload.Phone, payload.Password, models.RoleInstitute)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	contactEmail := payload.ContactEmail
	if contactEmail == "" {
		contactEmail = user.Email
	}

	institute := models.Institute{
		InstID:          models.NewID("inst"),
		UserID:          user.UserID,
		Name:            payload.InstituteName,
		AccreditationNo: payload.AccreditationNo,
		ValidFrom:       validFrom,
		ValidTo:         validTo,
		ContactEmail:    contactEmail,
		ContactPhone:    payload.Phone,
		Address:         payload.Address,
		City:            payload.City,
		State:           payload.State,
		VerifiedStatus:  models.VerifiedStatusPending,
	}
	if err := s.institutes.Create(ctx, &institute); err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Str("userid", user.UserID).Str("instid", institute.InstID).Msg("institute registered, pending verification")

	return s.issue(user)
}

func (s *authService) SignIn(ctx context.Context, payload dto.SignInRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	s.logger.Info().Str("userid", user.UserID).Str("role", user.Role).Msg("user signed in")

	return s.issue(user)
}

func (s *authService) createUser(ctx context.Context, name, email, phone, password, role string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		UserID:       models.NewID("user"),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Phone:        phone,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	return user, nil
}

func (s *authService) issue(user models.User) (dto.AuthResponse, error) {
	issuedAt := s.now()
	claims := jwt.MapClaims{
		"sub":  user.UserID,
		"role": user.Role,
		"iat":  issuedAt.Unix(),
		"exp":  issuedAt.Add(s.expiry).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}
