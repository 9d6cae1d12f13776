package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/marinedeck/maritime-api/internal/blobstore"
	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

func emptyRepos() repository.Repositories {
	store := blobstore.New(blobstore.NewMemoryStorage(), blobstore.WithSeed(func() blobstore.State {
		return blobstore.State{}
	}))
	return blobstore.NewRepositories(store)
}

func newAuthService(repos repository.Repositories) AuthService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewAuthService(repos, validate, "test-secret", time.Hour, zerolog.New(io.Discard))
}

func TestAuthServiceStudentSignUp(t *testing.T) {
	repos := emptyRepos()
	svc := newAuthService(repos)
	ctx := context.Background()

	resp, err := svc.SignUpStudent(ctx, dto.StudentSignUpRequest{
		Name:            "Arjun Nair",
		Email:           "Arjun@sea.test",
		Password:        "secret12",
		ConfirmPassword: "secret12",
		Rank:            "Second Officer",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, models.RoleStudent, resp.User.Role)
	require.Equal(t, "arjun@sea.test", resp.User.Email)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	sub, err := token.Claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, resp.User.UserID, sub)

	student, err := repos.Students.GetByUserID(ctx, resp.User.UserID)
	require.NoError(t, err)
	require.Equal(t, "Second Officer", student.Rank)
}

func TestAuthServiceDuplicateEmail(t *testing.T) {
	svc := newAuthService(emptyRepos())
	ctx := context.Background()

	payload := dto.StudentSignUpRequest{
		Name:            "Arjun Nair",
		Email:           "arjun@sea.test",
		Password:        "secret12",
		ConfirmPassword: "secret12",
	}
	_, err := svc.SignUpStudent(ctx, payload)
	require.NoError(t, err)

	payload.Name = "Another Arjun"
	_, err = svc.SignUpStudent(ctx, payload)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthServicePasswordMismatch(t *testing.T) {
	svc := newAuthService(emptyRepos())

	_, err := svc.SignUpStudent(context.Background(), dto.StudentSignUpRequest{
		Name:            "Arjun Nair",
		Email:           "arjun@sea.test",
		Password:        "secret12",
		ConfirmPassword: "different",
	})
	require.Error(t, err)
	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
}

func TestAuthServiceInstituteSignUp(t *testing.T) {
	repos := emptyRepos()
	svc := newAuthService(repos)
	ctx := context.Background()

	resp, err := svc.SignUpInstitute(ctx, dto.InstituteSignUpRequest{
		Name:            "Meera Pillai",
		Email:           "admin@academy.test",
		Password:        "secret12",
		ConfirmPassword: "secret12",
		InstituteName:   "Chennai Maritime Academy",
		AccreditationNo: "DGS/2025/014",
		ValidFrom:       "2025-01-01",
		ValidTo:         "2027-12-31",
		City:            "Chennai",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleInstitute, resp.User.Role)

	inst, err := repos.Institutes.GetByUserID(ctx, resp.User.UserID)
	require.NoError(t, err)
	require.Equal(t, models.VerifiedStatusPending, inst.VerifiedStatus)
	require.Equal(t, "admin@academy.test", inst.ContactEmail)
}

func TestAuthServiceInstituteAccreditationWindow(t *testing.T) {
	svc := newAuthService(emptyRepos())

	_, err := svc.SignUpInstitute(context.Background(), dto.InstituteSignUpRequest{
		Name:            "Meera Pillai",
		Email:           "admin@academy.test",
		Password:        "secret12",
		ConfirmPassword: "secret12",
		InstituteName:   "Chennai Maritime Academy",
		AccreditationNo: "DGS/2025/014",
		ValidFrom:       "2027-01-01",
		ValidTo:         "2025-12-31",
	})
	require.Error(t, err)
}

func TestAuthServiceSignIn(t *testing.T) {
	svc := newAuthService(emptyRepos())
	ctx := context.Background()

	_, err := svc.SignUpStudent(ctx, dto.StudentSignUpRequest{
		Name:            "Arjun Nair",
		Email:           "arjun@sea.test",
		Password:        "secret12",
		ConfirmPassword: "secret12",
	})
	require.NoError(t, err)

	resp, err := svc.SignIn(ctx, dto.SignInRequest{Email: "arjun@sea.test", Password: "secret12"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	_, err = svc.SignIn(ctx, dto.SignInRequest{Email: "arjun@sea.test", Password: "wrong-pass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, dto.SignInRequest{Email: "nobody@sea.test", Password: "secret12"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
