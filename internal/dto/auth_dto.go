package dto

import (
	"time"

	"github.com/marinedeck/maritime-api/internal/models"
)

const dateLayout = "2006-01-02"

// StudentSignUpRequest describes the seafarer registration payload.
type StudentSignUpRequest struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"omitempty,min=7"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	DGShippingID    string `json:"dgshipping_id" validate:"omitempty"`
	Rank            string `json:"rank" validate:"omitempty"`
	COCNumber       string `json:"coc_number" validate:"omitempty"`
	DateOfBirth     string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Nationality     string `json:"nationality" validate:"omitempty"`
}

// InstituteSignUpRequest describes the institute registration payload; it
// creates the owning user account and the pending institute in one step.
type InstituteSignUpRequest struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"omitempty,min=7"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	InstituteName   string `json:"institute_name" validate:"required,min=2"`
	AccreditationNo string `json:"accreditation_no" validate:"required"`
	ValidFrom       string `json:"valid_from" validate:"required,datetime=2006-01-02"`
	ValidTo         string `json:"valid_to" validate:"required,datetime=2006-01-02"`
	ContactEmail    string `json:"contact_email" validate:"omitempty,email"`
	Address         string `json:"address" validate:"omitempty"`
	City            string `json:"city" validate:"omitempty"`
	State           string `json:"state" validate:"omitempty"`
}

// SignInRequest describes the credentials payload.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the account representation returned to clients; the
// password hash never leaves the service.
type UserResponse struct {
	UserID    string    `json:"userid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse carries the issued token and the authenticated account.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		UserID:    model.UserID,
		Name:      model.Name,
		Email:     model.Email,
		Phone:     model.Phone,
		Role:      model.Role,
		CreatedAt: model.CreatedAt,
	}
}
