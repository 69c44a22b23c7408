package dto

import (
	"campus/internal/domains/user/model"
)

type LoginRequest struct {
	UserID   string `json:"userId"   validate:"required,len=7,numeric"`
	Password string `json:"password" validate:"required,min=4"`
}

type RegisterRequest struct {
	UserID      string `json:"userId"      validate:"required,len=7,numeric"`
	Password    string `json:"password"    validate:"required,min=4"`
	Name        string `json:"name"        validate:"required,max=50"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,min=10,max=20"`
}

type SearchPasswordRequest struct {
	UserID      string `json:"userId"      validate:"required,len=7,numeric"`
	PhoneNumber string `json:"phoneNumber" validate:"required,min=10,max=20"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name"        validate:"omitempty,max=50"`
	Password    string `json:"password"    validate:"omitempty,min=4"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,min=10,max=20"`
}

type UserResponse struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

func (r *UserResponse) FromModel(model model.User) {
	r.UserID = model.ID
	r.Name = model.Name
	r.PhoneNumber = model.PhoneNumber
}
