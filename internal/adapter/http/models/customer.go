package models

import (
	"errors"
	"strings"
)

type CreateCustomerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
}

func (r CreateCustomerRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FirstName) == "" {
		errs = append(errs, "firstName is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs = append(errs, "lastName is required")
	}
	if !looksLikeEmail(r.Email) {
		errs = append(errs, "email is not valid")
	}
	if strings.TrimSpace(r.DateOfBirth) == "" {
		errs = append(errs, "dateOfBirth is required in YYYY-MM-DD format")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type UpdateProfileRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	DateOfBirth     string `json:"dateOfBirth"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FirstName) == "" {
		errs = append(errs, "firstName is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs = append(errs, "lastName is required")
	}
	if !looksLikeEmail(r.Email) {
		errs = append(errs, "email is not valid")
	}
	if strings.TrimSpace(r.NewPassword) != "" && strings.TrimSpace(r.CurrentPassword) == "" {
		errs = append(errs, "currentPassword is required to set a new password")
	}
	if trimmed := strings.TrimSpace(r.NewPassword); trimmed != "" && len(trimmed) < 8 {
		errs = append(errs, "newPassword must be at least 8 characters")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type CustomerResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
}

func looksLikeEmail(value string) bool {
	trimmed := strings.TrimSpace(value)
	at := strings.Index(trimmed, "@")
	return at > 0 && strings.Contains(trimmed[at:], ".")
}
