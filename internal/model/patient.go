package model

import (
	"regexp"
	"strings"

	"github.com/polyclinic/clinic-api/pkg/apperror"
)

var (
	phonePattern     = regexp.MustCompile(`^\+7\d{10}$`)
	insurancePattern = regexp.MustCompile(`^\d{16}$`)
)

type Patient struct {
	Base
	FullName        string   `db:"full_name" json:"full_name"`
	BirthDate       DateOnly `db:"birth_date" json:"birth_date"`
	Phone           string   `db:"phone" json:"phone"`
	Address         string   `db:"address" json:"address"`
	InsuranceNumber string   `db:"insurance_number" json:"insurance_number"`
}

type CreatePatientRequest struct {
	FullName        string   `json:"full_name" binding:"required,min=5,max=100"`
	BirthDate       DateOnly `json:"birth_date" binding:"required"`
	Phone           string   `json:"phone" binding:"required,phone_ru"`
	Address         string   `json:"address" binding:"required,min=5,max=200"`
	InsuranceNumber string   `json:"insurance_number" binding:"required,insurance"`
}

type UpdatePatientRequest struct {
	FullName        *string   `json:"full_name" binding:"omitempty,min=5,max=100"`
	BirthDate       *DateOnly `json:"birth_date"`
	Phone           *string   `json:"phone" binding:"omitempty,phone_ru"`
	Address         *string   `json:"address" binding:"omitempty,min=5,max=200"`
	InsuranceNumber *string   `json:"insurance_number" binding:"omitempty,insurance"`
}

// ValidateFullName requires at least three space-separated name tokens
// (family name, given name, patronymic).
func ValidateFullName(name string) error {
	if len(strings.Fields(name)) < 3 {
		return apperror.Validation("full name must contain at least 3 words, got %q", name)
	}
	return nil
}

// ValidateBirthDate bounds the date to [1900-01-01, today].
func ValidateBirthDate(d DateOnly) error {
	if d.Year() < 1900 {
		return apperror.Validation("birth date %s is before 1900", d)
	}
	if d.Time.After(Today().Time) {
		return apperror.Validation("birth date %s is in the future", d)
	}
	return nil
}

// ValidatePhone checks the fixed-country-code pattern +7XXXXXXXXXX.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return apperror.Validation("phone %q must match +7XXXXXXXXXX", phone)
	}
	return nil
}

// ValidateInsuranceNumber checks the 16-digit policy number format.
func ValidateInsuranceNumber(number string) error {
	if !insurancePattern.MatchString(number) {
		return apperror.Validation("insurance number must contain exactly 16 digits")
	}
	return nil
}
