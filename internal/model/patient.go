package model

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Patient is the canonical client-side patient record.
type Patient struct {
	ID                 string     `json:"id"`
	UserID             *string    `json:"userId,omitempty"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Email              string     `json:"email"`
	DateOfBirth        *time.Time `json:"dateOfBirth"`
	Gender             Gender     `json:"gender"`
	Phone              *string    `json:"phone,omitempty"`
	Address            *string    `json:"address,omitempty"`
	AssignedTherapists []string   `json:"assignedTherapists"`
	ProgramID          *string    `json:"programId,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	IsActive           bool       `json:"isActive"`
}

func (p Patient) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// PatientInput carries a partial patient form submission. Nil fields are
// left out of the backend payload.
type PatientInput struct {
	UserID             *string    `json:"userId"`
	FirstName          *string    `json:"firstName" binding:"omitempty,max=120"`
	LastName           *string    `json:"lastName" binding:"omitempty,max=120"`
	Email              *string    `json:"email" binding:"omitempty,email"`
	DateOfBirth        *time.Time `json:"dateOfBirth"`
	Gender             *Gender    `json:"gender" binding:"omitempty,oneof=male female other"`
	Phone              *string    `json:"phone"`
	Address            *string    `json:"address"`
	AssignedTherapists []string   `json:"assignedTherapists"`
	ProgramID          *string    `json:"programId"`
	IsActive           *bool      `json:"isActive"`
}

type PatientFilters struct {
	Search string `form:"q"`
	Window
}
