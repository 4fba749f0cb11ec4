package model

import "time"

// DayCode is the canonical three letter weekday code.
type DayCode string

const (
	Monday    DayCode = "Mon"
	Tuesday   DayCode = "Tue"
	Wednesday DayCode = "Wed"
	Thursday  DayCode = "Thu"
	Friday    DayCode = "Fri"
	Saturday  DayCode = "Sat"
	Sunday    DayCode = "Sun"
)

var DayCodes = []DayCode{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

type Program struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Instruments []string  `json:"instruments"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedBy   *string   `json:"createdBy,omitempty"`
}

type ProgramDetails struct {
	Program
	Activities []ProgramActivity `json:"activities"`
}

// ProgramActivity is a recurring activity scheduled on a weekday.
type ProgramActivity struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Day         *DayCode   `json:"day"`
	Time        *string    `json:"time,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	CreatedBy   *string    `json:"createdBy,omitempty"`
}

type ProgramInput struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Description *string  `json:"description"`
	Instruments []string `json:"instruments"`
	IsActive    *bool    `json:"isActive"`
	CreatedBy   *string  `json:"createdBy"`
}

type ActivityInput struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Day         *string `json:"day"`
	Time        *string `json:"time"`
	CreatedBy   *string `json:"createdBy"`
}
