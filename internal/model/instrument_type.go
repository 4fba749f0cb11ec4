package model

import "time"

type InstrumentType struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	CreatedBy   *string    `json:"createdBy,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	CriterionID *string    `json:"criterionId,omitempty"`
}

type InstrumentTypeInput struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	CriterionID *string `json:"criterionId"`
	CreatedBy   *string `json:"createdBy"`
}
