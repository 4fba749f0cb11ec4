package model

import "time"

type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeBoolean        QuestionType = "boolean"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeRadio          QuestionType = "radio"
	QuestionTypeSelect         QuestionType = "select"
	QuestionTypeScale          QuestionType = "scale"
)

// IsChoice reports whether answers of this type are picked from predefined options.
func (t QuestionType) IsChoice() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeRadio, QuestionTypeSelect:
		return true
	}
	return false
}

type ResultDelivery string

const (
	ResultDeliverySystem    ResultDelivery = "sistema"
	ResultDeliveryScheduled ResultDelivery = "programado"
)

// Instrument is a questionnaire definition with ordered questions.
type Instrument struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	Questions         []Question      `json:"questions"`
	EstimatedDuration int             `json:"estimatedDuration"`
	IsActive          bool            `json:"isActive"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	InstrumentTypeID  *string         `json:"instrumentTypeId,omitempty"`
	SubjectID         *string         `json:"subjectId,omitempty"`
	SubjectName       *string         `json:"subjectName,omitempty"`
	Availability      *string         `json:"availability,omitempty"`
	Resource          *string         `json:"resource,omitempty"`
	ResultDelivery    *ResultDelivery `json:"resultDelivery"`
	ColorResponse     int             `json:"colorResponse"`
	CreatedBy         *string         `json:"createdBy,omitempty"`
}

type Question struct {
	ID           string           `json:"id"`
	InstrumentID *string          `json:"instrumentId,omitempty"`
	Text         string           `json:"text"`
	Type         QuestionType     `json:"type"`
	Options      []string         `json:"options,omitempty"`
	Answers      []QuestionAnswer `json:"answers,omitempty"`
	Required     bool             `json:"required"`
	Order        int              `json:"order"`
}

// QuestionAnswer is a predefined selectable option of a closed question.
type QuestionAnswer struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Value     *string    `json:"value,omitempty"`
	Color     *string    `json:"color,omitempty"`
	CreatedBy *string    `json:"createdBy,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type InstrumentInput struct {
	Name              *string         `json:"name" binding:"omitempty,max=255"`
	Description       *string         `json:"description"`
	Category          *string         `json:"category"`
	EstimatedDuration *int            `json:"estimatedDuration" binding:"omitempty,min=0"`
	IsActive          *bool           `json:"isActive"`
	InstrumentTypeID  *string         `json:"instrumentTypeId"`
	SubjectID         *string         `json:"subjectId"`
	Availability      *string         `json:"availability"`
	Resource          *string         `json:"resource"`
	ResultDelivery    *ResultDelivery `json:"resultDelivery" binding:"omitempty,oneof=sistema programado"`
	ColorResponse     *int            `json:"colorResponse" binding:"omitempty,oneof=0 1"`
	CreatedBy         *string         `json:"createdBy"`
}

type QuestionInput struct {
	Text      *string       `json:"text"`
	Type      *QuestionType `json:"type" binding:"omitempty,oneof=text boolean multiple_choice radio select scale"`
	Options   []string      `json:"options"`
	Required  *bool         `json:"required"`
	Order     *int          `json:"order" binding:"omitempty,min=0"`
	CreatedBy *string       `json:"createdBy"`
}

type AnswerLabelsInput struct {
	Labels []string `json:"labels"`
}
