package store

import (
	"time"

	"github.com/jwalitptl/practice-dashboard/internal/model"
)

// Mock ids are not numeric, so mutations on mock entities stay local.

func mockTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func mockDate(s string) *time.Time {
	t := mockTime(s + "T00:00:00Z")
	return &t
}

func mockPatients() []model.Patient {
	return []model.Patient{
		{
			ID: "mock-patient-1", UserID: model.StringPtr("mock-user-1"),
			FirstName: "María", LastName: "González", Email: "maria.gonzalez@example.com",
			DateOfBirth: mockDate("1988-04-12"), Gender: model.GenderFemale,
			Phone: model.StringPtr("+56 9 5555 0101"), AssignedTherapists: []string{"mock-therapist-1"},
			ProgramID: model.StringPtr("mock-program-1"),
			CreatedAt: mockTime("2024-01-15T10:00:00Z"), IsActive: true,
		},
		{
			ID: "mock-patient-2", UserID: model.StringPtr("mock-user-2"),
			FirstName: "Juan", LastName: "Pérez", Email: "juan.perez@example.com",
			DateOfBirth: mockDate("1975-09-30"), Gender: model.GenderMale,
			AssignedTherapists: []string{"mock-therapist-1"},
			ProgramID:          model.StringPtr("mock-program-2"),
			CreatedAt:          mockTime("2024-02-03T15:30:00Z"), IsActive: true,
		},
		{
			ID: "mock-patient-3", UserID: model.StringPtr("mock-user-3"),
			FirstName: "Camila", LastName: "Rojas", Email: "camila.rojas@example.com",
			DateOfBirth: mockDate("1995-12-01"), Gender: model.GenderFemale,
			AssignedTherapists: []string{},
			ProgramID:          model.StringPtr("mock-program-1"),
			CreatedAt:          mockTime("2024-03-20T09:15:00Z"), IsActive: true,
		},
		{
			ID: "mock-patient-4", FirstName: "Alex", LastName: "Soto", Email: "alex.soto@example.com",
			Gender: model.GenderOther, AssignedTherapists: []string{},
			CreatedAt: mockTime("2024-04-08T12:00:00Z"), IsActive: false,
		},
	}
}

func mockPrograms() []model.ProgramDetails {
	return []model.ProgramDetails{
		{
			Program: model.Program{
				ID: "mock-program-1", Name: "Rehabilitación cardiaca",
				Description: "Programa de ejercicio supervisado de 12 semanas",
				Instruments: []string{"mock-instrument-1"}, IsActive: true,
				CreatedAt: mockTime("2024-01-01T08:00:00Z"), UpdatedAt: mockTime("2024-01-01T08:00:00Z"),
			},
			Activities: []model.ProgramActivity{
				{ID: "mock-activity-1", Name: "Caminata guiada", Day: dayPtr(model.Monday), Time: model.StringPtr("09:00")},
				{ID: "mock-activity-2", Name: "Fuerza de tren inferior", Day: dayPtr(model.Wednesday), Time: model.StringPtr("10:30")},
				{ID: "mock-activity-3", Name: "Respiración y relajación", Day: dayPtr(model.Friday), Time: model.StringPtr("18:00")},
			},
		},
		{
			Program: model.Program{
				ID: "mock-program-2", Name: "Control de peso",
				Description: "Seguimiento nutricional y actividad física",
				Instruments: []string{"mock-instrument-2"}, IsActive: true,
				CreatedAt: mockTime("2024-01-10T08:00:00Z"), UpdatedAt: mockTime("2024-02-01T08:00:00Z"),
			},
			Activities: []model.ProgramActivity{
				{ID: "mock-activity-4", Name: "Registro de comidas", Day: dayPtr(model.Tuesday)},
				{ID: "mock-activity-5", Name: "Trote suave", Day: dayPtr(model.Saturday), Time: model.StringPtr("08:00")},
			},
		},
	}
}

func mockInstruments() []model.Instrument {
	system := model.ResultDeliverySystem
	return []model.Instrument{
		{
			ID: "mock-instrument-1", Name: "Escala de esfuerzo percibido",
			Description: "Escala de esfuerzo percibido", Category: "Actividad física",
			EstimatedDuration: 5, IsActive: true,
			CreatedAt:         mockTime("2024-01-05T08:00:00Z"), UpdatedAt: mockTime("2024-01-05T08:00:00Z"),
			SubjectID:         model.StringPtr("mock-topic-1"), SubjectName: model.StringPtr("Esfuerzo"),
			ResultDelivery:    &system,
			Questions: []model.Question{
				{
					ID: "mock-question-1", InstrumentID: model.StringPtr("mock-instrument-1"),
					Text: "¿Cómo calificaría su esfuerzo hoy?", Type: model.QuestionTypeRadio,
					Options: []string{"Leve", "Moderado", "Intenso"},
					Answers: []model.QuestionAnswer{
						{ID: "mock-answer-1", Label: "Leve"},
						{ID: "mock-answer-2", Label: "Moderado"},
						{ID: "mock-answer-3", Label: "Intenso"},
					},
					Required: true, Order: 1,
				},
				{
					ID: "mock-question-2", InstrumentID: model.StringPtr("mock-instrument-1"),
					Text: "Comentarios adicionales", Type: model.QuestionTypeText, Order: 2,
				},
			},
		},
		{
			ID: "mock-instrument-2", Name: "Cuestionario de hábitos alimentarios",
			Description: "Cuestionario de hábitos alimentarios", Category: "Nutrición",
			EstimatedDuration: 10, IsActive: true,
			CreatedAt:         mockTime("2024-01-12T08:00:00Z"), UpdatedAt: mockTime("2024-01-12T08:00:00Z"),
			Questions: []model.Question{
				{
					ID: "mock-question-3", InstrumentID: model.StringPtr("mock-instrument-2"),
					Text: "¿Desayuna todos los días?", Type: model.QuestionTypeBoolean,
					Required: true, Order: 1,
				},
			},
		},
	}
}

func mockInstrumentTypes() []model.InstrumentType {
	return []model.InstrumentType{
		{ID: "mock-type-1", Name: "Cuestionario", Description: model.StringPtr("Preguntas de respuesta cerrada")},
		{ID: "mock-type-2", Name: "Escala"},
		{ID: "mock-type-3", Name: "Registro diario", Description: model.StringPtr("Bitácora completada por el paciente")},
	}
}

func dayPtr(d model.DayCode) *model.DayCode {
	return &d
}
