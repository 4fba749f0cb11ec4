package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/practice-dashboard/internal/model"
)

func TestInstrumentTypeMissingDescriptionIsNil(t *testing.T) {
	for _, raw := range []map[string]interface{}{
		{"id": 1.0, "nombre": "Escalas"},
		{"id": 2.0, "nombre": "Tests", "descripcion": nil},
		{"id": 3.0, "nombre": "Otros", "descripcion": "   "},
	} {
		it := InstrumentType(raw).Value
		assert.Nil(t, it.Description)
	}
	it := InstrumentType(map[string]interface{}{"id": 4.0, "nombre": "Con", "descripcion": "texto", "id_criterio": 3.0}).Value
	require.NotNil(t, it.Description)
	assert.Equal(t, "texto", *it.Description)
	assert.Equal(t, "3", *it.CriterionID)
}

func TestInstrumentNameChain(t *testing.T) {
	inst := Instrument(map[string]interface{}{"id": 5.0, "descripcion": "PHQ-9", "nombre": "ignored"}).Value
	assert.Equal(t, "PHQ-9", inst.Name)

	inst = Instrument(map[string]interface{}{"id": 5.0, "nombre": "GAD-7"}).Value
	assert.Equal(t, "GAD-7", inst.Name)

	topic := "Ansiedad"
	inst = Instrument(map[string]interface{}{"id": 5.0, "id_tema": 2.0}, InstrumentOverrides{TopicName: &topic}).Value
	assert.Equal(t, "Ansiedad", inst.Name)
	assert.Equal(t, "2", *inst.SubjectID)

	inst = Instrument(map[string]interface{}{"id": 5.0}).Value
	assert.Equal(t, "Instrumento 5", inst.Name)
}

func TestInstrumentFields(t *testing.T) {
	res := Instrument(map[string]interface{}{
		"id":                 "11",
		"descripcion":        "Escala de ánimo",
		"duracion_estimada":  -4.0,
		"activo":             0.0,
		"entrega_resultados": "Programado",
		"color_respuesta":    "1",
		"created_at":         "not a date",
		"user_created":       "admin",
		"preguntas": []interface{}{
			map[string]interface{}{"id": 2.0, "orden": 2.0},
			map[string]interface{}{"id": 1.0, "orden": 1.0},
		},
	})
	inst := res.Value
	assert.Equal(t, 0, inst.EstimatedDuration)
	assert.False(t, inst.IsActive)
	require.NotNil(t, inst.ResultDelivery)
	assert.Equal(t, model.ResultDeliveryScheduled, *inst.ResultDelivery)
	assert.Equal(t, 1, inst.ColorResponse)
	assert.WithinDuration(t, time.Now(), inst.CreatedAt, 5*time.Second)
	require.Len(t, inst.Questions, 2)
	assert.Equal(t, "1", inst.Questions[0].ID)
	assert.Contains(t, res.Anomalies, "created_at: invalid date")

	inst = Instrument(map[string]interface{}{"id": "12", "entrega_resultados": "whenever"}).Value
	assert.Nil(t, inst.ResultDelivery)
	assert.True(t, inst.IsActive)
	assert.Equal(t, 0, inst.ColorResponse)
}

func TestPatientMapping(t *testing.T) {
	p := Patient(map[string]interface{}{
		"id_paciente":      42.0,
		"nombre":           "Ana",
		"apellido":         "Pérez",
		"correo":           "ana@example.com",
		"fecha_nacimiento": "1990-04-02",
		"genero":           "Femenino",
		"terapeutas":       []interface{}{3.0, map[string]interface{}{"id": "7"}},
		"id_programa":      9.0,
		"activo":           "inactivo",
		"usuario":          map[string]interface{}{"id": 100.0},
	}).Value
	assert.Equal(t, "42", p.ID)
	assert.Equal(t, "100", *p.UserID)
	assert.Equal(t, "Ana Pérez", p.FullName())
	assert.Equal(t, model.GenderFemale, p.Gender)
	require.NotNil(t, p.DateOfBirth)
	assert.Equal(t, 1990, p.DateOfBirth.Year())
	assert.Equal(t, []string{"3", "7"}, p.AssignedTherapists)
	assert.Equal(t, "9", *p.ProgramID)
	assert.False(t, p.IsActive)

	p = Patient(map[string]interface{}{"id": "1", "fecha_nacimiento": "garbage", "genero": "x"}).Value
	assert.Nil(t, p.DateOfBirth)
	assert.Equal(t, model.GenderOther, p.Gender)
	assert.True(t, p.IsActive)
	assert.Empty(t, p.AssignedTherapists)
}

func TestProgramDetailsActivities(t *testing.T) {
	d := ProgramDetails(map[string]interface{}{
		"id":           3.0,
		"nombre":       "Rehabilitación",
		"instrumentos": []interface{}{map[string]interface{}{"id_instrumento": 4.0}, "5"},
		"actividades": []interface{}{
			map[string]interface{}{"id": 1.0, "nombre": "Caminata", "dia": "Miércoles", "hora": "08:00"},
			map[string]interface{}{"id": 2.0, "nombre": "Yoga", "dia": "Funday"},
		},
	}).Value
	assert.Equal(t, []string{"4", "5"}, d.Instruments)
	require.Len(t, d.Activities, 2)
	assert.Equal(t, model.Wednesday, *d.Activities[0].Day)
	assert.Equal(t, "08:00", *d.Activities[0].Time)
	assert.Nil(t, d.Activities[1].Day)
}

func TestRecordsEnvelope(t *testing.T) {
	assert.Len(t, Records([]interface{}{map[string]interface{}{}, "skip"}), 1)
	assert.Len(t, Records(map[string]interface{}{"data": []interface{}{map[string]interface{}{}}}), 1)
	assert.Len(t, Records(map[string]interface{}{"data": map[string]interface{}{"items": []interface{}{map[string]interface{}{}}}}), 1)
	assert.Empty(t, Records("nope"))
}

func TestAssignmentStatus(t *testing.T) {
	a := Assignment(map[string]interface{}{"id": 1.0, "estado": "Completado", "instrumento": map[string]interface{}{"id": 3.0, "descripcion": "PHQ"}}).Value
	assert.Equal(t, model.AssignmentCompleted, a.Status)
	assert.Equal(t, "3", a.InstrumentID)
	assert.Equal(t, "PHQ", a.InstrumentName)

	a = Assignment(map[string]interface{}{"id": 2.0, "estado": "pendiente"}).Value
	assert.Equal(t, model.AssignmentPending, a.Status)
}
