package mapper

import (
	"github.com/google/uuid"

	"github.com/jwalitptl/practice-dashboard/internal/model"
)

func normalizeAssignmentStatus(raw string, completed bool) model.AssignmentStatus {
	if completed {
		return model.AssignmentCompleted
	}
	switch Fold(raw) {
	case "completed", "completado", "completada", "finalizado", "finalizada", "respondido", "respondida", "done":
		return model.AssignmentCompleted
	}
	return model.AssignmentPending
}

// Assignment maps a patient-instrument assignment.
func Assignment(raw map[string]interface{}) Result[model.Assignment] {
	o := NewObject(raw)

	id, ok := o.ID("id", "id_asignacion", "assignmentId")
	if !ok {
		id = uuid.NewString()
		o.Note("id", "generated")
	}
	completedAt := o.Time("fecha_completado", "completed_at", "completedAt", "fecha_respuesta")

	a := model.Assignment{
		ID:             id,
		UserID:         o.StringOr("", "id_usuario", "user_id", "userId"),
		InstrumentID:   o.StringOr("", "id_instrumento", "instrument_id", "instrumentId", "instrumento.id"),
		InstrumentName: o.StringOr("", "instrumento.descripcion", "instrumento.nombre", "nombre_instrumento", "instrumentName"),
		Status: normalizeAssignmentStatus(
			o.StringOr("", "estado", "status"),
			o.Bool(false, "completado", "completed") || completedAt != nil,
		),
		AssignedAt:  o.Time("fecha_asignacion", "assigned_at", "assignedAt", "created_at"),
		CompletedAt: completedAt,
	}
	return Result[model.Assignment]{Value: a, Anomalies: o.Anomalies()}
}
