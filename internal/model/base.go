package model

import "time"

// Window is an incremental "load more" slice of a collection.
type Window struct {
	Offset int `json:"offset" form:"offset" binding:"omitempty,min=0"`
	Limit  int `json:"limit" form:"limit" binding:"omitempty,min=1,max=200"`
}

const DefaultWindowLimit = 20

func (w Window) Normalize() Window {
	if w.Offset < 0 {
		w.Offset = 0
	}
	if w.Limit <= 0 {
		w.Limit = DefaultWindowLimit
	}
	return w
}

// JSONMap is a raw backend payload.
type JSONMap map[string]interface{}

// ChangeEvent is published after a mutation is applied to the store.
type ChangeEvent struct {
	Resource   string      `json:"resource"`
	Operation  string      `json:"operation"`
	ID         string      `json:"id"`
	Local      bool        `json:"local"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload,omitempty"`
}

const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
