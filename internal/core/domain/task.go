package domain

import "time"

// TaskCategory names the kind of follow-up work a task carries.
type TaskCategory string

const (
	TaskNewVehicle       TaskCategory = "nuevo-vehiculo"
	TaskNoAnswerNumbers  TaskCategory = "numeros-no-contestan"
	TaskNoInterest       TaskCategory = "no-interesado-logicem"
	TaskLoadRestrictions TaskCategory = "restricciones-cargue"
	TaskReferrals        TaskCategory = "referidos"
)

// formCategories maps data-update form ids to the task category each one
// feeds.
var formCategories = map[string]TaskCategory{
	"vehicle-registration": TaskNewVehicle,
	"no-answer":            TaskNoAnswerNumbers,
	"no-logicem-interest":  TaskNoInterest,
	"loading-restrictions": TaskLoadRestrictions,
	"referrals":            TaskReferrals,
}

// CategoryForForm resolves a data-update form id to its task category.
func CategoryForForm(formID string) (TaskCategory, bool) {
	c, ok := formCategories[formID]
	return c, ok
}

// TaskPriority orders the back-office queue.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "baja"
	PriorityMedium TaskPriority = "media"
	PriorityHigh   TaskPriority = "alta"
	PriorityUrgent TaskPriority = "urgente"
)

// Rank returns the sort weight of a priority (low sorts first ascending).
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	}
	return 0
}

// categoryPriorities fixes the default priority of each task category.
var categoryPriorities = map[TaskCategory]TaskPriority{
	TaskNewVehicle:       PriorityLow,
	TaskNoAnswerNumbers:  PriorityMedium,
	TaskNoInterest:       PriorityLow,
	TaskLoadRestrictions: PriorityLow,
	TaskReferrals:        PriorityMedium,
}

// DefaultPriority returns the priority a category's tasks are created with.
func DefaultPriority(c TaskCategory) TaskPriority {
	if p, ok := categoryPriorities[c]; ok {
		return p
	}
	return PriorityMedium
}

// TaskStatus is the two-state task lifecycle.
type TaskStatus string

const (
	TaskPending TaskStatus = "pendiente"
	TaskClosed  TaskStatus = "cerrada"
)

// Task is one queued unit of back-office work created from a data-update
// form. Data carries the category-specific form payload untouched.
type Task struct {
	ID           string         `json:"id" bson:"_id"`
	Category     TaskCategory   `json:"category" bson:"category"`
	Priority     TaskPriority   `json:"priority" bson:"priority"`
	// PriorityRank is Priority.Rank() persisted so stores can sort the
	// queue baja < media < alta < urgente instead of alphabetically.
	PriorityRank int `json:"-" bson:"priority_rank"`
	Status       TaskStatus     `json:"status" bson:"status"`
	ReferenceID  string         `json:"reference_id,omitempty" bson:"reference_id,omitempty"`
	Data         map[string]any `json:"data,omitempty" bson:"data,omitempty"`
	Observations string         `json:"observations,omitempty" bson:"observations,omitempty"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
	ClosedAt     *time.Time     `json:"closed_at,omitempty" bson:"closed_at,omitempty"`
	CreatedBy    string         `json:"created_by" bson:"created_by"`
	ClosedBy     string         `json:"closed_by,omitempty" bson:"closed_by,omitempty"`
}
