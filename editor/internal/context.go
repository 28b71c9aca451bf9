package internal

import (
	"time"

	"github.com/evfl-tools/go-evfl/editor"
	"github.com/evfl-tools/go-evfl/model"
)

type Context interface {
	Options() editor.Options

	Time() time.Time

	EventFlows() EventFlowRepository
}

type EventFlowRepository interface {
	// Delete deletes the event flow with the given name.
	Delete(name string) error

	// Insert inserts a new event flow entity.
	Insert(entity *EventFlowEntity) error

	// Select selects the event flow with the given name.
	// If no such event flow exists, an error of type [editor.ErrorNotFound] is returned.
	Select(name string) (*EventFlowEntity, error)

	// SelectAll selects all event flows, ordered by name.
	SelectAll() ([]*EventFlowEntity, error)
}

// EventFlowEntity is a loaded event flow with its normalized definition and modification metadata.
type EventFlowEntity struct {
	Name string

	EventFlow  *model.EventFlow
	Definition string // Normalized JSON definition, used to detect equal recreations.

	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
}

func (e *EventFlowEntity) Summary() editor.EventFlow {
	summary := editor.EventFlow{Name: e.Name}
	if e.EventFlow.Flowchart != nil {
		summary.EventCount = len(e.EventFlow.Flowchart.Events)
	}
	if e.EventFlow.Timeline != nil {
		summary.ClipCount = len(e.EventFlow.Timeline.Clips)
	}
	return summary
}

// notifyChanged calls the configured change callback, if any.
func notifyChanged(ctx Context, name string, reason editor.ChangeReason) {
	if onChanged := ctx.Options().OnEventFlowChanged; onChanged != nil {
		onChanged(editor.ChangeEvent{EventFlowName: name, Reason: reason})
	}
}
