package editor

import "github.com/evfl-tools/go-evfl/model"

// CreateEventFlowCmd provides data for the creation of an event flow.
type CreateEventFlowCmd struct {
	// Event flow definition, provided as JSON or YAML.
	Definition string `json:"definition" validate:"required"`
	// Format of the definition - `json` or `yaml`. If empty, `json` is assumed.
	Format string `json:"format,omitempty" validate:"omitempty,oneof=json yaml"`
	// ID of the worker that created the event flow.
	WorkerId string `json:"workerId" validate:"required"`
}

// GetDefinitionCmd is a command for fetching the normalized definition of an existing event flow.
type GetDefinitionCmd struct {
	// Event flow name.
	EventFlowName string `json:"-"`

	// Format of the definition - `json` or `yaml`. If empty, `json` is assumed.
	Format string `json:"format,omitempty" validate:"omitempty,oneof=json yaml"`
}

// GetParentLinksCmd is used to gather all links of a flowchart that point at the child event.
type GetParentLinksCmd struct {
	// Event flow name.
	EventFlowName string `json:"-"`

	// Handle of the child event.
	ChildId int32 `json:"childId" validate:"required"`
}

// ReconcileParentsCmd provides the desired set of parent links for a child event.
//
// Sequential links behave as a set - duplicates collapse into one next
// pointer. Fork branch links are counted per parent - the count determines
// the branch multiplicity.
type ReconcileParentsCmd struct {
	// Event flow name.
	EventFlowName string `json:"-"`

	// Handle of the child event, all links point at.
	ChildId int32 `json:"childId" validate:"required"`
	// Desired parent links.
	Links []ParentLink `json:"links" validate:"max=1000,dive"`
	// ID of the worker that reconciled the parent links.
	WorkerId string `json:"workerId" validate:"required"`

	// ConfirmOverwrite is called before next pointers of sequential parents,
	// currently pointing at an event other than the child, are overwritten.
	// The names of the affected parents are passed.
	// If nil, or if false is returned, the operation fails with [ErrorOverwriteDeclined].
	ConfirmOverwrite func(parentNames []string) bool `json:"-"`
}

// AddClipCmd provides data for the addition of a timeline clip.
type AddClipCmd struct {
	// Event flow name.
	EventFlowName string `json:"-"`

	// Clip name.
	Name string `json:"name" validate:"required"`
	// Start offset in seconds.
	StartTime float64 `json:"startTime" validate:"gte=0"`
	// Duration in seconds.
	Duration float64 `json:"duration" validate:"gt=0"`
	// Clip type.
	Type model.ClipType `json:"type" validate:"required"`
	// Optional actor, determining the track.
	Actor string `json:"actor,omitempty"`
	// ID of the worker that added the clip.
	WorkerId string `json:"workerId" validate:"required"`
}

// UpdateClipCmd provides data for the update of an existing timeline clip.
type UpdateClipCmd struct {
	// Event flow name.
	EventFlowName string `json:"-"`
	// Clip ID.
	Id int32 `json:"-"`

	// Clip name.
	Name string `json:"name" validate:"required"`
	// Start offset in seconds.
	StartTime float64 `json:"startTime" validate:"gte=0"`
	// Duration in seconds.
	Duration float64 `json:"duration" validate:"gt=0"`
	// Clip type.
	Type model.ClipType `json:"type" validate:"required"`
	// Optional actor, determining the track.
	Actor string `json:"actor,omitempty"`
	// ID of the worker that updated the clip.
	WorkerId string `json:"workerId" validate:"required"`
}

// RemoveClipCmd is a command for removing an existing timeline clip.
type RemoveClipCmd struct {
	// Event flow name.
	EventFlowName string `json:"-"`
	// Clip ID.
	Id int32 `json:"-"`

	// ID of the worker that removed the clip.
	WorkerId string `json:"workerId" validate:"required"`
}

// GetRenderDataCmd is a command for fetching the timeline visualization payload.
type GetRenderDataCmd struct {
	// Event flow name.
	EventFlowName string `json:"-"`

	// Zoom level of the time axis. If 0, [DefaultZoom] is applied.
	Zoom Zoom `json:"zoom,omitempty" validate:"omitempty,gte=0.1,lte=10"`
}

// RemoveEventFlowCmd is a command for removing an existing event flow.
type RemoveEventFlowCmd struct {
	// Event flow name.
	EventFlowName string `json:"-"`

	// ID of the worker that removed the event flow.
	WorkerId string `json:"workerId" validate:"required"`
}
