package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultEditorId = "default-editor" // Default ID of an editor, used when no specific ID is provided via [Options].
)

// An Editor loads, queries and mutates event flows - flowchart graphs and timelines.
//
// All mutating operations are synchronous: an operation either runs to
// completion or fails without touching the event flow.
type Editor interface {
	// CreateEventFlow creates an event flow, using a definition that is provided as JSON or YAML.
	//
	// If an event flow with the same name exists, an error of type [ErrorConflict] is returned.
	CreateEventFlow(context.Context, CreateEventFlowCmd) (EventFlow, error)

	// GetDefinition gets the normalized JSON definition of an existing event flow.
	GetDefinition(context.Context, GetDefinitionCmd) (string, error)

	// GetParentLinks gets all links of a flowchart that point at the child event.
	//
	// Links are returned in event order: a sequential event contributes its
	// next pointer, a switch event one link per case (ascending by case
	// value), a fork event one link per branch occurrence.
	GetParentLinks(context.Context, GetParentLinksCmd) ([]ParentLink, error)

	// ReconcileParents mutates the flowchart so that the links pointing at the
	// child event equal exactly the desired set, leaving all other links
	// untouched.
	//
	// The desired set is validated as a whole before any event is mutated.
	// On failure, the flowchart is unchanged.
	ReconcileParents(context.Context, ReconcileParentsCmd) error

	// QueryEventFlows queries all loaded event flows, ordered by name.
	QueryEventFlows(context.Context) ([]EventFlow, error)

	// QueryEvents queries flowchart events, which match the specified criteria.
	QueryEvents(context.Context, EventCriteria) ([]Event, error)

	// AddClip adds a clip to the timeline of an existing event flow.
	AddClip(context.Context, AddClipCmd) (Clip, error)

	// UpdateClip updates the properties of an existing clip.
	UpdateClip(context.Context, UpdateClipCmd) (Clip, error)

	// RemoveClip removes an existing clip from the timeline.
	RemoveClip(context.Context, RemoveClipCmd) error

	// QueryClips queries timeline clips, which match the specified criteria.
	QueryClips(context.Context, ClipCriteria) ([]Clip, error)

	// GetRenderData gets the JSON payload, consumed by an embedded rendering
	// surface to visualize the timeline - clips grouped into tracks.
	GetRenderData(context.Context, GetRenderDataCmd) (string, error)

	// RemoveEventFlow removes an existing event flow.
	RemoveEventFlow(context.Context, RemoveEventFlowCmd) error

	// Shutdown shuts the editor down.
	Shutdown()
}

// Options are common configuration options that are shared between editor implementations.
type Options struct {
	EditorId string // ID of the editor.

	OnEventFlowChanged func(ChangeEvent) // Called after an event flow has been structurally changed.
}

func (o Options) Validate() error {
	if strings.TrimSpace(o.EditorId) == "" {
		return errors.New("editor ID must not be empty or blank")
	}

	return nil
}

type Error struct {
	Type   ErrorType
	Title  string
	Detail string
	Causes []ErrorCause
}

func (e Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %s: %s", e.Type, e.Title, e.Detail))

	for _, cause := range e.Causes {
		sb.WriteRune('\n')
		sb.WriteString(cause.String())
	}

	return sb.String()
}

type ErrorType int

const (
	ErrorBug ErrorType = iota + 1
	ErrorConflict
	ErrorDuplicateLink
	ErrorFlowModel
	ErrorNotFound
	ErrorOverwriteDeclined
	ErrorSelfParent
	ErrorUnsupportedParent
	ErrorValidation
)

func MapErrorType(s string) ErrorType {
	switch s {
	case "BUG":
		return ErrorBug
	case "CONFLICT":
		return ErrorConflict
	case "DUPLICATE_LINK":
		return ErrorDuplicateLink
	case "FLOW_MODEL":
		return ErrorFlowModel
	case "NOT_FOUND":
		return ErrorNotFound
	case "OVERWRITE_DECLINED":
		return ErrorOverwriteDeclined
	case "SELF_PARENT":
		return ErrorSelfParent
	case "UNSUPPORTED_PARENT":
		return ErrorUnsupportedParent
	case "VALIDATION":
		return ErrorValidation
	default:
		return 0
	}
}

func (v ErrorType) String() string {
	switch v {
	case ErrorBug:
		return "BUG"
	case ErrorConflict:
		return "CONFLICT"
	case ErrorDuplicateLink:
		return "DUPLICATE_LINK"
	case ErrorFlowModel:
		return "FLOW_MODEL"
	case ErrorNotFound:
		return "NOT_FOUND"
	case ErrorOverwriteDeclined:
		return "OVERWRITE_DECLINED"
	case ErrorSelfParent:
		return "SELF_PARENT"
	case ErrorUnsupportedParent:
		return "UNSUPPORTED_PARENT"
	case ErrorValidation:
		return "VALIDATION"
	default:
		return "UNKNOWN"
	}
}

// A cause of a flow model, conflict or validation [Error] like a duplicate switch case or an unresolvable parent event.
type ErrorCause struct {
	Pointer string // A pointer, locating the invalid parent link or event.
	Type    string // Type indicator.
	Detail  string // Human-readable, detailed information about the cause.
}

func (e ErrorCause) String() string {
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Pointer, e.Detail)
}
