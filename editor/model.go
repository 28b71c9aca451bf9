package editor

import (
	"fmt"

	"github.com/evfl-tools/go-evfl/model"
)

// LinkType describes how a parent event links to a child event.
type LinkType int

const (
	LinkNext       LinkType = iota + 1 // Next pointer of a sequential event (action, join, sub flow).
	LinkSwitchCase                     // Case of a switch event - the discriminant is carried as CaseValue.
	LinkForkBranch                     // Branch of a fork event - occurrences are meaningful.
)

func MapLinkType(s string) LinkType {
	switch s {
	case "NEXT":
		return LinkNext
	case "SWITCH_CASE":
		return LinkSwitchCase
	case "FORK_BRANCH":
		return LinkForkBranch
	default:
		return 0
	}
}

func (v LinkType) MarshalJSON() ([]byte, error) {
	s := v.String()
	if s == "" {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", s)), nil
}

func (v LinkType) String() string {
	switch v {
	case LinkNext:
		return "NEXT"
	case LinkSwitchCase:
		return "SWITCH_CASE"
	case LinkForkBranch:
		return "FORK_BRANCH"
	default:
		return ""
	}
}

func (v *LinkType) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) > 2 {
		s = s[1 : len(s)-1]
		*v = MapLinkType(s)
	}
	if *v == 0 {
		return fmt.Errorf("invalid link type data %s", s)
	}
	return nil
}

// ParentLink describes a candidate or existing edge from a parent event to the child event.
//
// Equality is structural: same parent handle, same link type, same case value.
type ParentLink struct {
	ParentId  int32    `json:"parentId" validate:"required"` // Handle of the parent event.
	Type      LinkType `json:"type" validate:"required"`     // Link type.
	CaseValue int32    `json:"caseValue,omitempty"`          // Switch case discriminant - unused for other link types.
}

func (v ParentLink) String() string {
	if v.Type == LinkSwitchCase {
		return fmt.Sprintf("%d:%s=%d", v.ParentId, v.Type, v.CaseValue)
	}
	return fmt.Sprintf("%d:%s", v.ParentId, v.Type)
}

// ChangeReason describes why an event flow has been changed.
type ChangeReason int

const (
	ChangeEvents ChangeReason = iota + 1
	ChangeTimeline
)

func (v ChangeReason) String() string {
	switch v {
	case ChangeEvents:
		return "EVENTS"
	case ChangeTimeline:
		return "TIMELINE"
	default:
		return ""
	}
}

// ChangeEvent notifies observers about a structural change, so that cached views can be refreshed.
type ChangeEvent struct {
	EventFlowName string       // Name of the changed event flow.
	Reason        ChangeReason // Change reason.
}

// EventFlow is a summary of a loaded event flow.
type EventFlow struct {
	Name string `json:"name" validate:"required"` // Event flow name.

	EventCount int `json:"eventCount"` // Number of flowchart events.
	ClipCount  int `json:"clipCount"`  // Number of timeline clips.
}

func (v EventFlow) String() string {
	return fmt.Sprintf("%s:%d:%d", v.Name, v.EventCount, v.ClipCount)
}

// Event is a view of a flowchart event.
type Event struct {
	Id int32 `json:"id" validate:"required"` // Event handle.

	Name  string          `json:"name" validate:"required"` // Event name.
	Type  model.EventType `json:"type" validate:"required"` // Event type.
	Actor string          `json:"actor,omitempty"`          // Acting actor - set for action and switch events.
}

func (v Event) String() string {
	return fmt.Sprintf("%d:%s:%s", v.Id, v.Name, v.Type)
}

// EventCriteria specifies the results, returned by an event query.
type EventCriteria struct {
	EventFlowName string `json:"eventFlowName" validate:"required"` // Event flow filter.

	Actor string          `json:"actor,omitempty"` // Actor filter.
	Type  model.EventType `json:"type,omitempty"`  // Event type filter.
}

// Clip is a view of a timeline clip.
type Clip struct {
	Id int32 `json:"id" validate:"required"` // Clip ID.

	Name      string         `json:"name" validate:"required"`        // Clip name.
	StartTime float64        `json:"startTime" validate:"gte=0"`      // Start offset in seconds.
	Duration  float64        `json:"duration" validate:"gt=0"`        // Duration in seconds.
	Type      model.ClipType `json:"type" validate:"required"`        // Clip type.
	Actor     string         `json:"actor,omitempty"`                 // Acting actor, determining the track.
}

func (v Clip) String() string {
	return fmt.Sprintf("%d:%s:%s", v.Id, v.Name, v.Type)
}

// ClipCriteria specifies the results, returned by a clip query.
type ClipCriteria struct {
	EventFlowName string `json:"eventFlowName" validate:"required"` // Event flow filter.

	Actor string         `json:"actor,omitempty"` // Actor filter.
	Type  model.ClipType `json:"type,omitempty"`  // Clip type filter.
}

// Zoom is the zoom level of a timeline visualization in relation to its time axis.
// The zero value is not usable - use [DefaultZoom].
type Zoom float64

const (
	DefaultZoom Zoom = 1.0

	minZoom Zoom = 0.1
	maxZoom Zoom = 10.0
)

// In returns the next higher zoom level, capped at 10.0.
func (z Zoom) In() Zoom {
	if zoomed := z * 1.5; zoomed < maxZoom {
		return zoomed
	}
	return maxZoom
}

// Out returns the next lower zoom level, floored at 0.1.
func (z Zoom) Out() Zoom {
	if zoomed := z / 1.5; zoomed > minZoom {
		return zoomed
	}
	return minZoom
}

// PixelsPerSecond returns the width of one second on the time axis.
func (z Zoom) PixelsPerSecond() float64 {
	return float64(z) * 60
}
