package model

import "fmt"

// Event is a node of the flowchart graph.
//
// The ID is a stable handle, assigned from 1 in definition order.
// Handle 0 means "no event" - e.g. an empty next pointer.
type Event struct {
	Id   int32
	Name string
	Type EventType

	Model any
}

func (e *Event) String() string {
	return fmt.Sprintf("%d:%s:%s", e.Id, e.Name, e.Type)
}

// event specific models

// ActionEvent makes an actor perform an action and continues with the next event.
type ActionEvent struct {
	Actor  string
	Action string
	Params map[string]any

	Next int32
}

// ForkEvent starts one parallel branch per entry in Branches.
// The same target may occur multiple times - the multiplicity is meaningful.
type ForkEvent struct {
	Branches []int32
	Join     int32
}

// JoinEvent joins the branches of a preceding fork and continues with the next event.
type JoinEvent struct {
	Next int32
}

// SubFlowEvent calls an entry point of another flowchart and continues with the next event.
type SubFlowEvent struct {
	FlowchartName  string
	EntryPointName string
	Params         map[string]any

	Next int32
}

// SwitchEvent evaluates an actor query and branches on the resulting value.
// Each case value maps to at most one event.
type SwitchEvent struct {
	Actor  string
	Query  string
	Params map[string]any

	Cases map[int32]int32
}

// Actor is a script actor, providing actions and queries to events.
type Actor struct {
	Name    string
	Actions []string
	Queries []string
}

// EntryPoint marks an event as a possible start of the flowchart.
type EntryPoint struct {
	Name    string
	EventId int32
}
