package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// New parses a JSON event flow definition.
//
// Events reference each other by name within the definition.
// After decoding, all references are resolved to event handles.
// If the definition is invalid, an error describing every problem is returned.
func New(definitionReader io.Reader) (*EventFlow, error) {
	b, err := io.ReadAll(definitionReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %v", err)
	}
	if len(b) == 0 {
		return nil, errors.New("definition is empty")
	}

	var definition definition
	if err := json.Unmarshal(b, &definition); err != nil {
		return nil, fmt.Errorf("failed to decode JSON definition: %v", err)
	}

	return definition.resolve()
}

// NewYaml parses a YAML event flow definition - see [New].
func NewYaml(definitionReader io.Reader) (*EventFlow, error) {
	b, err := io.ReadAll(definitionReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %v", err)
	}
	if len(b) == 0 {
		return nil, errors.New("definition is empty")
	}

	var definition definition
	if err := yaml.Unmarshal(b, &definition); err != nil {
		return nil, fmt.Errorf("failed to decode YAML definition: %v", err)
	}

	return definition.resolve()
}

// Write serializes an event flow as an indented JSON definition.
func Write(w io.Writer, eventFlow *EventFlow) error {
	definition, err := newDefinition(eventFlow)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(definition)
}

// WriteYaml serializes an event flow as a YAML definition.
func WriteYaml(w io.Writer, eventFlow *EventFlow) error {
	definition, err := newDefinition(eventFlow)
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(definition)
}

// EventFlow is a named container, holding a flowchart, a timeline or both.
type EventFlow struct {
	Name string

	Flowchart *Flowchart
	Timeline  *Timeline
}

// Flowchart is a directed graph of events.
type Flowchart struct {
	Name string

	Actors      []Actor
	Events      []*Event
	EntryPoints []EntryPoint
}

// EventById returns the event with the given handle, or nil, if no such event exists.
func (f *Flowchart) EventById(id int32) *Event {
	if id < 1 || int(id) > len(f.Events) {
		return nil
	}
	return f.Events[id-1]
}

// EventByName returns the event with the given name, or nil, if no such event exists.
func (f *Flowchart) EventByName(name string) *Event {
	for _, event := range f.Events {
		if event.Name == name {
			return event
		}
	}
	return nil
}

// EventsByType returns all events of the given type, in definition order.
func (f *Flowchart) EventsByType(eventType EventType) []*Event {
	var events []*Event
	for _, event := range f.Events {
		if event.Type == eventType {
			events = append(events, event)
		}
	}
	return events
}

// Timeline is an ordered sequence of clips.
type Timeline struct {
	Name string

	Clips []*Clip
}

// ClipById returns the clip with the given ID, or nil, if no such clip exists.
func (t *Timeline) ClipById(id int32) *Clip {
	for _, clip := range t.Clips {
		if clip.Id == id {
			return clip
		}
	}
	return nil
}

// Clip is a timed entry of a timeline, placed on a track.
type Clip struct {
	Id int32

	Name      string
	StartTime float64
	Duration  float64
	Type      ClipType
	Actor     string
}

func (c *Clip) String() string {
	return fmt.Sprintf("%d:%s:%s", c.Id, c.Name, c.Type)
}

// definition document types, using names instead of handles

type definition struct {
	Name      string               `json:"name" yaml:"name"`
	Flowchart *flowchartDefinition `json:"flowchart,omitempty" yaml:"flowchart,omitempty"`
	Timeline  *timelineDefinition  `json:"timeline,omitempty" yaml:"timeline,omitempty"`
}

type flowchartDefinition struct {
	Actors      []actorDefinition      `json:"actors,omitempty" yaml:"actors,omitempty"`
	Events      []eventDefinition      `json:"events" yaml:"events"`
	EntryPoints []entryPointDefinition `json:"entryPoints,omitempty" yaml:"entryPoints,omitempty"`
}

type actorDefinition struct {
	Name    string   `json:"name" yaml:"name"`
	Actions []string `json:"actions,omitempty" yaml:"actions,omitempty"`
	Queries []string `json:"queries,omitempty" yaml:"queries,omitempty"`
}

type eventDefinition struct {
	Name   string         `json:"name" yaml:"name"`
	Type   string         `json:"type" yaml:"type"`
	Actor  string         `json:"actor,omitempty" yaml:"actor,omitempty"`
	Action string         `json:"action,omitempty" yaml:"action,omitempty"`
	Query  string         `json:"query,omitempty" yaml:"query,omitempty"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`

	Next       string            `json:"next,omitempty" yaml:"next,omitempty"`
	Cases      map[string]string `json:"cases,omitempty" yaml:"cases,omitempty"`
	Branches   []string          `json:"branches,omitempty" yaml:"branches,omitempty"`
	Join       string            `json:"join,omitempty" yaml:"join,omitempty"`
	Flowchart  string            `json:"flowchart,omitempty" yaml:"flowchart,omitempty"`
	EntryPoint string            `json:"entryPoint,omitempty" yaml:"entryPoint,omitempty"`
}

type entryPointDefinition struct {
	Name  string `json:"name" yaml:"name"`
	Event string `json:"event" yaml:"event"`
}

type timelineDefinition struct {
	Clips []clipDefinition `json:"clips" yaml:"clips"`
}

type clipDefinition struct {
	Name      string  `json:"name" yaml:"name"`
	StartTime float64 `json:"startTime" yaml:"startTime"`
	Duration  float64 `json:"duration" yaml:"duration"`
	Type      string  `json:"type" yaml:"type"`
	Actor     string  `json:"actor,omitempty" yaml:"actor,omitempty"`
}

func (d definition) resolve() (*EventFlow, error) {
	if d.Name == "" {
		return nil, errors.New("definition has no name")
	}
	if d.Flowchart == nil && d.Timeline == nil {
		return nil, errors.New("definition has neither a flowchart nor a timeline")
	}

	eventFlow := EventFlow{Name: d.Name}

	var errs []error

	if d.Flowchart != nil {
		flowchart, err := d.Flowchart.resolve(d.Name)
		if err != nil {
			errs = append(errs, err)
		}
		eventFlow.Flowchart = flowchart
	}
	if d.Timeline != nil {
		timeline, err := d.Timeline.resolve(d.Name)
		if err != nil {
			errs = append(errs, err)
		}
		eventFlow.Timeline = timeline
	}

	if len(errs) != 0 {
		return nil, errors.Join(errs...)
	}
	return &eventFlow, nil
}

func (d flowchartDefinition) resolve(name string) (*Flowchart, error) {
	var errs []error

	ids := make(map[string]int32, len(d.Events))
	for i := range d.Events {
		eventName := d.Events[i].Name
		if eventName == "" {
			errs = append(errs, fmt.Errorf("event at index %d has no name", i))
			continue
		}
		if _, ok := ids[eventName]; ok {
			errs = append(errs, fmt.Errorf("event name %s is not unique", eventName))
			continue
		}
		ids[eventName] = int32(i + 1)
	}

	// resolves an event name reference to a handle - 0, if the reference is empty
	eventId := func(eventName string, referrer string) int32 {
		if eventName == "" {
			return 0
		}
		if id, ok := ids[eventName]; ok {
			return id
		}
		errs = append(errs, fmt.Errorf("event %s references unknown event %s", referrer, eventName))
		return 0
	}

	events := make([]*Event, 0, len(d.Events))
	for i := range d.Events {
		eventDefinition := d.Events[i]

		event := Event{
			Id:   int32(i + 1),
			Name: eventDefinition.Name,
			Type: MapEventType(eventDefinition.Type),
		}

		switch event.Type {
		case EventAction:
			event.Model = ActionEvent{
				Actor:  eventDefinition.Actor,
				Action: eventDefinition.Action,
				Params: eventDefinition.Params,
				Next:   eventId(eventDefinition.Next, event.Name),
			}
		case EventFork:
			branches := make([]int32, 0, len(eventDefinition.Branches))
			for _, branch := range eventDefinition.Branches {
				branches = append(branches, eventId(branch, event.Name))
			}
			event.Model = ForkEvent{
				Branches: branches,
				Join:     eventId(eventDefinition.Join, event.Name),
			}
		case EventJoin:
			event.Model = JoinEvent{
				Next: eventId(eventDefinition.Next, event.Name),
			}
		case EventSubFlow:
			event.Model = SubFlowEvent{
				FlowchartName:  eventDefinition.Flowchart,
				EntryPointName: eventDefinition.EntryPoint,
				Params:         eventDefinition.Params,
				Next:           eventId(eventDefinition.Next, event.Name),
			}
		case EventSwitch:
			cases := make(map[int32]int32, len(eventDefinition.Cases))
			for caseValue, target := range eventDefinition.Cases {
				value, err := strconv.ParseInt(caseValue, 10, 32)
				if err != nil {
					errs = append(errs, fmt.Errorf("event %s has an invalid case value %s", event.Name, caseValue))
					continue
				}
				cases[int32(value)] = eventId(target, event.Name)
			}
			event.Model = SwitchEvent{
				Actor:  eventDefinition.Actor,
				Query:  eventDefinition.Query,
				Params: eventDefinition.Params,
				Cases:  cases,
			}
		default:
			errs = append(errs, fmt.Errorf("event %s has an invalid type %s", event.Name, eventDefinition.Type))
		}

		events = append(events, &event)
	}

	actors := make([]Actor, 0, len(d.Actors))
	for _, actorDefinition := range d.Actors {
		actors = append(actors, Actor{
			Name:    actorDefinition.Name,
			Actions: actorDefinition.Actions,
			Queries: actorDefinition.Queries,
		})
	}

	entryPoints := make([]EntryPoint, 0, len(d.EntryPoints))
	for _, entryPointDefinition := range d.EntryPoints {
		entryPoints = append(entryPoints, EntryPoint{
			Name:    entryPointDefinition.Name,
			EventId: eventId(entryPointDefinition.Event, entryPointDefinition.Name),
		})
	}

	if len(errs) != 0 {
		return nil, errors.Join(errs...)
	}

	return &Flowchart{
		Name: name,

		Actors:      actors,
		Events:      events,
		EntryPoints: entryPoints,
	}, nil
}

func (d timelineDefinition) resolve(name string) (*Timeline, error) {
	var errs []error

	clips := make([]*Clip, 0, len(d.Clips))
	for i := range d.Clips {
		clipDefinition := d.Clips[i]

		clip := Clip{
			Id: int32(i + 1),

			Name:      clipDefinition.Name,
			StartTime: clipDefinition.StartTime,
			Duration:  clipDefinition.Duration,
			Type:      MapClipType(clipDefinition.Type),
			Actor:     clipDefinition.Actor,
		}

		if clip.Name == "" {
			errs = append(errs, fmt.Errorf("clip at index %d has no name", i))
		}
		if clip.Type == 0 {
			errs = append(errs, fmt.Errorf("clip %s has an invalid type %s", clip.Name, clipDefinition.Type))
		}
		if clip.Duration <= 0 {
			errs = append(errs, fmt.Errorf("clip %s has a non-positive duration", clip.Name))
		}

		clips = append(clips, &clip)
	}

	if len(errs) != 0 {
		return nil, errors.Join(errs...)
	}

	return &Timeline{Name: name, Clips: clips}, nil
}

func newDefinition(eventFlow *EventFlow) (definition, error) {
	if eventFlow.Name == "" {
		return definition{}, errors.New("event flow has no name")
	}

	d := definition{Name: eventFlow.Name}

	if flowchart := eventFlow.Flowchart; flowchart != nil {
		// maps an event handle back to its name - empty, if the handle is 0
		eventName := func(id int32) string {
			if event := flowchart.EventById(id); event != nil {
				return event.Name
			}
			return ""
		}

		events := make([]eventDefinition, 0, len(flowchart.Events))
		for _, event := range flowchart.Events {
			eventDefinition := eventDefinition{
				Name: event.Name,
				Type: event.Type.String(),
			}

			switch model := event.Model.(type) {
			case ActionEvent:
				eventDefinition.Actor = model.Actor
				eventDefinition.Action = model.Action
				eventDefinition.Params = model.Params
				eventDefinition.Next = eventName(model.Next)
			case ForkEvent:
				branches := make([]string, 0, len(model.Branches))
				for _, branch := range model.Branches {
					branches = append(branches, eventName(branch))
				}
				eventDefinition.Branches = branches
				eventDefinition.Join = eventName(model.Join)
			case JoinEvent:
				eventDefinition.Next = eventName(model.Next)
			case SubFlowEvent:
				eventDefinition.Flowchart = model.FlowchartName
				eventDefinition.EntryPoint = model.EntryPointName
				eventDefinition.Params = model.Params
				eventDefinition.Next = eventName(model.Next)
			case SwitchEvent:
				cases := make(map[string]string, len(model.Cases))
				for caseValue, target := range model.Cases {
					cases[strconv.FormatInt(int64(caseValue), 10)] = eventName(target)
				}
				eventDefinition.Actor = model.Actor
				eventDefinition.Query = model.Query
				eventDefinition.Params = model.Params
				eventDefinition.Cases = cases
			default:
				return definition{}, fmt.Errorf("event %s has an unsupported model %T", event.Name, event.Model)
			}

			events = append(events, eventDefinition)
		}

		actors := make([]actorDefinition, 0, len(flowchart.Actors))
		for _, actor := range flowchart.Actors {
			actors = append(actors, actorDefinition{
				Name:    actor.Name,
				Actions: actor.Actions,
				Queries: actor.Queries,
			})
		}

		entryPoints := make([]entryPointDefinition, 0, len(flowchart.EntryPoints))
		for _, entryPoint := range flowchart.EntryPoints {
			entryPoints = append(entryPoints, entryPointDefinition{
				Name:  entryPoint.Name,
				Event: eventName(entryPoint.EventId),
			})
		}

		d.Flowchart = &flowchartDefinition{
			Actors:      actors,
			Events:      events,
			EntryPoints: entryPoints,
		}
	}

	if timeline := eventFlow.Timeline; timeline != nil {
		clips := make([]clipDefinition, 0, len(timeline.Clips))
		for _, clip := range timeline.Clips {
			clips = append(clips, clipDefinition{
				Name:      clip.Name,
				StartTime: clip.StartTime,
				Duration:  clip.Duration,
				Type:      clip.Type.String(),
				Actor:     clip.Actor,
			})
		}

		d.Timeline = &timelineDefinition{Clips: clips}
	}

	return d, nil
}
