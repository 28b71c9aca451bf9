package internal

import (
	"github.com/evfl-tools/go-evfl/editor"
	"github.com/evfl-tools/go-evfl/model"
)

// QueryEventFlows returns a summary of each loaded event flow, ordered by name.
func QueryEventFlows(ctx Context) ([]editor.EventFlow, error) {
	entities, err := ctx.EventFlows().SelectAll()
	if err != nil {
		return nil, err
	}

	results := make([]editor.EventFlow, 0, len(entities))
	for _, entity := range entities {
		results = append(results, entity.Summary())
	}
	return results, nil
}

// QueryEvents returns views of the flowchart events that match the criteria,
// in flowchart order.
func QueryEvents(ctx Context, criteria editor.EventCriteria) ([]editor.Event, error) {
	if err := validateCmd(criteria, "failed to query events"); err != nil {
		return nil, err
	}

	entity, err := ctx.EventFlows().Select(criteria.EventFlowName)
	if err != nil {
		return nil, err
	}

	flowchart, err := selectFlowchart(entity)
	if err != nil {
		return nil, err
	}

	var results []editor.Event
	for _, event := range flowchart.Events {
		if criteria.Type != 0 && event.Type != criteria.Type {
			continue
		}

		actor := actorOf(event)
		if criteria.Actor != "" && actor != criteria.Actor {
			continue
		}

		results = append(results, editor.Event{
			Id:    event.Id,
			Name:  event.Name,
			Type:  event.Type,
			Actor: actor,
		})
	}
	return results, nil
}

// QueryClips returns views of the timeline clips that match the criteria,
// in timeline order.
func QueryClips(ctx Context, criteria editor.ClipCriteria) ([]editor.Clip, error) {
	if err := validateCmd(criteria, "failed to query clips"); err != nil {
		return nil, err
	}

	entity, err := ctx.EventFlows().Select(criteria.EventFlowName)
	if err != nil {
		return nil, err
	}

	timeline, err := selectTimeline(entity)
	if err != nil {
		return nil, err
	}

	var results []editor.Clip
	for _, clip := range timeline.Clips {
		if criteria.Type != 0 && clip.Type != criteria.Type {
			continue
		}
		if criteria.Actor != "" && clip.Actor != criteria.Actor {
			continue
		}

		results = append(results, newClip(clip))
	}
	return results, nil
}

// actorOf returns the acting actor of an event - empty for event types
// that are not performed by an actor.
func actorOf(event *model.Event) string {
	switch m := event.Model.(type) {
	case model.ActionEvent:
		return m.Actor
	case model.SwitchEvent:
		return m.Actor
	default:
		return ""
	}
}
