package internal

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/evfl-tools/go-evfl/editor"
	"github.com/evfl-tools/go-evfl/model"
)

func CreateEventFlow(ctx Context, cmd editor.CreateEventFlowCmd) (editor.EventFlow, error) {
	if err := validateCmd(cmd, "failed to create event flow"); err != nil {
		return editor.EventFlow{}, err
	}

	var (
		eventFlow *model.EventFlow
		err       error
	)
	if cmd.Format == "yaml" {
		eventFlow, err = model.NewYaml(strings.NewReader(cmd.Definition))
	} else {
		eventFlow, err = model.New(strings.NewReader(cmd.Definition))
	}
	if err != nil {
		return editor.EventFlow{}, editor.Error{
			Type:   editor.ErrorFlowModel,
			Title:  "failed to create event flow",
			Detail: fmt.Sprintf("definition is invalid: %v", err),
		}
	}

	definition, err := normalizeDefinition(eventFlow)
	if err != nil {
		return editor.EventFlow{}, err
	}

	if existing, err := ctx.EventFlows().Select(eventFlow.Name); err == nil {
		if existing.Definition == definition {
			return existing.Summary(), nil // equal definition, no new event flow
		}

		return editor.EventFlow{}, editor.Error{
			Type:   editor.ErrorConflict,
			Title:  "failed to create event flow",
			Detail: fmt.Sprintf("event flow %s already exists with a different definition", eventFlow.Name),
		}
	}

	entity := EventFlowEntity{
		Name: eventFlow.Name,

		EventFlow:  eventFlow,
		Definition: definition,

		CreatedAt: ctx.Time(),
		CreatedBy: cmd.WorkerId,
		UpdatedAt: ctx.Time(),
		UpdatedBy: cmd.WorkerId,
	}

	if err := ctx.EventFlows().Insert(&entity); err != nil {
		return editor.EventFlow{}, err
	}

	return entity.Summary(), nil
}

func GetDefinition(ctx Context, cmd editor.GetDefinitionCmd) (string, error) {
	if err := validateCmd(cmd, "failed to get definition"); err != nil {
		return "", err
	}

	entity, err := ctx.EventFlows().Select(cmd.EventFlowName)
	if err != nil {
		return "", err
	}

	var buffer bytes.Buffer
	if cmd.Format == "yaml" {
		err = model.WriteYaml(&buffer, entity.EventFlow)
	} else {
		err = model.Write(&buffer, entity.EventFlow)
	}
	if err != nil {
		return "", editor.Error{
			Type:   editor.ErrorBug,
			Title:  "failed to get definition",
			Detail: fmt.Sprintf("failed to serialize event flow %s: %v", entity.Name, err),
		}
	}

	return buffer.String(), nil
}

func RemoveEventFlow(ctx Context, cmd editor.RemoveEventFlowCmd) error {
	if err := validateCmd(cmd, "failed to remove event flow"); err != nil {
		return err
	}

	if _, err := ctx.EventFlows().Select(cmd.EventFlowName); err != nil {
		return err
	}

	return ctx.EventFlows().Delete(cmd.EventFlowName)
}

// normalizeDefinition serializes an event flow as indented JSON, which
// makes definitions comparable regardless of their input format.
func normalizeDefinition(eventFlow *model.EventFlow) (string, error) {
	var buffer bytes.Buffer
	if err := model.Write(&buffer, eventFlow); err != nil {
		return "", editor.Error{
			Type:   editor.ErrorBug,
			Title:  "failed to normalize definition",
			Detail: fmt.Sprintf("failed to serialize event flow %s: %v", eventFlow.Name, err),
		}
	}
	return buffer.String(), nil
}
