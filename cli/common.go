package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/evfl-tools/go-evfl/editor"
)

// flowName returns the name of the loaded event flow.
// When the editor has been injected, the name is resolved by query.
func (c *Cli) flowName() (string, error) {
	if c.eventFlowName != "" {
		return c.eventFlowName, nil
	}

	results, err := c.e.QueryEventFlows(context.Background())
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no event flow loaded")
	}

	c.eventFlowName = results[0].Name
	return c.eventFlowName, nil
}

// findEvent resolves an event name to its view, querying the loaded flowchart.
func (c *Cli) findEvent(eventFlowName string, eventName string) (editor.Event, error) {
	results, err := c.e.QueryEvents(context.Background(), editor.EventCriteria{EventFlowName: eventFlowName})
	if err != nil {
		return editor.Event{}, err
	}

	for _, result := range results {
		if result.Name == eventName {
			return result, nil
		}
	}

	return editor.Event{}, fmt.Errorf("flowchart has no event %s", eventName)
}

// parseCaseLink parses a switch case flag value like "CheckMood=1".
func parseCaseLink(v string) (string, int32, error) {
	i := strings.LastIndexByte(v, '=')
	if i <= 0 || i == len(v)-1 {
		return "", 0, fmt.Errorf("switch case %s must have the format PARENT=VALUE", v)
	}

	caseValue, err := strconv.ParseInt(v[i+1:], 10, 32)
	if err != nil {
		return "", 0, fmt.Errorf("switch case %s has an invalid value: %v", v, err)
	}

	return v[:i], int32(caseValue), nil
}
