package model

import "fmt"

// EventType describes the different event flavors of a flowchart.
type EventType int

const (
	EventAction EventType = iota + 1
	EventFork
	EventJoin
	EventSubFlow
	EventSwitch
)

func MapEventType(s string) EventType {
	switch s {
	case "ACTION":
		return EventAction
	case "FORK":
		return EventFork
	case "JOIN":
		return EventJoin
	case "SUB_FLOW":
		return EventSubFlow
	case "SWITCH":
		return EventSwitch
	default:
		return 0
	}
}

func (v EventType) MarshalJSON() ([]byte, error) {
	s := v.String()
	if s == "" {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", s)), nil
}

// IsSequential determines if an event of this type holds a single next pointer.
func (v EventType) IsSequential() bool {
	switch v {
	case EventAction, EventJoin, EventSubFlow:
		return true
	default:
		return false
	}
}

func (v EventType) String() string {
	switch v {
	case EventAction:
		return "ACTION"
	case EventFork:
		return "FORK"
	case EventJoin:
		return "JOIN"
	case EventSubFlow:
		return "SUB_FLOW"
	case EventSwitch:
		return "SWITCH"
	default:
		return ""
	}
}

func (v *EventType) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) > 2 {
		s = s[1 : len(s)-1]
		*v = MapEventType(s)
	}
	if *v == 0 {
		return fmt.Errorf("invalid event type data %s", s)
	}
	return nil
}
