package model

import "fmt"

// ClipType describes the different timeline clip flavors.
type ClipType int

const (
	ClipAction ClipType = iota + 1
	ClipAudio
	ClipCamera
	ClipEffect
	ClipEvent
)

func MapClipType(s string) ClipType {
	switch s {
	case "ACTION":
		return ClipAction
	case "AUDIO":
		return ClipAudio
	case "CAMERA":
		return ClipCamera
	case "EFFECT":
		return ClipEffect
	case "EVENT":
		return ClipEvent
	default:
		return 0
	}
}

func (v ClipType) MarshalJSON() ([]byte, error) {
	s := v.String()
	if s == "" {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", s)), nil
}

func (v ClipType) String() string {
	switch v {
	case ClipAction:
		return "ACTION"
	case ClipAudio:
		return "AUDIO"
	case ClipCamera:
		return "CAMERA"
	case ClipEffect:
		return "EFFECT"
	case ClipEvent:
		return "EVENT"
	default:
		return ""
	}
}

func (v *ClipType) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) > 2 {
		s = s[1 : len(s)-1]
		*v = MapClipType(s)
	}
	if *v == 0 {
		return fmt.Errorf("invalid clip type data %s", s)
	}
	return nil
}
