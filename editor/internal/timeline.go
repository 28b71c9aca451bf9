package internal

import (
	"encoding/json"
	"fmt"

	"github.com/evfl-tools/go-evfl/editor"
	"github.com/evfl-tools/go-evfl/model"
)

func AddClip(ctx Context, cmd editor.AddClipCmd) (editor.Clip, error) {
	if err := validateCmd(cmd, "failed to add clip"); err != nil {
		return editor.Clip{}, err
	}

	entity, err := ctx.EventFlows().Select(cmd.EventFlowName)
	if err != nil {
		return editor.Clip{}, err
	}

	timeline, err := selectTimeline(entity)
	if err != nil {
		return editor.Clip{}, err
	}

	var maxId int32
	for _, clip := range timeline.Clips {
		if clip.Id > maxId {
			maxId = clip.Id
		}
	}

	clip := model.Clip{
		Id:        maxId + 1,
		Name:      cmd.Name,
		StartTime: cmd.StartTime,
		Duration:  cmd.Duration,
		Type:      cmd.Type,
		Actor:     cmd.Actor,
	}

	timeline.Clips = append(timeline.Clips, &clip)

	if err := updateEntity(ctx, entity, cmd.WorkerId, editor.ChangeTimeline); err != nil {
		return editor.Clip{}, err
	}

	return newClip(&clip), nil
}

func UpdateClip(ctx Context, cmd editor.UpdateClipCmd) (editor.Clip, error) {
	if err := validateCmd(cmd, "failed to update clip"); err != nil {
		return editor.Clip{}, err
	}

	entity, err := ctx.EventFlows().Select(cmd.EventFlowName)
	if err != nil {
		return editor.Clip{}, err
	}

	timeline, err := selectTimeline(entity)
	if err != nil {
		return editor.Clip{}, err
	}

	clip := timeline.ClipById(cmd.Id)
	if clip == nil {
		return editor.Clip{}, editor.Error{
			Type:   editor.ErrorNotFound,
			Title:  "failed to update clip",
			Detail: fmt.Sprintf("timeline %s has no clip %d", timeline.Name, cmd.Id),
		}
	}

	clip.Name = cmd.Name
	clip.StartTime = cmd.StartTime
	clip.Duration = cmd.Duration
	clip.Type = cmd.Type
	clip.Actor = cmd.Actor

	if err := updateEntity(ctx, entity, cmd.WorkerId, editor.ChangeTimeline); err != nil {
		return editor.Clip{}, err
	}

	return newClip(clip), nil
}

func RemoveClip(ctx Context, cmd editor.RemoveClipCmd) error {
	if err := validateCmd(cmd, "failed to remove clip"); err != nil {
		return err
	}

	entity, err := ctx.EventFlows().Select(cmd.EventFlowName)
	if err != nil {
		return err
	}

	timeline, err := selectTimeline(entity)
	if err != nil {
		return err
	}

	clips := make([]*model.Clip, 0, len(timeline.Clips))
	for _, clip := range timeline.Clips {
		if clip.Id != cmd.Id {
			clips = append(clips, clip)
		}
	}

	if len(clips) == len(timeline.Clips) {
		return editor.Error{
			Type:   editor.ErrorNotFound,
			Title:  "failed to remove clip",
			Detail: fmt.Sprintf("timeline %s has no clip %d", timeline.Name, cmd.Id),
		}
	}

	timeline.Clips = clips

	return updateEntity(ctx, entity, cmd.WorkerId, editor.ChangeTimeline)
}

// GetRenderData produces the JSON document a timeline renderer consumes:
// the clips grouped into tracks, the horizontal scale derived from the zoom
// level and the ruler end in seconds.
func GetRenderData(ctx Context, cmd editor.GetRenderDataCmd) (string, error) {
	if err := validateCmd(cmd, "failed to get render data"); err != nil {
		return "", err
	}

	entity, err := ctx.EventFlows().Select(cmd.EventFlowName)
	if err != nil {
		return "", err
	}

	timeline, err := selectTimeline(entity)
	if err != nil {
		return "", err
	}

	zoom := cmd.Zoom
	if zoom == 0 {
		zoom = editor.DefaultZoom
	}

	var (
		rulerEnd   float64
		trackNames []string

		clips  = make([]renderClip, 0, len(timeline.Clips))
		tracks = make(map[string][]int32)
	)

	for _, clip := range timeline.Clips {
		trackName := trackNameOf(clip)
		if _, ok := tracks[trackName]; !ok {
			trackNames = append(trackNames, trackName)
		}
		tracks[trackName] = append(tracks[trackName], clip.Id)

		if end := clip.StartTime + clip.Duration; end > rulerEnd {
			rulerEnd = end
		}

		clips = append(clips, renderClip{
			Id:        clip.Id,
			Name:      clip.Name,
			StartTime: clip.StartTime,
			Duration:  clip.Duration,
			Type:      clip.Type,
			Actor:     clip.Actor,
			Track:     trackName,
		})
	}

	if len(timeline.Clips) != 0 {
		rulerEnd = rulerEnd + 5
	}

	// tracks appear in the order their first clip occurs
	renderTracks := make([]renderTrack, 0, len(trackNames))
	for _, trackName := range trackNames {
		renderTracks = append(renderTracks, renderTrack{Name: trackName, ClipIds: tracks[trackName]})
	}

	renderData := renderData{
		Name:            timeline.Name,
		Clips:           clips,
		Tracks:          renderTracks,
		PixelsPerSecond: zoom.PixelsPerSecond(),
		RulerEnd:        rulerEnd,
	}

	b, err := json.MarshalIndent(renderData, "", "  ")
	if err != nil {
		return "", editor.Error{
			Type:   editor.ErrorBug,
			Title:  "failed to get render data",
			Detail: fmt.Sprintf("failed to serialize render data of timeline %s: %v", timeline.Name, err),
		}
	}

	return string(b), nil
}

// trackNameOf determines the track a clip is grouped into.
// The actor takes precedence over the clip type.
func trackNameOf(clip *model.Clip) string {
	if clip.Actor != "" {
		return clip.Actor
	}
	if clip.Type != 0 {
		return clip.Type.String()
	}
	return "Unnamed"
}

type renderData struct {
	Name            string        `json:"name"`
	Clips           []renderClip  `json:"clips"`
	Tracks          []renderTrack `json:"tracks"`
	PixelsPerSecond float64       `json:"pixelsPerSecond"`
	RulerEnd        float64       `json:"rulerEnd"`
}

type renderClip struct {
	Id        int32          `json:"id"`
	Name      string         `json:"name"`
	StartTime float64        `json:"startTime"`
	Duration  float64        `json:"duration"`
	Type      model.ClipType `json:"type"`
	Actor     string         `json:"actor,omitempty"`
	Track     string         `json:"track"`
}

type renderTrack struct {
	Name    string  `json:"name"`
	ClipIds []int32 `json:"clipIds"`
}

// updateEntity refreshes the normalized definition and the modification
// metadata after a mutation, then notifies the change callback.
func updateEntity(ctx Context, entity *EventFlowEntity, workerId string, reason editor.ChangeReason) error {
	definition, err := normalizeDefinition(entity.EventFlow)
	if err != nil {
		return err
	}

	entity.Definition = definition
	entity.UpdatedAt = ctx.Time()
	entity.UpdatedBy = workerId

	notifyChanged(ctx, entity.Name, reason)
	return nil
}

func newClip(clip *model.Clip) editor.Clip {
	return editor.Clip{
		Id:        clip.Id,
		Name:      clip.Name,
		StartTime: clip.StartTime,
		Duration:  clip.Duration,
		Type:      clip.Type,
		Actor:     clip.Actor,
	}
}
