package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidDefinition(t *testing.T) {
	if _, err := New(strings.NewReader("")); err == nil {
		t.Fatal("expected error when definition is empty")
	}

	if _, err := New(strings.NewReader("#")); err == nil {
		t.Fatal("expected error when JSON is invalid")
	}

	if _, err := New(strings.NewReader("{}")); err == nil {
		t.Fatal("expected error when definition has no name")
	}

	if _, err := New(strings.NewReader(`{"name":"test"}`)); err == nil {
		t.Fatal("expected error when definition has neither a flowchart nor a timeline")
	}
}

func TestResolveErrors(t *testing.T) {
	assert := assert.New(t)

	t.Run("unknown event reference", func(t *testing.T) {
		definition := `{"name":"test","flowchart":{"events":[{"name":"a","type":"ACTION","next":"b"}]}}`

		// when
		_, err := New(strings.NewReader(definition))

		// then
		assert.NotNil(err)
		assert.Contains(err.Error(), "references unknown event b")
	})

	t.Run("duplicate event name", func(t *testing.T) {
		definition := `{"name":"test","flowchart":{"events":[{"name":"a","type":"ACTION"},{"name":"a","type":"JOIN"}]}}`

		// when
		_, err := New(strings.NewReader(definition))

		// then
		assert.NotNil(err)
		assert.Contains(err.Error(), "not unique")
	})

	t.Run("invalid event type", func(t *testing.T) {
		definition := `{"name":"test","flowchart":{"events":[{"name":"a","type":"GATEWAY"}]}}`

		// when
		_, err := New(strings.NewReader(definition))

		// then
		assert.NotNil(err)
		assert.Contains(err.Error(), "invalid type")
	})

	t.Run("invalid switch case value", func(t *testing.T) {
		definition := `{"name":"test","flowchart":{"events":[{"name":"a","type":"SWITCH","cases":{"x":""}}]}}`

		// when
		_, err := New(strings.NewReader(definition))

		// then
		assert.NotNil(err)
		assert.Contains(err.Error(), "invalid case value x")
	})

	t.Run("invalid clip", func(t *testing.T) {
		definition := `{"name":"test","timeline":{"clips":[{"name":"a","type":"VIDEO","duration":0}]}}`

		// when
		_, err := New(strings.NewReader(definition))

		// then
		assert.NotNil(err)
		assert.Contains(err.Error(), "invalid type")
		assert.Contains(err.Error(), "non-positive duration")
	})
}

func TestResolveFlowchart(t *testing.T) {
	assert := assert.New(t)

	// when
	eventFlow := mustCreateEventFlow(t, "quest.json")

	// then
	assert.Equal("quest", eventFlow.Name)

	flowchart := eventFlow.Flowchart
	if flowchart == nil {
		t.Fatal("expected flowchart")
	}

	assert.Equal("quest", flowchart.Name)
	assert.Len(flowchart.Actors, 2)
	assert.Len(flowchart.Events, 9)
	assert.Len(flowchart.EntryPoints, 1)

	assert.Equal(int32(1), flowchart.EntryPoints[0].EventId)

	greetPlayer := flowchart.EventByName("GreetPlayer")
	if greetPlayer == nil {
		t.Fatal("expected event GreetPlayer")
	}

	assert.Equal(int32(1), greetPlayer.Id)
	assert.Equal(EventAction, greetPlayer.Type)

	actionEvent := greetPlayer.Model.(ActionEvent)
	assert.Equal("Npc", actionEvent.Actor)
	assert.Equal("Talk", actionEvent.Action)
	assert.Equal(int32(2), actionEvent.Next)

	checkMood := flowchart.EventByName("CheckMood")
	switchEvent := checkMood.Model.(SwitchEvent)
	assert.Equal("GetMood", switchEvent.Query)
	assert.Equal(map[int32]int32{0: 3, 1: 4}, switchEvent.Cases)

	prepareRewards := flowchart.EventByName("PrepareRewards")
	forkEvent := prepareRewards.Model.(ForkEvent)
	assert.Equal([]int32{6, 7}, forkEvent.Branches)
	assert.Equal(int32(8), forkEvent.Join)

	rewardsReady := flowchart.EventByName("RewardsReady")
	joinEvent := rewardsReady.Model.(JoinEvent)
	assert.Equal(int32(9), joinEvent.Next)

	complete := flowchart.EventByName("Complete")
	subFlowEvent := complete.Model.(SubFlowEvent)
	assert.Equal("Common", subFlowEvent.FlowchartName)
	assert.Equal("Finish", subFlowEvent.EntryPointName)
	assert.Equal(int32(0), subFlowEvent.Next)

	assert.Nil(flowchart.EventById(0))
	assert.Nil(flowchart.EventById(10))
	assert.Len(flowchart.EventsByType(EventAction), 5)
}

func TestResolveTimeline(t *testing.T) {
	assert := assert.New(t)

	// when
	eventFlow := mustCreateEventFlow(t, "quest.json")

	// then
	timeline := eventFlow.Timeline
	if timeline == nil {
		t.Fatal("expected timeline")
	}

	assert.Equal("quest", timeline.Name)
	assert.Len(timeline.Clips, 3)

	fanfare := timeline.ClipById(2)
	if fanfare == nil {
		t.Fatal("expected clip 2")
	}

	assert.Equal("Fanfare", fanfare.Name)
	assert.Equal(2.0, fanfare.StartTime)
	assert.Equal(3.0, fanfare.Duration)
	assert.Equal(ClipAudio, fanfare.Type)
	assert.Empty(fanfare.Actor)

	assert.Nil(timeline.ClipById(4))
}

func TestYamlEqualsJson(t *testing.T) {
	assert := assert.New(t)

	// when
	fromJson := mustCreateEventFlow(t, "quest.json")
	fromYaml := mustCreateEventFlow(t, "quest.yaml")

	// then
	var jsonBuffer bytes.Buffer
	if err := Write(&jsonBuffer, fromJson); err != nil {
		t.Fatalf("failed to write definition: %v", err)
	}

	var yamlBuffer bytes.Buffer
	if err := Write(&yamlBuffer, fromYaml); err != nil {
		t.Fatalf("failed to write definition: %v", err)
	}

	assert.Equal(jsonBuffer.String(), yamlBuffer.String())
}

func TestWriteRoundTrip(t *testing.T) {
	assert := assert.New(t)

	eventFlow := mustCreateEventFlow(t, "quest.json")

	// when
	var buffer bytes.Buffer
	if err := Write(&buffer, eventFlow); err != nil {
		t.Fatalf("failed to write definition: %v", err)
	}

	parsed, err := New(&buffer)
	if err != nil {
		t.Fatalf("failed to parse written definition: %v", err)
	}

	// then
	assert.Equal(eventFlow.Name, parsed.Name)
	assert.Len(parsed.Flowchart.Events, len(eventFlow.Flowchart.Events))
	assert.Len(parsed.Timeline.Clips, len(eventFlow.Timeline.Clips))

	for i, event := range eventFlow.Flowchart.Events {
		assert.Equal(event.Id, parsed.Flowchart.Events[i].Id)
		assert.Equal(event.Name, parsed.Flowchart.Events[i].Name)
		assert.Equal(event.Type, parsed.Flowchart.Events[i].Type)
		assert.Equal(event.Model, parsed.Flowchart.Events[i].Model)
	}
}

func TestWriteYamlRoundTrip(t *testing.T) {
	assert := assert.New(t)

	eventFlow := mustCreateEventFlow(t, "quest.json")

	// when
	var buffer bytes.Buffer
	if err := WriteYaml(&buffer, eventFlow); err != nil {
		t.Fatalf("failed to write YAML definition: %v", err)
	}

	parsed, err := NewYaml(&buffer)
	if err != nil {
		t.Fatalf("failed to parse written YAML definition: %v", err)
	}

	// then
	assert.Equal(eventFlow.Name, parsed.Name)
	assert.Len(parsed.Flowchart.Events, len(eventFlow.Flowchart.Events))
	assert.Len(parsed.Timeline.Clips, len(eventFlow.Timeline.Clips))
}
