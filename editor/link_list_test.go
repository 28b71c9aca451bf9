package editor

import (
	"testing"

	"github.com/evfl-tools/go-evfl/model"
	"github.com/stretchr/testify/assert"
)

func TestLinkListAppend(t *testing.T) {
	assert := assert.New(t)

	var (
		action = Event{Id: 1, Name: "action", Type: model.EventAction}
		fork   = Event{Id: 2, Name: "fork", Type: model.EventFork}
		swtch  = Event{Id: 3, Name: "switch", Type: model.EventSwitch}
		child  = Event{Id: 4, Name: "child", Type: model.EventAction}
	)

	linkList := NewLinkList(child.Id, nil)

	t.Run("append next link", func(t *testing.T) {
		// when
		link, err := linkList.Append(action, 0)
		if err != nil {
			t.Fatalf("failed to append parent link: %v", err)
		}

		// then
		assert.Equal(ParentLink{ParentId: 1, Type: LinkNext}, link)
		assert.Equal(1, linkList.Len())
	})

	t.Run("append fork branch link", func(t *testing.T) {
		// when
		link, err := linkList.Append(fork, 0)
		if err != nil {
			t.Fatalf("failed to append parent link: %v", err)
		}

		// then
		assert.Equal(ParentLink{ParentId: 2, Type: LinkForkBranch}, link)
	})

	t.Run("append switch case links", func(t *testing.T) {
		// when
		a, errA := linkList.Append(swtch, 0)
		b, errB := linkList.Append(swtch, 1)

		// then
		if errA != nil || errB != nil {
			t.Fatalf("failed to append parent links: %v %v", errA, errB)
		}

		assert.Equal(ParentLink{ParentId: 3, Type: LinkSwitchCase, CaseValue: 0}, a)
		assert.Equal(ParentLink{ParentId: 3, Type: LinkSwitchCase, CaseValue: 1}, b)
		assert.Equal(4, linkList.Len())
	})

	t.Run("returns error when link is duplicate", func(t *testing.T) {
		// when
		_, err := linkList.Append(action, 0)

		// then
		editorErr := assertEditorError(t, err)
		assert.Equal(ErrorDuplicateLink, editorErr.Type)

		// when
		_, err = linkList.Append(swtch, 1)

		// then
		editorErr = assertEditorError(t, err)
		assert.Equal(ErrorDuplicateLink, editorErr.Type)
		assert.Equal(4, linkList.Len())
	})

	t.Run("returns error when parent is the child itself", func(t *testing.T) {
		// when
		_, err := linkList.Append(child, 0)

		// then
		editorErr := assertEditorError(t, err)
		assert.Equal(ErrorSelfParent, editorErr.Type)
	})

	t.Run("returns error when parent type is unsupported", func(t *testing.T) {
		// when
		_, err := linkList.Append(Event{Id: 5, Name: "invalid"}, 0)

		// then
		editorErr := assertEditorError(t, err)
		assert.Equal(ErrorUnsupportedParent, editorErr.Type)
	})
}

func TestLinkListRemove(t *testing.T) {
	assert := assert.New(t)

	seed := []ParentLink{
		{ParentId: 1, Type: LinkNext},
		{ParentId: 2, Type: LinkForkBranch},
		{ParentId: 2, Type: LinkForkBranch},
	}

	linkList := NewLinkList(4, seed)
	assert.Equal(3, linkList.Len())

	// when
	err := linkList.Remove(0)
	if err != nil {
		t.Fatalf("failed to remove parent link: %v", err)
	}

	// then
	assert.Equal([]ParentLink{
		{ParentId: 2, Type: LinkForkBranch},
		{ParentId: 2, Type: LinkForkBranch},
	}, linkList.Links())

	// when out of range
	err = linkList.Remove(2)

	// then
	editorErr := assertEditorError(t, err)
	assert.Equal(ErrorNotFound, editorErr.Type)
}

func TestLinkListSeedAllowsDuplicates(t *testing.T) {
	assert := assert.New(t)

	seed := []ParentLink{
		{ParentId: 2, Type: LinkForkBranch},
		{ParentId: 2, Type: LinkForkBranch},
	}

	// when
	linkList := NewLinkList(4, seed)

	// then
	assert.Equal(seed, linkList.Links())

	// seed is copied
	seed[0].ParentId = 9
	assert.Equal(int32(2), linkList.Links()[0].ParentId)
}

func assertEditorError(t *testing.T, err error) Error {
	if err == nil {
		t.Fatal("expected error")
	}

	editorErr, ok := err.(Error)
	if !ok {
		t.Fatalf("expected editor error, but got %T", err)
	}

	return editorErr
}
