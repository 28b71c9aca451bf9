package editor

import (
	"fmt"

	"github.com/evfl-tools/go-evfl/model"
)

// NewLinkList creates a transient edit list of parent links for the given child event.
//
// The list is usually seeded with the result of [Editor.GetParentLinks],
// edited and finally passed to [Editor.ReconcileParents]. Seed links are
// taken over as-is - existing fork branches may legitimately occur multiple
// times.
func NewLinkList(childId int32, links []ParentLink) *LinkList {
	l := make([]ParentLink, len(links))
	copy(l, links)

	return &LinkList{childId: childId, links: l}
}

// A LinkList holds the desired parent links of a child event while they are being edited.
//
// Failed appends leave the list unchanged.
type LinkList struct {
	childId int32
	links   []ParentLink
}

// Append derives a parent link from the given parent event and appends it.
//
// The link type follows the parent's event type: sequential events link via
// next pointer, switch events via a case with the given value, fork events
// via an additional branch. The case value is ignored for non-switch parents.
//
// Append fails with [ErrorSelfParent] if the parent is the child itself,
// with [ErrorUnsupportedParent] if the parent's event type cannot link to a
// child, and with [ErrorDuplicateLink] if an equal link already exists.
func (l *LinkList) Append(parent Event, caseValue int32) (ParentLink, error) {
	if parent.Id == l.childId {
		return ParentLink{}, Error{
			Type:   ErrorSelfParent,
			Title:  "failed to append parent link",
			Detail: fmt.Sprintf("event %s cannot be a parent of itself", parent.Name),
		}
	}

	var link ParentLink
	switch {
	case parent.Type.IsSequential():
		link = ParentLink{ParentId: parent.Id, Type: LinkNext}
	case parent.Type == model.EventFork:
		link = ParentLink{ParentId: parent.Id, Type: LinkForkBranch}
	case parent.Type == model.EventSwitch:
		link = ParentLink{ParentId: parent.Id, Type: LinkSwitchCase, CaseValue: caseValue}
	default:
		return ParentLink{}, Error{
			Type:   ErrorUnsupportedParent,
			Title:  "failed to append parent link",
			Detail: fmt.Sprintf("event %s of type %s cannot be a parent", parent.Name, parent.Type),
		}
	}

	for _, existing := range l.links {
		if existing == link {
			return ParentLink{}, Error{
				Type:   ErrorDuplicateLink,
				Title:  "failed to append parent link",
				Detail: fmt.Sprintf("parent link %s already exists", link),
			}
		}
	}

	l.links = append(l.links, link)
	return link, nil
}

// Len returns the number of links.
func (l *LinkList) Len() int {
	return len(l.links)
}

// Links returns a copy of the current links, in insertion order.
func (l *LinkList) Links() []ParentLink {
	links := make([]ParentLink, len(l.links))
	copy(links, l.links)
	return links
}

// Remove removes the link at the given index.
func (l *LinkList) Remove(index int) error {
	if index < 0 || index >= len(l.links) {
		return Error{
			Type:   ErrorNotFound,
			Title:  "failed to remove parent link",
			Detail: fmt.Sprintf("link index %d is out of range", index),
		}
	}

	l.links = append(l.links[:index], l.links[index+1:]...)
	return nil
}
