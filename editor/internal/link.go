package internal

import (
	"fmt"
	"sort"

	"github.com/evfl-tools/go-evfl/editor"
	"github.com/evfl-tools/go-evfl/model"
)

func GetParentLinks(ctx Context, cmd editor.GetParentLinksCmd) ([]editor.ParentLink, error) {
	if err := validateCmd(cmd, "failed to get parent links"); err != nil {
		return nil, err
	}

	entity, err := ctx.EventFlows().Select(cmd.EventFlowName)
	if err != nil {
		return nil, err
	}

	flowchart, err := selectFlowchart(entity)
	if err != nil {
		return nil, err
	}

	if flowchart.EventById(cmd.ChildId) == nil {
		return nil, editor.Error{
			Type:   editor.ErrorNotFound,
			Title:  "failed to get parent links",
			Detail: fmt.Sprintf("flowchart %s has no event %d", flowchart.Name, cmd.ChildId),
		}
	}

	return gatherParentLinks(flowchart, cmd.ChildId), nil
}

// gatherParentLinks scans the flowchart once for every link that points at the child event.
//
// Fork branches contribute one link per occurrence - the resulting list may
// contain equal entries, reflecting the branch multiplicity.
func gatherParentLinks(flowchart *model.Flowchart, childId int32) []editor.ParentLink {
	var links []editor.ParentLink

	for _, event := range flowchart.Events {
		switch m := event.Model.(type) {
		case model.ActionEvent:
			if m.Next == childId {
				links = append(links, editor.ParentLink{ParentId: event.Id, Type: editor.LinkNext})
			}
		case model.JoinEvent:
			if m.Next == childId {
				links = append(links, editor.ParentLink{ParentId: event.Id, Type: editor.LinkNext})
			}
		case model.SubFlowEvent:
			if m.Next == childId {
				links = append(links, editor.ParentLink{ParentId: event.Id, Type: editor.LinkNext})
			}
		case model.SwitchEvent:
			caseValues := make([]int32, 0, len(m.Cases))
			for caseValue, target := range m.Cases {
				if target == childId {
					caseValues = append(caseValues, caseValue)
				}
			}

			sort.Slice(caseValues, func(i, j int) bool { return caseValues[i] < caseValues[j] })

			for _, caseValue := range caseValues {
				links = append(links, editor.ParentLink{ParentId: event.Id, Type: editor.LinkSwitchCase, CaseValue: caseValue})
			}
		case model.ForkEvent:
			for _, branch := range m.Branches {
				if branch == childId {
					links = append(links, editor.ParentLink{ParentId: event.Id, Type: editor.LinkForkBranch})
				}
			}
		}
	}

	return links
}

func selectFlowchart(entity *EventFlowEntity) (*model.Flowchart, error) {
	if entity.EventFlow.Flowchart == nil {
		return nil, editor.Error{
			Type:   editor.ErrorNotFound,
			Title:  "failed to select flowchart",
			Detail: fmt.Sprintf("event flow %s has no flowchart", entity.Name),
		}
	}
	return entity.EventFlow.Flowchart, nil
}

func selectTimeline(entity *EventFlowEntity) (*model.Timeline, error) {
	if entity.EventFlow.Timeline == nil {
		return nil, editor.Error{
			Type:   editor.ErrorNotFound,
			Title:  "failed to select timeline",
			Detail: fmt.Sprintf("event flow %s has no timeline", entity.Name),
		}
	}
	return entity.EventFlow.Timeline, nil
}
