package internal

import (
	"fmt"
	"sort"

	"github.com/evfl-tools/go-evfl/editor"
	"github.com/evfl-tools/go-evfl/model"
)

// ReconcileParents makes the set of links pointing at the child event equal
// to the desired set of cmd.Links.
//
// The operation is all-or-nothing: the desired set is validated as a whole
// and checked for switch case conflicts across every parent before the first
// event is mutated.
func ReconcileParents(ctx Context, cmd editor.ReconcileParentsCmd) error {
	if err := validateCmd(cmd, "failed to reconcile parent links"); err != nil {
		return err
	}

	entity, err := ctx.EventFlows().Select(cmd.EventFlowName)
	if err != nil {
		return err
	}

	flowchart, err := selectFlowchart(entity)
	if err != nil {
		return err
	}

	child := flowchart.EventById(cmd.ChildId)
	if child == nil {
		return editor.Error{
			Type:   editor.ErrorNotFound,
			Title:  "failed to reconcile parent links",
			Detail: fmt.Sprintf("flowchart %s has no event %d", flowchart.Name, cmd.ChildId),
		}
	}

	desired, err := newDesiredLinks(flowchart, child, cmd.Links)
	if err != nil {
		return err
	}

	if err := checkSwitchConflicts(flowchart, child, desired); err != nil {
		return err
	}

	if err := confirmNextOverwrites(flowchart, child, desired, cmd.ConfirmOverwrite); err != nil {
		return err
	}

	// all checks passed - apply in a single pass over all events
	for _, event := range flowchart.Events {
		switch m := event.Model.(type) {
		case model.ActionEvent:
			m.Next = applyNext(m.Next, event.Id, child.Id, desired)
			event.Model = m
		case model.JoinEvent:
			m.Next = applyNext(m.Next, event.Id, child.Id, desired)
			event.Model = m
		case model.SubFlowEvent:
			m.Next = applyNext(m.Next, event.Id, child.Id, desired)
			event.Model = m
		case model.SwitchEvent:
			caseValues := desired.switchCases[event.Id]

			for caseValue, target := range m.Cases {
				if target != child.Id {
					continue // points elsewhere - not this reconciliation's concern
				}
				if _, ok := caseValues[caseValue]; !ok {
					delete(m.Cases, caseValue)
				}
			}
			for caseValue := range caseValues {
				if _, ok := m.Cases[caseValue]; !ok {
					m.Cases[caseValue] = child.Id
				}
			}
		case model.ForkEvent:
			desiredCount := desired.forkCounts[event.Id]

			currentCount := 0
			for _, branch := range m.Branches {
				if branch == child.Id {
					currentCount++
				}
			}

			if desiredCount < currentCount {
				// remove the excess trailing branches that target the child,
				// preserving the relative order of all other branches
				remaining := desiredCount
				branches := make([]int32, 0, len(m.Branches))
				for _, branch := range m.Branches {
					if branch != child.Id {
						branches = append(branches, branch)
					} else if remaining > 0 {
						branches = append(branches, branch)
						remaining--
					}
				}
				m.Branches = branches
				event.Model = m
			} else if desiredCount > currentCount {
				for i := 0; i < desiredCount-currentCount; i++ {
					m.Branches = append(m.Branches, child.Id)
				}
				event.Model = m
			}
		}
	}

	return updateEntity(ctx, entity, cmd.WorkerId, editor.ChangeEvents)
}

// desiredLinks is a per-parent lookup of the desired link set.
type desiredLinks struct {
	next        map[int32]struct{}          // parents linking via next pointer
	switchCases map[int32]map[int32]struct{} // parent -> desired case values
	forkCounts  map[int32]int               // parent -> desired branch multiplicity
}

// newDesiredLinks validates the desired links and builds the per-parent lookup.
//
// Next links behave as a set - duplicates collapse. Fork branch links are
// counted. Duplicate switch case values per parent are rejected.
func newDesiredLinks(flowchart *model.Flowchart, child *model.Event, links []editor.ParentLink) (desiredLinks, error) {
	desired := desiredLinks{
		next:        make(map[int32]struct{}),
		switchCases: make(map[int32]map[int32]struct{}),
		forkCounts:  make(map[int32]int),
	}

	var causes []editor.ErrorCause

	addCause := func(index int, causeType string, detail string) {
		causes = append(causes, editor.ErrorCause{
			Pointer: fmt.Sprintf("#/links/%d", index),
			Type:    causeType,
			Detail:  detail,
		})
	}

	for i, link := range links {
		parent := flowchart.EventById(link.ParentId)
		if parent == nil {
			addCause(i, "not_found", fmt.Sprintf("flowchart %s has no event %d", flowchart.Name, link.ParentId))
			continue
		}
		if parent.Id == child.Id {
			addCause(i, "self_parent", fmt.Sprintf("event %s cannot be a parent of itself", child.Name))
			continue
		}

		switch link.Type {
		case editor.LinkNext:
			if !parent.Type.IsSequential() {
				addCause(i, "unsupported_parent", fmt.Sprintf("event %s of type %s has no next pointer", parent.Name, parent.Type))
				continue
			}
			desired.next[parent.Id] = struct{}{}
		case editor.LinkSwitchCase:
			if parent.Type != model.EventSwitch {
				addCause(i, "unsupported_parent", fmt.Sprintf("event %s of type %s has no cases", parent.Name, parent.Type))
				continue
			}

			caseValues, ok := desired.switchCases[parent.Id]
			if !ok {
				caseValues = make(map[int32]struct{})
				desired.switchCases[parent.Id] = caseValues
			}

			if _, ok := caseValues[link.CaseValue]; ok {
				addCause(i, "duplicate_switch_case", fmt.Sprintf("switch event %s has multiple links for case value %d", parent.Name, link.CaseValue))
				continue
			}
			caseValues[link.CaseValue] = struct{}{}
		case editor.LinkForkBranch:
			if parent.Type != model.EventFork {
				addCause(i, "unsupported_parent", fmt.Sprintf("event %s of type %s has no branches", parent.Name, parent.Type))
				continue
			}
			desired.forkCounts[parent.Id]++
		default:
			addCause(i, "unsupported_link_type", fmt.Sprintf("link type %d is invalid", link.Type))
		}
	}

	if len(causes) != 0 {
		return desiredLinks{}, editor.Error{
			Type:   editor.ErrorValidation,
			Title:  "failed to reconcile parent links",
			Detail: "desired parent links are invalid",
			Causes: causes,
		}
	}

	return desired, nil
}

// checkSwitchConflicts detects desired case values that are already mapped
// to a different event - across every parent, before any mutation.
func checkSwitchConflicts(flowchart *model.Flowchart, child *model.Event, desired desiredLinks) error {
	var causes []editor.ErrorCause

	for _, event := range flowchart.Events {
		caseValues, ok := desired.switchCases[event.Id]
		if !ok {
			continue
		}

		switchEvent := event.Model.(model.SwitchEvent)
		for _, caseValue := range sortedCaseValues(caseValues) {
			target, ok := switchEvent.Cases[caseValue]
			if !ok || target == child.Id {
				continue
			}

			detail := fmt.Sprintf("switch event %s already has a case for value %d", event.Name, caseValue)
			if targetEvent := flowchart.EventById(target); targetEvent != nil {
				detail = fmt.Sprintf("%s, pointing at event %s", detail, targetEvent.Name)
			}

			causes = append(causes, editor.ErrorCause{
				Pointer: fmt.Sprintf("#/events/%s/cases/%d", event.Name, caseValue),
				Type:    "switch_case",
				Detail:  detail,
			})
		}
	}

	if len(causes) != 0 {
		return editor.Error{
			Type:   editor.ErrorConflict,
			Title:  "failed to reconcile parent links",
			Detail: "desired switch cases conflict with existing cases",
			Causes: causes,
		}
	}

	return nil
}

// confirmNextOverwrites collects sequential parents whose next pointer
// currently points at an event other than the child and asks for confirmation.
func confirmNextOverwrites(flowchart *model.Flowchart, child *model.Event, desired desiredLinks, confirm func([]string) bool) error {
	var parentNames []string

	for _, event := range flowchart.Events {
		if _, ok := desired.next[event.Id]; !ok {
			continue
		}

		next := nextOf(event)
		if next != 0 && next != child.Id {
			parentNames = append(parentNames, event.Name)
		}
	}

	if len(parentNames) == 0 {
		return nil
	}

	if confirm != nil && confirm(parentNames) {
		return nil
	}

	causes := make([]editor.ErrorCause, 0, len(parentNames))
	for _, parentName := range parentNames {
		causes = append(causes, editor.ErrorCause{
			Pointer: fmt.Sprintf("#/events/%s/next", parentName),
			Type:    "next_overwrite",
			Detail:  fmt.Sprintf("event %s points at an event other than %s", parentName, child.Name),
		})
	}

	return editor.Error{
		Type:   editor.ErrorOverwriteDeclined,
		Title:  "failed to reconcile parent links",
		Detail: fmt.Sprintf("overwriting the next pointer of %d event(s) was not confirmed", len(parentNames)),
		Causes: causes,
	}
}

// applyNext returns the new next pointer of a sequential parent.
// If the parent is desired, the pointer is set to the child - existing
// pointers to other events have been confirmed beforehand. Otherwise a
// pointer at the child is cleared and any other pointer is left untouched.
func applyNext(next int32, eventId int32, childId int32, desired desiredLinks) int32 {
	if _, ok := desired.next[eventId]; ok {
		return childId
	}
	if next == childId {
		return 0
	}
	return next
}

func nextOf(event *model.Event) int32 {
	switch m := event.Model.(type) {
	case model.ActionEvent:
		return m.Next
	case model.JoinEvent:
		return m.Next
	case model.SubFlowEvent:
		return m.Next
	default:
		return 0
	}
}

func sortedCaseValues(caseValues map[int32]struct{}) []int32 {
	values := make([]int32, 0, len(caseValues))
	for caseValue := range caseValues {
		values = append(values, caseValue)
	}

	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}
