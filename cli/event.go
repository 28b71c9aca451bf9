package cli

import (
	"context"
	"strconv"

	"github.com/evfl-tools/go-evfl/editor"
	"github.com/evfl-tools/go-evfl/model"
	"github.com/spf13/cobra"
)

func newEventCmd(cli *Cli) *cobra.Command {
	c := cobra.Command{
		Use:         "event",
		Short:       "Query flowchart events and edit their parent links",
		RunE:        cli.help,
		Annotations: map[string]string{noEditorRequired: ""},
	}

	c.AddCommand(newEventListCmd(cli))
	c.AddCommand(newEventParentsCmd(cli))
	c.AddCommand(newEventSetParentsCmd(cli))

	return &c
}

func newEventListCmd(cli *Cli) *cobra.Command {
	var (
		typeV string

		criteria editor.EventCriteria
	)

	c := cobra.Command{
		Use:   "list",
		Short: "List flowchart events",
		RunE: func(c *cobra.Command, _ []string) error {
			eventFlowName, err := cli.flowName()
			if err != nil {
				return err
			}

			criteria.EventFlowName = eventFlowName
			criteria.Type = model.MapEventType(typeV)

			results, err := cli.e.QueryEvents(context.Background(), criteria)
			if err != nil {
				return err
			}

			table := newTable([]string{
				"ID",
				"NAME",
				"TYPE",
				"ACTOR",
			})

			for _, result := range results {
				table.addRow([]string{
					strconv.Itoa(int(result.Id)),
					result.Name,
					result.Type.String(),
					result.Actor,
				})
			}

			c.Print(table.format())
			return nil
		},
	}

	c.Flags().StringVar(&criteria.Actor, "actor", "", "Actor filter")
	c.Flags().StringVar(&typeV, "type", "", "Event type filter: ACTION, FORK, JOIN, SUB_FLOW or SWITCH")

	return &c
}

func newEventParentsCmd(cli *Cli) *cobra.Command {
	var eventName string

	c := cobra.Command{
		Use:   "parents",
		Short: "List all links that point at an event",
		RunE: func(c *cobra.Command, _ []string) error {
			eventFlowName, err := cli.flowName()
			if err != nil {
				return err
			}

			child, err := cli.findEvent(eventFlowName, eventName)
			if err != nil {
				return err
			}

			links, err := cli.e.GetParentLinks(context.Background(), editor.GetParentLinksCmd{
				EventFlowName: eventFlowName,
				ChildId:       child.Id,
			})
			if err != nil {
				return err
			}

			table := newTable([]string{
				"INDEX",
				"PARENT ID",
				"TYPE",
				"CASE VALUE",
			})

			for i, link := range links {
				caseValue := ""
				if link.Type == editor.LinkSwitchCase {
					caseValue = strconv.Itoa(int(link.CaseValue))
				}

				table.addRow([]string{
					strconv.Itoa(i),
					strconv.Itoa(int(link.ParentId)),
					link.Type.String(),
					caseValue,
				})
			}

			c.Print(table.format())
			return nil
		},
	}

	c.Flags().StringVar(&eventName, "event", "", "Name of the child event")

	c.MarkFlagRequired("event")

	return &c
}

func newEventSetParentsCmd(cli *Cli) *cobra.Command {
	var (
		eventName   string
		nextV       []string
		switchCaseV []string
		forkBranchV []string
		yes         bool
	)

	c := cobra.Command{
		Use:   "set-parents",
		Short: "Reconcile the links that point at an event",
		Long: `Reconcile the links that point at an event, so that they equal exactly the desired set.

Links not listed are removed. Next pointers of parents that currently point
at a different event are only overwritten when --yes is set.`,
		RunE: func(c *cobra.Command, _ []string) error {
			eventFlowName, err := cli.flowName()
			if err != nil {
				return err
			}

			child, err := cli.findEvent(eventFlowName, eventName)
			if err != nil {
				return err
			}

			var links []editor.ParentLink
			for _, parentName := range nextV {
				parent, err := cli.findEvent(eventFlowName, parentName)
				if err != nil {
					return err
				}
				links = append(links, editor.ParentLink{ParentId: parent.Id, Type: editor.LinkNext})
			}
			for _, v := range switchCaseV {
				parentName, caseValue, err := parseCaseLink(v)
				if err != nil {
					return err
				}

				parent, err := cli.findEvent(eventFlowName, parentName)
				if err != nil {
					return err
				}
				links = append(links, editor.ParentLink{ParentId: parent.Id, Type: editor.LinkSwitchCase, CaseValue: caseValue})
			}
			for _, parentName := range forkBranchV {
				parent, err := cli.findEvent(eventFlowName, parentName)
				if err != nil {
					return err
				}
				links = append(links, editor.ParentLink{ParentId: parent.Id, Type: editor.LinkForkBranch})
			}

			err = cli.e.ReconcileParents(context.Background(), editor.ReconcileParentsCmd{
				EventFlowName: eventFlowName,
				ChildId:       child.Id,
				Links:         links,
				WorkerId:      cli.workerId,

				ConfirmOverwrite: func(parentNames []string) bool {
					if !yes {
						c.Printf("next pointers of %d event(s) would be overwritten - run again with --yes\n", len(parentNames))
					}
					return yes
				},
			})
			if err != nil {
				return err
			}

			return cli.save()
		},
	}

	c.Flags().StringVar(&eventName, "event", "", "Name of the child event")
	c.Flags().StringArrayVar(&nextV, "next", nil, "Name of a sequential parent, linking via next pointer")
	c.Flags().StringArrayVar(&switchCaseV, "switch-case", nil, "Switch parent and case value, e.g. CheckMood=1")
	c.Flags().StringArrayVar(&forkBranchV, "fork-branch", nil, "Name of a fork parent - repeat to raise the branch multiplicity")
	c.Flags().BoolVar(&yes, "yes", false, "Confirm the overwrite of diverging next pointers")

	c.MarkFlagRequired("event")

	return &c
}
