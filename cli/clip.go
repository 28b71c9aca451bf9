package cli

import (
	"context"
	"strconv"

	"github.com/evfl-tools/go-evfl/editor"
	"github.com/evfl-tools/go-evfl/model"
	"github.com/spf13/cobra"
)

func newClipCmd(cli *Cli) *cobra.Command {
	c := cobra.Command{
		Use:         "clip",
		Short:       "Manage and query timeline clips",
		RunE:        cli.help,
		Annotations: map[string]string{noEditorRequired: ""},
	}

	c.AddCommand(newClipAddCmd(cli))
	c.AddCommand(newClipListCmd(cli))
	c.AddCommand(newClipRemoveCmd(cli))
	c.AddCommand(newClipRenderDataCmd(cli))
	c.AddCommand(newClipUpdateCmd(cli))

	return &c
}

func newClipAddCmd(cli *Cli) *cobra.Command {
	var (
		typeV string

		cmd editor.AddClipCmd
	)

	c := cobra.Command{
		Use:   "add",
		Short: "Add a timeline clip",
		RunE: func(c *cobra.Command, _ []string) error {
			eventFlowName, err := cli.flowName()
			if err != nil {
				return err
			}

			cmd.EventFlowName = eventFlowName
			cmd.Type = model.MapClipType(typeV)
			cmd.WorkerId = cli.workerId

			clip, err := cli.e.AddClip(context.Background(), cmd)
			if err != nil {
				return err
			}

			c.Println(clip.Id)
			return cli.save()
		},
	}

	c.Flags().StringVar(&cmd.Name, "name", "", "Clip name")
	c.Flags().Float64Var(&cmd.StartTime, "start-time", 0, "Start offset in seconds")
	c.Flags().Float64Var(&cmd.Duration, "duration", 0, "Duration in seconds")
	c.Flags().StringVar(&typeV, "type", "", "Clip type: ACTION, AUDIO, CAMERA, EFFECT or EVENT")
	c.Flags().StringVar(&cmd.Actor, "actor", "", "Acting actor, determining the track")

	c.MarkFlagRequired("name")
	c.MarkFlagRequired("duration")
	c.MarkFlagRequired("type")

	return &c
}

func newClipListCmd(cli *Cli) *cobra.Command {
	var (
		typeV string

		criteria editor.ClipCriteria
	)

	c := cobra.Command{
		Use:   "list",
		Short: "List timeline clips",
		RunE: func(c *cobra.Command, _ []string) error {
			eventFlowName, err := cli.flowName()
			if err != nil {
				return err
			}

			criteria.EventFlowName = eventFlowName
			criteria.Type = model.MapClipType(typeV)

			results, err := cli.e.QueryClips(context.Background(), criteria)
			if err != nil {
				return err
			}

			table := newTable([]string{
				"ID",
				"NAME",
				"START TIME",
				"DURATION",
				"TYPE",
				"ACTOR",
			})

			for _, result := range results {
				table.addRow([]string{
					strconv.Itoa(int(result.Id)),
					result.Name,
					formatSeconds(result.StartTime),
					formatSeconds(result.Duration),
					result.Type.String(),
					result.Actor,
				})
			}

			c.Print(table.format())
			return nil
		},
	}

	c.Flags().StringVar(&criteria.Actor, "actor", "", "Actor filter")
	c.Flags().StringVar(&typeV, "type", "", "Clip type filter: ACTION, AUDIO, CAMERA, EFFECT or EVENT")

	return &c
}

func newClipRemoveCmd(cli *Cli) *cobra.Command {
	var cmd editor.RemoveClipCmd

	c := cobra.Command{
		Use:   "remove",
		Short: "Remove a timeline clip",
		RunE: func(c *cobra.Command, _ []string) error {
			eventFlowName, err := cli.flowName()
			if err != nil {
				return err
			}

			cmd.EventFlowName = eventFlowName
			cmd.WorkerId = cli.workerId

			if err := cli.e.RemoveClip(context.Background(), cmd); err != nil {
				return err
			}

			return cli.save()
		},
	}

	c.Flags().Int32Var(&cmd.Id, "id", 0, "Clip ID")

	c.MarkFlagRequired("id")

	return &c
}

func newClipRenderDataCmd(cli *Cli) *cobra.Command {
	var (
		zoom float64

		cmd editor.GetRenderDataCmd
	)

	c := cobra.Command{
		Use:   "render-data",
		Short: "Print the timeline visualization payload",
		RunE: func(c *cobra.Command, _ []string) error {
			eventFlowName, err := cli.flowName()
			if err != nil {
				return err
			}

			cmd.EventFlowName = eventFlowName
			cmd.Zoom = editor.Zoom(zoom)

			renderData, err := cli.e.GetRenderData(context.Background(), cmd)
			if err != nil {
				return err
			}

			c.Println(renderData)
			return nil
		},
	}

	c.Flags().Float64Var(&zoom, "zoom", float64(editor.DefaultZoom), "Zoom level of the time axis, between 0.1 and 10")

	return &c
}

func newClipUpdateCmd(cli *Cli) *cobra.Command {
	var (
		typeV string

		cmd editor.UpdateClipCmd
	)

	c := cobra.Command{
		Use:   "update",
		Short: "Update a timeline clip",
		RunE: func(c *cobra.Command, _ []string) error {
			eventFlowName, err := cli.flowName()
			if err != nil {
				return err
			}

			cmd.EventFlowName = eventFlowName
			cmd.Type = model.MapClipType(typeV)
			cmd.WorkerId = cli.workerId

			if _, err := cli.e.UpdateClip(context.Background(), cmd); err != nil {
				return err
			}

			return cli.save()
		},
	}

	c.Flags().Int32Var(&cmd.Id, "id", 0, "Clip ID")
	c.Flags().StringVar(&cmd.Name, "name", "", "Clip name")
	c.Flags().Float64Var(&cmd.StartTime, "start-time", 0, "Start offset in seconds")
	c.Flags().Float64Var(&cmd.Duration, "duration", 0, "Duration in seconds")
	c.Flags().StringVar(&typeV, "type", "", "Clip type: ACTION, AUDIO, CAMERA, EFFECT or EVENT")
	c.Flags().StringVar(&cmd.Actor, "actor", "", "Acting actor, determining the track")

	c.MarkFlagRequired("id")
	c.MarkFlagRequired("name")
	c.MarkFlagRequired("duration")
	c.MarkFlagRequired("type")

	return &c
}
