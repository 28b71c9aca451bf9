package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/evfl-tools/go-evfl/editor"
	"github.com/evfl-tools/go-evfl/editor/mem"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	envLookupAllowed = "envLookupAllowed" // flag level annotation that allows an environment variable lookup
	envPrefix        = "GO_EVFL_"
	noEditorRequired = "noEditorRequired" // annotation, indicating that no editor is required to run the command
	program          = "go-evfl"
)

func New(version string) *Cli {
	cli := Cli{version: version}

	cli.rootCmd = newRootCmd(&cli)

	return &cli
}

type Cli struct {
	version string

	rootCmd *cobra.Command

	e             editor.Editor
	eventFlowName string
	fileName      string
	workerId      string
}

func (c *Cli) Execute() int {
	if err := c.rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func (c *Cli) help(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// save writes the normalized definition back to the loaded file.
// A no-op when the editor has been injected without a file.
func (c *Cli) save() error {
	if c.fileName == "" {
		return nil
	}

	definition, err := c.e.GetDefinition(context.Background(), editor.GetDefinitionCmd{
		EventFlowName: c.eventFlowName,
		Format:        definitionFormat(c.fileName),
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.fileName, []byte(definition), 0644); err != nil {
		return fmt.Errorf("failed to write definition file %s: %v", c.fileName, err)
	}
	return nil
}

func newRootCmd(cli *Cli) *cobra.Command {
	c := cobra.Command{
		Use:   program,
		Short: "An editor for event flow definition files",
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			c.SilenceUsage = true

			if _, ok := c.Annotations[noEditorRequired]; ok {
				return nil
			}

			if cli.e != nil {
				return nil // skip editor creation when testing
			}

			c.Flags().VisitAll(func(f *pflag.Flag) {
				if f.Changed {
					return
				}
				if _, ok := f.Annotations[envLookupAllowed]; !ok {
					return
				}

				// e.g. worker-id -> GO_EVFL_WORKER_ID
				key := envPrefix + strings.ReplaceAll(strings.ToUpper(f.Name), "-", "_")

				if value, ok := os.LookupEnv(key); ok {
					f.Value.Set(value)
				}
			})

			if cli.fileName == "" {
				return fmt.Errorf("no definition file set.\n\nuse flag --file or environment variable %sFILE", envPrefix)
			}

			definitionFile, err := os.Open(cli.fileName)
			if err != nil {
				return fmt.Errorf("failed to open definition file %s: %v", cli.fileName, err)
			}

			defer definitionFile.Close()

			definition, err := io.ReadAll(definitionFile)
			if err != nil {
				return fmt.Errorf("failed to read definition: %v", err)
			}

			e, err := mem.New()
			if err != nil {
				return fmt.Errorf("failed to create editor: %v", err)
			}

			eventFlow, err := e.CreateEventFlow(context.Background(), editor.CreateEventFlowCmd{
				Definition: string(definition),
				Format:     definitionFormat(cli.fileName),
				WorkerId:   cli.workerId,
			})
			if err != nil {
				e.Shutdown()
				return err
			}

			cli.e = e
			cli.eventFlowName = eventFlow.Name
			return nil
		},
		RunE: cli.help,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cli.e != nil {
				cli.e.Shutdown()
			}
		},
		Annotations: map[string]string{noEditorRequired: ""},
	}

	c.PersistentFlags().StringVar(&cli.fileName, "file", "", "Path to a JSON or YAML definition file")
	c.PersistentFlags().StringVar(&cli.workerId, "worker-id", program, "Worker ID")

	c.PersistentFlags().SetAnnotation("file", envLookupAllowed, nil)
	c.PersistentFlags().SetAnnotation("worker-id", envLookupAllowed, nil)

	c.MarkPersistentFlagFilename("file", ".json", ".yaml", ".yml")

	c.AddCommand(newClipCmd(cli))
	c.AddCommand(newEventCmd(cli))
	c.AddCommand(newDefinitionCmd(cli))
	c.AddCommand(newVersionCmd(cli))

	return &c
}

func newDefinitionCmd(cli *Cli) *cobra.Command {
	var cmd editor.GetDefinitionCmd

	c := cobra.Command{
		Use:   "definition",
		Short: "Print the normalized definition",
		RunE: func(c *cobra.Command, _ []string) error {
			eventFlowName, err := cli.flowName()
			if err != nil {
				return err
			}

			cmd.EventFlowName = eventFlowName

			definition, err := cli.e.GetDefinition(context.Background(), cmd)
			if err != nil {
				return err
			}

			c.Print(definition)
			return nil
		},
	}

	c.Flags().StringVar(&cmd.Format, "format", "json", "Output format - json or yaml")

	return &c
}

func newVersionCmd(cli *Cli) *cobra.Command {
	c := cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(c *cobra.Command, _ []string) {
			c.Println(cli.version)
		},
		Annotations: map[string]string{noEditorRequired: ""},
	}

	return &c
}

// definitionFormat derives the definition format from a file name.
func definitionFormat(fileName string) string {
	if strings.HasSuffix(fileName, ".yaml") || strings.HasSuffix(fileName, ".yml") {
		return "yaml"
	}
	return "json"
}
