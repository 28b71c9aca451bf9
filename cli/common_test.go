package cli

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/evfl-tools/go-evfl/editor"
	"github.com/evfl-tools/go-evfl/editor/mem"
)

func mustCreateEditor(t *testing.T) editor.Editor {
	e, err := mem.New()
	if err != nil {
		t.Fatalf("failed to create editor: %v", err)
	}
	return e
}

func mustCreateEventFlow(t *testing.T, e editor.Editor, fileName string) {
	definitionFile, err := os.Open("../test/definitions/" + fileName)
	if err != nil {
		t.Fatalf("failed to open definition file: %v", err)
	}

	defer definitionFile.Close()

	definition, err := io.ReadAll(definitionFile)
	if err != nil {
		t.Fatalf("failed to read definition: %v", err)
	}

	_, err = e.CreateEventFlow(context.Background(), editor.CreateEventFlowCmd{
		Definition: string(definition),
		WorkerId:   "test-worker",
	})
	if err != nil {
		t.Fatalf("failed to create event flow: %v", err)
	}
}

func mustExecute(t *testing.T, e editor.Editor, args []string) {
	rootCmd := newRootCmd(&Cli{e: e, workerId: program})
	rootCmd.PersistentPostRun = nil

	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("failed to execute %v: %v", args, err)
	}
}
