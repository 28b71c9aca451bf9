package mem

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/evfl-tools/go-evfl/editor"
)

func mustCreateEditor(t *testing.T) editor.Editor {
	e, err := New()
	if err != nil {
		t.Fatalf("failed to create editor: %v", err)
	}
	return e
}

func mustReadDefinitionFile(t *testing.T, fileName string) string {
	definitionFile, err := os.Open("../../test/definitions/" + fileName)
	if err != nil {
		t.Fatalf("failed to open definition file: %v", err)
	}

	defer definitionFile.Close()

	b, err := io.ReadAll(definitionFile)
	if err != nil {
		t.Fatalf("failed to read definition: %v", err)
	}

	return string(b)
}

func mustCreateEventFlow(t *testing.T, e editor.Editor, fileName string) editor.EventFlow {
	eventFlow, err := e.CreateEventFlow(context.Background(), editor.CreateEventFlowCmd{
		Definition: mustReadDefinitionFile(t, fileName),
		WorkerId:   "test-worker",
	})
	if err != nil {
		t.Fatalf("failed to create event flow: %v", err)
	}

	return eventFlow
}

func mustGetDefinition(t *testing.T, e editor.Editor, eventFlowName string) string {
	definition, err := e.GetDefinition(context.Background(), editor.GetDefinitionCmd{
		EventFlowName: eventFlowName,
	})
	if err != nil {
		t.Fatalf("failed to get definition: %v", err)
	}

	return definition
}

func assertEditorError(t *testing.T, err error) editor.Error {
	if err == nil {
		t.Fatal("expected error")
	}

	editorErr, ok := err.(editor.Error)
	if !ok {
		t.Fatalf("expected editor error, but got %T", err)
	}

	return editorErr
}
