package model

import (
	"os"
	"testing"
)

func mustCreateEventFlow(t *testing.T, fileName string) *EventFlow {
	fileName = "../test/definitions/" + fileName

	definitionFile, err := os.Open(fileName)
	if err != nil {
		t.Fatalf("failed to open definition file %s: %v", fileName, err)
	}

	defer definitionFile.Close()

	var (
		eventFlow *EventFlow
	)
	if isYaml(fileName) {
		eventFlow, err = NewYaml(definitionFile)
	} else {
		eventFlow, err = New(definitionFile)
	}
	if err != nil {
		t.Fatalf("failed to parse definition: %v", err)
	}

	return eventFlow
}

func isYaml(fileName string) bool {
	return len(fileName) > 5 && fileName[len(fileName)-5:] == ".yaml"
}
