/*
go-evfl is a CLI for editing event flow definition files.

Usage:

	go-evfl [flags]
	go-evfl [command]

Available Commands:

	clip       Manage and query timeline clips
	completion Generate the autocompletion script for the specified shell
	definition Print the normalized definition
	event      Query flowchart events and edit their parent links
	help       Help about any command
	version    Show version

Flags:

	    --file string        Path to a JSON or YAML definition file
	-h, --help               help for go-evfl
	    --worker-id string   Worker ID (default "go-evfl")

Use "go-evfl [command] --help" for more information about a command.
*/
package main

import (
	"os"

	"github.com/evfl-tools/go-evfl/cli"
)

var (
	version = "unknown-version"
)

func main() {
	cli := cli.New(version)
	os.Exit(cli.Execute())
}
