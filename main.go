package main

import (
	"fmt"
	"os"

	"github.com/temirov/repoinsight/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the repoinsight command-line application.
func main() {
	if executionError := cli.Execute(os.Args[1:]); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
