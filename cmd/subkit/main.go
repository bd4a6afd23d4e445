/*

This is the main package of the subkit command line tool.

*/
package main

import (
	"fmt"
	"os"

	"github.com/gookit/color"

	"github.com/srtsuite/subkit/exec"
)

const (
	version    = "1.0"
	modulePage = "https://github.com/srtsuite/subkit"
)

// Exit codes per §6: 0 success, 1 operational failure, 2 usage error.
const (
	exitSuccess = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	e := exec.New()
	if err := e.ProcFlags(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	if e.In == "" {
		color.Error.Println("usage: subkit -in <file> [-out <file>] [flags]")
		return exitUsage
	}

	if err := e.ReadInput(); err != nil {
		color.Error.Println(err)
		return exitFailure
	}

	if err := e.GearIt(); err != nil {
		color.Error.Println(err)
		return exitFailure
	}

	if err := e.WriteOutput(); err != nil {
		color.Error.Println(err)
		return exitFailure
	}

	color.Success.Printf("subkit %s done (%s)\n", version, modulePage)
	return exitSuccess
}
