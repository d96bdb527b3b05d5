// Package main provides the entry point for the nukedir CLI.
package main

import (
	"context"
	"os"

	"github.com/jamesainslie/nukedir/pkg/nukedir/exitcode"
	"github.com/jamesainslie/nukedir/pkg/nukedir/output"
	"github.com/jamesainslie/nukedir/pkg/nukedir/privilege"
)

func main() {
	os.Exit(run())
}

// run performs the unconditional startup checks, then hands over to the
// command. Both checks happen before option parsing: nothing this tool does
// is meaningful without root, and a root working directory makes relative
// target resolution treacherous.
func run() int {
	rep := output.NewReporter(os.Stderr, programName, false)
	ctx := context.Background()

	if !privilege.IsRoot() {
		if !privilege.CanElevate(ctx) {
			rep.Errorf("%v", privilege.ErrNoElevation)
			return exitcode.Fatal
		}
		code, err := privilege.Reexec(ctx, os.Args[1:])
		if err != nil {
			rep.Errorf("re-exec under sudo failed: %v", err)
			return exitcode.Fatal
		}
		return code
	}

	if err := privilege.CheckWorkingDirectory(); err != nil {
		rep.Errorf("%v", err)
		return exitcode.Fatal
	}

	return Execute()
}
