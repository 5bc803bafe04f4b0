// Command wetmods applies config mods to the native projects of an app.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lex00/wetwire-mods-go/cmd"
	"github.com/lex00/wetwire-mods-go/prebuild"
)

const name = "wetmods"

func main() {
	runner := prebuild.NewRunner(os.Stderr)

	root := cmd.NewRootCommand(name, "Composable config mods for native app projects")
	root.AddCommand(
		cmd.NewPrebuildCommand(runner),
		cmd.NewIntrospectCommand(runner),
		cmd.NewVersionCommand(name),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
