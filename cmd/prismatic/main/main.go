package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/prismatic/cmd/prismatic"
	"github.com/arthur-debert/prismatic/pkg/style"
)

func main() {
	rootCmd := prismatic.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := style.NewRenderer(style.ConfigureOutput(os.Stderr, false))
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		os.Exit(1)
	}
}
