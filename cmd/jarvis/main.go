package main

import (
	"context"
	"fmt"
	"os"

	"github.com/doeshing/jarvis-go/internal/infrastructure/cli"
)

func main() {
	root := cli.NewRootCmd(cli.Options{})
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
