package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gi8lino/bugcsv/internal/app"
)

var version = "dev"

func main() {
	if err := app.Run(context.Background(), version, os.Args[1:], os.Stdin, os.Stdout, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err) // nolint:errcheck
		os.Exit(1)
	}
}
