package main

import (
	"os"

	"foodie-dashboard/dashboard-svc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
