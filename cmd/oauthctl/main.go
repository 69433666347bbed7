// Package main is the entry point for the oauthctl command
package main

import (
	"os"

	"github.com/aussiebroadwan/oauthlib/cmd/oauthctl/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
