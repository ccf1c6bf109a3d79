// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"log"

	"github.com/spf13/cobra"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   "tib",
		Short: "The textisbeautiful.net backend",
		Long: `tib runs the textisbeautiful.net web backend: it accepts text or
Wikipedia article submissions, drives the remote text-analytics pipeline and
serves the decoded concept maps.`,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "tib.yaml", "path to the config file")
	rootCmd.AddCommand(serveCmd)
}
