package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propai/catalyst-cli/internal/ingest"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured source adapters",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sources := ingest.DefaultSources()

		sourcesFile := ingestSourcesFile
		if sourcesFile == "" {
			sourcesFile = cfg.Ingest.SourcesFile
		}
		if sourcesFile != "" {
			var err error
			sources, err = ingest.LoadSources(sourcesFile)
			if err != nil {
				return err
			}
		}

		fmt.Printf("%-4s %-40s %-5s %s\n", "ST", "NAME", "FMT", "URL")
		for _, s := range sources {
			fmt.Printf("%-4s %-40s %-5s %s\n", s.State, s.Name, s.Format, s.URL)
		}
		return nil
	},
}

func init() {
	sourcesCmd.Flags().StringVar(&ingestSourcesFile, "sources", "", "yaml file of additional source adapters")
	rootCmd.AddCommand(sourcesCmd)
}
