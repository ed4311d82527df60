package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tbourn/depicts-backend/internal/services"
	"github.com/tbourn/depicts-backend/internal/wdqs"
)

func newQueriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queries",
		Short: "Run SPARQL queries and maintain the query log",
	}
	cmd.AddCommand(newQueriesPruneCmd(a), newQueriesRunCmd(a))
	return cmd
}

func newQueriesPruneCmd(a *app) *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete logged queries older than a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive, got %s", olderThan)
			}
			svc := &services.QueryService{DB: a.db}
			n, err := svc.Prune(cmd.Context(), olderThan, time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pruned %d queries\n", n)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "age cutoff, e.g. 720h")
	return cmd
}

func newQueriesRunCmd(a *app) *cobra.Command {
	var file, template, pageTitle string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Send a SPARQL query to the configured endpoint",
		Long: `Run posts the query in --file to WDQS_ENDPOINT, logs it in the query
table and prints the decoded bindings as JSON.

Example:
  depictsctl queries run --file query/artworks.sparql --template query/artworks.sparql`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			client := wdqs.New(a.cfg.WDQS, a.db)
			res, err := client.Run(cmd.Context(), wdqs.Request{
				Query:     string(raw),
				Template:  template,
				Path:      "depictsctl queries run",
				PageTitle: pageTitle,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				QueryID  uint                    `json:"query_id"`
				Vars     []string                `json:"vars"`
				Bindings []map[string]wdqs.Value `json:"bindings"`
			}{res.QueryID, res.Vars, res.Bindings})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "file holding the SPARQL query (required)")
	cmd.Flags().StringVar(&template, "template", "", "template path recorded in the query log")
	cmd.Flags().StringVar(&pageTitle, "page-title", "", "page title recorded in the query log")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
