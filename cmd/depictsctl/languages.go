package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/repo"
	"github.com/tbourn/depicts-backend/internal/services"
)

// languageEntry is one element of an import file. Either qid or item_id
// identifies the language item.
type languageEntry struct {
	QID     string `json:"qid"`
	ItemID  int64  `json:"item_id"`
	Code    string `json:"wikimedia_language_code"`
	EnLabel string `json:"en_label"`
}

func newLanguagesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "Manage the language table",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.json>",
		Short: "Upsert languages from a JSON array",
		Long: `Import reads a JSON array of objects with qid (or item_id),
wikimedia_language_code and en_label, and upserts them by item id. The
whole file is validated before anything is written.

Example:
  depictsctl languages import languages.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			langs, err := readLanguages(args[0])
			if err != nil {
				return err
			}
			n, err := services.NewLanguageService(a.db, repo.Languages{}).Import(cmd.Context(), langs)
			if err != nil {
				return fmt.Errorf("import languages: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d languages\n", n)
			return nil
		},
	})
	return cmd
}

func readLanguages(path string) ([]domain.Language, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []languageEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	out := make([]domain.Language, 0, len(entries))
	for i, e := range entries {
		id := e.ItemID
		if e.QID != "" {
			if id, err = domain.ParseQID(e.QID); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
		}
		out = append(out, domain.Language{ItemID: id, WikimediaLanguageCode: e.Code, EnLabel: e.EnLabel})
	}
	return out, nil
}
