package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"skillreel/internal/core/moderation"
)

func newTaxonomyCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "List the skill categories offered to the classifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = ctx.cfg.Prefix("MODERATION_").MayString("TAXONOMY_FILE", "")
			}
			tx, err := moderation.LoadTaxonomyFile(file)
			if err != nil {
				return err
			}
			if wantJSON(ctx.jsonOut, cmd.OutOrStdout()) {
				return writeJSON(cmd, tx)
			}
			rows := make([][]string, 0, len(tx.Categories))
			for _, c := range tx.Categories {
				rows = append(rows, []string{c.ID, c.Name, strings.Join(c.Examples, ", ")})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Taxonomy version %d\n", tx.Version)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name", "Examples"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "TOML taxonomy file; defaults to MODERATION_TAXONOMY_FILE or the embedded list")
	return cmd
}
