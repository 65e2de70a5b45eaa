package main

import (
	"fmt"

	"github.com/spf13/cobra"

	mrepo "skillreel/internal/services/moderation/repo"
)

func newSchemaCommand(ctx *commandContext) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print or apply the moderation Postgres schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !apply {
				fmt.Fprint(cmd.OutOrStdout(), mrepo.Schema())
				return nil
			}
			st, err := ctx.store(cmd.Context())
			if err != nil {
				return err
			}
			if err := mrepo.EnsureSchema(cmd.Context(), st.PG); err != nil {
				return err
			}
			if st.CH != nil {
				if err := mrepo.NewAudit(st.CH).EnsureSchema(cmd.Context()); err != nil {
					return fmt.Errorf("audit schema: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema applied")
			return nil
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "Apply to SERVICE_PGSQL_DBURL instead of printing")
	return cmd
}
