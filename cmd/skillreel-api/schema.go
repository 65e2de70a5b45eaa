package main

import (
	"context"

	"skillreel/internal/platform/store"
	mrepo "skillreel/internal/services/moderation/repo"
)

// ensureSchema applies the moderation tables; the audit table only when ClickHouse is configured
func ensureSchema(ctx context.Context, st *store.Store) error {
	if err := mrepo.EnsureSchema(ctx, st.PG); err != nil {
		return err
	}
	if st.CH != nil {
		return mrepo.NewAudit(st.CH).EnsureSchema(ctx)
	}
	return nil
}
