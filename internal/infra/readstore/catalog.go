package readstore

import (
	"context"

	"storebot/internal/domain/catalog"
	"storebot/internal/infra"
	"storebot/internal/pkg/pgconv"
	"storebot/internal/usecase/queries"
	"storebot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CatalogReadStore struct {
	db DBTX
}

func NewCatalogReadStore(db DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: db}
}

var _ queries.CatalogReadStore = (*CatalogReadStore)(nil)

func (s *CatalogReadStore) List(ctx context.Context) ([]*queries.ItemView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, kind, name, price_cents, pass_duration_days
		FROM items
		ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items", err)
	}
	defer rows.Close()

	var out []*queries.ItemView
	for rows.Next() {
		var (
			view     queries.ItemView
			duration pgtype.Int4
		)
		if err := rows.Scan(&view.ID, &view.Kind, &view.Name, &view.PriceCents, &duration); err != nil {
			return nil, infra.WrapRepoErr("failed to scan item", err)
		}
		view.PassDurationDays = pgconv.Int32PtrFromPgtype(duration)
		out = append(out, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate items", err)
	}
	return out, nil
}

// FindSnapshotByID serves the write side: checkout pricing and entitlement
// issuance read the item through this snapshot.
func (s *CatalogReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.ItemSnapshot, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, kind, name, price_cents, delivery_url, pass_duration_days
		FROM items
		WHERE id = $1`, id)

	var (
		snap        shared.ItemSnapshot
		kind        string
		deliveryURL pgtype.Text
		duration    pgtype.Int4
	)
	err := row.Scan(&snap.ID, &kind, &snap.Name, &snap.PriceCents, &deliveryURL, &duration)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by id", err)
	}

	snap.Kind = catalog.Kind(kind)
	snap.DeliveryURL = pgconv.StringPtrFromPgtype(deliveryURL)
	snap.PassDurationDays = pgconv.Int32PtrFromPgtype(duration)
	return &snap, nil
}
