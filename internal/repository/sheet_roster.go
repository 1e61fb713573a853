package repository

import (
	"context"
	"fmt"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/sheet"
)

// SheetRosterRepo implements RosterRepo on the roster table.
type SheetRosterRepo struct {
	store *sheet.Store
}

func NewSheetRosterRepo(store *sheet.Store) *SheetRosterRepo {
	return &SheetRosterRepo{store: store}
}

func (r *SheetRosterRepo) Upsert(ctx context.Context, guides []domain.Guide) (sheet.UpsertStats, error) {
	rows := make([]sheet.Row, 0, len(guides))
	for _, g := range guides {
		if g.Name == "" {
			return sheet.UpsertStats{}, fmt.Errorf("roster: name is required")
		}
		rows = append(rows, sheet.Row{g.Name, g.Island, g.Role.Label()})
	}
	stats, err := r.store.Upsert(ctx, RosterSchema, rows)
	if err != nil {
		return sheet.UpsertStats{}, fmt.Errorf("saving roster: %w", err)
	}
	return stats, nil
}

// List returns the roster in table order, narrowed to island when non-empty.
func (r *SheetRosterRepo) List(ctx context.Context, island string) ([]domain.Guide, error) {
	res := r.store.Load(ctx, RosterSchema)
	if !res.OK() {
		return nil, fmt.Errorf("loading roster: %w", res.Err)
	}
	var out []domain.Guide
	for _, row := range res.Rows {
		g, ok := decodeGuide(row)
		if !ok {
			continue
		}
		if island != "" && g.Island != island {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *SheetRosterRepo) Get(ctx context.Context, name string) (*domain.Guide, error) {
	guides, err := r.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range guides {
		if guides[i].Name == name {
			return &guides[i], nil
		}
	}
	return nil, fmt.Errorf("guide %q: %w", name, ErrNotFound)
}

func decodeGuide(row sheet.Row) (domain.Guide, bool) {
	s := RosterSchema
	g := domain.Guide{
		Name:   cell(s, row, "name"),
		Island: cell(s, row, "island"),
	}
	if g.Name == "" {
		return domain.Guide{}, false
	}
	role, err := domain.ParseRole(cell(s, row, "role"))
	if err != nil {
		role = domain.RoleGuide
	}
	g.Role = role
	return g, true
}
