package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador del libro de compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una entrada nueva. El timestamp lo asigna el servidor de BD.
func (r *PurchaseRepo) Create(ctx context.Context, entry *entity.PurchaseEntry) error {
	query := `
		INSERT INTO purchases (id, product_id, name, date, quantity, unit_cost, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING timestamp`
	err := r.q.QueryRow(ctx, query,
		entry.ID, entry.ProductID, entry.Name, entry.Date,
		entry.Quantity, entry.UnitCost, entry.TotalCost,
	).Scan(&entry.Timestamp)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseEntry, error) {
	query := `
		SELECT id, product_id, name, date, quantity, unit_cost, total_cost, timestamp
		FROM purchases WHERE id = $1`
	var e entity.PurchaseEntry
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.ProductID, &e.Name, &e.Date, &e.Quantity, &e.UnitCost, &e.TotalCost, &e.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &e, nil
}

// Update edita la entrada en sitio. El timestamp de creación no cambia.
func (r *PurchaseRepo) Update(ctx context.Context, entry *entity.PurchaseEntry) error {
	query := `
		UPDATE purchases SET product_id = $2, name = $3, date = $4, quantity = $5, unit_cost = $6, total_cost = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ProductID, entry.Name, entry.Date,
		entry.Quantity, entry.UnitCost, entry.TotalCost,
	)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas entradas, más reciente primero.
func (r *PurchaseRepo) ListRecent(ctx context.Context, limit int) ([]*entity.PurchaseEntry, error) {
	query := `
		SELECT id, product_id, name, date, quantity, unit_cost, total_cost, timestamp
		FROM purchases ORDER BY timestamp DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

// ListSince devuelve las entradas con timestamp >= since (ventana de reportes).
func (r *PurchaseRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.PurchaseEntry, error) {
	query := `
		SELECT id, product_id, name, date, quantity, unit_cost, total_cost, timestamp
		FROM purchases WHERE timestamp >= $1 ORDER BY timestamp DESC`
	return r.list(ctx, query, since)
}

func (r *PurchaseRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PurchaseEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseEntry
	for rows.Next() {
		var e entity.PurchaseEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Name, &e.Date, &e.Quantity,
			&e.UnitCost, &e.TotalCost, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
