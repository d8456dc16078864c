package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas de venta se guardan como JSONB: snapshot del producto al momento
// de la venta, sin FK al catálogo (el producto puede cambiar o borrarse después).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador del libro de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// saleItemDoc forma JSONB de una línea de venta.
type saleItemDoc struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Quantity  int64           `json:"quantity"`
}

func encodeItems(items []entity.SaleItem) ([]byte, error) {
	docs := make([]saleItemDoc, 0, len(items))
	for _, it := range items {
		docs = append(docs, saleItemDoc(it))
	}
	return json.Marshal(docs)
}

func decodeItems(raw []byte) ([]entity.SaleItem, error) {
	var docs []saleItemDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	items := make([]entity.SaleItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, entity.SaleItem(d))
	}
	return items, nil
}

// Create persiste una venta. El timestamp lo asigna el servidor de BD.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.SaleRecord) error {
	raw, err := encodeItems(sale.Items)
	if err != nil {
		return fmt.Errorf("encode sale items: %w", err)
	}
	query := `
		INSERT INTO sales (id, items, total)
		VALUES ($1, $2, $3)
		RETURNING timestamp`
	if err := r.q.QueryRow(ctx, query, sale.ID, raw, sale.Total).Scan(&sale.Timestamp); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.SaleRecord, error) {
	query := `SELECT id, items, total, timestamp FROM sales WHERE id = $1`
	var s entity.SaleRecord
	var raw []byte
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &raw, &s.Total, &s.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if s.Items, err = decodeItems(raw); err != nil {
		return nil, fmt.Errorf("decode sale items: %w", err)
	}
	return &s, nil
}

// Update reemplaza líneas y total de una venta.
func (r *SaleRepo) Update(ctx context.Context, sale *entity.SaleRecord) error {
	raw, err := encodeItems(sale.Items)
	if err != nil {
		return fmt.Errorf("encode sale items: %w", err)
	}
	_, err = r.q.Exec(ctx, `UPDATE sales SET items = $2, total = $3 WHERE id = $1`,
		sale.ID, raw, sale.Total)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// Delete elimina una venta por ID.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas ventas, más reciente primero.
func (r *SaleRepo) ListRecent(ctx context.Context, limit int) ([]*entity.SaleRecord, error) {
	query := `SELECT id, items, total, timestamp FROM sales ORDER BY timestamp DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

// ListSince devuelve las ventas con timestamp >= since (ventana de reportes).
func (r *SaleRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.SaleRecord, error) {
	query := `SELECT id, items, total, timestamp FROM sales WHERE timestamp >= $1 ORDER BY timestamp DESC`
	return r.list(ctx, query, since)
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.SaleRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleRecord
	for rows.Next() {
		var s entity.SaleRecord
		var raw []byte
		if err := rows.Scan(&s.ID, &raw, &s.Total, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if s.Items, err = decodeItems(raw); err != nil {
			return nil, fmt.Errorf("decode sale items: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
