package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Requisiciones-api/internal/domain/entity"
	"github.com/jhoicas/Requisiciones-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, serial, description, origin, destination, value, invoice_ref, quantity, minimum, ideal, notes, created_at`

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO items (id, name, serial, description, origin, destination, value, invoice_ref, quantity, minimum, ideal, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Serial, item.Description, item.Origin, item.Destination,
		item.Value, item.InvoiceRef, item.Quantity, item.Minimum, item.Ideal, item.Notes, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.Name, &it.Serial, &it.Description, &it.Origin, &it.Destination,
		&it.Value, &it.InvoiceRef, &it.Quantity, &it.Minimum, &it.Ideal, &it.Notes, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by id: %w", err)
	}
	return &it, nil
}

// List devuelve todos los artículos ordenados por nombre.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Serial, &it.Description, &it.Origin, &it.Destination,
			&it.Value, &it.InvoiceRef, &it.Quantity, &it.Minimum, &it.Ideal, &it.Notes, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// SetQuantity fija la cantidad absoluta de un artículo.
func (r *ItemRepo) SetQuantity(id string, quantity int) error {
	ct, err := r.q.Exec(context.Background(), `UPDATE items SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("set item quantity: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("set item quantity: %w", pgx.ErrNoRows)
	}
	return nil
}

// DecrementIfAvailable descuenta amount solo si la cantidad actual alcanza.
// Es un compare-and-subtract atómico: la condición y la escritura van en el mismo
// UPDATE, así dos aprobaciones concurrentes sobre el mismo artículo se serializan
// en el storage y la suma de descuentos exitosos nunca sobregira el stock.
// Devuelve filas afectadas (1 = descontado, 0 = stock insuficiente o artículo inexistente).
func (r *ItemRepo) DecrementIfAvailable(id string, amount int) (int64, error) {
	ct, err := r.q.Exec(context.Background(),
		`UPDATE items SET quantity = quantity - $2 WHERE id = $1 AND quantity >= $2`, id, amount)
	if err != nil {
		return 0, fmt.Errorf("decrement item quantity: %w", err)
	}
	return ct.RowsAffected(), nil
}

// IncrementQuantity suma amount a la cantidad actual (entradas manuales, importación).
func (r *ItemRepo) IncrementQuantity(id string, amount int) error {
	ct, err := r.q.Exec(context.Background(),
		`UPDATE items SET quantity = quantity + $2 WHERE id = $1`, id, amount)
	if err != nil {
		return fmt.Errorf("increment item quantity: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("increment item quantity: %w", pgx.ErrNoRows)
	}
	return nil
}

// Delete elimina un artículo por ID.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// DeleteAll vacía la tabla de artículos (solo importación transaccional).
func (r *ItemRepo) DeleteAll() error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items`)
	if err != nil {
		return fmt.Errorf("delete all items: %w", err)
	}
	return nil
}
