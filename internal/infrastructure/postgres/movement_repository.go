package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Requisiciones-api/internal/domain/entity"
	"github.com/jhoicas/Requisiciones-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del historial de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create agrega un movimiento al historial.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, item_id, item_name, type, quantity, destination, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ItemID, movement.ItemName, movement.Type,
		movement.Quantity, movement.Destination, movement.Description, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListWindow devuelve los movimientos de los últimos days días, del más reciente al más antiguo.
func (r *MovementRepo) ListWindow(days int) ([]*entity.Movement, error) {
	query := `
		SELECT id, item_id, item_name, type, quantity, destination, description, created_at
		FROM movements
		WHERE created_at >= now() - ($1 * interval '1 day')
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, days)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.ItemName, &m.Type, &m.Quantity, &m.Destination, &m.Description, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// DeleteAll vacía el historial (solo importación transaccional).
func (r *MovementRepo) DeleteAll() error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM movements`)
	if err != nil {
		return fmt.Errorf("delete all movements: %w", err)
	}
	return nil
}
