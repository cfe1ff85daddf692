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

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

// RequisitionRepo implementación del puerto RequisitionRepository sobre PostgreSQL (usable con pool o tx).
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

// Create persiste una nueva requisición (estado inicial pending).
func (r *RequisitionRepo) Create(req *entity.Requisition) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	query := `
		INSERT INTO requisitions (id, user_id, item_id, quantity, cost_center, project, justification, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.UserID, req.ItemID, req.Quantity, req.CostCenter,
		req.Project, req.Justification, req.Status, req.Notes, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert requisition: %w", err)
	}
	return nil
}

const requisitionSelect = `
	SELECT r.id, r.user_id, r.item_id, r.quantity, r.cost_center, r.project,
	       r.justification, r.status, r.notes, r.created_at, u.name, i.name
	FROM requisitions r
	JOIN users u ON r.user_id = u.id
	JOIN items i ON r.item_id = i.id`

func scanRequisition(row pgx.Row) (*entity.Requisition, error) {
	var req entity.Requisition
	err := row.Scan(
		&req.ID, &req.UserID, &req.ItemID, &req.Quantity, &req.CostCenter, &req.Project,
		&req.Justification, &req.Status, &req.Notes, &req.CreatedAt, &req.UserName, &req.ItemName,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetByID obtiene una requisición con nombres de usuario y artículo. Devuelve (nil, nil) si no existe.
func (r *RequisitionRepo) GetByID(id string) (*entity.Requisition, error) {
	req, err := scanRequisition(r.q.QueryRow(context.Background(), requisitionSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisition by id: %w", err)
	}
	return req, nil
}

// ListByUser lista las requisiciones de un usuario, de la más reciente a la más antigua.
func (r *RequisitionRepo) ListByUser(userID string) ([]*entity.Requisition, error) {
	return r.list(requisitionSelect+` WHERE r.user_id = $1 ORDER BY r.created_at DESC`, userID)
}

// ListPending lista las requisiciones pendientes en orden de llegada.
func (r *RequisitionRepo) ListPending() ([]*entity.Requisition, error) {
	return r.list(requisitionSelect + ` WHERE r.status = 'pending' ORDER BY r.created_at ASC`)
}

func (r *RequisitionRepo) list(query string, args ...any) ([]*entity.Requisition, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requisitions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Requisition
	for rows.Next() {
		req, err := scanRequisition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// UpdateStatusIfPending cambia el estado solo si la fila sigue pendiente.
// 0 filas afectadas significa que la requisición ya fue resuelta (o no existe):
// el guard contra doble aprobación vive en esta condición SQL.
func (r *RequisitionRepo) UpdateStatusIfPending(id, status, notes string) (int64, error) {
	ct, err := r.q.Exec(context.Background(),
		`UPDATE requisitions SET status = $2, notes = $3 WHERE id = $1 AND status = 'pending'`,
		id, status, notes)
	if err != nil {
		return 0, fmt.Errorf("update requisition status: %w", err)
	}
	return ct.RowsAffected(), nil
}
