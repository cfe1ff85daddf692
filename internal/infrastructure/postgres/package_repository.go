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

var _ repository.PackageRepository = (*PackageRepo)(nil)

// PackageRepo implementación del puerto PackageRepository sobre PostgreSQL (usable con pool o tx).
type PackageRepo struct {
	q Querier
}

// NewPackageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackageRepository(q Querier) *PackageRepo {
	return &PackageRepo{q: q}
}

// Create persiste un paquete con todas sus líneas. Llamar dentro de una transacción
// para que encabezado y líneas queden juntos o no queden.
func (r *PackageRepo) Create(pkg *entity.Package, items []*entity.PackageItem) error {
	if pkg.ID == "" {
		pkg.ID = uuid.New().String()
	}
	query := `
		INSERT INTO packages (id, user_id, cost_center, project, justification, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		pkg.ID, pkg.UserID, pkg.CostCenter, pkg.Project, pkg.Justification, pkg.Status, pkg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert package: %w", err)
	}
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.PackageID = pkg.ID
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO package_items (id, package_id, item_id, quantity, status, notes)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.PackageID, it.ItemID, it.Quantity, it.Status, it.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert package item: %w", err)
		}
	}
	return nil
}

const packageSelect = `
	SELECT p.id, p.user_id, p.cost_center, p.project, p.justification, p.status, p.created_at,
	       u.name, (SELECT count(*) FROM package_items pi WHERE pi.package_id = p.id)
	FROM packages p
	JOIN users u ON p.user_id = u.id`

func scanPackage(row pgx.Row) (*entity.Package, error) {
	var p entity.Package
	err := row.Scan(
		&p.ID, &p.UserID, &p.CostCenter, &p.Project, &p.Justification, &p.Status, &p.CreatedAt,
		&p.UserName, &p.ItemCount,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un paquete con nombre de solicitante y conteo de líneas. Devuelve (nil, nil) si no existe.
func (r *PackageRepo) GetByID(id string) (*entity.Package, error) {
	pkg, err := scanPackage(r.q.QueryRow(context.Background(), packageSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package by id: %w", err)
	}
	return pkg, nil
}

// ListByUser lista los paquetes de un usuario, del más reciente al más antiguo.
func (r *PackageRepo) ListByUser(userID string) ([]*entity.Package, error) {
	return r.list(packageSelect+` WHERE p.user_id = $1 ORDER BY p.created_at DESC`, userID)
}

// ListWithPendingItems lista paquetes con al menos una línea aún pendiente, en orden de llegada.
func (r *PackageRepo) ListWithPendingItems() ([]*entity.Package, error) {
	return r.list(packageSelect + `
		WHERE EXISTS (SELECT 1 FROM package_items pi WHERE pi.package_id = p.id AND pi.status = 'pending')
		ORDER BY p.created_at ASC`)
}

func (r *PackageRepo) list(query string, args ...any) ([]*entity.Package, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		list = append(list, pkg)
	}
	return list, rows.Err()
}

const packageItemSelect = `
	SELECT pi.id, pi.package_id, pi.item_id, pi.quantity, pi.status, pi.notes, i.name
	FROM package_items pi
	JOIN items i ON pi.item_id = i.id`

func scanPackageItem(row pgx.Row) (*entity.PackageItem, error) {
	var it entity.PackageItem
	err := row.Scan(&it.ID, &it.PackageID, &it.ItemID, &it.Quantity, &it.Status, &it.Notes, &it.ItemName)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListItems devuelve las líneas de un paquete con nombre de artículo resuelto.
func (r *PackageRepo) ListItems(packageID string) ([]*entity.PackageItem, error) {
	rows, err := r.q.Query(context.Background(),
		packageItemSelect+` WHERE pi.package_id = $1 ORDER BY i.name`, packageID)
	if err != nil {
		return nil, fmt.Errorf("list package items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PackageItem
	for rows.Next() {
		it, err := scanPackageItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// GetItem obtiene la línea de un paquete para un artículo dado. Devuelve (nil, nil) si no existe.
func (r *PackageRepo) GetItem(packageID, itemID string) (*entity.PackageItem, error) {
	it, err := scanPackageItem(r.q.QueryRow(context.Background(),
		packageItemSelect+` WHERE pi.package_id = $1 AND pi.item_id = $2`, packageID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package item: %w", err)
	}
	return it, nil
}

// UpdateItemStatusIfPending cambia el estado de una línea solo si sigue pendiente.
// 0 filas afectadas = la línea ya fue resuelta (mismo guard SQL que las requisiciones).
func (r *PackageRepo) UpdateItemStatusIfPending(packageID, itemID, status, notes string) (int64, error) {
	ct, err := r.q.Exec(context.Background(),
		`UPDATE package_items SET status = $3, notes = $4
		 WHERE package_id = $1 AND item_id = $2 AND status = 'pending'`,
		packageID, itemID, status, notes)
	if err != nil {
		return 0, fmt.Errorf("update package item status: %w", err)
	}
	return ct.RowsAffected(), nil
}

// UpdateStatus persiste el estado agregado recalculado del paquete.
func (r *PackageRepo) UpdateStatus(packageID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE packages SET status = $2 WHERE id = $1`, packageID, status)
	if err != nil {
		return fmt.Errorf("update package status: %w", err)
	}
	return nil
}
