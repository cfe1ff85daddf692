package requisition_test

import (
	"context"

	"github.com/jhoicas/Requisiciones-api/internal/domain"
	"github.com/jhoicas/Requisiciones-api/internal/domain/entity"
	"github.com/jhoicas/Requisiciones-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.Item)}
}

func (r *fakeItemRepo) Create(it *entity.Item) error {
	r.items[it.ID] = it
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.items[id], nil
}

func (r *fakeItemRepo) List() ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeItemRepo) SetQuantity(id string, quantity int) error {
	it := r.items[id]
	if it == nil {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

// DecrementIfAvailable reproduce el compare-and-subtract del UPDATE condicional.
func (r *fakeItemRepo) DecrementIfAvailable(id string, amount int) (int64, error) {
	it := r.items[id]
	if it == nil || it.Quantity < amount {
		return 0, nil
	}
	it.Quantity -= amount
	return 1, nil
}

func (r *fakeItemRepo) IncrementQuantity(id string, amount int) error {
	it := r.items[id]
	if it == nil {
		return domain.ErrNotFound
	}
	it.Quantity += amount
	return nil
}

func (r *fakeItemRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) DeleteAll() error {
	r.items = make(map[string]*entity.Item)
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func newFakeMovementRepo() *fakeMovementRepo { return &fakeMovementRepo{} }

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListWindow(days int) ([]*entity.Movement, error) {
	return r.movements, nil
}

func (r *fakeMovementRepo) DeleteAll() error {
	r.movements = nil
	return nil
}

type fakeRequisitionRepo struct {
	reqs map[string]*entity.Requisition
}

func newFakeRequisitionRepo() *fakeRequisitionRepo {
	return &fakeRequisitionRepo{reqs: make(map[string]*entity.Requisition)}
}

func (r *fakeRequisitionRepo) Create(req *entity.Requisition) error {
	r.reqs[req.ID] = req
	return nil
}

func (r *fakeRequisitionRepo) GetByID(id string) (*entity.Requisition, error) {
	return r.reqs[id], nil
}

func (r *fakeRequisitionRepo) ListByUser(userID string) ([]*entity.Requisition, error) {
	var out []*entity.Requisition
	for _, req := range r.reqs {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequisitionRepo) ListPending() ([]*entity.Requisition, error) {
	var out []*entity.Requisition
	for _, req := range r.reqs {
		if req.Status == entity.StatusPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequisitionRepo) UpdateStatusIfPending(id, status, notes string) (int64, error) {
	req := r.reqs[id]
	if req == nil || req.Status != entity.StatusPending {
		return 0, nil
	}
	req.Status = status
	req.Notes = notes
	return 1, nil
}

type fakePackageRepo struct {
	pkgs  map[string]*entity.Package
	lines map[string][]*entity.PackageItem
}

func newFakePackageRepo() *fakePackageRepo {
	return &fakePackageRepo{
		pkgs:  make(map[string]*entity.Package),
		lines: make(map[string][]*entity.PackageItem),
	}
}

func (r *fakePackageRepo) Create(pkg *entity.Package, items []*entity.PackageItem) error {
	r.pkgs[pkg.ID] = pkg
	for _, li := range items {
		li.PackageID = pkg.ID
	}
	r.lines[pkg.ID] = items
	return nil
}

func (r *fakePackageRepo) GetByID(id string) (*entity.Package, error) {
	return r.pkgs[id], nil
}

func (r *fakePackageRepo) ListByUser(userID string) ([]*entity.Package, error) {
	var out []*entity.Package
	for _, p := range r.pkgs {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePackageRepo) ListWithPendingItems() ([]*entity.Package, error) {
	var out []*entity.Package
	for id, p := range r.pkgs {
		for _, li := range r.lines[id] {
			if li.Status == entity.StatusPending {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (r *fakePackageRepo) ListItems(packageID string) ([]*entity.PackageItem, error) {
	return r.lines[packageID], nil
}

func (r *fakePackageRepo) GetItem(packageID, itemID string) (*entity.PackageItem, error) {
	for _, li := range r.lines[packageID] {
		if li.ItemID == itemID {
			return li, nil
		}
	}
	return nil, nil
}

func (r *fakePackageRepo) UpdateItemStatusIfPending(packageID, itemID, status, notes string) (int64, error) {
	li, _ := r.GetItem(packageID, itemID)
	if li == nil || li.Status != entity.StatusPending {
		return 0, nil
	}
	li.Status = status
	li.Notes = notes
	return 1, nil
}

func (r *fakePackageRepo) UpdateStatus(packageID, status string) error {
	p := r.pkgs[packageID]
	if p == nil {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fake del TxRunner con rollback por snapshot
// ──────────────────────────────────────────────────────────────────────────────

// fakeTxRunner entrega los mismos fakes a fn y emula el rollback restaurando un
// snapshot del estado cuando fn devuelve error.
type fakeTxRunner struct {
	items *fakeItemRepo
	movs  *fakeMovementRepo
	reqs  *fakeRequisitionRepo
	pkgs  *fakePackageRepo
}

func (tx *fakeTxRunner) Run(
	_ context.Context,
	fn func(repository.ItemRepository, repository.MovementRepository, repository.RequisitionRepository, repository.PackageRepository) error,
) error {
	restore := tx.snapshot()
	if err := fn(tx.items, tx.movs, tx.reqs, tx.pkgs); err != nil {
		restore()
		return err
	}
	return nil
}

func (tx *fakeTxRunner) RunStock(
	_ context.Context,
	fn func(repository.ItemRepository, repository.MovementRepository) error,
) error {
	restore := tx.snapshot()
	if err := fn(tx.items, tx.movs); err != nil {
		restore()
		return err
	}
	return nil
}

func (tx *fakeTxRunner) snapshot() (restore func()) {
	items := make(map[string]*entity.Item, len(tx.items.items))
	for id, it := range tx.items.items {
		cp := *it
		items[id] = &cp
	}
	movs := append([]*entity.Movement(nil), tx.movs.movements...)
	reqs := make(map[string]*entity.Requisition, len(tx.reqs.reqs))
	for id, rq := range tx.reqs.reqs {
		cp := *rq
		reqs[id] = &cp
	}
	pkgs := make(map[string]*entity.Package, len(tx.pkgs.pkgs))
	for id, p := range tx.pkgs.pkgs {
		cp := *p
		pkgs[id] = &cp
	}
	lines := make(map[string][]*entity.PackageItem, len(tx.pkgs.lines))
	for id, ls := range tx.pkgs.lines {
		cps := make([]*entity.PackageItem, len(ls))
		for i, li := range ls {
			cp := *li
			cps[i] = &cp
		}
		lines[id] = cps
	}
	return func() {
		tx.items.items = items
		tx.movs.movements = movs
		tx.reqs.reqs = reqs
		tx.pkgs.pkgs = pkgs
		tx.pkgs.lines = lines
	}
}
