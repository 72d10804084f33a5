package sales_test

import (
	"context"
	"time"

	"github.com/jhoicas/ferreteria-pos/internal/application/sales"
	"github.com/jhoicas/ferreteria-pos/internal/domain"
	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un memStore compartido implementa los puertos de
// persistencia, y fakeTxRunner simula la atomicidad con snapshot/restore —
// si la función de la "transacción" falla, el store vuelve al estado previo.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	variants  map[string]*entity.Variant
	txs       map[string]*entity.Transaction
	restocks  map[string]*entity.RestockingRequest
	movements []*entity.StockMovement
	notifs    []*entity.Notification

	// errores inyectables
	movementCreateErr error
	notifCreateErr    error
}

func newMemStore() *memStore {
	return &memStore{
		variants: map[string]*entity.Variant{},
		txs:      map[string]*entity.Transaction{},
		restocks: map[string]*entity.RestockingRequest{},
	}
}

func (s *memStore) addVariant(v entity.Variant) {
	s.variants[v.ID] = cloneVariant(&v)
}

func cloneVariant(v *entity.Variant) *entity.Variant {
	c := *v
	c.SalesHistory = append([]entity.SaleRecord(nil), v.SalesHistory...)
	c.Suppliers = append([]entity.SupplierSummary(nil), v.Suppliers...)
	return &c
}

func cloneTx(tx *entity.Transaction) *entity.Transaction {
	c := *tx
	c.Items = append([]entity.TransactionItem(nil), tx.Items...)
	if tx.VoidedAt != nil {
		at := *tx.VoidedAt
		c.VoidedAt = &at
	}
	return &c
}

type snapshot struct {
	variants map[string]*entity.Variant
	txs      map[string]*entity.Transaction
	restocks map[string]*entity.RestockingRequest
	nMoves   int
	nNotifs  int
}

func (s *memStore) snapshot() snapshot {
	snap := snapshot{
		variants: make(map[string]*entity.Variant, len(s.variants)),
		txs:      make(map[string]*entity.Transaction, len(s.txs)),
		restocks: make(map[string]*entity.RestockingRequest, len(s.restocks)),
		nMoves:   len(s.movements),
		nNotifs:  len(s.notifs),
	}
	for k, v := range s.variants {
		snap.variants[k] = cloneVariant(v)
	}
	for k, tx := range s.txs {
		snap.txs[k] = cloneTx(tx)
	}
	for k, r := range s.restocks {
		c := *r
		snap.restocks[k] = &c
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.variants = snap.variants
	s.txs = snap.txs
	s.restocks = snap.restocks
	s.movements = s.movements[:snap.nMoves]
	s.notifs = s.notifs[:snap.nNotifs]
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos fake sobre el memStore
// ──────────────────────────────────────────────────────────────────────────────

type memVariantRepo struct{ s *memStore }

func (r *memVariantRepo) Create(v *entity.Variant) error {
	r.s.variants[v.ID] = cloneVariant(v)
	return nil
}

func (r *memVariantRepo) GetByID(id string) (*entity.Variant, error) {
	v, ok := r.s.variants[id]
	if !ok {
		return nil, nil
	}
	return cloneVariant(v), nil
}

func (r *memVariantRepo) GetForUpdate(id string) (*entity.Variant, error) {
	return r.GetByID(id)
}

func (r *memVariantRepo) ListByProduct(productID string) ([]*entity.Variant, error) {
	var out []*entity.Variant
	for _, v := range r.s.variants {
		if v.ParentProductID == productID {
			out = append(out, cloneVariant(v))
		}
	}
	return out, nil
}

func (r *memVariantRepo) List() ([]*entity.Variant, error) {
	var out []*entity.Variant
	for _, v := range r.s.variants {
		out = append(out, cloneVariant(v))
	}
	return out, nil
}

func (r *memVariantRepo) UpdateStock(v *entity.Variant) error {
	r.s.variants[v.ID] = cloneVariant(v)
	return nil
}

type memTxRepo struct{ s *memStore }

func (r *memTxRepo) Create(tx *entity.Transaction) error {
	r.s.txs[tx.ID] = cloneTx(tx)
	return nil
}

func (r *memTxRepo) GetByID(id string) (*entity.Transaction, error) {
	tx, ok := r.s.txs[id]
	if !ok {
		return nil, nil
	}
	return cloneTx(tx), nil
}

func (r *memTxRepo) GetForUpdate(id string) (*entity.Transaction, error) {
	return r.GetByID(id)
}

func (r *memTxRepo) MarkVoided(id string, voidedAt time.Time) error {
	tx, ok := r.s.txs[id]
	if !ok {
		return domain.ErrNotFound
	}
	tx.Status = entity.TransactionStatusVoided
	tx.VoidedAt = &voidedAt
	return nil
}

func (r *memTxRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range r.s.txs {
		out = append(out, cloneTx(tx))
	}
	return out, nil
}

type memRestockRepo struct{ s *memStore }

func (r *memRestockRepo) CreateIfNoneOpen(req *entity.RestockingRequest) (bool, error) {
	open, _ := r.GetOpenByVariant(req.VariantID)
	if open != nil {
		return false, nil
	}
	c := *req
	r.s.restocks[req.ID] = &c
	return true, nil
}

func (r *memRestockRepo) GetByID(id string) (*entity.RestockingRequest, error) {
	req, ok := r.s.restocks[id]
	if !ok {
		return nil, nil
	}
	c := *req
	return &c, nil
}

func (r *memRestockRepo) GetOpenByVariant(variantID string) (*entity.RestockingRequest, error) {
	for _, req := range r.s.restocks {
		if req.VariantID == variantID && req.IsOpen() {
			c := *req
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memRestockRepo) ListOpen(limit, offset int) ([]*entity.RestockingRequest, error) {
	var out []*entity.RestockingRequest
	for _, req := range r.s.restocks {
		if req.IsOpen() {
			c := *req
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memRestockRepo) UpdateStatus(id, status string) error {
	req, ok := r.s.restocks[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = time.Now()
	return nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	if r.s.movementCreateErr != nil {
		return r.s.movementCreateErr
	}
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *memMovementRepo) ListByVariant(variantID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.VariantID == variantID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByTransaction(transactionID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ReferenceTransactionID == transactionID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

type memNotifRepo struct{ s *memStore }

func (r *memNotifRepo) Create(n *entity.Notification) error {
	if r.s.notifCreateErr != nil {
		return r.s.notifCreateErr
	}
	c := *n
	r.s.notifs = append(r.s.notifs, &c)
	return nil
}

func (r *memNotifRepo) ListRecent(limit int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range r.s.notifs {
		c := *n
		out = append(out, &c)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// fakeTxRunner: snapshot antes de fn, restore si falla. conflictsLeft inyecta
// ErrConflict en las primeras N ejecuciones para probar los reintentos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	s             *memStore
	conflictsLeft int
	runs          int
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.VariantRepository,
	repository.TransactionRepository,
	repository.RestockingRequestRepository,
	repository.StockMovementRepository,
	repository.NotificationRepository,
) error) error {
	r.runs++
	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		return domain.ErrConflict
	}
	snap := r.s.snapshot()
	err := fn(
		&memVariantRepo{r.s},
		&memTxRepo{r.s},
		&memRestockRepo{r.s},
		&memMovementRepo{r.s},
		&memNotifRepo{r.s},
	)
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

var _ sales.TxRunner = (*fakeTxRunner)(nil)
