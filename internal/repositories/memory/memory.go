// Package memory implements the ledger store in process memory. It
// backs the test suite and single-node deployments without Postgres.
// A store-wide mutex serializes operations: one mutation executes to
// completion before the next begins, and Atomic snapshots state so a
// failed operation leaves no partial effect.
package memory

import (
	"context"
	"sync"

	"paylater/internal/models"
	"paylater/internal/repositories"
)

// Store is the in-memory ledger store.
type Store struct {
	mu   sync.Mutex
	data *data
}

type data struct {
	users        map[uint]*models.User
	usersByEmail map[string]uint
	accounts     map[uint]*models.Account // keyed by user ID
	purchases    map[uint]*models.Purchase
	payments     map[uint]*models.Payment
	merchants    map[uint]*models.Merchant // keyed by user ID
	autopay      map[uint]*models.Autopay  // keyed by user ID

	nextUserID     uint
	nextAccountID  uint
	nextPurchaseID uint
	nextPaymentID  uint
	nextRecordID   uint
}

// NewStore creates an empty in-memory store. Sequential IDs start at 1
// and are never reused.
func NewStore() *Store {
	return &Store{data: newData()}
}

func newData() *data {
	return &data{
		users:        make(map[uint]*models.User),
		usersByEmail: make(map[string]uint),
		accounts:     make(map[uint]*models.Account),
		purchases:    make(map[uint]*models.Purchase),
		payments:     make(map[uint]*models.Payment),
		merchants:    make(map[uint]*models.Merchant),
		autopay:      make(map[uint]*models.Autopay),
	}
}

func (d *data) clone() *data {
	cp := newData()
	for k, v := range d.users {
		u := *v
		cp.users[k] = &u
	}
	for k, v := range d.usersByEmail {
		cp.usersByEmail[k] = v
	}
	for k, v := range d.accounts {
		a := *v
		cp.accounts[k] = &a
	}
	for k, v := range d.purchases {
		p := *v
		cp.purchases[k] = &p
	}
	for k, v := range d.payments {
		p := *v
		cp.payments[k] = &p
	}
	for k, v := range d.merchants {
		m := *v
		cp.merchants[k] = &m
	}
	for k, v := range d.autopay {
		a := *v
		cp.autopay[k] = &a
	}
	cp.nextUserID = d.nextUserID
	cp.nextAccountID = d.nextAccountID
	cp.nextPurchaseID = d.nextPurchaseID
	cp.nextPaymentID = d.nextPaymentID
	cp.nextRecordID = d.nextRecordID
	return cp
}

// view is a handle on the store; inside Atomic the mutex is already
// held and repo methods must not re-lock.
type view struct {
	store  *Store
	locked bool
}

func (v *view) lock() func() {
	if v.locked {
		return func() {}
	}
	v.store.mu.Lock()
	return v.store.mu.Unlock
}

func (s *Store) Users() repositories.UserRepository         { return userRepo{&view{store: s}} }
func (s *Store) Accounts() repositories.AccountRepository   { return accountRepo{&view{store: s}} }
func (s *Store) Purchases() repositories.PurchaseRepository { return purchaseRepo{&view{store: s}} }
func (s *Store) Payments() repositories.PaymentRepository   { return paymentRepo{&view{store: s}} }
func (s *Store) Merchants() repositories.MerchantRepository { return merchantRepo{&view{store: s}} }
func (s *Store) Autopay() repositories.AutopayRepository    { return autopayRepo{&view{store: s}} }

// Atomic serializes fn against all other operations. On error the
// pre-operation snapshot is restored.
func (s *Store) Atomic(ctx context.Context, fn func(repositories.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(&txStore{store: s}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// txStore is the store handed to Atomic callbacks; it shares the
// already-held lock.
type txStore struct {
	store *Store
}

func (t *txStore) Users() repositories.UserRepository {
	return userRepo{&view{store: t.store, locked: true}}
}
func (t *txStore) Accounts() repositories.AccountRepository {
	return accountRepo{&view{store: t.store, locked: true}}
}
func (t *txStore) Purchases() repositories.PurchaseRepository {
	return purchaseRepo{&view{store: t.store, locked: true}}
}
func (t *txStore) Payments() repositories.PaymentRepository {
	return paymentRepo{&view{store: t.store, locked: true}}
}
func (t *txStore) Merchants() repositories.MerchantRepository {
	return merchantRepo{&view{store: t.store, locked: true}}
}
func (t *txStore) Autopay() repositories.AutopayRepository {
	return autopayRepo{&view{store: t.store, locked: true}}
}

func (t *txStore) Atomic(ctx context.Context, fn func(repositories.Store) error) error {
	// Already inside a transaction; just run.
	return fn(t)
}

type userRepo struct{ v *view }

func (r userRepo) Create(_ context.Context, user *models.User) error {
	defer r.v.lock()()
	d := r.v.store.data
	d.nextUserID++
	user.ID = d.nextUserID
	cp := *user
	d.users[user.ID] = &cp
	d.usersByEmail[user.Email] = user.ID
	return nil
}

func (r userRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	defer r.v.lock()()
	u, ok := r.v.store.data.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	defer r.v.lock()()
	d := r.v.store.data
	id, ok := d.usersByEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *d.users[id]
	return &cp, nil
}

func (r userRepo) Update(_ context.Context, user *models.User) error {
	defer r.v.lock()()
	d := r.v.store.data
	if _, ok := d.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *user
	d.users[user.ID] = &cp
	return nil
}

type accountRepo struct{ v *view }

func (r accountRepo) Create(_ context.Context, account *models.Account) error {
	defer r.v.lock()()
	d := r.v.store.data
	d.nextAccountID++
	account.ID = d.nextAccountID
	cp := *account
	d.accounts[account.UserID] = &cp
	return nil
}

func (r accountRepo) GetByUserID(_ context.Context, userID uint) (*models.Account, error) {
	defer r.v.lock()()
	a, ok := r.v.store.data.accounts[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r accountRepo) Update(_ context.Context, account *models.Account) error {
	defer r.v.lock()()
	d := r.v.store.data
	if _, ok := d.accounts[account.UserID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *account
	d.accounts[account.UserID] = &cp
	return nil
}

func (r accountRepo) Count(_ context.Context) (int64, error) {
	defer r.v.lock()()
	return int64(len(r.v.store.data.accounts)), nil
}

type purchaseRepo struct{ v *view }

func (r purchaseRepo) Create(_ context.Context, purchase *models.Purchase) error {
	defer r.v.lock()()
	d := r.v.store.data
	d.nextPurchaseID++
	purchase.ID = d.nextPurchaseID
	cp := *purchase
	d.purchases[purchase.ID] = &cp
	return nil
}

func (r purchaseRepo) GetByID(_ context.Context, id uint) (*models.Purchase, error) {
	defer r.v.lock()()
	p, ok := r.v.store.data.purchases[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r purchaseRepo) ListByConsumer(_ context.Context, consumerID uint) ([]models.Purchase, error) {
	defer r.v.lock()()
	d := r.v.store.data
	var out []models.Purchase
	// IDs are assigned sequentially, so ascending ID order is
	// creation order.
	for id := uint(1); id <= d.nextPurchaseID; id++ {
		if p, ok := d.purchases[id]; ok && p.ConsumerID == consumerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r purchaseRepo) Update(_ context.Context, purchase *models.Purchase) error {
	defer r.v.lock()()
	d := r.v.store.data
	if _, ok := d.purchases[purchase.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *purchase
	d.purchases[purchase.ID] = &cp
	return nil
}

func (r purchaseRepo) Count(_ context.Context) (int64, error) {
	defer r.v.lock()()
	return int64(len(r.v.store.data.purchases)), nil
}

func (r purchaseRepo) SumOutstanding(_ context.Context) (int64, error) {
	defer r.v.lock()()
	var total int64
	for _, p := range r.v.store.data.purchases {
		if p.Status == models.PurchaseStatusActive {
			total += p.RemainingBalance
		}
	}
	return total, nil
}

type paymentRepo struct{ v *view }

func (r paymentRepo) Create(_ context.Context, payment *models.Payment) error {
	defer r.v.lock()()
	d := r.v.store.data
	d.nextPaymentID++
	payment.ID = d.nextPaymentID
	cp := *payment
	d.payments[payment.ID] = &cp
	return nil
}

func (r paymentRepo) GetByID(_ context.Context, id uint) (*models.Payment, error) {
	defer r.v.lock()()
	p, ok := r.v.store.data.payments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r paymentRepo) SumCompleted(_ context.Context) (int64, error) {
	defer r.v.lock()()
	var total int64
	for _, p := range r.v.store.data.payments {
		total += p.Amount
	}
	return total, nil
}

type merchantRepo struct{ v *view }

func (r merchantRepo) Upsert(_ context.Context, merchant *models.Merchant) error {
	defer r.v.lock()()
	d := r.v.store.data
	if existing, ok := d.merchants[merchant.UserID]; ok {
		merchant.ID = existing.ID
	} else {
		d.nextRecordID++
		merchant.ID = d.nextRecordID
	}
	cp := *merchant
	d.merchants[merchant.UserID] = &cp
	return nil
}

func (r merchantRepo) GetByUserID(_ context.Context, userID uint) (*models.Merchant, error) {
	defer r.v.lock()()
	m, ok := r.v.store.data.merchants[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

type autopayRepo struct{ v *view }

func (r autopayRepo) Upsert(_ context.Context, autopay *models.Autopay) error {
	defer r.v.lock()()
	d := r.v.store.data
	if existing, ok := d.autopay[autopay.UserID]; ok {
		autopay.ID = existing.ID
	} else {
		d.nextRecordID++
		autopay.ID = d.nextRecordID
	}
	cp := *autopay
	d.autopay[autopay.UserID] = &cp
	return nil
}

func (r autopayRepo) GetByUserID(_ context.Context, userID uint) (*models.Autopay, error) {
	defer r.v.lock()()
	a, ok := r.v.store.data.autopay[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}
