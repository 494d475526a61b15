package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/kafka"
	"storefront/models"
	"storefront/providers"
	"storefront/repository"
	"storefront/sender"
)

type fakeMenuRepo struct {
	items   map[uuid.UUID]models.MenuItem
	options map[uuid.UUID]models.CustomizationOption
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{
		items:   make(map[uuid.UUID]models.MenuItem),
		options: make(map[uuid.UUID]models.CustomizationOption),
	}
}

func (f *fakeMenuRepo) FindItemsByIDs(_ context.Context, ids []uuid.UUID) ([]models.MenuItem, error) {
	var out []models.MenuItem
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if it, ok := f.items[id]; ok && !seen[id] {
			out = append(out, it)
			seen[id] = true
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) FindOptionsByIDs(_ context.Context, ids []uuid.UUID) ([]models.CustomizationOption, error) {
	var out []models.CustomizationOption
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if opt, ok := f.options[id]; ok && !seen[id] {
			out = append(out, opt)
			seen[id] = true
		}
	}
	return out, nil
}

type fakeZoneRepo struct {
	zones []models.DeliveryZone
}

func (f *fakeZoneRepo) FindActive(_ context.Context) ([]models.DeliveryZone, error) {
	var out []models.DeliveryZone
	for _, z := range f.zones {
		if z.Active {
			out = append(out, z)
		}
	}
	return out, nil
}

type fakeDiscountRepo struct {
	codes map[string]*models.DiscountCode
	usage map[string]int64 // codeID:userID -> count
}

func newFakeDiscountRepo() *fakeDiscountRepo {
	return &fakeDiscountRepo{
		codes: make(map[string]*models.DiscountCode),
		usage: make(map[string]int64),
	}
}

func (f *fakeDiscountRepo) FindByCode(_ context.Context, code string) (*models.DiscountCode, error) {
	if dc, ok := f.codes[code]; ok {
		cp := *dc
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDiscountRepo) CountUsageByUser(_ context.Context, codeID, userID uuid.UUID) (int64, error) {
	return f.usage[codeID.String()+":"+userID.String()], nil
}

type fakeCartStore struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[string]*models.Cart)}
}

func (f *fakeCartStore) Get(_ context.Context, key string) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cart, ok := f.carts[key]; ok {
		cp := *cart
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCartStore) Save(_ context.Context, cart *models.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *cart
	f.carts[cart.Key] = &cp
	return nil
}

func (f *fakeCartStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, key)
	return nil
}

type fakePaymentMethodRepo struct {
	methods map[uuid.UUID]models.PaymentMethod
}

func (f *fakePaymentMethodRepo) FindByID(_ context.Context, id uuid.UUID) (*models.PaymentMethod, error) {
	if pm, ok := f.methods[id]; ok {
		cp := pm
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentMethodRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]models.PaymentMethod, error) {
	var out []models.PaymentMethod
	for _, pm := range f.methods {
		if pm.UserID == userID {
			out = append(out, pm)
		}
	}
	return out, nil
}

type fakeGeocoder struct {
	point models.Coordinate
	err   error
}

func (f *fakeGeocoder) Resolve(_ context.Context, _ string) (models.Coordinate, error) {
	return f.point, f.err
}

type fakeGateway struct {
	mu         sync.Mutex
	chargeRes  providers.ChargeResult
	chargeErr  error
	refundRes  providers.RefundResult
	refundErr  error
	charges    int
	refunds    int
	lastAmount float64
	lastToken  string
}

func (f *fakeGateway) Charge(_ context.Context, amount float64, _, token string) (providers.ChargeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.charges++
	f.lastAmount = amount
	f.lastToken = token
	return f.chargeRes, f.chargeErr
}

func (f *fakeGateway) Refund(_ context.Context, _ string, amount float64, _ string) (providers.RefundResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refunds++
	f.lastAmount = amount
	return f.refundRes, f.refundErr
}

type fakeRenderer struct {
	url string
	err error
}

func (f *fakeRenderer) RenderInvoice(_ context.Context, _ uuid.UUID) (string, error) {
	return f.url, f.err
}

type fakePublisher struct {
	mu       sync.Mutex
	created  []kafka.OrderCreatedEvent
	lowStock []kafka.LowStockEvent
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, evt kafka.OrderCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, evt)
	return nil
}

func (f *fakePublisher) PublishLowStock(_ context.Context, evt kafka.LowStockEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lowStock = append(f.lowStock, evt)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeEmailSender) SendEmail(_ context.Context, to, _, _ string) (sender.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return sender.SendResult{}, nil
}

type fakeSMSSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSMSSender) SendSMS(_ context.Context, to, _ string) (sender.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return sender.SendResult{}, nil
}

// memState is the database double backing memCheckoutRepo and
// memOrderRepo. One mutex serializes whole transactions, standing in
// for row locks; rollback restores a snapshot.
type memState struct {
	mu sync.Mutex

	items      map[uuid.UUID]models.MenuItem
	codes      map[uuid.UUID]*models.DiscountCode
	usages     []models.DiscountUsage
	orders     map[uuid.UUID]*models.Order
	events     []models.OrderStatusEvent
	ledger     []models.StockLedgerEntry
	accounts   map[uuid.UUID]*models.LoyaltyAccount // by user id
	pointsTxns []models.PointsTransaction
	rewards    map[uuid.UUID]*models.LoyaltyReward
	invoices   map[uuid.UUID]*models.Invoice
	codesByStr map[string]uuid.UUID
}

func newMemState() *memState {
	return &memState{
		items:      make(map[uuid.UUID]models.MenuItem),
		codes:      make(map[uuid.UUID]*models.DiscountCode),
		orders:     make(map[uuid.UUID]*models.Order),
		accounts:   make(map[uuid.UUID]*models.LoyaltyAccount),
		rewards:    make(map[uuid.UUID]*models.LoyaltyReward),
		invoices:   make(map[uuid.UUID]*models.Invoice),
		codesByStr: make(map[string]uuid.UUID),
	}
}

func (s *memState) snapshot() *memState {
	cp := newMemState()
	for k, v := range s.items {
		cp.items[k] = v
	}
	for k, v := range s.codes {
		c := *v
		cp.codes[k] = &c
	}
	cp.usages = append([]models.DiscountUsage(nil), s.usages...)
	for k, v := range s.orders {
		o := *v
		cp.orders[k] = &o
	}
	cp.events = append([]models.OrderStatusEvent(nil), s.events...)
	cp.ledger = append([]models.StockLedgerEntry(nil), s.ledger...)
	for k, v := range s.accounts {
		a := *v
		cp.accounts[k] = &a
	}
	cp.pointsTxns = append([]models.PointsTransaction(nil), s.pointsTxns...)
	for k, v := range s.rewards {
		r := *v
		cp.rewards[k] = &r
	}
	for k, v := range s.invoices {
		i := *v
		cp.invoices[k] = &i
	}
	for k, v := range s.codesByStr {
		cp.codesByStr[k] = v
	}
	return cp
}

func (s *memState) restore(from *memState) {
	s.items = from.items
	s.codes = from.codes
	s.usages = from.usages
	s.orders = from.orders
	s.events = from.events
	s.ledger = from.ledger
	s.accounts = from.accounts
	s.pointsTxns = from.pointsTxns
	s.rewards = from.rewards
	s.invoices = from.invoices
	s.codesByStr = from.codesByStr
}

// memCheckoutRepo implements repository.CheckoutRepository in memory.
type memCheckoutRepo struct {
	state *memState
}

func (r *memCheckoutRepo) WithinTransaction(_ context.Context, fn func(tx repository.CheckoutTx) error) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	snap := r.state.snapshot()
	if err := fn(&memCheckoutTx{state: r.state}); err != nil {
		r.state.restore(snap)
		return err
	}
	return nil
}

func (r *memCheckoutRepo) SetInvoiceDocument(_ context.Context, orderID, invoiceID uuid.UUID, url string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if o, ok := r.state.orders[orderID]; ok {
		o.InvoiceURL = url
	}
	if inv, ok := r.state.invoices[invoiceID]; ok {
		inv.DocumentURL = url
	}
	return nil
}

type memCheckoutTx struct {
	state *memState
}

func (t *memCheckoutTx) LockMenuItem(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	if it, ok := t.state.items[id]; ok {
		cp := it
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (t *memCheckoutTx) UpdateItemStock(_ context.Context, id uuid.UUID, newStock int) error {
	it, ok := t.state.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	it.Stock = newStock
	t.state.items[id] = it
	return nil
}

func (t *memCheckoutTx) AppendStockLedger(_ context.Context, entry *models.StockLedgerEntry) error {
	t.state.ledger = append(t.state.ledger, *entry)
	return nil
}

func (t *memCheckoutTx) TicketExists(_ context.Context, ticket string) (bool, error) {
	for _, o := range t.state.orders {
		if o.TrackingTicket == ticket {
			return true, nil
		}
	}
	return false, nil
}

func (t *memCheckoutTx) CreateOrder(_ context.Context, order *models.Order) error {
	cp := *order
	t.state.orders[order.ID] = &cp
	return nil
}

func (t *memCheckoutTx) AppendStatusEvent(_ context.Context, event *models.OrderStatusEvent) error {
	t.state.events = append(t.state.events, *event)
	return nil
}

func (t *memCheckoutTx) UpdateOrderPayment(_ context.Context, orderID uuid.UUID, status models.PaymentStatus, ref string) error {
	o, ok := t.state.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.PaymentStatus = status
	o.PaymentRef = ref
	return nil
}

func (t *memCheckoutTx) LockDiscountCode(_ context.Context, id uuid.UUID) (*models.DiscountCode, error) {
	if dc, ok := t.state.codes[id]; ok {
		cp := *dc
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (t *memCheckoutTx) IncrementDiscountUsage(_ context.Context, id uuid.UUID) error {
	dc, ok := t.state.codes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	dc.TotalUsedCount++
	return nil
}

func (t *memCheckoutTx) CreateDiscountUsage(_ context.Context, usage *models.DiscountUsage) error {
	t.state.usages = append(t.state.usages, *usage)
	return nil
}

func (t *memCheckoutTx) CountDiscountUsageByUser(_ context.Context, codeID, userID uuid.UUID) (int64, error) {
	var n int64
	for _, u := range t.state.usages {
		if u.DiscountCodeID == codeID && u.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (t *memCheckoutTx) ConsumeReward(_ context.Context, rewardID uuid.UUID) error {
	r, ok := t.state.rewards[rewardID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Status = models.RewardStatusConsumed
	return nil
}

func (t *memCheckoutTx) LockLoyaltyAccount(_ context.Context, userID uuid.UUID) (*models.LoyaltyAccount, error) {
	if a, ok := t.state.accounts[userID]; ok {
		cp := *a
		return &cp, nil
	}
	a := &models.LoyaltyAccount{ID: uuid.New(), UserID: userID}
	t.state.accounts[userID] = a
	cp := *a
	return &cp, nil
}

func (t *memCheckoutTx) UpdateLoyaltyBalance(_ context.Context, accountID uuid.UUID, balance int) error {
	for _, a := range t.state.accounts {
		if a.ID == accountID {
			a.Balance = balance
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (t *memCheckoutTx) AppendPointsTransaction(_ context.Context, txn *models.PointsTransaction) error {
	t.state.pointsTxns = append(t.state.pointsTxns, *txn)
	return nil
}

func (t *memCheckoutTx) CreateInvoice(_ context.Context, invoice *models.Invoice) error {
	cp := *invoice
	t.state.invoices[invoice.ID] = &cp
	return nil
}

// memOrderRepo implements repository.OrderRepository on the same
// shared state.
type memOrderRepo struct {
	state *memState
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	o, ok := r.state.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	cp.StatusEvents = r.eventsFor(id)
	return &cp, nil
}

func (r *memOrderRepo) FindByTicket(_ context.Context, ticket string) (*models.Order, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, o := range r.state.orders {
		if o.TrackingTicket == ticket {
			cp := *o
			cp.StatusEvents = r.eventsFor(o.ID)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memOrderRepo) eventsFor(id uuid.UUID) []models.OrderStatusEvent {
	var out []models.OrderStatusEvent
	for _, e := range r.state.events {
		if e.OrderID == id {
			out = append(out, e)
		}
	}
	return out
}

func (r *memOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]models.Order, int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []models.Order
	for _, o := range r.state.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memOrderRepo) FindAll(_ context.Context, _, _ int) ([]models.Order, int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []models.Order
	for _, o := range r.state.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *memOrderRepo) WithinTransaction(_ context.Context, fn func(tx repository.OrderTx) error) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	snap := r.state.snapshot()
	if err := fn(&memOrderTx{state: r.state}); err != nil {
		r.state.restore(snap)
		return err
	}
	return nil
}

type memOrderTx struct {
	state *memState
}

func (t *memOrderTx) LockOrder(_ context.Context, id uuid.UUID) (*models.Order, error) {
	o, ok := t.state.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (t *memOrderTx) SaveOrder(_ context.Context, order *models.Order) error {
	cp := *order
	t.state.orders[order.ID] = &cp
	return nil
}

func (t *memOrderTx) AppendStatusEvent(_ context.Context, event *models.OrderStatusEvent) error {
	t.state.events = append(t.state.events, *event)
	return nil
}

// memLoyaltyRepo implements repository.LoyaltyRepository.
type memLoyaltyRepo struct {
	state *memState
}

func (r *memLoyaltyRepo) FindAccount(_ context.Context, userID uuid.UUID) (*models.LoyaltyAccount, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	a, ok := r.state.accounts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memLoyaltyRepo) FindTransactions(_ context.Context, accountID uuid.UUID, _ int) ([]models.PointsTransaction, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []models.PointsTransaction
	for _, t := range r.state.pointsTxns {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memLoyaltyRepo) WithinTransaction(_ context.Context, fn func(tx repository.LoyaltyTx) error) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	snap := r.state.snapshot()
	if err := fn(&memLoyaltyTx{state: r.state}); err != nil {
		r.state.restore(snap)
		return err
	}
	return nil
}

type memLoyaltyTx struct {
	state *memState
}

func (t *memLoyaltyTx) LockAccount(_ context.Context, userID uuid.UUID) (*models.LoyaltyAccount, error) {
	a, ok := t.state.accounts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (t *memLoyaltyTx) UpdateBalance(_ context.Context, accountID uuid.UUID, balance int) error {
	for _, a := range t.state.accounts {
		if a.ID == accountID {
			a.Balance = balance
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (t *memLoyaltyTx) AppendTransaction(_ context.Context, txn *models.PointsTransaction) error {
	t.state.pointsTxns = append(t.state.pointsTxns, *txn)
	return nil
}

func (t *memLoyaltyTx) CreateDiscountCode(_ context.Context, code *models.DiscountCode) error {
	if _, exists := t.state.codesByStr[code.Code]; exists {
		return fmt.Errorf("duplicate code %s", code.Code)
	}
	cp := *code
	t.state.codes[code.ID] = &cp
	t.state.codesByStr[code.Code] = code.ID
	return nil
}

func (t *memLoyaltyTx) CreateReward(_ context.Context, reward *models.LoyaltyReward) error {
	cp := *reward
	t.state.rewards[reward.ID] = &cp
	return nil
}
