package services

import (
	"context"
	"sync"
	"time"

	"starbook/internal/models"
	"starbook/internal/repositories/interfaces"
	"starbook/internal/utils"
	"starbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger() *logger.Logger {
	l, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stdout"})
	return l
}

// passthroughTransactor runs fn directly; the in-memory mocks have no
// transaction semantics to join.
type passthroughTransactor struct{}

func (passthroughTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubAuditService drops every record; tests that care about audit entries
// use their own capture.
type stubAuditService struct{}

func (stubAuditService) Record(context.Context, *AuditEntry) {}
func (stubAuditService) GetLog(context.Context, primitive.ObjectID) (*models.AuditLog, error) {
	return nil, nil
}
func (stubAuditService) ListByActor(context.Context, primitive.ObjectID, *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	return nil, 0, nil
}
func (stubAuditService) ListByAction(context.Context, models.AuditAction, *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	return nil, 0, nil
}
func (stubAuditService) ListByResource(context.Context, string, *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	return nil, 0, nil
}
func (stubAuditService) GetResourceHistory(context.Context, string, string, *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	return nil, 0, nil
}
func (stubAuditService) ListByDateRange(context.Context, time.Time, time.Time, *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	return nil, 0, nil
}

type stubNotificationService struct{}

func (stubNotificationService) Notify(context.Context, primitive.ObjectID, models.NotificationType, string, string, map[string]interface{}) {
}
func (stubNotificationService) GetByUserID(context.Context, primitive.ObjectID, *utils.PaginationParams) ([]*models.Notification, int64, error) {
	return nil, 0, nil
}
func (stubNotificationService) MarkRead(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return nil
}
func (stubNotificationService) CountUnread(context.Context, primitive.ObjectID) (int64, error) {
	return 0, nil
}

// recordingNotifier captures dispatched notifications synchronously so
// tests can assert on them without racing a goroutine.
type recordingNotifier struct {
	mu    sync.Mutex
	types []models.NotificationType
}

func (n *recordingNotifier) Notify(_ context.Context, _ primitive.ObjectID, notifType models.NotificationType, _, _ string, _ map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.types = append(n.types, notifType)
}

func (n *recordingNotifier) GetByUserID(context.Context, primitive.ObjectID, *utils.PaginationParams) ([]*models.Notification, int64, error) {
	return nil, 0, nil
}

func (n *recordingNotifier) MarkRead(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return nil
}

func (n *recordingNotifier) CountUnread(context.Context, primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.types)
}

type mockUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	repo := &mockUserRepo{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		copied := *u
		repo.users[u.ID] = &copied
	}
	return repo
}

func (r *mockUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *mockUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, models.ErrAccountNotFound
}

func (r *mockUserRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *mockUserRepo) List(_ context.Context, _ *utils.PaginationParams) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (r *mockUserRepo) ApplyBalanceDelta(_ context.Context, id primitive.ObjectID, delta float64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	if user.Balance+delta < 0 {
		return nil, models.ErrInsufficientFunds
	}
	before := *user
	user.Balance += delta
	return &before, nil
}

type mockTransactionRepo struct {
	mu      sync.Mutex
	entries []*models.Transaction
}

func (r *mockTransactionRepo) Create(_ context.Context, txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.ID.IsZero() {
		txn.ID = primitive.NewObjectID()
	}
	txn.CreatedAt = time.Now()
	copied := *txn
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *mockTransactionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, txn := range r.entries {
		if txn.ID == id {
			copied := *txn
			return &copied, nil
		}
	}
	return nil, models.ErrAccountNotFound
}

func (r *mockTransactionRepo) GetByUserID(_ context.Context, userID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Transaction
	for _, txn := range r.entries {
		if txn.UserID == userID {
			copied := *txn
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockTransactionRepo) GetLatestByUserID(_ context.Context, userID primitive.ObjectID) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].UserID == userID {
			copied := *r.entries[i]
			return &copied, nil
		}
	}
	return nil, models.ErrAccountNotFound
}

func (r *mockTransactionRepo) GetByPurpose(_ context.Context, purpose models.TransactionPurpose, _ *utils.PaginationParams) ([]*models.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Transaction
	for _, txn := range r.entries {
		if txn.Purpose == purpose {
			copied := *txn
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockTransactionRepo) GetByRelated(_ context.Context, relatedModel string, relatedID primitive.ObjectID) ([]*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Transaction
	for _, txn := range r.entries {
		if txn.RelatedModel == relatedModel && txn.RelatedID != nil && *txn.RelatedID == relatedID {
			copied := *txn
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *mockTransactionRepo) GetByDateRange(_ context.Context, userID primitive.ObjectID, start, end time.Time, _ *utils.PaginationParams) ([]*models.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Transaction
	for _, txn := range r.entries {
		if txn.UserID == userID && !txn.CreatedAt.Before(start) && !txn.CreatedAt.After(end) {
			copied := *txn
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockTransactionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type mockDepositRepo struct {
	mu       sync.Mutex
	deposits map[primitive.ObjectID]*models.Deposit
}

func newMockDepositRepo() *mockDepositRepo {
	return &mockDepositRepo{deposits: make(map[primitive.ObjectID]*models.Deposit)}
}

func (r *mockDepositRepo) Create(_ context.Context, deposit *models.Deposit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if deposit.ID.IsZero() {
		deposit.ID = primitive.NewObjectID()
	}
	deposit.CreatedAt = time.Now()
	deposit.UpdatedAt = time.Now()
	copied := *deposit
	r.deposits[deposit.ID] = &copied
	return nil
}

func (r *mockDepositRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Deposit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deposit, ok := r.deposits[id]
	if !ok {
		return nil, models.ErrDepositNotFound
	}
	copied := *deposit
	return &copied, nil
}

func (r *mockDepositRepo) GetByUserID(_ context.Context, userID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Deposit, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Deposit
	for _, d := range r.deposits {
		if d.UserID == userID {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockDepositRepo) GetByStatus(_ context.Context, status models.DepositStatus, _ *utils.PaginationParams) ([]*models.Deposit, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Deposit
	for _, d := range r.deposits {
		if d.Status == status {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockDepositRepo) List(_ context.Context, _ *utils.PaginationParams) ([]*models.Deposit, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Deposit
	for _, d := range r.deposits {
		copied := *d
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *mockDepositRepo) CompletePending(_ context.Context, id, adminID primitive.ObjectID, notes string) (bool, error) {
	return r.flipPending(id, adminID, notes, models.DepositStatusCompleted)
}

func (r *mockDepositRepo) FailPending(_ context.Context, id, adminID primitive.ObjectID, notes string) (bool, error) {
	return r.flipPending(id, adminID, notes, models.DepositStatusFailed)
}

func (r *mockDepositRepo) flipPending(id, adminID primitive.ObjectID, notes string, to models.DepositStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deposit, ok := r.deposits[id]
	if !ok || deposit.Status != models.DepositStatusPending {
		return false, nil
	}
	now := time.Now()
	deposit.Status = to
	deposit.ProcessedBy = &adminID
	deposit.ProcessedAt = &now
	deposit.Notes = notes
	deposit.UpdatedAt = now
	if to == models.DepositStatusCompleted {
		deposit.CreditedAt = &now
	}
	return true, nil
}

func (r *mockDepositRepo) CountPendingByMethod(_ context.Context, methodID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, d := range r.deposits {
		if d.Status == models.DepositStatusPending && d.Payment.PaymentMethodID == methodID {
			count++
		}
	}
	return count, nil
}

type mockPaymentMethodRepo struct {
	mu            sync.Mutex
	methods       map[primitive.ObjectID]*models.PaymentMethod
	invalidations int

	// beforeUpdate, when set, runs once at the start of the next Update
	// call, letting a test interleave a concurrent mutation between a
	// service's read and its write-back.
	beforeUpdate func()
}

func newMockPaymentMethodRepo(methods ...*models.PaymentMethod) *mockPaymentMethodRepo {
	repo := &mockPaymentMethodRepo{methods: make(map[primitive.ObjectID]*models.PaymentMethod)}
	for _, m := range methods {
		copied := *m
		repo.methods[m.ID] = &copied
	}
	return repo
}

func (r *mockPaymentMethodRepo) Create(_ context.Context, method *models.PaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if method.ID.IsZero() {
		method.ID = primitive.NewObjectID()
	}
	method.CreatedAt = time.Now()
	method.UpdatedAt = time.Now()
	copied := *method
	r.methods[method.ID] = &copied
	return nil
}

func (r *mockPaymentMethodRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	method, ok := r.methods[id]
	if !ok {
		return nil, models.ErrPaymentMethodNotFound
	}
	copied := *method
	return &copied, nil
}

func (r *mockPaymentMethodRepo) Update(_ context.Context, method *models.PaymentMethod) error {
	if hook := r.beforeUpdate; hook != nil {
		r.beforeUpdate = nil
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.methods[method.ID]
	if !ok {
		return models.ErrPaymentMethodNotFound
	}
	method.UpdatedAt = time.Now()
	copied := *method
	// Update never writes the default flag; the stored value wins.
	copied.IsDefault = stored.IsDefault
	r.methods[method.ID] = &copied
	return nil
}

func (r *mockPaymentMethodRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.methods[id]; !ok {
		return models.ErrPaymentMethodNotFound
	}
	delete(r.methods, id)
	return nil
}

func (r *mockPaymentMethodRepo) List(_ context.Context, filter *interfaces.PaymentMethodFilter, _ *utils.PaginationParams) ([]*models.PaymentMethod, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PaymentMethod
	for _, m := range r.methods {
		if filter != nil && filter.Type != nil && m.Type != *filter.Type {
			continue
		}
		if filter != nil && filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *mockPaymentMethodRepo) ListActive(_ context.Context) ([]*models.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PaymentMethod
	for _, m := range r.methods {
		if m.Status {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *mockPaymentMethodRepo) ClearDefault(_ context.Context, methodType models.PaymentMethodType, excludeID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.methods {
		if m.Type == methodType && m.ID != excludeID {
			m.IsDefault = false
		}
	}
	return nil
}

func (r *mockPaymentMethodRepo) SetDefault(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	method, ok := r.methods[id]
	if !ok {
		return models.ErrPaymentMethodNotFound
	}
	method.IsDefault = true
	return nil
}

func (r *mockPaymentMethodRepo) InvalidateActiveCache(_ context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidations++
}

func (r *mockPaymentMethodRepo) defaultCount(methodType models.PaymentMethodType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, m := range r.methods {
		if m.Type == methodType && m.IsDefault {
			count++
		}
	}
	return count
}

type mockBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[primitive.ObjectID]*models.Booking)}
}

func (r *mockBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *mockBookingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *mockBookingRepo) GetByUserID(_ context.Context, userID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockBookingRepo) GetByCelebrityID(_ context.Context, celebrityID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Booking
	for _, b := range r.bookings {
		if b.CelebrityID == celebrityID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockBookingRepo) CancelConfirmed(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Status != models.BookingStatusConfirmed {
		return false, nil
	}
	now := time.Now()
	booking.Status = models.BookingStatusCancelled
	booking.CancelledAt = &now
	return true, nil
}

func (r *mockBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type mockTicketRepo struct {
	mu      sync.Mutex
	tickets map[primitive.ObjectID]*models.Ticket
}

func newMockTicketRepo() *mockTicketRepo {
	return &mockTicketRepo{tickets: make(map[primitive.ObjectID]*models.Ticket)}
}

func (r *mockTicketRepo) Create(_ context.Context, ticket *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ticket.ID.IsZero() {
		ticket.ID = primitive.NewObjectID()
	}
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *mockTicketRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	copied := *ticket
	return &copied, nil
}

func (r *mockTicketRepo) GetByUserID(_ context.Context, userID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Ticket, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Ticket
	for _, t := range r.tickets {
		if t.UserID == userID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockTicketRepo) GetByEventID(_ context.Context, eventID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Ticket, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Ticket
	for _, t := range r.tickets {
		if t.EventID == eventID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockTicketRepo) RefundActive(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok || ticket.Status != models.TicketStatusActive {
		return false, nil
	}
	now := time.Now()
	ticket.Status = models.TicketStatusRefunded
	ticket.RefundedAt = &now
	return true, nil
}

type mockMembershipRepo struct {
	mu          sync.Mutex
	memberships map[primitive.ObjectID]*models.Membership
}

func newMockMembershipRepo() *mockMembershipRepo {
	return &mockMembershipRepo{memberships: make(map[primitive.ObjectID]*models.Membership)}
}

func (r *mockMembershipRepo) Create(_ context.Context, membership *models.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if membership.ID.IsZero() {
		membership.ID = primitive.NewObjectID()
	}
	copied := *membership
	r.memberships[membership.ID] = &copied
	return nil
}

func (r *mockMembershipRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	membership, ok := r.memberships[id]
	if !ok {
		return nil, models.ErrMembershipNotFound
	}
	copied := *membership
	return &copied, nil
}

func (r *mockMembershipRepo) GetActiveByUserID(_ context.Context, userID primitive.ObjectID) (*models.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, m := range r.memberships {
		if m.UserID == userID && m.Status == models.MembershipStatusActive && m.ExpiresAt.After(now) {
			copied := *m
			return &copied, nil
		}
	}
	return nil, models.ErrMembershipNotFound
}

func (r *mockMembershipRepo) GetByUserID(_ context.Context, userID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Membership, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Membership
	for _, m := range r.memberships {
		if m.UserID == userID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockMembershipRepo) ExpireOverdue(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var expired int64
	for _, m := range r.memberships {
		if m.Status == models.MembershipStatusActive && !m.ExpiresAt.After(now) {
			m.Status = models.MembershipStatusExpired
			expired++
		}
	}
	return expired, nil
}
