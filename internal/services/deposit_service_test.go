package services

import (
	"context"
	"errors"
	"testing"

	"starbook/internal/models"
	"starbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type depositFixture struct {
	svc      DepositService
	ledger   LedgerService
	deposits *mockDepositRepo
	txns     *mockTransactionRepo
	userID   primitive.ObjectID
	adminID  primitive.ObjectID
	methodID primitive.ObjectID
	methods  *mockPaymentMethodRepo
}

func newDepositFixture(t *testing.T, balance float64, methodActive bool) *depositFixture {
	t.Helper()

	userID := primitive.NewObjectID()
	methodID := primitive.NewObjectID()

	userRepo := newMockUserRepo(&models.User{
		ID:       userID,
		Balance:  balance,
		Currency: "USD",
		UserType: models.UserTypeFan,
	})
	txnRepo := &mockTransactionRepo{}
	depositRepo := newMockDepositRepo()
	methodRepo := newMockPaymentMethodRepo(&models.PaymentMethod{
		ID:     methodID,
		Type:   models.PaymentMethodTypeBank,
		Label:  "Main bank",
		Status: methodActive,
		Bank: &models.BankAccountDetails{
			BankName:      "First National",
			AccountName:   "Starbook Inc",
			AccountNumber: "12345678",
		},
	})

	log := newTestLogger()
	ledger := NewLedgerService(userRepo, txnRepo, stubAuditService{}, passthroughTransactor{}, log)
	svc := NewDepositService(depositRepo, methodRepo, ledger, stubAuditService{}, stubNotificationService{}, passthroughTransactor{}, log)

	return &depositFixture{
		svc:      svc,
		ledger:   ledger,
		deposits: depositRepo,
		txns:     txnRepo,
		userID:   userID,
		adminID:  primitive.NewObjectID(),
		methodID: methodID,
		methods:  methodRepo,
	}
}

func TestCreateDepositSnapshotsMethod(t *testing.T) {
	f := newDepositFixture(t, 0, true)

	deposit, err := f.svc.Create(context.Background(), f.userID, &CreateDepositRequest{
		Amount:          250,
		PaymentMethodID: f.methodID,
		ProofOfPayment:  "receipt-001.png",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if deposit.Status != models.DepositStatusPending {
		t.Errorf("expected pending status, got %s", deposit.Status)
	}
	if deposit.Payment.PaymentMethodID != f.methodID {
		t.Errorf("snapshot method ID mismatch")
	}
	if deposit.Payment.MethodLabel != "Main bank" {
		t.Errorf("expected snapshot label 'Main bank', got %q", deposit.Payment.MethodLabel)
	}
	if deposit.Payment.MethodDetails == nil {
		t.Errorf("expected snapshot details to be captured")
	}

	// Edits to the method after submission must not leak into the deposit.
	method, _ := f.methods.GetByID(context.Background(), f.methodID)
	method.Label = "Renamed bank"
	if err := f.methods.Update(context.Background(), method); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	stored, _ := f.deposits.GetByID(context.Background(), deposit.ID)
	if stored.Payment.MethodLabel != "Main bank" {
		t.Errorf("deposit snapshot changed after method edit: %q", stored.Payment.MethodLabel)
	}
}

func TestCreateDepositInactiveMethodRejected(t *testing.T) {
	f := newDepositFixture(t, 0, false)

	_, err := f.svc.Create(context.Background(), f.userID, &CreateDepositRequest{
		Amount:          100,
		PaymentMethodID: f.methodID,
		ProofOfPayment:  "receipt.png",
	})
	if !errors.Is(err, models.ErrPaymentMethodInactive) {
		t.Fatalf("expected ErrPaymentMethodInactive, got %v", err)
	}
}

func TestCreateDepositAmountBounds(t *testing.T) {
	f := newDepositFixture(t, 0, true)

	for _, amount := range []float64{0, utils.MinDepositAmount - 0.5, utils.MaxDepositAmount + 1} {
		_, err := f.svc.Create(context.Background(), f.userID, &CreateDepositRequest{
			Amount:          amount,
			PaymentMethodID: f.methodID,
			ProofOfPayment:  "receipt.png",
		})
		if !errors.Is(err, models.ErrInvalidAmount) {
			t.Errorf("Create(%v): expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestApproveCreditsExactlyOnce(t *testing.T) {
	f := newDepositFixture(t, 100, true)

	deposit, err := f.svc.Create(context.Background(), f.userID, &CreateDepositRequest{
		Amount:          500,
		PaymentMethodID: f.methodID,
		ProofOfPayment:  "receipt.png",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	approved, err := f.svc.Approve(context.Background(), deposit.ID, f.adminID, "verified")
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if approved.Status != models.DepositStatusCompleted {
		t.Errorf("expected completed status, got %s", approved.Status)
	}
	if approved.CreditedAt == nil || approved.ProcessedBy == nil || *approved.ProcessedBy != f.adminID {
		t.Errorf("expected credited_at and processed_by to be set")
	}

	balance, _ := f.ledger.GetBalance(context.Background(), f.userID)
	if balance != 600 {
		t.Errorf("expected balance 600 after approval, got %.2f", balance)
	}

	entries, err := f.ledger.GetByRelated(context.Background(), utils.RelatedModelDeposit, deposit.ID)
	if err != nil {
		t.Fatalf("GetByRelated returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 ledger entry for the deposit, got %d", len(entries))
	}
	if entries[0].Purpose != models.TransactionPurposeTopUp {
		t.Errorf("expected top_up purpose, got %s", entries[0].Purpose)
	}
	if entries[0].Currency != deposit.Currency {
		t.Errorf("ledger entry currency %q disagrees with deposit currency %q", entries[0].Currency, deposit.Currency)
	}

	// A second approval must not credit again.
	_, err = f.svc.Approve(context.Background(), deposit.ID, f.adminID, "again")
	if !errors.Is(err, models.ErrDepositNotPending) {
		t.Fatalf("expected ErrDepositNotPending on re-approval, got %v", err)
	}

	balance, _ = f.ledger.GetBalance(context.Background(), f.userID)
	if balance != 600 {
		t.Errorf("balance changed on re-approval: %.2f", balance)
	}
	if f.txns.count() != 1 {
		t.Errorf("expected 1 ledger entry, got %d", f.txns.count())
	}
}

func TestRejectDoesNotCredit(t *testing.T) {
	f := newDepositFixture(t, 100, true)

	deposit, err := f.svc.Create(context.Background(), f.userID, &CreateDepositRequest{
		Amount:          500,
		PaymentMethodID: f.methodID,
		ProofOfPayment:  "receipt.png",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	rejected, err := f.svc.Reject(context.Background(), deposit.ID, f.adminID, "proof unreadable")
	if err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if rejected.Status != models.DepositStatusFailed {
		t.Errorf("expected failed status, got %s", rejected.Status)
	}
	if rejected.CreditedAt != nil {
		t.Errorf("rejected deposit must not carry credited_at")
	}

	balance, _ := f.ledger.GetBalance(context.Background(), f.userID)
	if balance != 100 {
		t.Errorf("expected balance unchanged at 100, got %.2f", balance)
	}
	if f.txns.count() != 0 {
		t.Errorf("expected no ledger entries after rejection, got %d", f.txns.count())
	}

	// Terminal states are immutable in both directions.
	if _, err := f.svc.Approve(context.Background(), deposit.ID, f.adminID, "oops"); !errors.Is(err, models.ErrDepositNotPending) {
		t.Errorf("expected ErrDepositNotPending approving a failed deposit, got %v", err)
	}
	if _, err := f.svc.Reject(context.Background(), deposit.ID, f.adminID, "again"); !errors.Is(err, models.ErrDepositNotPending) {
		t.Errorf("expected ErrDepositNotPending re-rejecting, got %v", err)
	}
}

func TestApproveUnknownDeposit(t *testing.T) {
	f := newDepositFixture(t, 0, true)

	_, err := f.svc.Approve(context.Background(), primitive.NewObjectID(), f.adminID, "")
	if !errors.Is(err, models.ErrDepositNotFound) {
		t.Fatalf("expected ErrDepositNotFound, got %v", err)
	}
}

func TestGetUserDepositHidesOthers(t *testing.T) {
	f := newDepositFixture(t, 0, true)

	deposit, err := f.svc.Create(context.Background(), f.userID, &CreateDepositRequest{
		Amount:          50,
		PaymentMethodID: f.methodID,
		ProofOfPayment:  "receipt.png",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := f.svc.GetUserDeposit(context.Background(), deposit.ID, primitive.NewObjectID()); !errors.Is(err, models.ErrDepositNotFound) {
		t.Errorf("expected ErrDepositNotFound for foreign user, got %v", err)
	}

	got, err := f.svc.GetUserDeposit(context.Background(), deposit.ID, f.userID)
	if err != nil {
		t.Fatalf("GetUserDeposit returned error: %v", err)
	}
	if got.ID != deposit.ID {
		t.Errorf("wrong deposit returned")
	}
}
