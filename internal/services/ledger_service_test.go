package services

import (
	"context"
	"errors"
	"testing"

	"starbook/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newLedgerFixture(balance float64) (LedgerService, *mockUserRepo, *mockTransactionRepo, primitive.ObjectID) {
	userID := primitive.NewObjectID()
	userRepo := newMockUserRepo(&models.User{
		ID:       userID,
		Email:    "fan@example.com",
		UserType: models.UserTypeFan,
		Balance:  balance,
		Currency: "USD",
	})
	txnRepo := &mockTransactionRepo{}
	svc := NewLedgerService(userRepo, txnRepo, stubAuditService{}, passthroughTransactor{}, newTestLogger())
	return svc, userRepo, txnRepo, userID
}

func TestCreditRecordsEntryAndMovesBalance(t *testing.T) {
	svc, userRepo, _, userID := newLedgerFixture(100)

	txn, err := svc.Credit(context.Background(), userID, 50, models.TransactionPurposeTopUp, &LedgerEntryParams{Description: "top up"})
	if err != nil {
		t.Fatalf("Credit returned error: %v", err)
	}

	if txn.Type != models.TransactionTypeCredit {
		t.Errorf("expected credit type, got %s", txn.Type)
	}
	if txn.BalanceBefore != 100 || txn.BalanceAfter != 150 {
		t.Errorf("expected balance 100 -> 150, got %.2f -> %.2f", txn.BalanceBefore, txn.BalanceAfter)
	}

	balance, err := svc.GetBalance(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetBalance returned error: %v", err)
	}
	if balance != 150 {
		t.Errorf("expected balance 150, got %.2f", balance)
	}

	user, _ := userRepo.GetByID(context.Background(), userID)
	if user.Balance != txn.BalanceAfter {
		t.Errorf("stored balance %.2f does not match entry balance_after %.2f", user.Balance, txn.BalanceAfter)
	}
}

func TestDebitInsufficientFundsLeavesNoTrace(t *testing.T) {
	svc, _, txnRepo, userID := newLedgerFixture(100)

	_, err := svc.Debit(context.Background(), userID, 150, models.TransactionPurposeBookingPayment, nil)
	if !errors.Is(err, models.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if txnRepo.count() != 0 {
		t.Errorf("expected no ledger entries after rejected debit, found %d", txnRepo.count())
	}

	balance, _ := svc.GetBalance(context.Background(), userID)
	if balance != 100 {
		t.Errorf("expected balance unchanged at 100, got %.2f", balance)
	}
}

func TestDebitToExactlyZeroSucceeds(t *testing.T) {
	svc, _, _, userID := newLedgerFixture(100)

	txn, err := svc.Debit(context.Background(), userID, 100, models.TransactionPurposeTicketPurchase, nil)
	if err != nil {
		t.Fatalf("Debit returned error: %v", err)
	}
	if txn.BalanceAfter != 0 {
		t.Errorf("expected balance_after 0, got %.2f", txn.BalanceAfter)
	}
}

func TestRejectsNonPositiveAmounts(t *testing.T) {
	svc, _, txnRepo, userID := newLedgerFixture(100)

	for _, amount := range []float64{0, -10} {
		if _, err := svc.Credit(context.Background(), userID, amount, models.TransactionPurposeTopUp, nil); !errors.Is(err, models.ErrInvalidAmount) {
			t.Errorf("Credit(%v): expected ErrInvalidAmount, got %v", amount, err)
		}
		if _, err := svc.Debit(context.Background(), userID, amount, models.TransactionPurposeTopUp, nil); !errors.Is(err, models.ErrInvalidAmount) {
			t.Errorf("Debit(%v): expected ErrInvalidAmount, got %v", amount, err)
		}
	}

	if txnRepo.count() != 0 {
		t.Errorf("expected no entries, found %d", txnRepo.count())
	}
}

func TestRejectsUnknownPurpose(t *testing.T) {
	svc, _, _, userID := newLedgerFixture(100)

	_, err := svc.Credit(context.Background(), userID, 10, models.TransactionPurpose("lottery_win"), nil)
	if !errors.Is(err, models.ErrInvalidPurpose) {
		t.Fatalf("expected ErrInvalidPurpose, got %v", err)
	}
}

func TestUnknownAccount(t *testing.T) {
	svc, _, _, _ := newLedgerFixture(100)

	_, err := svc.Credit(context.Background(), primitive.NewObjectID(), 10, models.TransactionPurposeTopUp, nil)
	if !errors.Is(err, models.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAdjustSignDrivesDirection(t *testing.T) {
	svc, _, _, userID := newLedgerFixture(100)
	adminID := primitive.NewObjectID()

	credit, err := svc.Adjust(context.Background(), adminID, userID, 25, "goodwill credit")
	if err != nil {
		t.Fatalf("Adjust(+25) returned error: %v", err)
	}
	if credit.Type != models.TransactionTypeCredit || credit.Purpose != models.TransactionPurposeAdjustment {
		t.Errorf("expected credit adjustment, got type=%s purpose=%s", credit.Type, credit.Purpose)
	}
	if credit.Amount != 25 {
		t.Errorf("expected amount 25, got %.2f", credit.Amount)
	}

	debit, err := svc.Adjust(context.Background(), adminID, userID, -40, "chargeback")
	if err != nil {
		t.Fatalf("Adjust(-40) returned error: %v", err)
	}
	if debit.Type != models.TransactionTypeDebit {
		t.Errorf("expected debit adjustment, got %s", debit.Type)
	}
	if debit.Amount != 40 {
		t.Errorf("expected stored amount 40, got %.2f", debit.Amount)
	}

	balance, _ := svc.GetBalance(context.Background(), userID)
	if balance != 85 {
		t.Errorf("expected balance 85, got %.2f", balance)
	}
}

func TestAdjustZeroRejected(t *testing.T) {
	svc, _, _, userID := newLedgerFixture(100)

	_, err := svc.Adjust(context.Background(), primitive.NewObjectID(), userID, 0, "noop")
	if !errors.Is(err, models.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestStatementContainsBothDirections(t *testing.T) {
	svc, _, _, userID := newLedgerFixture(100)

	if _, err := svc.Credit(context.Background(), userID, 50, models.TransactionPurposeTopUp, nil); err != nil {
		t.Fatalf("Credit returned error: %v", err)
	}
	if _, err := svc.Debit(context.Background(), userID, 30, models.TransactionPurposeTicketPurchase, nil); err != nil {
		t.Fatalf("Debit returned error: %v", err)
	}

	entries, total, err := svc.GetStatement(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("GetStatement returned error: %v", err)
	}
	if total != 2 || len(entries) != 2 {
		t.Fatalf("expected 2 entries, got total=%d len=%d", total, len(entries))
	}
}
