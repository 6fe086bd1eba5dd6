package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"starbook/internal/models"
	"starbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type bookingFixture struct {
	svc      BookingService
	ledger   LedgerService
	bookings *mockBookingRepo
	txns     *mockTransactionRepo
	userID   primitive.ObjectID
}

func newBookingFixture(balance float64) *bookingFixture {
	userID := primitive.NewObjectID()
	userRepo := newMockUserRepo(&models.User{ID: userID, Balance: balance, Currency: "USD"})
	txnRepo := &mockTransactionRepo{}
	bookingRepo := newMockBookingRepo()

	log := newTestLogger()
	ledger := NewLedgerService(userRepo, txnRepo, stubAuditService{}, passthroughTransactor{}, log)
	svc := NewBookingService(bookingRepo, ledger, stubAuditService{}, stubNotificationService{}, passthroughTransactor{}, log)

	return &bookingFixture{svc: svc, ledger: ledger, bookings: bookingRepo, txns: txnRepo, userID: userID}
}

func bookRequest(amount float64) *BookRequest {
	return &BookRequest{
		CelebrityID: primitive.NewObjectID(),
		EventName:   "Album launch",
		EventDate:   time.Now().AddDate(0, 1, 0),
		Amount:      amount,
	}
}

func TestBookDebitsAndRecords(t *testing.T) {
	f := newBookingFixture(500)

	booking, err := f.svc.Book(context.Background(), f.userID, bookRequest(300))
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	if booking.Status != models.BookingStatusConfirmed {
		t.Errorf("expected confirmed status, got %s", booking.Status)
	}

	balance, _ := f.ledger.GetBalance(context.Background(), f.userID)
	if balance != 200 {
		t.Errorf("expected balance 200, got %.2f", balance)
	}

	entries, err := f.ledger.GetByRelated(context.Background(), utils.RelatedModelBooking, booking.ID)
	if err != nil {
		t.Fatalf("GetByRelated returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Purpose != models.TransactionPurposeBookingPayment {
		t.Fatalf("expected one booking_payment entry, got %d", len(entries))
	}
}

func TestBookInsufficientFundsCreatesNothing(t *testing.T) {
	f := newBookingFixture(100)

	_, err := f.svc.Book(context.Background(), f.userID, bookRequest(300))
	if !errors.Is(err, models.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if f.bookings.count() != 0 {
		t.Errorf("expected no bookings after rejected payment, got %d", f.bookings.count())
	}
	if f.txns.count() != 0 {
		t.Errorf("expected no ledger entries, got %d", f.txns.count())
	}
}

func TestCancelRefundsOnce(t *testing.T) {
	f := newBookingFixture(500)
	ctx := context.Background()

	booking, err := f.svc.Book(ctx, f.userID, bookRequest(300))
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}

	cancelled, err := f.svc.Cancel(ctx, booking.ID, f.userID)
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if cancelled.Status != models.BookingStatusCancelled {
		t.Errorf("expected cancelled status, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Error("expected cancelled_at to be set")
	}

	balance, _ := f.ledger.GetBalance(ctx, f.userID)
	if balance != 500 {
		t.Errorf("expected balance restored to 500, got %.2f", balance)
	}

	// Second cancellation must not refund again.
	if _, err := f.svc.Cancel(ctx, booking.ID, f.userID); !errors.Is(err, models.ErrBookingNotActive) {
		t.Fatalf("expected ErrBookingNotActive on double cancel, got %v", err)
	}
	balance, _ = f.ledger.GetBalance(ctx, f.userID)
	if balance != 500 {
		t.Errorf("balance changed on double cancel: %.2f", balance)
	}
}

func TestCancelForeignBookingHidden(t *testing.T) {
	f := newBookingFixture(500)
	ctx := context.Background()

	booking, err := f.svc.Book(ctx, f.userID, bookRequest(100))
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}

	if _, err := f.svc.Cancel(ctx, booking.ID, primitive.NewObjectID()); !errors.Is(err, models.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound for foreign user, got %v", err)
	}
}
