package services

import (
	"context"
	"errors"
	"testing"

	"starbook/internal/models"
	"starbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTicketFixture(balance float64) (TicketService, LedgerService, primitive.ObjectID) {
	userID := primitive.NewObjectID()
	userRepo := newMockUserRepo(&models.User{ID: userID, Balance: balance, Currency: "USD"})
	txnRepo := &mockTransactionRepo{}
	ticketRepo := newMockTicketRepo()

	log := newTestLogger()
	ledger := NewLedgerService(userRepo, txnRepo, stubAuditService{}, passthroughTransactor{}, log)
	svc := NewTicketService(ticketRepo, ledger, stubAuditService{}, stubNotificationService{}, passthroughTransactor{}, log)
	return svc, ledger, userID
}

func TestBuyComputesTotalAndDebits(t *testing.T) {
	svc, ledger, userID := newTicketFixture(200)

	ticket, err := svc.Buy(context.Background(), userID, &BuyTicketRequest{
		EventID:   primitive.NewObjectID(),
		EventName: "Summer gala",
		Quantity:  3,
		UnitPrice: 25,
	})
	if err != nil {
		t.Fatalf("Buy returned error: %v", err)
	}

	if ticket.Total != 75 {
		t.Errorf("expected total 75, got %.2f", ticket.Total)
	}
	if ticket.Status != models.TicketStatusActive {
		t.Errorf("expected active status, got %s", ticket.Status)
	}

	balance, _ := ledger.GetBalance(context.Background(), userID)
	if balance != 125 {
		t.Errorf("expected balance 125, got %.2f", balance)
	}

	entries, _ := ledger.GetByRelated(context.Background(), utils.RelatedModelTicket, ticket.ID)
	if len(entries) != 1 || entries[0].Purpose != models.TransactionPurposeTicketPurchase {
		t.Fatalf("expected one ticket_purchase entry, got %d", len(entries))
	}
}

func TestBuyQuantityLimits(t *testing.T) {
	svc, _, userID := newTicketFixture(10000)

	for _, quantity := range []int{0, -1, utils.MaxTicketsPerBuy + 1} {
		_, err := svc.Buy(context.Background(), userID, &BuyTicketRequest{
			EventID:   primitive.NewObjectID(),
			EventName: "Summer gala",
			Quantity:  quantity,
			UnitPrice: 25,
		})
		if !errors.Is(err, models.ErrInvalidAmount) {
			t.Errorf("Buy(quantity=%d): expected ErrInvalidAmount, got %v", quantity, err)
		}
	}
}

func TestRefundRestoresFullTotal(t *testing.T) {
	svc, ledger, userID := newTicketFixture(200)
	ctx := context.Background()

	ticket, err := svc.Buy(ctx, userID, &BuyTicketRequest{
		EventID:   primitive.NewObjectID(),
		EventName: "Summer gala",
		Quantity:  2,
		UnitPrice: 40,
	})
	if err != nil {
		t.Fatalf("Buy returned error: %v", err)
	}

	refunded, err := svc.Refund(ctx, ticket.ID, userID)
	if err != nil {
		t.Fatalf("Refund returned error: %v", err)
	}
	if refunded.Status != models.TicketStatusRefunded {
		t.Errorf("expected refunded status, got %s", refunded.Status)
	}

	balance, _ := ledger.GetBalance(ctx, userID)
	if balance != 200 {
		t.Errorf("expected balance restored to 200, got %.2f", balance)
	}

	// Double refund is a conflict, not a second credit.
	if _, err := svc.Refund(ctx, ticket.ID, userID); !errors.Is(err, models.ErrTicketNotActive) {
		t.Fatalf("expected ErrTicketNotActive, got %v", err)
	}
	balance, _ = ledger.GetBalance(ctx, userID)
	if balance != 200 {
		t.Errorf("balance changed on double refund: %.2f", balance)
	}
}
