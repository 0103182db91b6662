package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/receiving"
)

type receiptServiceStub struct {
	reconciled *receiving.ReceiveRequest
	standalone *receiving.StandaloneRequest
}

func (s *receiptServiceStub) Reconcile(_ context.Context, req receiving.ReceiveRequest) (*models.Receipt, error) {
	s.reconciled = &req
	return &models.Receipt{}, nil
}

func (s *receiptServiceStub) CreateStandalone(_ context.Context, req receiving.StandaloneRequest) (*models.Receipt, error) {
	s.standalone = &req
	return &models.Receipt{}, nil
}

func (s *receiptServiceStub) DeleteReceipt(context.Context, primitive.ObjectID) error {
	return nil
}

func postReceipt(t *testing.T, stub *receiptServiceStub, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/receipt", NewReceiptHandler(nil, stub, nil).Create)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/receipt", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderLinkedReceiptForwardsUnitPrice(t *testing.T) {
	stub := &receiptServiceStub{}
	orderID := primitive.NewObjectID()
	priced := primitive.NewObjectID()
	unpriced := primitive.NewObjectID()

	body := `{"orderId":"` + orderID.Hex() + `","items":[` +
		`{"itemId":"` + priced.Hex() + `","quantity":2,"unitPrice":3.5},` +
		`{"itemId":"` + unpriced.Hex() + `","quantity":1}]}`

	w := postReceipt(t, stub, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if stub.reconciled == nil || len(stub.reconciled.Items) != 2 {
		t.Fatalf("expected 2 reconciled lines, got %+v", stub.reconciled)
	}

	first := stub.reconciled.Items[0]
	if first.ItemID != priced {
		t.Errorf("item id = %s, want %s", first.ItemID.Hex(), priced.Hex())
	}
	if first.Quantity == nil || *first.Quantity != 2 {
		t.Errorf("quantity not forwarded: %+v", first.Quantity)
	}
	if first.UnitPrice == nil || *first.UnitPrice != 3.5 {
		t.Errorf("unit price not forwarded: %+v", first.UnitPrice)
	}

	// An omitted price stays nil so the order-row snapshot price applies.
	if second := stub.reconciled.Items[1]; second.UnitPrice != nil {
		t.Errorf("omitted price must stay nil, got %v", *second.UnitPrice)
	}
}

func TestCreateStandaloneReceiptDefaultsOmittedFields(t *testing.T) {
	stub := &receiptServiceStub{}
	itemID := primitive.NewObjectID()

	body := `{"items":[{"itemId":"` + itemID.Hex() + `","name":"Cups","quantity":12,"unit":"pcs"}]}`

	w := postReceipt(t, stub, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if stub.reconciled != nil {
		t.Fatal("request without orderId must not hit the reconciler")
	}
	if stub.standalone == nil || len(stub.standalone.Items) != 1 {
		t.Fatalf("expected 1 standalone line, got %+v", stub.standalone)
	}

	got := stub.standalone.Items[0]
	if got.Quantity != 12 || got.UnitPrice != 0 {
		t.Errorf("line = %+v, want quantity 12 and price defaulted to 0", got)
	}
}
