package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/kafka"
	"storefront/models"
	"storefront/providers"
	"storefront/repository"
	"storefront/sender"
)

// CheckoutConfig carries the storefront-wide commercial settings.
type CheckoutConfig struct {
	TaxRate       float64
	PointsRate    float64
	Currency      string
	MinOrderValue float64
}

// CheckoutService implements the three-phase checkout surface:
// validate and calculate are read-only previews, CreateOrder is the
// single atomic commit.
type CheckoutService struct {
	pricing   PricingService
	zones     ZoneService
	discounts DiscountService
	repo      repository.CheckoutRepository
	carts     repository.CartStore
	methods   repository.PaymentMethodRepository
	geocoder  providers.Geocoder
	gateway   providers.PaymentGateway
	renderer  providers.DocumentRenderer
	events    kafka.EventPublisher
	email     sender.EmailSender
	sms       sender.SMSSender
	cfg       CheckoutConfig
	logger    *zap.Logger
}

// NewCheckoutService wires the checkout orchestrator.
func NewCheckoutService(
	pricing PricingService,
	zones ZoneService,
	discounts DiscountService,
	repo repository.CheckoutRepository,
	carts repository.CartStore,
	methods repository.PaymentMethodRepository,
	geocoder providers.Geocoder,
	gateway providers.PaymentGateway,
	renderer providers.DocumentRenderer,
	events kafka.EventPublisher,
	email sender.EmailSender,
	sms sender.SMSSender,
	cfg CheckoutConfig,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		pricing:   pricing,
		zones:     zones,
		discounts: discounts,
		repo:      repo,
		carts:     carts,
		methods:   methods,
		geocoder:  geocoder,
		gateway:   gateway,
		renderer:  renderer,
		events:    events,
		email:     email,
		sms:       sms,
		cfg:       cfg,
		logger:    logger,
	}
}

// quote is the internal result of one full evaluation pass over a
// cart and checkout request. errors collects everything that would
// block order creation without short-circuiting, so the customer can
// fix the whole request at once.
type quote struct {
	priced         *PricedCart
	zone           *models.DeliveryZone
	discount       *DiscountOutcome
	subtotal       float64
	discountAmount float64
	deliveryFee    float64
	taxAmount      float64
	total          float64
	errors         []models.FieldError
}

// Validate answers whether the cart and request would be accepted as
// an order right now, without touching any state.
func (s *CheckoutService) Validate(ctx context.Context, cartKey string, userID *uuid.UUID, req *models.CheckoutRequest) (*models.ValidateResult, error) {
	cart, err := s.carts.Get(ctx, cartKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	q, err := s.buildQuote(ctx, cart, userID, req)
	if err != nil {
		return nil, err
	}
	return &models.ValidateResult{Valid: len(q.errors) == 0, Errors: q.errors}, nil
}

// Calculate returns the fully derived totals for the current cart and
// request, including any errors that would block creation.
func (s *CheckoutService) Calculate(ctx context.Context, cartKey string, userID *uuid.UUID, req *models.CheckoutRequest) (*models.Quote, error) {
	cart, err := s.carts.Get(ctx, cartKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	q, err := s.buildQuote(ctx, cart, userID, req)
	if err != nil {
		return nil, err
	}
	out := &models.Quote{
		Subtotal:       q.subtotal,
		DiscountAmount: q.discountAmount,
		DeliveryFee:    q.deliveryFee,
		TaxAmount:      q.taxAmount,
		Total:          q.total,
		Errors:         q.errors,
	}
	if q.priced != nil {
		for _, pl := range q.priced.Lines {
			out.Lines = append(out.Lines, models.QuoteLine{
				ItemID:       pl.ItemID,
				Name:         pl.ItemName,
				Quantity:     pl.Quantity,
				UnitPrice:    pl.UnitPrice,
				LineTotal:    pl.LineTotal,
				Availability: pl.Availability,
			})
		}
	}
	return out, nil
}

// buildQuote runs every eligibility and pricing rule against current
// state. It is read-only; CreateOrder re-runs it inside the
// transaction and then re-verifies the contended facts under row
// locks.
func (s *CheckoutService) buildQuote(ctx context.Context, cart *models.Cart, userID *uuid.UUID, req *models.CheckoutRequest) (*quote, error) {
	q := &quote{}
	if cart == nil || len(cart.Lines) == 0 {
		q.errors = append(q.errors, models.FieldError{
			Field: "cart", Code: models.RejectionCartEmpty, Message: "cart is empty",
		})
		return q, nil
	}

	priced, err := s.pricing.PriceCart(ctx, cart)
	if err != nil {
		return nil, err
	}
	q.priced = priced
	q.subtotal = priced.Subtotal

	for i, pl := range priced.Lines {
		switch pl.Availability {
		case models.LineUnavailable:
			q.errors = append(q.errors, models.FieldError{
				Field:   fmt.Sprintf("lines[%d]", i),
				Code:    models.RejectionItemUnavailable,
				Message: fmt.Sprintf("%s is no longer available", lineName(pl)),
			})
		case models.LineInsufficientStock:
			q.errors = append(q.errors, models.FieldError{
				Field:   fmt.Sprintf("lines[%d]", i),
				Code:    models.RejectionInsufficientStock,
				Message: fmt.Sprintf("only %d of %s left in stock", pl.Stock, pl.ItemName),
			})
		}
	}

	if req.OrderType == models.OrderTypeCollection && req.CollectionTime != nil && req.CollectionTime.Before(time.Now()) {
		q.errors = append(q.errors, models.FieldError{
			Field: "collection_time", Code: models.RejectionInvalidTime,
			Message: "collection time cannot be in the past",
		})
	}

	minOrder := s.cfg.MinOrderValue
	if req.OrderType == models.OrderTypeDelivery {
		if req.DeliveryAddress == "" {
			q.errors = append(q.errors, models.FieldError{
				Field: "delivery_address", Code: models.RejectionAddressOutOfRange,
				Message: "delivery address is required",
			})
		} else {
			point, err := s.geocoder.Resolve(ctx, req.DeliveryAddress)
			if err != nil {
				return nil, fmt.Errorf("failed to geocode address: %w", err)
			}
			zone, err := s.zones.Resolve(ctx, point)
			if err != nil {
				return nil, err
			}
			if zone == nil {
				q.errors = append(q.errors, models.FieldError{
					Field: "delivery_address", Code: models.RejectionAddressOutOfRange,
					Message: "address is outside our delivery area",
				})
			} else {
				q.zone = zone
				q.deliveryFee = zone.DeliveryFee
				if zone.MinOrderValue > 0 {
					minOrder = zone.MinOrderValue
				}
			}
		}
	}

	if q.subtotal < minOrder {
		q.errors = append(q.errors, models.FieldError{
			Field: "cart", Code: models.RejectionMOQNotMet,
			Message: fmt.Sprintf("minimum order value is %.2f", minOrder),
		})
	}

	if req.DiscountCode != "" {
		outcome, err := s.discounts.Validate(ctx, req.DiscountCode, userID, req.OrderType, q.subtotal)
		if err != nil {
			return nil, err
		}
		if !outcome.Accepted {
			q.errors = append(q.errors, models.FieldError{
				Field: "discount_code", Code: outcome.RejectCode, Message: outcome.Message,
			})
		} else {
			q.discount = outcome
			q.discountAmount = outcome.Amount
			if outcome.WaivesDelivery {
				q.deliveryFee = 0
			}
		}
	}

	taxable := q.subtotal - q.discountAmount + q.deliveryFee
	if taxable < 0 {
		taxable = 0
	}
	q.taxAmount = models.Round2(taxable * s.cfg.TaxRate)
	q.total = models.Round2(q.subtotal - q.discountAmount + q.deliveryFee + q.taxAmount)
	return q, nil
}

// CreateOrder commits the checkout: one database transaction covering
// order creation, stock decrement, discount usage, payment, loyalty
// accrual and invoice creation. Any failure rolls the whole thing
// back; nothing is half-created.
func (s *CheckoutService) CreateOrder(ctx context.Context, cartKey string, userID *uuid.UUID, req *models.CheckoutRequest) (*models.CreateOrderResponse, *Rejection) {
	chargeToken, rej := s.resolvePayment(ctx, userID, &req.Payment)
	if rej != nil {
		return nil, rej
	}

	cart, err := s.carts.Get(ctx, cartKey)
	if err != nil {
		s.logger.Error("failed to load cart", zap.Error(err))
		return nil, internalRejection()
	}

	var (
		resp      *models.CreateOrderResponse
		order     *models.Order
		invoiceID uuid.UUID
		lowStock  []kafka.LowStockEvent
	)
	txErr := s.repo.WithinTransaction(ctx, func(tx repository.CheckoutTx) error {
		q, err := s.buildQuote(ctx, cart, userID, req)
		if err != nil {
			return err
		}
		if len(q.errors) > 0 {
			rej = &Rejection{
				StatusCode: quoteStatus(q.errors),
				Code:       q.errors[0].Code,
				Message:    "checkout validation failed",
				Errors:     q.errors,
			}
			return rej
		}

		ticket, err := s.newTrackingTicket(ctx, tx)
		if err != nil {
			return err
		}

		points := 0
		if userID != nil && s.cfg.PointsRate > 0 {
			points = int(math.Floor(q.total * s.cfg.PointsRate))
		}

		order = s.buildOrder(userID, req, q, ticket, points)
		if err := tx.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if err := tx.AppendStatusEvent(ctx, &models.OrderStatusEvent{
			OrderID: order.ID,
			Status:  models.OrderStatusReceived,
			Actor:   "system",
			Note:    "order placed",
		}); err != nil {
			return err
		}

		low, err := s.commitStock(ctx, tx, q, order.ID)
		if err != nil {
			if r, ok := err.(*Rejection); ok {
				rej = r
			}
			return err
		}
		lowStock = low

		if q.discount != nil {
			if err := s.commitDiscount(ctx, tx, q.discount.Code.ID, userID, order.ID); err != nil {
				if r, ok := err.(*Rejection); ok {
					rej = r
				}
				return err
			}
		}

		if req.Payment.Mode != models.PaymentModeCash {
			ref := ""
			if q.total > 0 {
				result, err := s.gateway.Charge(ctx, q.total, s.cfg.Currency, chargeToken)
				if err != nil {
					s.logger.Error("payment gateway call failed", zap.Error(err))
					rej = reject(http.StatusBadGateway, models.RejectionPaymentDeclined, "payment could not be processed")
					return rej
				}
				if !result.Success {
					rej = reject(http.StatusPaymentRequired, models.RejectionPaymentDeclined,
						fmt.Sprintf("payment was declined (%s)", result.ErrorCode))
					return rej
				}
				ref = result.TransactionID
			}
			// a fully discounted order has nothing to charge and is
			// settled immediately
			if err := tx.UpdateOrderPayment(ctx, order.ID, models.PaymentStatusPaid, ref); err != nil {
				return err
			}
			order.PaymentStatus = models.PaymentStatusPaid
			order.PaymentRef = ref
		}

		if points > 0 {
			if err := s.accruePoints(ctx, tx, *userID, order.ID, points); err != nil {
				return err
			}
		}

		invoice := s.buildInvoice(order, req)
		if err := tx.CreateInvoice(ctx, invoice); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		invoiceID = invoice.ID

		resp = &models.CreateOrderResponse{
			OrderID:              order.ID,
			OrderNumber:          order.OrderNumber,
			TrackingTicket:       order.TrackingTicket,
			TrackingToken:        order.TrackingToken,
			Status:               order.Status,
			TotalAmount:          order.TotalAmount,
			LoyaltyPointsAwarded: points,
		}
		return nil
	})
	if rej != nil {
		return nil, rej
	}
	if txErr != nil {
		s.logger.Error("checkout transaction failed", zap.Error(txErr))
		return nil, internalRejection()
	}

	s.afterCommit(ctx, cartKey, order, invoiceID, resp, req, lowStock)
	return resp, nil
}

// resolvePayment enforces the payment-path rules and returns the
// charge token for card payments.
func (s *CheckoutService) resolvePayment(ctx context.Context, userID *uuid.UUID, sel *models.PaymentSelection) (string, *Rejection) {
	switch sel.Mode {
	case models.PaymentModeCash:
		return "", nil
	case models.PaymentModeCardToken:
		if sel.CardToken == "" {
			return "", reject(http.StatusBadRequest, models.RejectionInvalidPayment, "card token is required")
		}
		return sel.CardToken, nil
	case models.PaymentModeSavedMethod:
		if userID == nil {
			return "", reject(http.StatusBadRequest, models.RejectionInvalidPayment, "guests cannot use saved payment methods")
		}
		if sel.SavedMethodID == nil {
			return "", reject(http.StatusBadRequest, models.RejectionInvalidPayment, "saved payment method id is required")
		}
		method, err := s.methods.FindByID(ctx, *sel.SavedMethodID)
		if err != nil || method.UserID != *userID {
			return "", reject(http.StatusBadRequest, models.RejectionInvalidPayment, "saved payment method not found")
		}
		return method.Token, nil
	default:
		return "", reject(http.StatusBadRequest, models.RejectionInvalidPayment, "unknown payment mode")
	}
}

// commitStock locks each tracked item, re-checks availability against
// current state, decrements and writes the ledger. Returns low-stock
// events to publish after commit.
func (s *CheckoutService) commitStock(ctx context.Context, tx repository.CheckoutTx, q *quote, orderID uuid.UUID) ([]kafka.LowStockEvent, error) {
	var low []kafka.LowStockEvent
	for _, pl := range q.priced.Lines {
		if !pl.TrackStock {
			continue
		}
		item, err := tx.LockMenuItem(ctx, pl.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to lock item %s: %w", pl.ItemID, err)
		}
		if !item.Active {
			return nil, reject(http.StatusConflict, models.RejectionItemUnavailable,
				fmt.Sprintf("%s is no longer available", item.Name))
		}
		if item.Stock < pl.Quantity {
			return nil, reject(http.StatusConflict, models.RejectionStockChanged,
				fmt.Sprintf("%s sold out while you were checking out", item.Name))
		}
		newStock := item.Stock - pl.Quantity
		if err := tx.UpdateItemStock(ctx, item.ID, newStock); err != nil {
			return nil, err
		}
		if err := tx.AppendStockLedger(ctx, &models.StockLedgerEntry{
			ItemID:        item.ID,
			OrderID:       &orderID,
			Type:          models.StockLedgerSale,
			Delta:         -pl.Quantity,
			PreviousStock: item.Stock,
			NewStock:      newStock,
		}); err != nil {
			return nil, err
		}
		if item.Stock > item.LowStockThreshold && newStock <= item.LowStockThreshold {
			low = append(low, kafka.LowStockEvent{
				EventType: "stock.low",
				ItemID:    item.ID.String(),
				ItemName:  item.Name,
				Stock:     newStock,
				Threshold: item.LowStockThreshold,
				Timestamp: time.Now(),
			})
		}
	}
	return low, nil
}

// commitDiscount re-verifies the code under its row lock and records
// the usage. The earlier read-only validation may have raced another
// checkout; this check is the authoritative one.
func (s *CheckoutService) commitDiscount(ctx context.Context, tx repository.CheckoutTx, codeID uuid.UUID, userID *uuid.UUID, orderID uuid.UUID) error {
	dc, err := tx.LockDiscountCode(ctx, codeID)
	if err != nil {
		return fmt.Errorf("failed to lock discount code: %w", err)
	}
	if dc.Status != models.DiscountStatusActive {
		return reject(http.StatusConflict, models.RejectionInvalidCode, "discount code is no longer active")
	}
	now := time.Now()
	if dc.ValidUntil != nil && now.After(*dc.ValidUntil) {
		return reject(http.StatusConflict, models.RejectionExpiredCode, "discount code has expired")
	}
	if dc.TotalUsageLimit > 0 && dc.TotalUsedCount >= dc.TotalUsageLimit {
		return reject(http.StatusConflict, models.RejectionUsageLimitReached, "discount code usage limit reached")
	}
	if userID != nil && dc.PerCustomerUsageLimit > 0 {
		used, err := tx.CountDiscountUsageByUser(ctx, dc.ID, *userID)
		if err != nil {
			return err
		}
		if used >= int64(dc.PerCustomerUsageLimit) {
			return reject(http.StatusConflict, models.RejectionCustomerLimitReached, "you have already used this discount code")
		}
	}
	if err := tx.IncrementDiscountUsage(ctx, dc.ID); err != nil {
		return err
	}
	if userID != nil {
		if err := tx.CreateDiscountUsage(ctx, &models.DiscountUsage{
			DiscountCodeID: dc.ID,
			UserID:         *userID,
			OrderID:        orderID,
		}); err != nil {
			return err
		}
	}
	if dc.RewardID != nil {
		if err := tx.ConsumeReward(ctx, *dc.RewardID); err != nil {
			return err
		}
	}
	return nil
}

func (s *CheckoutService) accruePoints(ctx context.Context, tx repository.CheckoutTx, userID, orderID uuid.UUID, points int) error {
	account, err := tx.LockLoyaltyAccount(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to lock loyalty account: %w", err)
	}
	newBalance := account.Balance + points
	if err := tx.UpdateLoyaltyBalance(ctx, account.ID, newBalance); err != nil {
		return err
	}
	return tx.AppendPointsTransaction(ctx, &models.PointsTransaction{
		AccountID:      account.ID,
		OrderID:        &orderID,
		Type:           models.PointsEarned,
		Points:         points,
		RunningBalance: newBalance,
	})
}

func (s *CheckoutService) buildOrder(userID *uuid.UUID, req *models.CheckoutRequest, q *quote, ticket string, points int) *models.Order {
	order := &models.Order{
		ID:             uuid.New(),
		OrderNumber:    newOrderNumber(),
		TrackingTicket: ticket,
		TrackingToken:  newTrackingToken(),
		UserID:         userID,
		Type:           req.OrderType,
		Status:         models.OrderStatusReceived,

		CustomerName:  req.Contact.Name,
		CustomerEmail: req.Contact.Email,
		CustomerPhone: req.Contact.Phone,

		DeliveryAddress: req.DeliveryAddress,

		Subtotal:       q.subtotal,
		DiscountAmount: q.discountAmount,
		DeliveryFee:    q.deliveryFee,
		TaxAmount:      q.taxAmount,
		TotalAmount:    q.total,

		PaymentStatus: models.PaymentStatusPending,
		PaymentMode:   req.Payment.Mode,

		LoyaltyPointsAwarded: points,
	}
	if req.OrderType == models.OrderTypeCollection {
		order.CollectionTime = req.CollectionTime
	}
	if q.zone != nil {
		order.ZoneID = &q.zone.ID
	}
	if q.discount != nil {
		order.DiscountCodeID = &q.discount.Code.ID
	}
	for _, pl := range q.priced.Lines {
		order.Lines = append(order.Lines, models.OrderLine{
			OrderID:    order.ID,
			ItemID:     pl.ItemID,
			ItemName:   pl.ItemName,
			Quantity:   pl.Quantity,
			UnitPrice:  pl.UnitPrice,
			LineTotal:  pl.LineTotal,
			Selections: pl.Selections,
		})
	}
	return order
}

func (s *CheckoutService) buildInvoice(order *models.Order, req *models.CheckoutRequest) *models.Invoice {
	inv := &models.Invoice{
		ID:             uuid.New(),
		InvoiceNumber:  "INV-" + order.OrderNumber,
		OrderID:        &order.ID,
		CustomerName:   req.Contact.Name,
		CustomerEmail:  req.Contact.Email,
		Subtotal:       order.Subtotal,
		DiscountAmount: order.DiscountAmount,
		DeliveryFee:    order.DeliveryFee,
		TaxAmount:      order.TaxAmount,
		TotalAmount:    order.TotalAmount,
		Currency:       s.cfg.Currency,
	}
	for _, line := range order.Lines {
		inv.Lines = append(inv.Lines, models.InvoiceLine{
			InvoiceID:   inv.ID,
			Description: line.ItemName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		})
	}
	return inv
}

// afterCommit runs the non-transactional follow-ups. Failures here are
// logged, never surfaced: the order is already committed.
func (s *CheckoutService) afterCommit(ctx context.Context, cartKey string, order *models.Order, invoiceID uuid.UUID, resp *models.CreateOrderResponse, req *models.CheckoutRequest, lowStock []kafka.LowStockEvent) {
	if url, err := s.renderer.RenderInvoice(ctx, invoiceID); err != nil {
		s.logger.Warn("invoice render failed", zap.String("order_id", order.ID.String()), zap.Error(err))
	} else {
		if err := s.repo.SetInvoiceDocument(ctx, order.ID, invoiceID, url); err != nil {
			s.logger.Warn("failed to store invoice url", zap.Error(err))
		}
		resp.InvoiceURL = url
	}

	if err := s.carts.Delete(ctx, cartKey); err != nil {
		s.logger.Warn("failed to clear cart", zap.String("cart_key", cartKey), zap.Error(err))
	}

	if err := s.events.PublishOrderCreated(ctx, kafka.OrderCreatedEvent{
		EventType:   "order.created",
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		OrderType:   string(order.Type),
		TotalAmount: order.TotalAmount,
		Timestamp:   time.Now(),
	}); err != nil {
		s.logger.Error("failed to publish order.created", zap.Error(err))
	}
	for _, evt := range lowStock {
		if err := s.events.PublishLowStock(ctx, evt); err != nil {
			s.logger.Error("failed to publish stock.low", zap.Error(err))
		}
	}

	go s.notify(order, req)
}

func (s *CheckoutService) notify(order *models.Order, req *models.CheckoutRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if req.Contact.Email != "" {
		body := fmt.Sprintf("<p>Thanks %s! Your order %s has been received. Track it with ticket <b>%s</b>.</p>",
			req.Contact.Name, order.OrderNumber, order.TrackingTicket)
		if _, err := s.email.SendEmail(ctx, req.Contact.Email, "Order confirmation "+order.OrderNumber, body); err != nil {
			s.logger.Warn("confirmation email failed", zap.Error(err))
		}
	}
	if req.Contact.Phone != "" {
		msg := fmt.Sprintf("Order %s received. Tracking ticket: %s", order.OrderNumber, order.TrackingTicket)
		if _, err := s.sms.SendSMS(ctx, req.Contact.Phone, msg); err != nil {
			s.logger.Warn("confirmation sms failed", zap.Error(err))
		}
	}
}

// newTrackingTicket draws short tickets until one is free. The
// alphabet skips easily confused characters.
func (s *CheckoutService) newTrackingTicket(ctx context.Context, tx repository.CheckoutTx) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	for attempt := 0; attempt < 5; attempt++ {
		buf := make([]byte, 8)
		for i := range buf {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
			if err != nil {
				return "", err
			}
			buf[i] = alphabet[n.Int64()]
		}
		ticket := string(buf)
		exists, err := tx.TicketExists(ctx, ticket)
		if err != nil {
			return "", err
		}
		if !exists {
			return ticket, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique tracking ticket")
}

func newOrderNumber() string {
	return "ORD-" + time.Now().Format("20060102-150405") + "-" + uuid.NewString()[:4]
}

func newTrackingToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}

func lineName(pl PricedLine) string {
	if pl.ItemName != "" {
		return pl.ItemName
	}
	return "an item in your cart"
}

func quoteStatus(errs []models.FieldError) int {
	for _, e := range errs {
		if e.Code == models.RejectionStockChanged || e.Code == models.RejectionInsufficientStock ||
			e.Code == models.RejectionItemUnavailable {
			return http.StatusConflict
		}
	}
	return http.StatusBadRequest
}

func internalRejection() *Rejection {
	return &Rejection{StatusCode: http.StatusInternalServerError, Code: "INTERNAL_ERROR", Message: "checkout failed"}
}
