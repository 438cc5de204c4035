package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/config"
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/signature"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var defaultPriceTolerance = decimal.RequireFromString("0.01")

// CaptureService records purchases confirmed by the client-side checkout.
type CaptureService struct {
	purchaseRepo application.PurchaseRepository
	listingRepo  application.ListingRepository
	gatewayCfg   config.GatewayConfig
	tolerance    decimal.Decimal
	logger       *slog.Logger
}

func NewCaptureService(
	purchaseRepo application.PurchaseRepository,
	listingRepo application.ListingRepository,
	gatewayCfg config.GatewayConfig,
	captureCfg config.CaptureConfig,
	logger *slog.Logger,
) *CaptureService {
	tolerance, err := decimal.NewFromString(captureCfg.PriceTolerance)
	if err != nil || tolerance.IsNegative() {
		logger.Warn("invalid price tolerance, using default",
			"value", captureCfg.PriceTolerance,
			"default", defaultPriceTolerance.String())
		tolerance = defaultPriceTolerance
	}

	return &CaptureService{
		purchaseRepo: purchaseRepo,
		listingRepo:  listingRepo,
		gatewayCfg:   gatewayCfg,
		tolerance:    tolerance,
		logger:       logger,
	}
}

// Capture verifies the gateway's order confirmation and writes the purchase.
// Replaying the same gateway ids returns the row written the first time.
func (s *CaptureService) Capture(ctx context.Context, cmd CaptureCommand) (*domain.Purchase, error) {
	if s.gatewayCfg.KeySecret == "" {
		return nil, application.NewConfigurationMissingError("gateway key secret")
	}

	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	currency := cmd.Currency
	if currency == "" {
		currency = s.gatewayCfg.DefaultCurrency
	}
	amount, err := domain.NewMoney(cmd.Amount, currency)
	if err != nil {
		return nil, application.NewInvalidInputError(err)
	}
	// the ledger column holds whole minor units and would round anything finer
	if _, err := amount.MinorUnits(); err != nil {
		return nil, application.NewInvalidInputError(err)
	}

	payload := signature.OrderPayload(cmd.GatewayOrderID, cmd.GatewayPaymentID)
	if !signature.Verify(payload, cmd.Signature, s.gatewayCfg.KeySecret) {
		s.logger.Warn("capture signature mismatch",
			"gateway_order_id", cmd.GatewayOrderID,
			"gateway_payment_id", cmd.GatewayPaymentID)
		return nil, application.NewInvalidSignatureError()
	}

	listing, err := s.listingRepo.FindByID(ctx, cmd.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, application.NewNotFoundError("Service", err)
		}
		return nil, application.NewInternalError(err)
	}

	if !amount.WithinTolerance(listing.Price, s.tolerance) {
		s.logger.Warn("capture amount does not match listed price",
			"service_id", listing.ID,
			"listed", listing.Price.String(),
			"submitted", amount.String())
		return nil, application.NewAmountMismatchError(domain.NewAmountMismatchError(listing.Price, amount))
	}

	purchase, err := domain.NewCapturedPurchase(
		uuid.New().String(),
		cmd.CustomerID,
		cmd.ServiceID,
		amount,
		cmd.GatewayOrderID,
		cmd.GatewayPaymentID,
	)
	if err != nil {
		return nil, application.NewInvalidInputError(err)
	}

	created, err := s.purchaseRepo.Create(ctx, purchase)
	if err != nil {
		return nil, application.NewLedgerWriteFailedError(err)
	}
	if created {
		s.logger.Info("purchase recorded",
			"purchase_id", purchase.ID,
			"service_id", purchase.ServiceID,
			"amount", amount.String())
		return purchase, nil
	}

	existing, err := s.purchaseRepo.FindByGatewayIDs(ctx, cmd.GatewayOrderID, cmd.GatewayPaymentID)
	if err != nil {
		return nil, application.NewLedgerWriteFailedError(err)
	}
	if existing.CustomerID != cmd.CustomerID || existing.ServiceID != cmd.ServiceID {
		return nil, application.NewIdempotencyMismatchError()
	}

	s.logger.Info("capture replayed", "purchase_id", existing.ID)
	return existing, nil
}
