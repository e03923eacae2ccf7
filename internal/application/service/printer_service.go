package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/pkg/apperror"
	"github.com/sulayman101/puntrms/pkg/printer"
	"go.uber.org/zap"
)

// PrinterService renders and prints order receipts on the till's thermal
// printer
type PrinterService struct {
	printer   printer.Printer
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	shopName  string
	width     int
	logger    *zap.SugaredLogger
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Printer,
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	shopName string,
	width int,
	logger *zap.SugaredLogger,
) *PrinterService {
	if width <= 0 {
		width = 32
	}
	return &PrinterService{
		printer:   p,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		shopName:  shopName,
		width:     width,
		logger:    logger,
	}
}

// PrinterStatus reports whether the configured printer is reachable
type PrinterStatus struct {
	Connected bool `json:"connected"`
}

// Status probes the printer connection
func (s *PrinterService) Status() *PrinterStatus {
	return &PrinterStatus{Connected: s.printer.IsConnected()}
}

// PrintOrderReceipt renders an order receipt at current menu prices and
// sends it to the printer
func (s *PrinterService) PrintOrderReceipt(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}

	prices, err := s.itemRepo.PriceMap(ctx)
	if err != nil {
		return err
	}
	price := func(itemID uuid.UUID) (decimal.Decimal, bool) {
		p, ok := prices[itemID]
		return p, ok
	}

	doc := printer.NewDocument(s.width)
	doc.SetAlign(printer.AlignCenter).
		SetFontSize(printer.FontDouble).
		Text(s.shopName).
		SetFontSize(printer.FontNormal).
		FeedLines(1).
		SetAlign(printer.AlignLeft).
		KeyValue("Order", order.Number).
		KeyValue("Waiter", order.Server.Name).
		KeyValue("Time", order.Time.Local().Format("2006-01-02 15:04")).
		Separator('-')

	for _, line := range order.Lines {
		name := line.Item.Name
		if name == "" {
			name = "(removed item)"
		}
		lineTotal := decimal.Zero
		if p, ok := price(line.ItemID); ok {
			lineTotal = p.Mul(decimal.NewFromInt(int64(line.Qty)))
		}
		doc.ItemLine(line.Qty, name, lineTotal.StringFixed(2))
	}

	doc.Separator('-').
		SetBold(true).
		KeyValue("TOTAL", order.Total(price).StringFixed(2)).
		SetBold(false).
		KeyValue("Status", string(order.Status)).
		FeedLines(3).
		Cut()

	if err := s.printer.Print(doc.Bytes()); err != nil {
		s.logger.Warnw("receipt print failed", "order", order.Number, "err", err)
		return apperror.NewAppError(503, "Printer is not available")
	}
	return nil
}

// PrintTest prints a short test slip to verify the printer setup
func (s *PrinterService) PrintTest() error {
	doc := printer.NewDocument(s.width)
	doc.SetAlign(printer.AlignCenter).
		Text(s.shopName).
		Text("printer test").
		Text(time.Now().Local().Format("2006-01-02 15:04:05")).
		FeedLines(3).
		Cut()
	return s.printer.Print(doc.Bytes())
}
