package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/entradalive/ticketing/internal/models"
	"github.com/entradalive/ticketing/internal/monitoring"
	"github.com/entradalive/ticketing/internal/repository"
	"github.com/entradalive/ticketing/pkg/rabbitmq"
	"gorm.io/gorm"
)

var ErrTicketNotFound = errors.New("ticket not found")

// Scan classifications. Only ScanValidated mutates the ticket.
const (
	ScanValidated = "validated"
	ScanUsed      = "used"
	ScanCancelled = "cancelled"
	ScanRefunded  = "refunded"
	ScanWrongDate = "wrong_date"
	ScanInvalid   = "invalid"
)

type ScanResult struct {
	Valid   bool
	Status  string
	Message string
	Ticket  *repository.ScanRow
}

type TicketService interface {
	// VerifyScan classifies a scan code and, when eligible, performs the
	// guarded one-time transition to used.
	VerifyScan(ctx context.Context, scanCode string) (*ScanResult, error)
}

type ticketService struct {
	ticketRepo repository.TicketRepository
	logRepo    repository.SecurityLogRepository
	publisher  *rabbitmq.Publisher
	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

func NewTicketService(ticketRepo repository.TicketRepository, logRepo repository.SecurityLogRepository, publisher *rabbitmq.Publisher) TicketService {
	return &ticketService{
		ticketRepo: ticketRepo,
		logRepo:    logRepo,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (s *ticketService) VerifyScan(ctx context.Context, scanCode string) (*ScanResult, error) {
	row, err := s.ticketRepo.FindScanContext(ctx, scanCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	result := s.classify(row)
	if result.Status != ScanValidated {
		monitoring.ScansTotal.WithLabelValues(result.Status).Inc()
		return result, nil
	}

	now := s.now()
	affected, err := s.ticketRepo.MarkUsedIfActive(ctx, row.ID, "scanner", now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Lost the race against a concurrent scan of the same code.
		result.Valid = false
		result.Status = ScanUsed
		result.Message = "Ticket ya utilizado"
		monitoring.ScansTotal.WithLabelValues(ScanUsed).Inc()
		return result, nil
	}

	row.Status = models.TicketUsed
	row.UsedAt = &now

	entry := &models.SecurityLog{
		UserID:     &row.UserID,
		Action:     "ticket_scanned",
		Resource:   "ticket",
		ResourceID: &row.ID,
		Status:     "success",
		Details: models.StringMap{
			"ticket_number": row.TicketNumber,
			"event":         row.EventTitle,
		},
	}
	// The ticket is already consumed at this point. A failed audit append must
	// not turn the scan into an error, or a retry would report it as used.
	if err := s.logRepo.Append(ctx, s.ticketRepo.GetDB(), entry); err != nil {
		slog.Error("scan audit append failed", "ticket_id", row.ID, "error", err)
	}

	monitoring.ScansTotal.WithLabelValues(ScanValidated).Inc()
	_ = s.publisher.Publish("ticket.validated", map[string]any{
		"ticket_id":     row.ID,
		"ticket_number": row.TicketNumber,
		"event_title":   row.EventTitle,
		"used_at":       now,
	})
	return result, nil
}

// classify maps the ticket's stored state to a terminal scan classification,
// or to validated when the guarded transition should be attempted.
func (s *ticketService) classify(row *repository.ScanRow) *ScanResult {
	result := &ScanResult{Ticket: row}

	switch {
	case row.Status == models.TicketCancelled:
		result.Status = ScanCancelled
		result.Message = "Ticket cancelado"
	case row.Status == models.TicketRefunded:
		result.Status = ScanRefunded
		result.Message = "Ticket reembolsado"
	case row.UsedAt != nil:
		result.Status = ScanUsed
		result.Message = fmt.Sprintf("Ticket ya utilizado el %s", row.UsedAt.Format("02-01-2006 15:04"))
	case row.EventDate != s.now().Format("2006-01-02"):
		result.Status = ScanWrongDate
		result.Message = fmt.Sprintf("Este ticket es para el %s", row.EventDate)
	case row.Status == models.TicketActive:
		result.Valid = true
		result.Status = ScanValidated
		result.Message = "Ticket validado correctamente"
	default:
		// reserved and never activated: the order was not completed
		result.Status = ScanInvalid
		result.Message = "Ticket no válido para ingreso"
	}

	return result
}
