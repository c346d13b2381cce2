package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/entradalive/ticketing/internal/models"
	"github.com/entradalive/ticketing/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock TicketRepository ---

type mockTicketRepo struct {
	findScanFn   func(ctx context.Context, scanCode string) (*repository.ScanRow, error)
	markUsedFn   func(ctx context.Context, ticketID uint, usedBy string, at time.Time) (int64, error)
	listOrdersFn func(ctx context.Context, orderIDs []uint) ([]repository.OrderTicketRow, error)
}

func (m *mockTicketRepo) CreateBatch(ctx context.Context, tx *gorm.DB, tickets []models.Ticket) error {
	return nil
}
func (m *mockTicketRepo) ListByOrders(ctx context.Context, orderIDs []uint) ([]repository.OrderTicketRow, error) {
	if m.listOrdersFn != nil {
		return m.listOrdersFn(ctx, orderIDs)
	}
	return nil, nil
}
func (m *mockTicketRepo) FindByOrderID(ctx context.Context, tx *gorm.DB, orderID uint) ([]models.Ticket, error) {
	return nil, nil
}
func (m *mockTicketRepo) FindScanContext(ctx context.Context, scanCode string) (*repository.ScanRow, error) {
	return m.findScanFn(ctx, scanCode)
}
func (m *mockTicketRepo) MarkUsedIfActive(ctx context.Context, ticketID uint, usedBy string, at time.Time) (int64, error) {
	if m.markUsedFn != nil {
		return m.markUsedFn(ctx, ticketID, usedBy, at)
	}
	return 1, nil
}
func (m *mockTicketRepo) ActivateByOrder(ctx context.Context, tx *gorm.DB, orderID uint) error {
	return nil
}
func (m *mockTicketRepo) CancelReservedBySeats(ctx context.Context, tx *gorm.DB, seatIDs []uint) ([]uint, error) {
	return nil, nil
}
func (m *mockTicketRepo) GetDB() *gorm.DB { return nil }

// --- Mock SecurityLogRepository ---

type mockLogRepo struct {
	entries   []*models.SecurityLog
	appendErr error
}

func (m *mockLogRepo) Append(ctx context.Context, tx *gorm.DB, entry *models.SecurityLog) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

// --- Tests ---

func scanTestService(repo *mockTicketRepo, logs *mockLogRepo, today string) TicketService {
	svc := NewTicketService(repo, logs, nil).(*ticketService)
	svc.now = func() time.Time {
		t, _ := time.Parse("2006-01-02", today)
		return t
	}
	return svc
}

func activeScanRow() *repository.ScanRow {
	return &repository.ScanRow{
		ID:            7,
		TicketNumber:  "TKT-AB12CD34",
		Status:        models.TicketActive,
		Price:         25000,
		EventTitle:    "Concierto de Prueba",
		EventDate:     "2026-08-30",
		EventTime:     "21:00",
		VenueName:     "Teatro Central",
		SectionName:   "VIP",
		RowName:       "A",
		SeatNumber:    12,
		FirstName:     "Ana",
		LastName:      "Rojas",
		CustomerEmail: "ana@example.com",
		OrderNumber:   "ORD-20260830-XYZ123",
		UserID:        3,
	}
}

func TestVerifyScan_Validated(t *testing.T) {
	repo := &mockTicketRepo{
		findScanFn: func(ctx context.Context, scanCode string) (*repository.ScanRow, error) {
			return activeScanRow(), nil
		},
	}
	logs := &mockLogRepo{}

	svc := scanTestService(repo, logs, "2026-08-30")
	result, err := svc.VerifyScan(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, ScanValidated, result.Status)
	assert.Equal(t, "Ticket validado correctamente", result.Message)
	assert.Equal(t, models.TicketUsed, result.Ticket.Status)
	assert.NotNil(t, result.Ticket.UsedAt)

	assert.Len(t, logs.entries, 1)
	assert.Equal(t, "ticket_scanned", logs.entries[0].Action)
}

func TestVerifyScan_AuditAppendFailureStillValidates(t *testing.T) {
	repo := &mockTicketRepo{
		findScanFn: func(ctx context.Context, scanCode string) (*repository.ScanRow, error) {
			return activeScanRow(), nil
		},
	}
	logs := &mockLogRepo{appendErr: errors.New("connection reset")}

	svc := scanTestService(repo, logs, "2026-08-30")
	result, err := svc.VerifyScan(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, ScanValidated, result.Status)
}

func TestVerifyScan_LostRaceReportsUsed(t *testing.T) {
	repo := &mockTicketRepo{
		findScanFn: func(ctx context.Context, scanCode string) (*repository.ScanRow, error) {
			return activeScanRow(), nil
		},
		markUsedFn: func(ctx context.Context, ticketID uint, usedBy string, at time.Time) (int64, error) {
			return 0, nil
		},
	}

	svc := scanTestService(repo, &mockLogRepo{}, "2026-08-30")
	result, err := svc.VerifyScan(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, ScanUsed, result.Status)
	assert.Equal(t, "Ticket ya utilizado", result.Message)
}

func TestVerifyScan_AlreadyUsed(t *testing.T) {
	usedAt := time.Date(2026, 8, 30, 20, 15, 0, 0, time.UTC)
	row := activeScanRow()
	row.Status = models.TicketUsed
	row.UsedAt = &usedAt

	repo := &mockTicketRepo{
		findScanFn: func(ctx context.Context, scanCode string) (*repository.ScanRow, error) {
			return row, nil
		},
	}

	svc := scanTestService(repo, &mockLogRepo{}, "2026-08-30")
	result, err := svc.VerifyScan(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, ScanUsed, result.Status)
	assert.Equal(t, "Ticket ya utilizado el 30-08-2026 20:15", result.Message)
}

func TestVerifyScan_WrongDate(t *testing.T) {
	row := activeScanRow()
	row.EventDate = "2026-09-01"

	repo := &mockTicketRepo{
		findScanFn: func(ctx context.Context, scanCode string) (*repository.ScanRow, error) {
			return row, nil
		},
	}

	svc := scanTestService(repo, &mockLogRepo{}, "2026-08-30")
	result, err := svc.VerifyScan(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, ScanWrongDate, result.Status)
	assert.Equal(t, "Este ticket es para el 2026-09-01", result.Message)
}

func TestVerifyScan_Cancelled(t *testing.T) {
	row := activeScanRow()
	row.Status = models.TicketCancelled

	repo := &mockTicketRepo{
		findScanFn: func(ctx context.Context, scanCode string) (*repository.ScanRow, error) {
			return row, nil
		},
	}

	svc := scanTestService(repo, &mockLogRepo{}, "2026-08-30")
	result, err := svc.VerifyScan(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, ScanCancelled, result.Status)
	assert.Equal(t, "Ticket cancelado", result.Message)
}

func TestVerifyScan_Refunded(t *testing.T) {
	row := activeScanRow()
	row.Status = models.TicketRefunded

	repo := &mockTicketRepo{
		findScanFn: func(ctx context.Context, scanCode string) (*repository.ScanRow, error) {
			return row, nil
		},
	}

	svc := scanTestService(repo, &mockLogRepo{}, "2026-08-30")
	result, err := svc.VerifyScan(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.Equal(t, ScanRefunded, result.Status)
	assert.Equal(t, "Ticket reembolsado", result.Message)
}

func TestVerifyScan_ReservedNeverActivated(t *testing.T) {
	row := activeScanRow()
	row.Status = models.TicketReserved

	repo := &mockTicketRepo{
		findScanFn: func(ctx context.Context, scanCode string) (*repository.ScanRow, error) {
			return row, nil
		},
	}

	svc := scanTestService(repo, &mockLogRepo{}, "2026-08-30")
	result, err := svc.VerifyScan(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, ScanInvalid, result.Status)
}

func TestVerifyScan_UnknownCode(t *testing.T) {
	repo := &mockTicketRepo{
		findScanFn: func(ctx context.Context, scanCode string) (*repository.ScanRow, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := scanTestService(repo, &mockLogRepo{}, "2026-08-30")
	result, err := svc.VerifyScan(context.Background(), "nope")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}
