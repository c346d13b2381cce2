package dto

import (
	"fmt"
	"time"

	"github.com/entradalive/ticketing/internal/models"
	"github.com/entradalive/ticketing/internal/service"
)

type AuthSyncResponse struct {
	User        *models.User       `json:"user"`
	IsAdmin     bool               `json:"isAdmin"`
	AdminRole   *models.AdminRole  `json:"adminRole"`
	Permissions models.StringSlice `json:"permissions"`
	Message     string             `json:"message"`
}

func ToAuthSyncResponse(result *service.SyncResult) AuthSyncResponse {
	resp := AuthSyncResponse{
		User:        result.User,
		IsAdmin:     result.IsAdmin,
		Permissions: result.Permissions,
		Message:     "User authenticated successfully",
	}
	if result.IsAdmin {
		role := result.Role
		resp.AdminRole = &role
	}
	return resp
}

type ReserveResponse struct {
	OrderID     uint      `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Message     string    `json:"message"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type ScanTicket struct {
	TicketNumber  string     `json:"ticket_number"`
	EventTitle    string     `json:"event_title"`
	EventDate     string     `json:"event_date"`
	EventTime     string     `json:"event_time"`
	VenueName     string     `json:"venue_name"`
	VenueAddress  string     `json:"venue_address"`
	SectionName   string     `json:"section_name"`
	SeatInfo      string     `json:"seat_info"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	OrderNumber   string     `json:"order_number"`
	Price         float64    `json:"price"`
	UsedAt        *time.Time `json:"used_at"`
}

type ScanResponse struct {
	Valid   bool       `json:"valid"`
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Ticket  ScanTicket `json:"ticket"`
}

func ToScanResponse(result *service.ScanResult) ScanResponse {
	t := result.Ticket
	return ScanResponse{
		Valid:   result.Valid,
		Status:  result.Status,
		Message: result.Message,
		Ticket: ScanTicket{
			TicketNumber:  t.TicketNumber,
			EventTitle:    t.EventTitle,
			EventDate:     t.EventDate,
			EventTime:     t.EventTime,
			VenueName:     t.VenueName,
			VenueAddress:  t.VenueAddress,
			SectionName:   t.SectionName,
			SeatInfo:      fmt.Sprintf("Fila %s - Asiento %d", t.RowName, t.SeatNumber),
			CustomerName:  fmt.Sprintf("%s %s", t.FirstName, t.LastName),
			CustomerEmail: t.CustomerEmail,
			OrderNumber:   t.OrderNumber,
			Price:         t.Price,
			UsedAt:        t.UsedAt,
		},
	}
}

type EventDetailResponse struct {
	Event    *models.Event              `json:"event"`
	Sections []service.SectionWithSeats `json:"sections"`
}

type SectionCreatedResponse struct {
	Section      *models.Section `json:"section"`
	SeatsCreated int             `json:"seats_created"`
}

type OrderListResponse struct {
	Orders []service.OrderWithTickets `json:"orders"`
}

type EventListResponse struct {
	Events []models.Event `json:"events"`
}

type VenueListResponse struct {
	Venues []models.Venue `json:"venues"`
}

type EventMutationResponse struct {
	Event   *models.Event `json:"event"`
	Message string        `json:"message"`
}

type VenueMutationResponse struct {
	Venue   *models.Venue `json:"venue"`
	Message string        `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
	// Token is only populated in development so the email-delivery flows can
	// be exercised without a mail channel.
	Token string `json:"token,omitempty"`
}
