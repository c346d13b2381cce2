package dto

import "github.com/entradalive/ticketing/internal/models"

type CreateEventRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Date         string `json:"date"` // YYYY-MM-DD
	Time         string `json:"time"` // HH:MM
	VenueName    string `json:"venue_name"`
	VenueAddress string `json:"venue_address"`
	VenueCity    string `json:"venue_city"`
	ImageURL     string `json:"image_url"`
	Category     string `json:"category"`
}

// UpdateEventRequest carries only the fields the caller wants to change;
// nil fields keep their previous value.
type UpdateEventRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Date         *string `json:"date"`
	Time         *string `json:"time"`
	VenueName    *string `json:"venue_name"`
	VenueAddress *string `json:"venue_address"`
	VenueCity    *string `json:"venue_city"`
	ImageURL     *string `json:"image_url"`
	Category     *string `json:"category"`
	Status       *string `json:"status"`
}

// Fields flattens the request into the column map applied to the event.
func (r *UpdateEventRequest) Fields() map[string]any {
	fields := map[string]any{}
	set := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}
	set("title", r.Title)
	set("description", r.Description)
	set("date", r.Date)
	set("time", r.Time)
	set("venue_name", r.VenueName)
	set("venue_address", r.VenueAddress)
	set("venue_city", r.VenueCity)
	set("image_url", r.ImageURL)
	set("category", r.Category)
	set("status", r.Status)
	return fields
}

type CreateVenueRequest struct {
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	City        string            `json:"city"`
	Country     string            `json:"country"`
	Capacity    int               `json:"capacity"`
	Description string            `json:"description"`
	Latitude    *float64          `json:"latitude"`
	Longitude   *float64          `json:"longitude"`
	Amenities   models.StringSlice `json:"amenities"`
	ContactInfo models.StringMap  `json:"contact_info"`
}

type CreateSectionRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Color       string  `json:"color"`
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Rows        int     `json:"rows"`
	SeatsPerRow int     `json:"seats_per_row"`
}

type ReserveRequest struct {
	EventID     uint    `json:"event_id"`
	SeatIDs     []uint  `json:"seat_ids"`
	TotalAmount float64 `json:"total_amount"`
}

type VerifyScanRequest struct {
	QRCode string `json:"qr_code"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type TokenRequest struct {
	Token string `json:"token"`
}
