package models

// BookingRequest is the inbound webhook payload: a free-text booking time plus
// the stylist and service duration as the customer phrased them.
type BookingRequest struct {
	BookingTime     string `json:"bookingtime"`
	AssignedStylist string `json:"assigned_stylist"`
	DurationOfSvcs  string `json:"duration_of_services"`
}

// NormalizedBooking is the structured form produced by the language model:
// ISO-8601 start/end carrying the local booking-timezone offset, and the
// service duration in minutes. EndTime is always StartTime plus Duration.
type NormalizedBooking struct {
	StartTime       string `json:"start_time"`
	Duration        int    `json:"duration"`
	AssignedStylist string `json:"assigned_stylist"`
	EndTime         string `json:"end_time"`
}
