// FILE: internal/dto/notification_dto.go
package dto

// Notification kinds carried over the in-process bus.
const (
	NotificationSessionBooked      = "session_booked"
	NotificationSessionCancelled   = "session_cancelled"
	NotificationTherapistActivated = "therapist_activated"
)

type NotificationMessage struct {
	Kind          string  `json:"kind"`
	RecipientMail string  `json:"recipient_mail"`
	TherapistName string  `json:"therapist_name,omitempty"`
	Date          string  `json:"date,omitempty"`
	Time          string  `json:"time,omitempty"`
	Fee           float64 `json:"fee,omitempty"`
}
