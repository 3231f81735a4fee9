package domain

// State is the conversation step a user is currently on. The zero value is
// StateIdle, so a freshly created session waits for /start.
type State string

const (
	StateIdle                  State = ""
	StateAwaitingHotel         State = "awaiting_hotel"
	StateAwaitingRoom          State = "awaiting_room"
	StateAwaitingRoomPhoto     State = "awaiting_room_photo"
	StateAwaitingBathroomPhoto State = "awaiting_bathroom_photo"
	StateAwaitingRemarks       State = "awaiting_remarks"
)

// Sentinel marks a field the user skipped or never provided.
const Sentinel = "-"

type Session struct {
	UserID           int64
	CorrelationID    string
	State            State
	Hotel            string
	RoomOrArea       string
	RoomPhotoRef     string
	BathroomPhotoRef string
	Remarks          string
	ReporterName     string
}
