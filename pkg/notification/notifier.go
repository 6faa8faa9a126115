package notification

// NotificationSystem represents a delivery channel (e.g., email, SMS).
type NotificationSystem string

// NoticeType represents a type of notice (e.g., "login_completed").
type NoticeType string

const (
	EmailSystem NotificationSystem = "email"

	// LoginCompleted is emitted exactly once per successful login, after
	// the authenticator has returned. Its payload carries the principal
	// the session was established for: the target in the act-as case,
	// never the actor.
	LoginCompleted NoticeType = "login_completed"
)

// NoticeTemplate holds the renderable content of a notice.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

// NotificationData is the per-send payload.
type NotificationData struct {
	To      string            // Recipient identifier (e.g., email address)
	Subject string            // Optional subject override
	Body    string            // Optional pre-rendered body
	Data    map[string]string // Template data
}

type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error
}
