package domain

type NotificationKind string

const (
	NotificationReminder     NotificationKind = "reminder"
	NotificationStreakAtRisk NotificationKind = "streak_at_risk"
)

// NotificationPayload identifies what a notification is about. Delivery
// passes it back to the app when the notification is opened.
type NotificationPayload struct {
	Kind                 NotificationKind
	Date                 Date
	IncompleteRoutineIDs []string
	AtRiskRoutineIDs     []string
}

// ScheduledNotification is one planned reminder. It has no identity of its
// own; the delivery side assigns handles.
type ScheduledNotification struct {
	Time    TimeOfDay
	Title   string
	Body    string
	Payload NotificationPayload
}
