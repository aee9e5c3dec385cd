package service

import "github.com/google/uuid"

const (
	EventDrawGenerated = "draw_generated"
	EventMatchUpdated  = "match_updated"
)

// Notifier pushes changes to whoever follows a tournament live.
type Notifier interface {
	Publish(tournamentID uuid.UUID, event string, payload any)
}

type nopNotifier struct{}

func (nopNotifier) Publish(uuid.UUID, string, any) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
