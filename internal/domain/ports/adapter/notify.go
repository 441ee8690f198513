package adapter

import "context"

// SupportNotifier pushes new support-chat messages to the staff channel.
// Implementations must be safe to call concurrently; failures are logged,
// never surfaced to the end user.
type SupportNotifier interface {
	NotifySupportMessage(ctx context.Context, userID, sessionID, text string) error
}
