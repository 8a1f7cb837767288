package ports

import "context"

// EventPublisher publishes auth lifecycle events for other services
type EventPublisher interface {
	PublishLogin(ctx context.Context, wallet string, nonce string) error
	PublishLogout(ctx context.Context, wallet string) error
}
