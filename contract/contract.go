//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"

	"github.com/ngongtopro/love-story-chat/domain"
)

// Navigator is the navigable address of the client (a browser location, a CLI prompt...).
type Navigator interface {
	Current() string
	Navigate(path string)
	// RedirectToLogin forces the client back to the login surface.
	RedirectToLogin()
	// Subscribe reports address changes; cancel closes the channel.
	Subscribe() (<-chan string, func())
}

// Worker is a long-running loop stopped by cancelling its context.
type Worker interface {
	Run(ctx context.Context) error
}

// SessionReader is the read side of the session state.
// The channel returned by Subscribe is closed once cancel is called.
type SessionReader interface {
	Current() domain.Session
	Subscribe() (<-chan domain.Session, func())
}
