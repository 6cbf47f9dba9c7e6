package ports

import (
	"context"

	"github.com/seu-repo/bankbot/internal/domain"
)

type DialogService interface {
	// Handle always returns a well-formed response.
	Handle(ctx context.Context, req *domain.Request) *domain.Response
}
