package fetch

import (
	"context"

	"github.com/hamed0406/dashfetch/internal/domain"
)

// Fetcher performs a single retrieval for one dashboard resource.
type Fetcher interface {
	Fetch(ctx context.Context, req domain.ResourceRequest) (domain.ResourceResult, error)
}
