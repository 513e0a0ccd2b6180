package notify

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/hamed0406/dashfetch/internal/domain"
)

type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Multi fans one notification out to every channel. All channels are
// attempted; the returned error carries every failure, not just the first.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, text string) error {
	var errs error
	for _, n := range m {
		if n == nil {
			continue
		}
		errs = multierr.Append(errs, n.Send(ctx, title, text))
	}
	return errs
}

// FailureMessage renders a fetch failure as a notification title and body.
func FailureMessage(ff *domain.FetchFailure) (title, text string) {
	title = "Dashboard fetch failed: " + string(ff.Resource)
	switch ff.Kind {
	case domain.KindBadResponse:
		text = fmt.Sprintf("Upstream answered HTTP %d for %q.", ff.Status, ff.Resource)
	case domain.KindDecode:
		text = fmt.Sprintf("Payload for %q did not decode: %v.", ff.Resource, ff.Err)
	default:
		text = fmt.Sprintf("Could not reach the upstream for %q: %v.", ff.Resource, ff.Err)
	}
	return title, text
}
