package pipeline

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/yieldpath/pkg/errors"
	"github.com/matzehuels/yieldpath/pkg/network"
	"github.com/matzehuels/yieldpath/pkg/partition"
	"github.com/matzehuels/yieldpath/pkg/search"
)

// classify wraps a library error in a coded error. Errors that already
// carry a code pass through unchanged.
func classify(err error) error {
	if err == nil || errors.GetCode(err) != "" {
		return err
	}
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeCanceled, err, "solve interrupted")
	case stderrors.Is(err, network.ErrInvalidLocationID),
		stderrors.Is(err, network.ErrDuplicateLocationID),
		stderrors.Is(err, network.ErrNegativeRate),
		stderrors.Is(err, network.ErrRateTooLarge),
		stderrors.Is(err, network.ErrUnknownNeighbor),
		stderrors.Is(err, search.ErrTooManyRelevant):
		return errors.Wrap(errors.ErrCodeInvalidNetwork, err, "invalid network")
	case stderrors.Is(err, network.ErrUnknownLocation),
		stderrors.Is(err, search.ErrBudgetTooLarge),
		stderrors.Is(err, partition.ErrInvalidOptions):
		return errors.Wrap(errors.ErrCodeInvalidOptions, err, "invalid options")
	case stderrors.Is(err, search.ErrMaskOutOfRange):
		return errors.Wrap(errors.ErrCodeInvariant, err, "invariant violated")
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "solve failed")
}
