package cli

import (
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/matzehuels/yieldpath/pkg/errors"
	yio "github.com/matzehuels/yieldpath/pkg/io"
	"github.com/matzehuels/yieldpath/pkg/network"
	"github.com/matzehuels/yieldpath/pkg/pipeline"
)

// stdinPath selects standard input, which is always read as text.
const stdinPath = "-"

// loadRecords reads a network file, choosing the decoder by extension.
func loadRecords(path string) ([]network.Record, error) {
	var (
		records []network.Record
		err     error
	)
	if path == stdinPath {
		records, err = yio.ReadText(os.Stdin)
	} else {
		records, err = yio.ReadFile(path)
	}
	switch {
	case err == nil:
		return records, nil
	case stderrors.Is(err, fs.ErrNotExist):
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input not found")
	case stderrors.Is(err, yio.ErrMalformedLine),
		stderrors.Is(err, yio.ErrMalformedJSON),
		stderrors.Is(err, yio.ErrMalformedTOML):
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot parse input")
	}
	return nil, errors.Wrap(errors.ErrCodeInternal, err, "read input")
}

// buildNetwork reads path and validates it, returning coded errors.
func buildNetwork(path, start string) (*network.Network, error) {
	records, err := loadRecords(path)
	if err != nil {
		return nil, err
	}
	net, _, err := pipeline.Prepare(records, start)
	return net, err
}
