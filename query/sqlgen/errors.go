package sqlgen

import (
	"errors"
	"fmt"

	"github.com/satishbabariya/prisma-go-fts/query/fulltext"
)

// ErrUnsupportedProvider is returned for databases without full-text functions.
var ErrUnsupportedProvider = errors.New("unsupported provider")

func invalidSelect(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", fulltext.ErrInvalidArgument, fmt.Sprintf(format, args...))
}
