package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-version"
)

// ErrUnsupportedServer is returned for servers whose full-text functions
// lack the LANGUAGE and top_n_by_rank arguments.
var ErrUnsupportedServer = errors.New("unsupported server version")

// MinFullTextVersion is the oldest SQL Server release (2005) accepted.
var MinFullTextVersion = version.Must(version.NewVersion("9.0"))

// ServerVersion reads the server's product version.
func ServerVersion(ctx context.Context, db DB) (*version.Version, error) {
	var raw string
	if err := db.QueryRowContext(ctx, "SELECT CAST(SERVERPROPERTY('ProductVersion') AS NVARCHAR(128))").Scan(&raw); err != nil {
		return nil, fmt.Errorf("failed to read server version: %w", err)
	}
	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server version %q: %w", raw, err)
	}
	return v, nil
}

// RequireFullText fails with ErrUnsupportedServer when v predates
// MinFullTextVersion.
func RequireFullText(v *version.Version) error {
	if v == nil || v.LessThan(MinFullTextVersion) {
		return fmt.Errorf("%w: %v, need %s or later", ErrUnsupportedServer, v, MinFullTextVersion)
	}
	return nil
}
