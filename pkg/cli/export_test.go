package cli

import (
	"context"
	"io"
)

// RunWithWriter runs the app with command output sent to w
func RunWithWriter(ctx context.Context, args []string, w io.Writer) error {
	return newApp("test", w).Run(ctx, args)
}

// ParseHexColor is exported for testing
var ParseHexColor = parseHexColor

// IndexConfig is exported for testing
var IndexConfig = getIndexConfig
