// SPDX-License-Identifier: MIT

package ctxlog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfilter/internal/ctxlog"
)

func TestFromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	require.Same(t, logger, ctxlog.FromContext(ctx))
	ctxlog.FromContext(ctx).Info("hello", "k", 1)
	require.Contains(t, buf.String(), "msg=hello k=1")
}

func TestFromContext_DefaultsToGlobal(t *testing.T) {
	require.Same(t, slog.Default(), ctxlog.FromContext(context.Background()))
	require.Same(t, slog.Default(), ctxlog.FromContext(ctxlog.WithLogger(context.Background(), nil)))
}
