package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PrintsEverySection(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, run(context.Background(), &out, logger))

	text := out.String()
	assert.NotContains(t, text, "Booking failed")
	for _, title := range []string{"ROOMS (Latest to Oldest)", "BOOKINGS (Latest to Oldest)", "USERS (Latest to Oldest)"} {
		assert.Contains(t, text, title)
	}
	assert.Equal(t, 2, strings.Count(text, "Booking #"))
	assert.Contains(t, text, "Balance: 4000")
	assert.Contains(t, text, "Balance: 8000")
	assert.Contains(t, text, "2 bookings, 2 nights, revenue 3000, average nightly rate 1500.00")
}
