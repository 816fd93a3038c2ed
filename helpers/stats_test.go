package helpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusSummaryReflectsWrites(t *testing.T) {
	// Unique status strings isolate this test's buckets in the shared store.
	status := fmt.Sprintf("summary-%d", time.Now().UnixNano())

	before, err := StatusSummary()
	require.NoError(t, err)
	assert.Zero(t, before[status])

	website, err := CreateWebsite(map[string]any{
		"website": "summary-fresh.com",
		"status":  status,
	}, "tester")
	require.NoError(t, err)

	// A summary requested right after a create already counts the record.
	after, err := StatusSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(1), after[status])

	// Updates move the record between buckets without any staleness window.
	moved := status + "-moved"
	_, err = UpdateWebsite(website.ID, map[string]any{"status": moved}, "", "")
	require.NoError(t, err)

	summary, err := StatusSummary()
	require.NoError(t, err)
	assert.Zero(t, summary[status])
	assert.Equal(t, int64(1), summary[moved])
}
