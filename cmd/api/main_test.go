package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsListenError(t *testing.T) {
	t.Setenv("PORT", "-1")
	t.Setenv("UPSTASH_REDIS_URL", "")

	err := run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
