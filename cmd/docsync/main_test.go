package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRepo(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		owner, repo, err := parseRepo("acme/widgets")
		require.NoError(t, err)
		require.Equal(t, "acme", owner)
		require.Equal(t, "widgets", repo)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"", "acme", "acme/", "/widgets"} {
			_, _, err := parseRepo(s)
			require.Error(t, err, "parseRepo(%q)", s)
			require.True(t, errors.Is(err, errUsage))
		}
	})
}
