package relay_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay"
)

func TestMaskHeader(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input http.Header
		want  http.Header
	}{
		{"nil", nil, http.Header{}},
		{"zero", http.Header{}, http.Header{}},
		{
			"untouched",
			http.Header{"Accept": []string{"application/json"}},
			http.Header{"Accept": []string{"application/json"}},
		},
		{
			"bearer",
			http.Header{"Authorization": []string{"Bearer a.b.c"}},
			http.Header{"Authorization": []string{"Bearer " + relay.LogMaskVal}},
		},
		{
			"no-scheme",
			http.Header{"Authorization": []string{"a.b.c"}},
			http.Header{"Authorization": []string{relay.LogMaskVal}},
		},
		{
			"cookie",
			http.Header{"Cookie": []string{"session=abc; other=def"}},
			http.Header{"Cookie": []string{relay.LogMaskVal}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual := relay.MaskHeader(tc.input)
			require.Equal(t, tc.want, actual)
		})
	}

	// Arrange
	original := http.Header{"Authorization": []string{"Bearer a.b.c"}}

	// Act
	relay.MaskHeader(original)

	// Assert
	require.Equal(t, "Bearer a.b.c", original.Get("Authorization"))
}

func TestMaskURL(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		want  string
	}{
		{"no-query", "https://example.com/health", "https://example.com/health"},
		{"untouched", "https://example.com/health?a=1", "https://example.com/health?a=1"},
		{"password", "/login?password=hunter2&user=me", "/login?password=" + relay.LogMaskVal + "&user=me"},
		{"token", "/?token=a.b.c", "/?token=" + relay.LogMaskVal},
	} {
		t.Run(tc.name, func(t *testing.T) {
			u, err := url.Parse(tc.input)
			require.Nil(t, err)
			require.Equal(t, tc.want, relay.MaskURL(u))
		})
	}

	require.Zero(t, relay.MaskURL(nil))
}
