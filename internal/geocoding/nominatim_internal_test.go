package geocoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		address string
		want    []string
	}{
		{
			address: "12 Janpath, Connaught Place, New Delhi, India",
			want: []string{
				"12 Janpath, Connaught Place, New Delhi, India",
				"Connaught Place, New Delhi, India",
				"New Delhi, India",
			},
		},
		{address: "Koramangala, Bengaluru", want: []string{"Koramangala, Bengaluru"}},
		{address: "Mumbai", want: []string{"Mumbai"}},
		{address: " MG Road ,, Pune ", want: []string{"MG Road, Pune"}},
		{address: "", want: []string{""}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, addressFallbacks(tt.address), tt.address)
	}
}

func TestNewNominatimProviderFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("configured values", func(t *testing.T) {
		t.Parallel()
		np, ok := newNominatimProvider(ProviderConfig{
			Type:      ProviderTypeNominatim,
			Region:    "in",
			Language:  "hi,en",
			UserAgent: "inclusion-staging/2.0 (ops@example.org)",
		}).(*NominatimProvider)

		assert.True(t, ok)
		assert.Equal(t, "inclusion-staging/2.0 (ops@example.org)", np.userAgent)
		assert.Equal(t, "hi,en", np.language)
		assert.Equal(t, "in", np.countryCodes)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		np, ok := newNominatimProvider(ProviderConfig{Type: ProviderTypeNominatim}).(*NominatimProvider)

		assert.True(t, ok)
		assert.Equal(t, nominatimUserAgent, np.userAgent)
		assert.Equal(t, "en", np.language)
		assert.Empty(t, np.countryCodes)
	})
}
