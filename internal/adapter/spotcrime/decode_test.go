package spotcrime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIncidents(t *testing.T) {
	t.Run("result key", func(t *testing.T) {
		incidents, err := DecodeIncidents(strings.NewReader(sampleResponse), "crimes")
		require.NoError(t, err)
		assert.Len(t, incidents, 2)
	})

	t.Run("single unknown key is used", func(t *testing.T) {
		body := `{"data":[{"address":"MAIN ST","type":"Theft"}]}`
		incidents, err := DecodeIncidents(strings.NewReader(body), "crimes")
		require.NoError(t, err)
		require.Len(t, incidents, 1)
		assert.Equal(t, "MAIN ST", incidents[0]["address"])
	})

	t.Run("result key preferred among several", func(t *testing.T) {
		body := `{"meta":[],"crimes":[{"type":"Arson"}]}`
		incidents, err := DecodeIncidents(strings.NewReader(body), "crimes")
		require.NoError(t, err)
		require.Len(t, incidents, 1)
		assert.Equal(t, "Arson", incidents[0]["type"])
	})

	t.Run("empty array", func(t *testing.T) {
		incidents, err := DecodeIncidents(strings.NewReader(`{"crimes":[]}`), "crimes")
		require.NoError(t, err)
		assert.Empty(t, incidents)
	})

	t.Run("non-string values dropped", func(t *testing.T) {
		body := `{"crimes":[{"address":"MAIN ST","date":null,"cdid":7}]}`
		incidents, err := DecodeIncidents(strings.NewReader(body), "crimes")
		require.NoError(t, err)
		require.Len(t, incidents, 1)
		assert.Equal(t, map[string]string{"address": "MAIN ST"}, map[string]string(incidents[0]))
	})
}

func TestDecodeIncidents_Malformed(t *testing.T) {
	for name, body := range map[string]string{
		"not json":           `nope`,
		"array at top level": `[{"address":"MAIN ST"}]`,
		"ambiguous keys":     `{"a":[],"b":[]}`,
		"empty object":       `{}`,
		"records not array":  `{"crimes":{"address":"MAIN ST"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeIncidents(strings.NewReader(body), "crimes")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}
