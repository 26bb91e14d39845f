package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "OF wins over BLOCK", raw: "100 BLOCK OF MAIN ST", want: []string{"MAIN ST"}},
		{name: "BLOCK takes last part", raw: "1200 BLOCK E SANTA CLARA ST", want: []string{"E SANTA CLARA ST"}},
		{name: "ampersand intersection", raw: "MAIN ST & 1ST AVE", want: []string{"MAIN ST", "1ST AVE"}},
		{name: "AND intersection", raw: "ALMADEN BLVD AND W SAN CARLOS ST", want: []string{"ALMADEN BLVD", "W SAN CARLOS ST"}},
		{name: "suite suffix stripped", raw: "123 ELM AVE #204", want: []string{"123 ELM AVE"}},
		{name: "suffix after OF part stripped", raw: "200 BLOCK OF ESCALON AV #2027", want: []string{"ESCALON AV"}},
		{name: "no delimiter keeps whole string", raw: "  MARKET ST  ", want: []string{"MARKET ST"}},
		{name: "empty address still yields a candidate", raw: "", want: []string{""}},
		{name: "only a unit number", raw: "#12", want: []string{""}},
		{name: "non-ASCII dropped", raw: "CAFÉ WAY", want: []string{"CAF WAY"}},
		{name: "OF matched as a substring", raw: "1 OFFICE PARK", want: []string{"FICE PARK"}},
		{name: "OF uses second part only", raw: "A OF B OF C", want: []string{"B"}},
		{name: "BLOCK uses last part", raw: "1 BLOCK 2 BLOCK ELM", want: []string{"ELM"}},
		{name: "ampersand beats AND", raw: "SAND HILL RD & OAK ST", want: []string{"SAND HILL RD", "OAK ST"}},
		{name: "three-way ampersand", raw: "A ST & B ST & C ST", want: []string{"A ST", "B ST", "C ST"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAddress(tt.raw))
		})
	}
}

func TestNormalizeAddress_AlwaysReturnsAtLeastOne(t *testing.T) {
	for _, raw := range []string{"", " ", "&", "AND", "OF", "BLOCK", "#"} {
		assert.NotEmpty(t, NormalizeAddress(raw), "raw=%q", raw)
	}
}
