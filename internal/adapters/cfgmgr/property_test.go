package cfgmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtree/internal/domain"
)

func TestDecodeProperty(t *testing.T) {
	tests := []struct {
		name     string
		prop     domain.Property
		dataType uint32
		buf      []uint16
		want     domain.PropertyValue
	}{
		{
			name:     "string",
			prop:     domain.PropFriendlyName,
			dataType: regSZ,
			buf:      PackMultiSZ([]string{"USB Root Hub"}),
			want:     domain.PropertyValue{Property: domain.PropFriendlyName, Text: "USB Root Hub"},
		},
		{
			name:     "expandable string",
			prop:     domain.PropDriver,
			dataType: regExpandSZ,
			buf:      PackMultiSZ([]string{`{36fc9e60}\0001`}),
			want:     domain.PropertyValue{Property: domain.PropDriver, Text: `{36fc9e60}\0001`},
		},
		{
			name:     "multi string",
			prop:     domain.PropHardwareIDs,
			dataType: regMultiSZ,
			buf:      PackMultiSZ([]string{`USB\ROOT_HUB30`, `USB\ROOT_HUB`}),
			want:     domain.PropertyValue{Property: domain.PropHardwareIDs, List: []string{`USB\ROOT_HUB30`, `USB\ROOT_HUB`}},
		},
		{
			name:     "dword little endian",
			prop:     domain.PropCapabilities,
			dataType: regDWord,
			buf:      []uint16{0x0084, 0x0001},
			want:     domain.PropertyValue{Property: domain.PropCapabilities, DWord: 0x00010084},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeProperty(tt.prop, tt.dataType, tt.buf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeProperty_WrongType(t *testing.T) {
	_, err := DecodeProperty(domain.PropHardwareIDs, regSZ, PackMultiSZ([]string{"x"}))
	assert.ErrorIs(t, err, domain.CRWrongType)

	_, err = DecodeProperty(domain.PropConfigFlags, regDWord, []uint16{1})
	assert.ErrorIs(t, err, domain.CRWrongType, "a DWORD needs two code units")

	_, err = DecodeProperty(domain.PropService, regMultiSZ, PackMultiSZ([]string{"x"}))
	assert.ErrorIs(t, err, domain.CRWrongType)
}
