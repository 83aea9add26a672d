package cfgmgr

import (
	"unicode/utf16"

	"devtree/internal/domain"
)

// Registry data types reported by CM_Get_DevNode_Registry_Property
const (
	regSZ       = 1
	regExpandSZ = 2
	regDWord    = 4
	regMultiSZ  = 7
)

// DecodeProperty converts a raw registry property buffer of the given
// registry data type into a value of prop. The data type must match the
// kind of prop, otherwise CR_WRONG_TYPE is returned.
func DecodeProperty(prop domain.Property, dataType uint32, buf []uint16) (domain.PropertyValue, error) {
	v := domain.PropertyValue{Property: prop}

	switch prop.Kind() {
	case domain.KindMultiString:
		if dataType != regMultiSZ {
			return v, domain.CRWrongType
		}
		v.List = SplitMultiSZ(buf)
	case domain.KindDWord:
		if dataType != regDWord || len(buf) < 2 {
			return v, domain.CRWrongType
		}
		v.DWord = uint32(buf[0]) | uint32(buf[1])<<16
	default:
		if dataType != regSZ && dataType != regExpandSZ {
			return v, domain.CRWrongType
		}
		end := 0
		for end < len(buf) && buf[end] != 0 {
			end++
		}
		v.Text = string(utf16.Decode(buf[:end]))
	}
	return v, nil
}
