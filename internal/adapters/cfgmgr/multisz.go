// Package cfgmgr implements ports.DeviceQueryService on the Windows
// Configuration Manager API (cfgmgr32.dll), plus the multi-string helpers
// shared with the in-memory service.
package cfgmgr

import "unicode/utf16"

// SplitMultiSZ parses a packed list of NUL-terminated UTF-16 strings ended
// by an empty string (REG_MULTI_SZ layout). Each entry consumes its length
// plus one terminator; parsing stops at the first empty entry or at the end
// of the buffer, whichever comes first. An unterminated trailing entry is
// dropped.
func SplitMultiSZ(buf []uint16) []string {
	var entries []string
	pos := 0
	for pos < len(buf) {
		end := pos
		for end < len(buf) && buf[end] != 0 {
			end++
		}
		if end == len(buf) {
			break
		}
		if end == pos {
			break
		}
		entries = append(entries, string(utf16.Decode(buf[pos:end])))
		pos = end + 1
	}
	return entries
}

// PackMultiSZ is the inverse of SplitMultiSZ. Entries must be non-empty and
// free of NUL characters.
func PackMultiSZ(entries []string) []uint16 {
	var buf []uint16
	for _, e := range entries {
		buf = append(buf, utf16.Encode([]rune(e))...)
		buf = append(buf, 0)
	}
	return append(buf, 0)
}

// MultiSZSize returns the length in UTF-16 code units of the packed form
// of entries, including every terminator
func MultiSZSize(entries []string) int {
	size := 1
	for _, e := range entries {
		size += UTF16Len(e) + 1
	}
	return size
}

// UTF16Len returns the length of s in UTF-16 code units, without terminator
func UTF16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
