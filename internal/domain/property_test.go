package domain

import "testing"

func TestPropertyValue_String(t *testing.T) {
	tests := []struct {
		name  string
		value PropertyValue
		want  string
	}{
		{"string", PropertyValue{Property: PropFriendlyName, Text: "USB Root Hub"}, "USB Root Hub"},
		{"list", PropertyValue{Property: PropHardwareIDs, List: []string{`USB\ROOT_HUB30`, `USB\ROOT_HUB`}}, `USB\ROOT_HUB30, USB\ROOT_HUB`},
		{"empty list", PropertyValue{Property: PropUpperFilters}, ""},
		{"dword", PropertyValue{Property: PropConfigFlags, DWord: 0x40}, "0x00000040"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestProperty_NameAndKind(t *testing.T) {
	if PropClassGUID.String() != "ClassGUID" {
		t.Errorf("unexpected name %q", PropClassGUID.String())
	}
	if Property(0x30).String() != "CM_DRP_0x30" {
		t.Errorf("unexpected name %q", Property(0x30).String())
	}
	if PropCapabilities.Kind() != KindDWord {
		t.Error("Capabilities is a DWORD")
	}
	if PropLowerFilters.Kind() != KindMultiString {
		t.Error("LowerFilters is a multi-string")
	}
	for _, p := range DetailProperties {
		if _, ok := propertyInfos[p]; !ok {
			t.Errorf("detail property %d has no name", p)
		}
	}
}

func TestIsPropertyAbsent(t *testing.T) {
	if !IsPropertyAbsent(CRNoSuchValue) || !IsPropertyAbsent(CRInvalidProperty) {
		t.Error("missing values are absent")
	}
	if IsPropertyAbsent(nil) || IsPropertyAbsent(CRAccessDenied) {
		t.Error("only missing values are absent")
	}
}

func TestTreeNode_Property(t *testing.T) {
	n := &TreeNode{Properties: []PropertyValue{{Property: PropService, Text: "usbhub3"}}}

	v, ok := n.Property(PropService)
	if !ok || v.Text != "usbhub3" {
		t.Errorf("expected service usbhub3, got %+v", v)
	}
	if _, ok := n.Property(PropDriver); ok {
		t.Error("driver was never read")
	}
}
