package card

import "testing"

func TestValid_KnownGoodNumber(t *testing.T) {
	if !Valid("4532015112830366") {
		t.Error("expected valid Luhn number to pass")
	}
}

func TestValid_LastDigitFlipped(t *testing.T) {
	if Valid("4532015112830367") {
		t.Error("expected flipped check digit to fail")
	}
}

func TestValid_Empty(t *testing.T) {
	if Valid("") {
		t.Error("expected empty input to fail")
	}
}

func TestValid_NonNumeric(t *testing.T) {
	if Valid("abcd1234abcd1234") {
		t.Error("expected non-numeric input to fail")
	}
}

func TestValid_SpacesStripped(t *testing.T) {
	if !Valid("4532 0151 1283 0366") {
		t.Error("expected spaced number to pass")
	}
}

func TestValid_LengthBounds(t *testing.T) {
	// 12 digits, too short even though the checksum holds.
	if Valid("000000000000") {
		t.Error("expected 12-digit number to fail")
	}
	// 20 digits, too long.
	if Valid("00000000000000000000") {
		t.Error("expected 20-digit number to fail")
	}
}

func TestBrandOf(t *testing.T) {
	cases := []struct {
		number string
		want   Brand
	}{
		{"4532015112830366", BrandVisa},
		{"5105105105105100", BrandMastercard},
		{"5505105105105100", BrandMastercard},
		{"371449635398431", BrandAmex},
		{"341449635398431", BrandAmex},
		{"6011111111111117", BrandDiscover},
		{"6511111111111117", BrandDiscover},
		{"9991111111111117", BrandUnknown},
		{"5605105105105100", BrandUnknown},
		{"", BrandUnknown},
	}

	for _, tc := range cases {
		if got := BrandOf(tc.number); got != tc.want {
			t.Errorf("BrandOf(%q) = %s, want %s", tc.number, got, tc.want)
		}
	}
}

func TestLastFour(t *testing.T) {
	if got := LastFour("4532 0151 1283 0366"); got != "0366" {
		t.Errorf("expected 0366, got %s", got)
	}
	if got := LastFour("123"); got != "123" {
		t.Errorf("expected 123, got %s", got)
	}
}
