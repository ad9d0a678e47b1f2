package validation

import "testing"

func TestLuhn(t *testing.T) {
	cases := map[string]bool{
		"4111111111111111": true,
		"4111111111111112": false,
		"5500005555555559": true,
		"378282246310005":  true,
		"79927398713":      true,
		"79927398710":      false,
	}
	for digits, want := range cases {
		if got := luhnValid(digits); got != want {
			t.Fatalf("luhnValid(%s) = %v, want %v", digits, got, want)
		}
	}
}

func TestAllDigits(t *testing.T) {
	if allDigits("") {
		t.Fatalf("empty string is not all digits")
	}
	if allDigits("12a4") || allDigits("12 4") || allDigits("١٢٣") {
		t.Fatalf("non-ASCII-digit input accepted")
	}
	if !allDigits("0123456789") {
		t.Fatalf("digits rejected")
	}
}
