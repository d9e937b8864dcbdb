package githash

import (
	"strings"
	"testing"
)

func TestSum_KnownBlob(t *testing.T) {
	// git hash-object on a file containing "hello" without a trailing newline
	got := Sum([]byte("blob 5\x00hello"))
	want := "b6fc4c620b67d95f953a5c1c1230aaab5db5a1b0"

	if got.String() != want {
		t.Errorf("Sum = %s, want %s", got, want)
	}
}

func TestParseSHA1(t *testing.T) {
	const hexHash = "b6fc4c620b67d95f953a5c1c1230aaab5db5a1b0"

	h, err := ParseSHA1(hexHash)
	if err != nil {
		t.Fatalf("ParseSHA1(%q): %v", hexHash, err)
	}
	if h.String() != hexHash {
		t.Errorf("String() = %s, want %s", h, hexHash)
	}
	if h.DirName() != "b6" || h.FileName() != hexHash[2:] {
		t.Errorf("DirName/FileName = %s/%s", h.DirName(), h.FileName())
	}

	upper, err := ParseSHA1(strings.ToUpper(hexHash))
	if err != nil {
		t.Fatalf("ParseSHA1(upper): %v", err)
	}
	if upper != h {
		t.Errorf("upper-case hash parsed to %s, want %s", upper, h)
	}
}

func TestParseSHA1_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "Empty", input: ""},
		{name: "TooShort", input: "abcdef"},
		{name: "TooLong", input: strings.Repeat("a", HexSize+2)},
		{name: "NotHex", input: strings.Repeat("z", HexSize)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseSHA1(test.input); err == nil {
				t.Errorf("ParseSHA1(%q) did not return an error", test.input)
			}
		})
	}
}

func TestFromBytes(t *testing.T) {
	raw := make([]byte, Size)
	for i := range raw {
		raw[i] = byte(i)
	}

	h, err := FromBytes(raw)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if h.String() != "000102030405060708090a0b0c0d0e0f10111213" {
		t.Errorf("FromBytes = %s", h)
	}

	if _, err := FromBytes(raw[:Size-1]); err == nil {
		t.Error("FromBytes accepted a short slice")
	}
}

func TestSHA1_IsZero(t *testing.T) {
	var h SHA1
	if !h.IsZero() {
		t.Error("zero value is not IsZero")
	}
	if Sum(nil).IsZero() {
		t.Error("Sum(nil) reported IsZero")
	}
}
