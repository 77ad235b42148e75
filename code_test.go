package huffzip

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestCode_String(t *testing.T) {
	type testRow struct {
		code   Code
		expect string
	}

	testData := [...]testRow{
		{code: Code{}, expect: `""`},
		{code: MakeCode(1, 0), expect: `"0"`},
		{code: MakeCode(3, 0x6), expect: `"110"`},
		{code: MakeCode(4, 0x3), expect: `"0011"`},
		{code: MakeCode(64, 1), expect: `"` + strings.Repeat("0", 63) + `1"`},
	}
	for _, row := range testData {
		if actual := row.code.String(); actual != row.expect {
			t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
		}
	}
}

func TestParseCode(t *testing.T) {
	long := strings.Repeat("10", 100) + "1"
	for _, str := range []string{"0", "1", "0110", long, strings.Repeat("1", MaxCodeSize)} {
		hc, err := ParseCode(str)
		if err != nil {
			t.Errorf("ParseCode(%q) failed: %v", str, err)
			continue
		}
		if int(hc.Size) != len(str) {
			t.Errorf("ParseCode(%q): expected size %d, got %d", str, len(str), hc.Size)
		}
		if actual := hc.bitString(); actual != str {
			t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", str, actual)
		}
		if !hc.isClean() {
			t.Errorf("ParseCode(%q): stray bits past size", str)
		}
	}

	for _, str := range []string{"", "012", "abc", strings.Repeat("0", MaxCodeSize+1)} {
		if _, err := ParseCode(str); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("ParseCode(%q): expected ErrInvalidCode, got %v", str, err)
		}
	}
}

func TestCode_HasPrefix(t *testing.T) {
	mustParse := func(str string) Code {
		hc, err := ParseCode(str)
		if err != nil {
			panic(err)
		}
		return hc
	}

	long := strings.Repeat("1", 70)

	type testRow struct {
		code   string
		prefix string
		expect bool
	}

	testData := [...]testRow{
		{code: "0", prefix: "0", expect: true},
		{code: "01", prefix: "0", expect: true},
		{code: "01", prefix: "1", expect: false},
		{code: "0", prefix: "01", expect: false},
		{code: "1101", prefix: "110", expect: true},
		{code: "1101", prefix: "111", expect: false},
		{code: long + "0", prefix: long, expect: true},
		{code: long + "0", prefix: long[:69] + "0", expect: false},
	}
	for _, row := range testData {
		actual := mustParse(row.code).HasPrefix(mustParse(row.prefix))
		if actual != row.expect {
			t.Errorf("%q.HasPrefix(%q): expected %v, got %v", row.code, row.prefix, row.expect, actual)
		}
	}
}

func TestCode_Bytes(t *testing.T) {
	type testRow struct {
		code   string
		expect []byte
	}

	testData := [...]testRow{
		{code: "0", expect: []byte{0x00}},
		{code: "1", expect: []byte{0x80}},
		{code: "11", expect: []byte{0xc0}},
		{code: "10100101", expect: []byte{0xa5}},
		{code: "101001011", expect: []byte{0xa5, 0x80}},
		{code: strings.Repeat("1", 66), expect: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xc0}},
	}
	for _, row := range testData {
		hc, err := ParseCode(row.code)
		if err != nil {
			t.Fatalf("ParseCode(%q) failed: %v", row.code, err)
		}
		actual := hc.appendBytes(nil)
		if !bytes.Equal(row.expect, actual) {
			t.Errorf("wrong bytes for %q:\n\texpect: %#v\n\tactual: %#v", row.code, row.expect, actual)
		}
		back, ok := codeFromBytes(hc.Size, actual)
		if !ok || back != hc {
			t.Errorf("codeFromBytes(%d, %#v): expected %s, got %s (ok=%v)", hc.Size, actual, hc, back, ok)
		}
	}

	if _, ok := codeFromBytes(2, []byte{0xe0}); ok {
		t.Errorf("codeFromBytes accepted non-zero padding bits")
	}
}
