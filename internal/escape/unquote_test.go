// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jlink/internal/escape"
	"go4.org/mem"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
		err         error
	}{
		{"", "", nil},
		{"plain", "plain", nil},
		{`a\tb`, "a\tb", nil},
		{`\"quoted\"`, `"quoted"`, nil},
		{`\u0041\u00e9`, "Aé", nil},
		{`bad \uXYZW`, "bad �", nil},
		{`\q`, "�", nil},
		{`tail\`, "tail", escape.ErrIncomplete},
		{`short\u12`, "short", escape.ErrIncomplete},
	}
	for _, test := range tests {
		got, err := escape.Unquote(mem.S(test.input))
		if !errors.Is(err, test.err) {
			t.Errorf("Unquote(%#q): got error %v, want %v", test.input, err, test.err)
		}
		if got != test.want {
			t.Errorf("Unquote(%#q): got %q, want %q", test.input, got, test.want)
		}
	}
}

func TestLenient(t *testing.T) {
	if got := escape.Lenient(`id\`); got != "id" {
		t.Errorf("Lenient: got %q, want %q", got, "id")
	}
}
