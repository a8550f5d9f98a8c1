// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jlink

import (
	"errors"
	"strings"

	"github.com/creachadair/jlink/internal/escape"
	"go4.org/mem"
)

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error for an incomplete escape sequence.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	out, err := escape.Unquote(mem.S(src[1 : len(src)-1]))
	if err != nil {
		return "", err
	}
	return out, nil
}
