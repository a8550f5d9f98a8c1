// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package docscan finds the values of properties in JSON documents by path.
//
// Two strategies are provided. ScanValid drives a lexical scanner over the
// input and verifies the full ancestry of complex words. ScanLines works one
// physical line at a time and matches on the final segment of each word only;
// it tolerates input that cannot be tokenized at all. ScanFile tries the
// first and falls back to the second when the document is malformed.
package docscan

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creachadair/jlink"
)

// A Match reports one occurrence of an expected word.
type Match struct {
	Word  *jlink.Word // the expected word that matched
	Line  int         // 0-based line of the value
	Value string      // the normalized value
}

// Mode identifies the strategy used to scan a document.
type Mode int

const (
	Valid Mode = iota // tokenized, with full path verification
	Lines             // line by line, final segment only
)

func (m Mode) String() string {
	switch m {
	case Valid:
		return "valid"
	case Lines:
		return "lines"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ScanValid tokenizes the JSON document read from r and calls f for each
// value matching one of words, in input order. A single value may match
// several words, in which case f is called once for each.
//
// Unbalanced brackets are tolerated. ScanValid stops at the first lexical
// error, which is reported as a *jlink.SyntaxError; matches found before the
// error have already been delivered.
func ScanValid(r io.Reader, words []*jlink.Word, f func(Match)) error {
	s := jlink.NewScanner(r)
	s.AllowComments(true)
	t := NewTracker(words)
	for {
		if err := s.Next(); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		for _, m := range t.Advance(s.Token(), s.Text(), s.Line()) {
			f(m)
		}
	}
}

// ScanLines reads r line by line and calls f for each line containing the
// quoted name of one of words with a value that can be extracted from that
// line. Ancestry is not checked. Only errors from r are reported.
func ScanLines(r io.Reader, words []*jlink.Word, f func(Match)) error {
	br := bufio.NewReader(r)
	for line := 0; ; line++ {
		text, err := br.ReadString('\n')
		if text != "" {
			text = strings.TrimRight(text, "\r\n")
			for _, w := range words {
				if v, ok := ExtractValue(text, w.Name()); ok {
					f(Match{Word: w, Line: line, Value: v})
				}
			}
		}
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

// ScanFile scans the file at path for words and reports the mode that
// produced the matches. If the file is not well-formed JSON, it is scanned
// again line by line, and only the line-mode matches are delivered.
//
// A failure to read the file is returned as-is and no matches are reported.
func ScanFile(path string, words []*jlink.Word, f func(Match)) (Mode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Valid, err
	}
	return ScanBytes(data, words, f)
}

// ScanBytes is as ScanFile, for a document already in memory.
func ScanBytes(data []byte, words []*jlink.Word, f func(Match)) (Mode, error) {
	var found []Match
	err := ScanValid(bytes.NewReader(data), words, func(m Match) {
		found = append(found, m)
	})
	var serr *jlink.SyntaxError
	if errors.As(err, &serr) {
		return Lines, ScanLines(bytes.NewReader(data), words, f)
	} else if err != nil {
		return Valid, err
	}
	for _, m := range found {
		f(m)
	}
	return Valid, nil
}
