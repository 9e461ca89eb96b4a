/*
 * Ridge32 - Harness configuration file parser tests
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package config

import (
	"strings"
	"testing"
)

func TestParseBasicOptions(t *testing.T) {
	cfg, err := parse(strings.NewReader("memsize = 64K\nimage = /tmp/boot.img\nbase = 0x1000\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MemSize != 64*1024 {
		t.Errorf("MemSize = %d, want %d", cfg.MemSize, 64*1024)
	}
	if cfg.Image != "/tmp/boot.img" {
		t.Errorf("Image = %q", cfg.Image)
	}
	if cfg.Base != 0x1000 {
		t.Errorf("Base = %#x, want 0x1000", cfg.Base)
	}
}

func TestParseSkipsBlankLinesAndComments(t *testing.T) {
	cfg, err := parse(strings.NewReader("\n# a comment\nmemsize = 1M\n\n# trailing\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MemSize != 1024*1024 {
		t.Errorf("MemSize = %d, want %d", cfg.MemSize, 1024*1024)
	}
}

func TestParseUnknownOptionErrors(t *testing.T) {
	_, err := parse(strings.NewReader("bogus = 1\n"))
	if err == nil {
		t.Fatalf("expected an error for an unknown option")
	}
}

func TestParseMalformedLineErrors(t *testing.T) {
	_, err := parse(strings.NewReader("this line has no equals sign\n"))
	if err == nil {
		t.Fatalf("expected an error for a line without '='")
	}
}

func TestParseEmptyKeyErrors(t *testing.T) {
	_, err := parse(strings.NewReader("  = 5\n"))
	if err == nil {
		t.Fatalf("expected an error for an empty key")
	}
}

func TestParseSizeDecimalHexAndSuffixes(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
	}{
		{"1024", 1024},
		{"0x400", 0x400},
		{"2K", 2048},
		{"4M", 4 * 1024 * 1024},
		{"8k", 8192},
	}
	for _, c := range cases {
		got, err := parseSize(c.in)
		if err != nil {
			t.Fatalf("parseSize(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("parseSize(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseSizeInvalidErrors(t *testing.T) {
	if _, err := parseSize("not-a-number"); err == nil {
		t.Fatalf("expected an error for a malformed size")
	}
}

func TestKeysAreCaseInsensitive(t *testing.T) {
	cfg, err := parse(strings.NewReader("MemSize = 16\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MemSize != 16 {
		t.Errorf("MemSize = %d, want 16", cfg.MemSize)
	}
}
