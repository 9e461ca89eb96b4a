/*
 * Ridge32 - Harness configuration file parser
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

// Package config reads the harness's configuration file: one "key = value"
// pair per line, blank lines and '#' comments ignored. It knows nothing of
// devices or models -- that registration machinery is out of scope since
// device implementations themselves are out of scope for the core.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config holds the handful of options the host harness needs.
type Config struct {
	MemSize uint32 // bytes, default chosen by the caller if unset (zero)
	Image   string // path to the flat memory image
	Base    uint32 // load address for the image
}

// Load reads a configuration file from path.
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()
	return parse(file)
}

func parse(r io.Reader) (Config, error) {
	cfg := Config{}
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, err := splitOption(line, lineNumber)
		if err != nil {
			return Config{}, err
		}
		switch strings.ToLower(key) {
		case "memsize":
			n, err := parseSize(value)
			if err != nil {
				return Config{}, fmt.Errorf("line %d: memsize: %w", lineNumber, err)
			}
			cfg.MemSize = n
		case "image":
			cfg.Image = value
		case "base":
			n, err := parseSize(value)
			if err != nil {
				return Config{}, fmt.Errorf("line %d: base: %w", lineNumber, err)
			}
			cfg.Base = n
		default:
			return Config{}, fmt.Errorf("line %d: unknown option %q", lineNumber, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func splitOption(line string, lineNumber int) (key, value string, err error) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return "", "", fmt.Errorf("line %d: expected key=value, got %q", lineNumber, line)
	}
	key = strings.TrimSpace(line[:i])
	value = strings.TrimSpace(line[i+1:])
	if key == "" {
		return "", "", errors.New("line " + fmt.Sprint(lineNumber) + ": empty key")
	}
	return key, value, nil
}

// parseSize accepts a bare decimal or hex (0x-prefixed) number, optionally
// followed by K or M (base-1024), matching the teacher's own size-option
// convention.
func parseSize(s string) (uint32, error) {
	mult := uint64(1)
	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "K"):
		mult = 1024
		s = s[:len(s)-1]
	case strings.HasSuffix(upper, "M"):
		mult = 1024 * 1024
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n * mult), nil
}
