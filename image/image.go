/*
 * Ridge32 - Memory image loading
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

// Package image loads a flat big-endian memory image into physical memory.
// It understands no container format -- floppy and disk image parsers are
// out of scope for the core, and this is the minimum needed to get a reset
// image into memory for an end-to-end run.
package image

import (
	"io"

	"github.com/rcornwell/ridge32/memory"
)

// Load copies every byte of r into pm starting at base, and returns the
// number of bytes loaded. It reads in fixed-size chunks rather than all at
// once so an image of unknown size never forces a single huge allocation.
func Load(pm *memory.PhysicalMemory, base uint32, r io.Reader) (int, error) {
	var buf [4096]byte
	total := 0
	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			pm.LoadImage(base+uint32(total), buf[:n])
			total += n
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
