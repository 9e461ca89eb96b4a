/*
 * Ridge32 - Main process.
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

// ridge32 is a non-interactive host harness: it loads a flat memory image,
// steps the CORE until a host-detected impossibility halts it or a step
// budget runs out, and logs the outcome. It has no REPL, no breakpoints, and
// no disassembly output -- the interactive debugger CLI is out of scope.
package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/ridge32/bus"
	"github.com/rcornwell/ridge32/config"
	"github.com/rcornwell/ridge32/cpu"
	"github.com/rcornwell/ridge32/image"
	"github.com/rcornwell/ridge32/internal/rlog"
	"github.com/rcornwell/ridge32/memory"
)

const defaultMemSize = 4 * 1024 * 1024

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optImage := getopt.StringLong("image", 'i', "", "Memory image to load (overrides config)")
	optMemSize := getopt.Uint32Long("memsize", 'm', 0, "Memory size in bytes (overrides config)")
	optSteps := getopt.Uint64Long("steps", 's', 0, "Step budget (0 = unbounded)")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Mirror every log record to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			slog.Error("creating log file", "err", err)
			os.Exit(1)
		}
	}
	handler := rlog.NewHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}, *optDebug)
	log := slog.New(handler)
	slog.SetDefault(log)

	cfg := config.Config{MemSize: defaultMemSize}
	if *optConfig != "" {
		loaded, err := config.Load(*optConfig)
		if err != nil {
			log.Error("loading configuration", "path", *optConfig, "err", err)
			os.Exit(1)
		}
		cfg = loaded
		if cfg.MemSize == 0 {
			cfg.MemSize = defaultMemSize
		}
	}
	if *optImage != "" {
		cfg.Image = *optImage
	}
	if *optMemSize != 0 {
		cfg.MemSize = *optMemSize
	}

	phys := memory.New(cfg.MemSize)
	if cfg.Image != "" {
		f, err := os.Open(cfg.Image)
		if err != nil {
			log.Error("opening image", "path", cfg.Image, "err", err)
			os.Exit(1)
		}
		n, err := image.Load(phys, cfg.Base, f)
		f.Close()
		if err != nil {
			log.Error("loading image", "path", cfg.Image, "err", err)
			os.Exit(1)
		}
		log.Info("image loaded", "path", cfg.Image, "bytes", n, "base", cfg.Base)
	}

	mem := memory.NewController(phys)
	b := bus.New()
	proc := cpu.New(mem, b, log)

	log.Info("ridge32 started", "memsize", cfg.MemSize, "pc", proc.PC)

	var steps uint64
	for {
		if *optSteps != 0 && steps >= *optSteps {
			log.Info("step budget exhausted", "steps", steps)
			break
		}
		if err := proc.Step(); err != nil {
			log.Error("halted", "kind", err.Kind, "msg", err.Error(), "pc", proc.PC, "steps", steps)
			os.Exit(1)
		}
		steps++
	}
}
