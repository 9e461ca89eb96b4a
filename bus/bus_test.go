/*
 * Ridge32 - External bus tests
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

package bus

import "testing"

type fakeDevice struct {
	readData  uint32
	readStat  uint32
	writeStat uint32
	irq       bool
	ioir      uint32
	acked     int
}

func (d *fakeDevice) Read(deviceData uint32) (uint32, uint32)  { return d.readData, d.readStat }
func (d *fakeDevice) Write(deviceData, data uint32) uint32     { return d.writeStat }
func (d *fakeDevice) InterruptPending() bool                   { return d.irq }
func (d *fakeDevice) AckInterrupt() uint32 {
	d.acked++
	d.irq = false
	return d.ioir
}

func TestReadWriteUnregisteredDeviceIsNotReady(t *testing.T) {
	b := New()
	_, status := b.Read(0, 0)
	if status != StatusNotReady {
		t.Errorf("status = %#x, want StatusNotReady", status)
	}
	if status := b.Write(0, 0, 0); status != StatusNotReady {
		t.Errorf("write status = %#x, want StatusNotReady", status)
	}
}

func TestReadWriteDispatchesToRegisteredDevice(t *testing.T) {
	b := New()
	d := &fakeDevice{readData: 0xABCD, readStat: StatusOK}
	b.Register(d)

	data, status := b.Read(0, 0x123)
	if data != 0xABCD || status != StatusOK {
		t.Errorf("Read = %#x, %#x", data, status)
	}
}

func TestPollInterruptPicksEarliestRegisteredAsserting(t *testing.T) {
	b := New()
	first := &fakeDevice{irq: false}
	second := &fakeDevice{irq: true, ioir: 0x2}
	third := &fakeDevice{irq: true, ioir: 0x3}
	b.Register(first)
	b.Register(second)
	b.Register(third)

	d, ok := b.PollInterrupt()
	if !ok {
		t.Fatalf("expected a pending interrupt")
	}
	if d != second {
		t.Errorf("picked wrong device, want the earliest-registered asserting one")
	}
}

func TestPollInterruptLatchPersistsAcrossCalls(t *testing.T) {
	b := New()
	d := &fakeDevice{irq: true, ioir: 0x7}
	b.Register(d)

	first, _ := b.PollInterrupt()
	d.irq = false // device deasserts, but the latch must hold until Ack
	second, ok := b.PollInterrupt()
	if !ok || second != first {
		t.Errorf("latch did not persist across PollInterrupt calls")
	}
}

func TestAckClearsLatchAndReturnsIOIR(t *testing.T) {
	b := New()
	d := &fakeDevice{irq: true, ioir: 0x55}
	b.Register(d)
	b.PollInterrupt()

	ioir := b.Ack()
	if ioir != 0x55 {
		t.Errorf("Ack ioir = %#x, want 0x55", ioir)
	}
	if _, ok := b.Pending(); ok {
		t.Errorf("Pending still reports a device after Ack")
	}
	if d.acked != 1 {
		t.Errorf("device AckInterrupt called %d times, want 1", d.acked)
	}
}

func TestAckWithNothingPendingReturnsZero(t *testing.T) {
	b := New()
	if ioir := b.Ack(); ioir != 0 {
		t.Errorf("Ack with nothing pending = %#x, want 0", ioir)
	}
}

func TestPendingWithoutPriorPollReportsNothing(t *testing.T) {
	b := New()
	b.Register(&fakeDevice{irq: true})
	if _, ok := b.Pending(); ok {
		t.Errorf("Pending must not scan for a new device, only report the latch")
	}
}
