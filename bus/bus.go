/*
 * Ridge32 - External bus
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

// Package bus implements the programmed-I/O bus the core's READ/WRITE and
// MAINT opcodes talk to: a small set of devices, scanned in registration
// order, with a single latched interrupt request at a time. Device
// implementations themselves (floppy, printer, disk, display/keyboard) are
// out of scope for the core; this package only implements the contract
// those devices are expected to satisfy.
package bus

// Status bits returned from Read/Write, per the spec's boundary contract.
const (
	StatusNotReady uint32 = 1 << 31
	StatusTimeout  uint32 = 1 << 30
	StatusOK       uint32 = 0
)

// Device is the contract a bus-attached device must satisfy. Read and
// Write are addressed by a 24-bit deviceData word already split out of the
// instruction's register operand by the Processor; InterruptPending and
// AckInterrupt back the bus's single-slot interrupt latch.
type Device interface {
	Read(deviceData uint32) (data uint32, status uint32)
	Write(deviceData uint32, data uint32) (status uint32)
	InterruptPending() bool
	AckInterrupt() uint32 // returns the IOIR
}

// Bus owns the device table and the single pending-interrupt latch. The
// Processor holds unique access to it for the duration of a step, matching
// the single-threaded resource model in the spec.
type Bus struct {
	devices []Device
	pending Device // latched until acked by an ExternalInterrupt delivery or ITEST
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{}
}

// Register attaches a device. Priority among simultaneously-interrupting
// devices is registration order -- the first one registered that is still
// asserting wins, matching the spec's "devices are kept in registration
// order" rule.
func (b *Bus) Register(d Device) {
	b.devices = append(b.devices, d)
}

// Read performs a bus READ: device selects the target, deviceData carries
// the addressed-word low bits the instruction packed.
func (b *Bus) Read(device uint8, deviceData uint32) (data uint32, status uint32) {
	d := b.deviceAt(device)
	if d == nil {
		return 0, StatusNotReady
	}
	return d.Read(deviceData)
}

// Write performs a bus WRITE.
func (b *Bus) Write(device uint8, deviceData uint32, data uint32) (status uint32) {
	d := b.deviceAt(device)
	if d == nil {
		return StatusNotReady
	}
	return d.Write(deviceData, data)
}

func (b *Bus) deviceAt(device uint8) Device {
	if int(device) >= len(b.devices) {
		return nil
	}
	return b.devices[device]
}

// PollInterrupt latches the highest-priority (earliest registered) device
// currently asserting an interrupt, if none is already latched, and
// returns it. Once latched, a request persists across calls until Ack
// clears it -- callers must not call PollInterrupt expecting it to replace
// an already-pending device.
func (b *Bus) PollInterrupt() (Device, bool) {
	if b.pending != nil {
		return b.pending, true
	}
	for _, d := range b.devices {
		if d.InterruptPending() {
			b.pending = d
			return d, true
		}
	}
	return nil, false
}

// Pending reports the currently latched device, if any, without scanning
// for a new one.
func (b *Bus) Pending() (Device, bool) {
	if b.pending == nil {
		return nil, false
	}
	return b.pending, true
}

// Ack clears the latch and returns the device's IOIR, as both ITEST (kernel)
// and ExternalInterrupt delivery (user) are specified to do.
func (b *Bus) Ack() uint32 {
	if b.pending == nil {
		return 0
	}
	ioir := b.pending.AckInterrupt()
	b.pending = nil
	return ioir
}
