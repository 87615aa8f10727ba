// Package irq defines the basic interfaces for working with a 6502 family
// interrupt source. A device that can assert IRQ or NMI implements Sender
// so the CPU core can poll it without being coupled to that device's
// implementation.
// NOTE: IRQ is level-sensitive and NMI is edge-triggered on real silicon,
//       but Sender itself doesn't distinguish them — the CPU core is
//       responsible for latching NMI's edge and re-checking IRQ's level
//       every time it looks.
package irq

// Sender defines the interface for an interrupt source.
type Sender interface {
	// Raised indicates whether the interrupt is currently held high.
	Raised() bool
}
