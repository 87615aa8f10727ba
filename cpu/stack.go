package cpu

// pushByte writes val to the current stack location then decrements S,
// wrapping modulo 256. The stack page is always $0100-$01FF.
func (c *CPU) pushByte(val uint8) {
	c.ram.Write(0x0100|uint16(c.S), val)
	c.S--
}

// pullByte increments S then reads from the new stack location, wrapping
// modulo 256.
func (c *CPU) pullByte() uint8 {
	c.S++
	return c.ram.Read(0x0100 | uint16(c.S))
}

// pushWord pushes a 16 bit value high byte first, matching the CPU's own
// push/pull ordering (distinct from the bus's little-endian Write16, which
// is a host-side convenience for things like seeding vectors).
func (c *CPU) pushWord(val uint16) {
	c.pushByte(uint8(val >> 8))
	c.pushByte(uint8(val & 0xFF))
}

// pullWord pulls a 16 bit value low byte first.
func (c *CPU) pullWord() uint16 {
	lo := c.pullByte()
	hi := c.pullByte()
	return uint16(hi)<<8 | uint16(lo)
}
