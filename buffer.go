package swgl

// buffer is a byte array whose capacity may exceed its size. Growth is by a
// factor of 1.5 so repeated BufferData calls of increasing size stay cheap.
type buffer struct {
	data []byte
}

// allocate resizes b to size bytes, keeping the contents that fit. It
// reports whether new storage was allocated.
func (b *buffer) allocate(size int) bool {
	if size <= cap(b.data) {
		b.data = b.data[:size]
		return false
	}
	capacity := max(size, cap(b.data)+cap(b.data)/2)
	data := make([]byte, size, capacity)
	copy(data, b.data)
	b.data = data
	return true
}

// boundBuffer returns the buffer bound to target.
func (c *Context) boundBuffer(call string, target BufferTarget) (uint32, *buffer) {
	slot := c.bufferBinding(target)
	if slot == nil {
		c.warn(call, "invalid target", "target", target)
		return 0, nil
	}
	if *slot == 0 {
		c.warn(call, "no buffer bound", "target", target)
		return 0, nil
	}
	return *slot, c.buffers.Get(*slot)
}

// BufferData sizes the buffer bound to target and fills it from data. A nil
// data leaves the contents unspecified.
func (c *Context) BufferData(target BufferTarget, size int, data []byte) {
	id, b := c.boundBuffer("BufferData", target)
	if b == nil {
		return
	}
	if size < 0 || (data != nil && len(data) < size) {
		c.warn("BufferData", "size does not match data", "size", size, "len", len(data))
		return
	}
	if b.allocate(size) {
		c.logger().Debug("swgl: buffer allocated", "id", id, "size", size, "capacity", cap(b.data))
	}
	if data != nil {
		copy(b.data, data[:size])
	}
	c.invalidateVertexArrays(id)
}

// BufferSubData overwrites bytes of the buffer bound to target starting at
// offset.
func (c *Context) BufferSubData(target BufferTarget, offset int, data []byte) {
	id, b := c.boundBuffer("BufferSubData", target)
	if b == nil {
		return
	}
	if offset < 0 || offset+len(data) > len(b.data) {
		c.warn("BufferSubData", "range out of bounds", "offset", offset, "len", len(data), "size", len(b.data))
		return
	}
	copy(b.data[offset:], data)
	c.invalidateVertexArrays(id)
}

// GetBufferSubData copies bytes of the buffer bound to target starting at
// offset into out.
func (c *Context) GetBufferSubData(target BufferTarget, offset int, out []byte) {
	_, b := c.boundBuffer("GetBufferSubData", target)
	if b == nil {
		return
	}
	if offset < 0 || offset+len(out) > len(b.data) {
		c.warn("GetBufferSubData", "range out of bounds", "offset", offset, "len", len(out), "size", len(b.data))
		return
	}
	copy(out, b.data[offset:])
}

// invalidateVertexArrays marks every vertex array reading buffer id for
// revalidation.
func (c *Context) invalidateVertexArrays(id uint32) {
	mark := func(_ uint32, va *vertexArray) {
		if va.uses(id) {
			va.validated = false
		}
	}
	c.vertexArrays.Each(mark)
	if va, ok := c.vertexArrays.Find(0); ok {
		mark(0, va)
	}
}
