package swgl

import (
	"github.com/gogpu/swgl/internal/texture"
	"github.com/gogpu/swgl/shader"
)

// GenTextures creates n empty textures and returns their ids.
func (c *Context) GenTextures(n int) []uint32 {
	ids := make([]uint32, max(n, 0))
	for i := range ids {
		ids[i] = c.textures.Insert(texture.New())
	}
	return ids
}

// DeleteTextures deletes textures, unbinding them from every texture unit,
// framebuffer attachment and the clip mask. Locked textures are kept.
func (c *Context) DeleteTextures(ids ...uint32) {
	for _, id := range ids {
		if t, ok := c.textures.Find(id); ok && t.Locked() {
			c.warn("DeleteTextures", "texture is locked", "id", id)
			continue
		}
		c.textures.Erase(id)
	}
}

func (c *Context) onEraseTexture(id uint32, _ *texture.Texture) {
	for i, u := range c.units {
		if u == id {
			c.units[i] = 0
		}
	}
	c.framebuffers.Each(func(_ uint32, fb *framebuffer) { fb.detach(id) })
	if fb, ok := c.framebuffers.Find(0); ok {
		fb.detach(id)
	}
	if c.clipMask == id {
		c.clipMask = 0
	}
}

// ActiveTexture selects the texture unit BindTexture and the texture calls
// operate on.
func (c *Context) ActiveTexture(unit int) {
	if unit < 0 || unit >= len(c.units) {
		c.warn("ActiveTexture", "unit out of range", "unit", unit, "units", len(c.units))
		return
	}
	c.activeUnit = unit
}

// BindTexture binds texture id to the active unit. Unknown ids are created.
func (c *Context) BindTexture(id uint32) {
	if id != 0 {
		c.textures.Get(id)
	}
	c.units[c.activeUnit] = id
}

// GenBuffers creates n empty buffers.
func (c *Context) GenBuffers(n int) []uint32 {
	ids := make([]uint32, max(n, 0))
	for i := range ids {
		ids[i] = c.buffers.Allocate()
	}
	return ids
}

// DeleteBuffers deletes buffers, unbinding them from every binding point
// and vertex array.
func (c *Context) DeleteBuffers(ids ...uint32) {
	for _, id := range ids {
		c.buffers.Erase(id)
	}
}

func (c *Context) onEraseBuffer(id uint32, _ *buffer) {
	for _, b := range []*uint32{&c.arrayBuffer, &c.pixelPackBuffer, &c.pixelUnpackBuffer} {
		if *b == id {
			*b = 0
		}
	}
	unbind := func(_ uint32, va *vertexArray) { va.detachBuffer(id) }
	c.vertexArrays.Each(unbind)
	if va, ok := c.vertexArrays.Find(0); ok {
		unbind(0, va)
	}
}

// bufferBinding returns the binding slot of target. The element array
// binding belongs to the bound vertex array.
func (c *Context) bufferBinding(target BufferTarget) *uint32 {
	switch target {
	case ArrayBuffer:
		return &c.arrayBuffer
	case ElementArrayBuffer:
		return &c.boundVertexArray().elementBuffer
	case PixelPackBuffer:
		return &c.pixelPackBuffer
	case PixelUnpackBuffer:
		return &c.pixelUnpackBuffer
	default:
		return nil
	}
}

// BindBuffer binds buffer id to target. Unknown ids are created.
func (c *Context) BindBuffer(target BufferTarget, id uint32) {
	slot := c.bufferBinding(target)
	if slot == nil {
		c.warn("BindBuffer", "invalid target", "target", target)
		return
	}
	if id != 0 {
		c.buffers.Get(id)
	}
	*slot = id
	if target == ElementArrayBuffer {
		c.boundVertexArray().validated = false
	}
}

// GenFramebuffers creates n framebuffers without attachments.
func (c *Context) GenFramebuffers(n int) []uint32 {
	ids := make([]uint32, max(n, 0))
	for i := range ids {
		ids[i] = c.framebuffers.Allocate()
	}
	return ids
}

// DeleteFramebuffers deletes framebuffers, unbinding them first.
func (c *Context) DeleteFramebuffers(ids ...uint32) {
	for _, id := range ids {
		c.framebuffers.Erase(id)
	}
}

func (c *Context) onEraseFramebuffer(id uint32, _ *framebuffer) {
	if c.readFramebuffer == id {
		c.readFramebuffer = 0
	}
	if c.drawFramebuffer == id {
		c.drawFramebuffer = 0
	}
}

// BindFramebuffer binds framebuffer id for reading, drawing or both.
func (c *Context) BindFramebuffer(target FramebufferTarget, id uint32) {
	if id != 0 {
		c.framebuffers.Get(id)
	}
	switch target {
	case Framebuffer:
		c.readFramebuffer, c.drawFramebuffer = id, id
	case ReadFramebuffer:
		c.readFramebuffer = id
	case DrawFramebuffer:
		c.drawFramebuffer = id
	default:
		c.warn("BindFramebuffer", "invalid target", "target", target)
	}
}

// GenVertexArrays creates n vertex arrays.
func (c *Context) GenVertexArrays(n int) []uint32 {
	ids := make([]uint32, max(n, 0))
	for i := range ids {
		ids[i] = c.vertexArrays.Allocate()
	}
	return ids
}

// DeleteVertexArrays deletes vertex arrays, reverting to the default one
// if a deleted array was bound.
func (c *Context) DeleteVertexArrays(ids ...uint32) {
	for _, id := range ids {
		c.vertexArrays.Erase(id)
	}
}

func (c *Context) onEraseVertexArray(id uint32, _ *vertexArray) {
	if c.vertexArray == id {
		c.vertexArray = 0
	}
}

// BindVertexArray binds vertex array id. Unknown ids are created.
func (c *Context) BindVertexArray(id uint32) {
	c.vertexArrays.Get(id)
	c.vertexArray = id
}

func (c *Context) boundVertexArray() *vertexArray {
	return c.vertexArrays.Get(c.vertexArray)
}

// program is a linked shader program.
type program struct {
	impl    shader.Program
	attribs map[string]int
	// deleted marks a program deleted while in use. It is erased once
	// another program is selected.
	deleted bool
}

// CreateProgram registers p and returns its id.
func (c *Context) CreateProgram(p shader.Program) uint32 {
	if p == nil {
		c.warn("CreateProgram", "nil program")
		return 0
	}
	return c.programs.Insert(&program{impl: p, attribs: make(map[string]int)})
}

// DeleteProgram deletes a program. A program in use keeps drawing until
// UseProgram selects another one; its id can no longer be selected.
func (c *Context) DeleteProgram(id uint32) {
	if id != 0 && id == c.currentProgram {
		if p, ok := c.programs.Find(id); ok {
			p.deleted = true
			return
		}
	}
	c.programs.Erase(id)
}

func (c *Context) onEraseProgram(id uint32, _ *program) {
	if c.currentProgram == id {
		c.currentProgram = 0
	}
}

// UseProgram selects the program used by draws.
func (c *Context) UseProgram(id uint32) {
	if id != 0 {
		if p, ok := c.programs.Find(id); !ok || p.impl == nil || p.deleted {
			c.warn("UseProgram", "unknown program", "id", id)
			return
		}
	}
	if p, ok := c.programs.Find(c.currentProgram); ok && p.deleted {
		c.programs.Erase(c.currentProgram)
	}
	c.currentProgram = id
}

// BindAttribLocation assigns attribute name of program id to index.
func (c *Context) BindAttribLocation(id uint32, index int, name string) {
	p, ok := c.programs.Find(id)
	if !ok || p.impl == nil {
		c.warn("BindAttribLocation", "unknown program", "id", id)
		return
	}
	if index < 0 || index >= shader.MaxAttribs {
		c.warn("BindAttribLocation", "index out of range", "index", index)
		return
	}
	if b, ok := p.impl.(shader.AttribBinder); ok {
		b.BindAttribLocation(name, index)
		return
	}
	p.attribs[name] = index
}

// GetAttribLocation returns the index of attribute name, or -1.
func (c *Context) GetAttribLocation(id uint32, name string) int {
	p, ok := c.programs.Find(id)
	if !ok || p.impl == nil {
		return -1
	}
	if b, ok := p.impl.(shader.AttribBinder); ok {
		return b.AttribLocation(name)
	}
	if i, ok := p.attribs[name]; ok {
		return i
	}
	return -1
}

// GenQueries creates n queries.
func (c *Context) GenQueries(n int) []uint32 {
	ids := make([]uint32, max(n, 0))
	for i := range ids {
		ids[i] = c.queries.Allocate()
	}
	return ids
}

// DeleteQueries deletes queries, ending them if active.
func (c *Context) DeleteQueries(ids ...uint32) {
	for _, id := range ids {
		c.queries.Erase(id)
	}
}

func (c *Context) onEraseQuery(id uint32, _ *query) {
	for i, q := range c.activeQueries {
		if q == id {
			c.activeQueries[i] = 0
		}
	}
}
