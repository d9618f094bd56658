// Package swgl is a software implementation of a GL-style rendering API.
//
// # Overview
//
// swgl renders into textures on the CPU. It exposes the object model of a
// GL context (textures, buffers, framebuffers, vertex arrays, programs and
// queries, named by uint32 ids) and draws triangles, quads and lines with a
// span rasterizer that processes four pixels at a time. Programs are Go
// values implementing shader.Program; package shaders has ready-made ones.
//
// # Quick Start
//
//	ctx := swgl.NewContext()
//	defer ctx.Destroy()
//
//	tex := ctx.GenTextures(1)[0]
//	ctx.BindTexture(tex)
//	ctx.TexStorage2D(gputypes.TextureFormatRGBA8Unorm, 256, 256)
//
//	fb := ctx.GenFramebuffers(1)[0]
//	ctx.BindFramebuffer(swgl.Framebuffer, fb)
//	ctx.FramebufferTexture2D(swgl.Framebuffer, swgl.ColorAttachment0, tex)
//	ctx.Viewport(0, 0, 256, 256)
//
//	ctx.ClearColor(0, 0, 0, 1)
//	ctx.Clear(swgl.ColorBufferBit)
//
//	prog := shaders.NewSolidColor([4]float32{1, 0, 0, 1})
//	prog.Transform = shaders.Ortho(256, 256)
//	ctx.UseProgram(ctx.CreateProgram(prog))
//	// upload vertices, then:
//	ctx.DrawArrays(gputypes.PrimitiveTopologyTriangleList, 0, 6)
//
// # Render Targets
//
// Color attachments are BGRA8 (RGBA8 requests are stored as BGRA8) or R8.
// Depth attachments use a run-length encoded 24-bit buffer, so large flat
// areas are tested and written one run at a time. The default framebuffer
// (id 0) has no attachments.
//
// Full-surface clears are delayed by default: rows are written only when a
// draw, readback or lock first touches them. See WithDelayedClear.
//
// # Errors
//
// GL-style calls do not return errors. A call that cannot proceed is logged
// at Warn level through the logger set with SetLogger or WithLogger, and
// has no effect. GetError always returns NoError.
//
// # Compositing
//
// LockTexture and LockFramebuffer pin a texture for use on another
// goroutine. Composite blits locked textures with scaling, flipping and
// clipping; CompositeYUV converts video planes to BGRA.
//
// # Thread Safety
//
// A Context must be used from one goroutine at a time. LockedTexture
// methods may be called concurrently with the owning context as long as the
// context does not draw to the locked texture meanwhile.
package swgl
