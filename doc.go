// Package magenta cuts animation frames out of sprite atlases packed on a
// magenta background, for [Ebitengine] games.
//
// An atlas is a single image in which every animation frame is a separate
// island of pixels on exact magenta (255, 0, 255, 255). Frames are found by
// flood fill and numbered top-to-bottom, left-to-right. Frames may carry a
// transparent border; its width either comes from a metadata channel
// embedded in the atlas itself or is inferred from the frames.
//
// # Quick start
//
//	img, _, _ := image.Decode(f)
//	walk := magenta.NewAnim("walk", img)
//
//	// in Draw:
//	walk.Draw(screen, magenta.Vec2{X: 100, Y: 80}, t, 2, magenta.AnchorBottomCenter)
//
// For many instances of one animation, create an [AnimSprite] per instance.
// For whole asset sets, describe them in a YAML [Manifest] and load them
// with an [AnimLibrary]; a [Watcher] reloads atlases as they change on disk.
//
// # Segmentation
//
// [Segment] runs the pipeline on a [PixelGrid]: [Scan] finds the frame
// [Blob]s, [DecodeMeta] tries the last blob as a metadata channel, and
// [InferPadding] estimates the border when there is none. At draw time
// [FrameIndex], [SourceRect] and [DestRect] turn a time into texture and
// screen rectangles.
//
// # Metadata channel
//
// The channel is a rectangle of pure black (0), pure white (1) and fully
// transparent (skipped) pixels, read row by row and packed least-significant
// bit first. Its bytes are the magic 0xAA, a big-endian 16-bit payload
// length, the frame padding, and a reserved anchor byte. The magentify
// command writes it; [MetaImage] renders one.
//
// # Debugging
//
// Install a zap logger with [SetLogger] and call [SetDebugMode] to log
// segmentation timings. [DebugOverlay] outlines what was found.
//
// [Ebitengine]: https://ebitengine.org
package magenta
