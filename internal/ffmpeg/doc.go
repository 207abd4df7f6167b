// Package ffmpeg is the boundary to the external transcoding engine.
//
// [Build] turns a [Request] into an ffmpeg argument list using ffmpeg-go's
// stream builder, [Execute] runs it and captures stderr, and [Engine] ties
// the two together behind the [Transcoder] interface so the pipeline can be
// tested without a real binary.
//
// The engine's failure causes are not classified: a failed Result carries
// the exit error and the captured stderr for the operator to read.
package ffmpeg
