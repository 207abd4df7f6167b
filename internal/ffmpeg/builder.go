package ffmpeg

import (
	ffmpeggo "github.com/u2takey/ffmpeg-go"
)

// MuxerName returns the ffmpeg muxer (the -f value) for a container format.
// Every supported format is its own muxer name except mkv.
func MuxerName(format string) string {
	if format == "mkv" {
		return "matroska"
	}
	return format
}

// Build constructs the ffmpeg argument slice for req, without the binary
// name: one input, one output with -f <muxer>, -vcodec <codec> and
// -crf <quality>, then the global flags -hide_banner, -nostdin, -loglevel
// and either -y (overwrite) or -n. Without overwrite, -n makes ffmpeg
// refuse an output that appeared after the skip check instead of prompting.
func Build(req Request, verbose bool) []string {
	loglevel := "error"
	if verbose {
		loglevel = "info"
	}

	stream := ffmpeggo.Input(req.InputPath).
		Output(req.OutputPath, ffmpeggo.KwArgs{
			"format": MuxerName(req.Format),
			"vcodec": req.Codec,
			"crf":    req.Quality,
		})

	global := []string{"-hide_banner", "-nostdin", "-loglevel", loglevel}
	if !req.Overwrite {
		global = append(global, "-n")
	}
	stream = stream.GlobalArgs(global...)

	if req.Overwrite {
		stream = stream.OverWriteOutput()
	}
	return stream.GetArgs()
}
