package ffmpeg

import (
	"testing"
)

func baseRequest() Request {
	return Request{
		InputPath:  "/in/a/b.mov",
		OutputPath: "/out/a/b.mp4",
		Format:     "mp4",
		Quality:    23,
		Codec:      "mpeg4",
	}
}

func TestBuild_CoreOptions(t *testing.T) {
	args := Build(baseRequest(), false)

	assertPair(t, args, "-i", "/in/a/b.mov")
	assertPair(t, args, "-f", "mp4")
	assertPair(t, args, "-vcodec", "mpeg4")
	assertPair(t, args, "-crf", "23")
	assertPair(t, args, "-loglevel", "error")
	assertHas(t, args, "-nostdin")
	assertHas(t, args, "/out/a/b.mp4")

	if indexOf(args, "-i") > indexOf(args, "/out/a/b.mp4") {
		t.Errorf("input must precede output: %v", args)
	}
}

func TestBuild_OverwriteFlags(t *testing.T) {
	req := baseRequest()

	args := Build(req, false)
	assertHas(t, args, "-n")
	if indexOf(args, "-y") >= 0 {
		t.Errorf("-y without overwrite: %v", args)
	}

	req.Overwrite = true
	args = Build(req, false)
	assertHas(t, args, "-y")
	if indexOf(args, "-n") >= 0 {
		t.Errorf("-n with overwrite: %v", args)
	}
}

func TestBuild_Verbose(t *testing.T) {
	assertPair(t, Build(baseRequest(), true), "-loglevel", "info")
}

func TestBuild_MuxerMapping(t *testing.T) {
	tests := []struct{ format, muxer string }{
		{"mp4", "mp4"},
		{"avi", "avi"},
		{"mov", "mov"},
		{"mkv", "matroska"},
	}
	for _, tt := range tests {
		req := baseRequest()
		req.Format = tt.format
		assertPair(t, Build(req, false), "-f", tt.muxer)
		if got := MuxerName(tt.format); got != tt.muxer {
			t.Errorf("MuxerName(%q) = %q, want %q", tt.format, got, tt.muxer)
		}
	}
}

func TestBuild_CodecUnvalidated(t *testing.T) {
	req := baseRequest()
	req.Codec = "no-such-codec"
	assertPair(t, Build(req, false), "-vcodec", "no-such-codec")
}

func indexOf(args []string, s string) int {
	for i, a := range args {
		if a == s {
			return i
		}
	}
	return -1
}

func assertHas(t *testing.T, args []string, s string) {
	t.Helper()
	if indexOf(args, s) < 0 {
		t.Errorf("missing %q in %v", s, args)
	}
}

func assertPair(t *testing.T, args []string, flag, value string) {
	t.Helper()
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag && args[i+1] == value {
			return
		}
	}
	t.Errorf("missing %s %s in %v", flag, value, args)
}
