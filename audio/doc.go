// Package audio wraps the external audio tooling: ffmpeg for conversion and
// slicing, and a WAV header reader for frame counts.
package audio
