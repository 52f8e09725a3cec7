package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/kbukum/speechprep/errors"
	"github.com/kbukum/speechprep/logger"
	"github.com/kbukum/speechprep/process"
)

const stderrTail = 512

// Target format of the training audio.
const (
	SampleRate = 16000
	Channels   = 1
	BitDepth   = 16
)

// FFmpeg runs ffmpeg through a process.Runner. It is safe for concurrent use.
type FFmpeg struct {
	runner *process.Runner
	binary string
	log    *logger.Logger
}

// NewFFmpeg creates an FFmpeg. An empty binary resolves "ffmpeg" on PATH.
func NewFFmpeg(runner *process.Runner, binary string, log *logger.Logger) *FFmpeg {
	if binary == "" {
		binary = "ffmpeg"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &FFmpeg{runner: runner, binary: binary, log: log.WithComponent("audio")}
}

// Extract copies [start, start+duration) of src into dst without
// re-encoding. A failed run removes whatever dst it left behind.
func (f *FFmpeg) Extract(ctx context.Context, src, dst string, start, duration float64) error {
	args := []string{
		"-i", src,
		"-ss", seconds(start),
		"-t", seconds(duration),
		"-c", "copy",
		dst,
	}
	if err := f.run(ctx, "extract", args); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}

// Convert transcodes src into a PCM WAV file at dst.
func (f *FFmpeg) Convert(ctx context.Context, src, dst string, sampleRate, channels, bitDepth int) error {
	codec, err := pcmCodec(bitDepth)
	if err != nil {
		return err
	}
	args := []string{
		"-i", src,
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
		"-acodec", codec,
		dst,
	}
	if err := f.run(ctx, "convert", args); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}

// WavPath returns the WAV file next to src: "talk.mp3" gives "talk.wav".
func WavPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".wav"
}

// EnsureWav returns the 16 kHz mono WAV for src, converting it first unless
// that file already exists.
func (f *FFmpeg) EnsureWav(ctx context.Context, src string) (string, error) {
	dst := WavPath(src)
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}
	f.log.Info("converting source audio", logger.Fields("from", src, "to", dst))
	if err := f.Convert(ctx, src, dst, SampleRate, Channels, BitDepth); err != nil {
		return dst, err
	}
	return dst, nil
}

func (f *FFmpeg) run(ctx context.Context, op string, args []string) error {
	// Keep stderr free of color escapes; its tail ends up in error details.
	cmd := process.Command{Binary: f.binary, Args: args, Env: []string{"AV_LOG_FORCE_NOCOLOR=1"}}
	res, err := f.runner.Run(ctx, cmd)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var appErr *apperrors.AppError
	if errors.Is(err, process.ErrTimeout) {
		appErr = apperrors.Timeout("ffmpeg " + op).WithCause(err)
	} else {
		appErr = apperrors.ExtractionFailed("ffmpeg", err)
		var exitErr *process.ExitError
		if errors.As(err, &exitErr) {
			appErr = appErr.WithDetail("exit_code", exitErr.Code)
		}
	}
	if tail := res.StderrTail(stderrTail); tail != "" {
		appErr = appErr.WithDetail("stderr", tail)
	}
	f.log.Debug("ffmpeg failed", logger.Fields("op", op, "command", cmd.String(), logger.FieldError, err.Error()))
	return appErr
}

func pcmCodec(bitDepth int) (string, error) {
	switch bitDepth {
	case 8:
		return "pcm_u8", nil
	case 16:
		return "pcm_s16le", nil
	case 24:
		return "pcm_s24le", nil
	case 32:
		return "pcm_s32le", nil
	default:
		return "", apperrors.InvalidInput("bit_depth", "unsupported PCM bit depth "+strconv.Itoa(bitDepth))
	}
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
