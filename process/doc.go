// Package process runs external tools such as ffmpeg as subprocesses.
//
// Run executes one command in its own process group and captures its output.
// Runner adds a per-attempt timeout and optional retries with exponential
// backoff.
package process
