package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/kbukum/speechprep/errors"
	"github.com/kbukum/speechprep/sample"
)

// Header is the first record of every CSV.
var Header = []string{"wav_filename", "wav_filesize", "transcript"}

// WriteCSV writes the header and one record per sample.
func WriteCSV(w io.Writer, samples []sample.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, s := range samples {
		rec := []string{s.WavFilename, strconv.FormatInt(s.WavFilesize, 10), s.Transcript}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVPath names the CSV of split for a transcript: "talk.xml" and Train
// give "<dir>/talk_train.csv".
func CSVPath(dir, transcript string, split Split) string {
	base := strings.TrimSuffix(filepath.Base(transcript), filepath.Ext(transcript))
	return filepath.Join(dir, fmt.Sprintf("%s_%s.csv", base, split))
}

// WritePartitions writes one CSV per split into dir and returns their paths.
func WritePartitions(dir, transcript string, p Partitions) (map[Split]string, error) {
	paths := make(map[Split]string, len(Splits))
	for _, split := range Splits {
		path := CSVPath(dir, transcript, split)
		if err := writeFile(path, p[split]); err != nil {
			return nil, apperrors.Internal(err).WithDetail("path", path)
		}
		paths[split] = path
	}
	return paths, nil
}

func writeFile(path string, samples []sample.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, samples); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
