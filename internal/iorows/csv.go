package iorows

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type csvSource struct {
	file   *os.File
	bar    *pb.ProgressBar
	reader *csv.Reader
	header []string
}

// OpenCSV opens a CSV file and reads its header. The content is decoded
// from encName to UTF-8, a byte order mark is removed. When withProgress
// is true a progress bar of read bytes is shown.
func OpenCSV(path, encName string, withProgress bool) (Source, error) {
	enc, err := Encoding(encName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, InputNotFoundError(path, err)
	}

	res := &csvSource{file: f}
	var r io.Reader = f
	if withProgress {
		var size int64
		if info, err := f.Stat(); err == nil {
			size = info.Size()
		}
		res.bar = pb.Full.Start64(size)
		res.bar.Set("prefix", "Reading rows: ")
		res.bar.Set(pb.Bytes, true)
		res.bar.Set(pb.CleanOnFinish, true)
		r = res.bar.NewProxyReader(f)
	}

	r = transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
	res.reader = csv.NewReader(r)
	// rows with missing or extra fields are handled by Columns
	res.reader.FieldsPerRecord = -1

	header, err := res.reader.Read()
	if err != nil {
		res.Close()
		if errors.Is(err, io.EOF) {
			err = errors.New("file is empty")
		}
		return nil, ReadError(path, err)
	}
	res.header = trimHeader(header)

	return res, nil
}

func (s *csvSource) Header() []string {
	return s.header
}

func (s *csvSource) Next() ([]string, error) {
	return s.reader.Read()
}

func (s *csvSource) Close() error {
	if s.bar != nil {
		s.bar.Finish()
	}
	return s.file.Close()
}
