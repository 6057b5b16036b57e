package iorows

import (
	"errors"
	"io"
	"io/fs"

	"github.com/xuri/excelize/v2"
)

type xlsxSource struct {
	file   *excelize.File
	rows   *excelize.Rows
	header []string
}

// OpenXLSX opens the first sheet of a workbook and reads its header row.
func OpenXLSX(path string) (Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, InputNotFoundError(path, err)
		}
		return nil, ReadError(path, err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, ReadError(path, errors.New("no sheets found"))
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		f.Close()
		return nil, ReadError(path, err)
	}

	res := &xlsxSource{file: f, rows: rows}
	header, err := res.Next()
	if err != nil {
		res.Close()
		if errors.Is(err, io.EOF) {
			err = errors.New("sheet is empty")
		}
		return nil, ReadError(path, err)
	}
	res.header = trimHeader(header)

	return res, nil
}

func (s *xlsxSource) Header() []string {
	return s.header
}

func (s *xlsxSource) Next() ([]string, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return s.rows.Columns()
}

func (s *xlsxSource) Close() error {
	err := s.rows.Close()
	if e := s.file.Close(); err == nil {
		err = e
	}
	return err
}
