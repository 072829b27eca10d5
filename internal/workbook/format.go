package workbook

import (
	"bytes"
	"fmt"
	"os"

	"telcli/internal/errors"
)

// Format identifies the on-disk container of a workbook file.
type Format string

const (
	// FormatXLSX is the OOXML ZIP container used by .xlsx files.
	FormatXLSX Format = "xlsx"
	// FormatXLS is the OLE compound document container used by legacy
	// .xls files.
	FormatXLS Format = "xls"
	// FormatUnknown means the file matched no known signature.
	FormatUnknown Format = "unknown"
)

var (
	// ZIP local file header, first entry of every OOXML workbook.
	zipSignature = []byte{0x50, 0x4B, 0x03, 0x04}
	// OLE compound document header.
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFormat reads the file's magic bytes and reports its container
// format. Extension is deliberately ignored; files get renamed and
// mislabeled in the field.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FormatUnknown, errors.NewNotFoundError(fmt.Sprintf("workbook %s", path))
		}
		return FormatUnknown, errors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	header := make([]byte, 8)
	n, err := f.Read(header)
	if err != nil && n == 0 {
		return FormatUnknown, nil
	}
	header = header[:n]

	if bytes.HasPrefix(header, zipSignature) {
		return FormatXLSX, nil
	}
	if bytes.HasPrefix(header, oleSignature) {
		return FormatXLS, nil
	}
	return FormatUnknown, nil
}
