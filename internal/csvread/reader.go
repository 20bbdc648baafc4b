package csvread

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/gyeh/attstats/internal/normalize"
)

// Options controls how the delimited source is decoded.
type Options struct {
	Delimiter rune
	Encoding  string // "iso-8859-1", "windows-1252" or "utf-8"
}

// DefaultOptions matches the E-Saúde export: semicolon-delimited Latin-1.
func DefaultOptions() Options {
	return Options{Delimiter: ';', Encoding: "iso-8859-1"}
}

// Cell values treated as missing on load.
var nanValues = []string{"", "NA", "NaN"}

// Load reads the delimited file at path into a frame of string columns with
// trimmed headers.
func Load(path string, opts Options) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	return Read(f, opts)
}

// Read decodes r according to opts and loads it into a frame.
func Read(r io.Reader, opts Options) (dataframe.DataFrame, error) {
	dec, err := decoder(opts.Encoding)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ';'
	}

	df := dataframe.ReadCSV(transform.NewReader(r, dec),
		dataframe.WithDelimiter(opts.Delimiter),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse csv: %w", df.Err)
	}

	if err := trimHeaders(df); err != nil {
		return dataframe.DataFrame{}, err
	}
	return df, nil
}

func trimHeaders(df dataframe.DataFrame) error {
	names := df.Names()
	seen := make(map[string]bool, len(names))
	for i, n := range names {
		names[i] = normalize.NormalizeHeader(n)
		if seen[names[i]] {
			return fmt.Errorf("duplicate column %q after trimming headers", names[i])
		}
		seen[names[i]] = true
	}
	if err := df.SetNames(names...); err != nil {
		return fmt.Errorf("set column names: %w", err)
	}
	return nil
}

func decoder(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}
