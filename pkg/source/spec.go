package source

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/matzehuels/chartistry/pkg/errors"
)

// Kinds of source.
const (
	KindJSON       = "json"
	KindCSV        = "csv"
	KindXLSX       = "xlsx"
	KindMongo      = "mongo"
	KindPrometheus = "prometheus"
)

// Spec describes a data source as written in a chart definition.
type Spec struct {
	Kind string `toml:"kind" json:"kind"`

	// Path is the data file of the file kinds, relative to the definition.
	Path string `toml:"path" json:"path,omitempty"`
	// Sheet selects the workbook sheet; empty takes the first.
	Sheet string `toml:"sheet" json:"sheet,omitempty"`

	// X names the x field or column; Y names the plotted ones. Prometheus
	// names its columns after the returned series and ignores both.
	X string   `toml:"x" json:"x,omitempty"`
	Y []string `toml:"y" json:"y,omitempty"`
	// TimeLayout parses string x values as timestamps. Empty accepts
	// RFC 3339 and plain dates.
	TimeLayout string `toml:"time_layout" json:"time_layout,omitempty"`

	URI        string `toml:"uri" json:"uri,omitempty"`
	Database   string `toml:"database" json:"database,omitempty"`
	Collection string `toml:"collection" json:"collection,omitempty"`
	// Filter is a MongoDB extended JSON query document.
	Filter string `toml:"filter" json:"filter,omitempty"`
	Limit  int64  `toml:"limit" json:"limit,omitempty"`

	URL   string   `toml:"url" json:"url,omitempty"`
	Query string   `toml:"query" json:"query,omitempty"`
	Range Duration `toml:"range" json:"range,omitempty"`
	Step  Duration `toml:"step" json:"step,omitempty"`
}

// Duration is a time.Duration written as a string such as "90m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Defaults for Prometheus queries.
const (
	DefaultRange = time.Hour
	DefaultSteps = 240
)

// Validate checks the fields the kind needs.
func (s Spec) Validate() error {
	switch s.Kind {
	case KindJSON, KindCSV, KindXLSX:
		if err := errors.ValidatePath(s.Path); err != nil {
			return err
		}
		if s.X == "" || len(s.Y) == 0 {
			return errors.New(errors.ErrCodeInvalidSource, "%s source needs x and y", s.Kind)
		}
	case KindMongo:
		if err := errors.ValidateMongoURI(s.URI); err != nil {
			return err
		}
		if s.Database == "" || s.Collection == "" {
			return errors.New(errors.ErrCodeInvalidSource, "mongo source needs database and collection")
		}
		if s.X == "" || len(s.Y) == 0 {
			return errors.New(errors.ErrCodeInvalidSource, "mongo source needs x and y")
		}
	case KindPrometheus:
		if err := errors.ValidateURL(s.URL); err != nil {
			return err
		}
		if s.Query == "" {
			return errors.New(errors.ErrCodeInvalidSource, "prometheus source needs a query")
		}
	case "":
		return errors.New(errors.ErrCodeInvalidSource, "source kind is required")
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown source kind %q", s.Kind)
	}
	return nil
}

// Open validates s and returns its loader. File paths are resolved against
// dir.
func Open(s Spec, dir string) (Loader, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, s.Path)
	switch s.Kind {
	case KindJSON:
		return &JSONFile{Path: path, X: s.X, Y: s.Y, TimeLayout: s.TimeLayout}, nil
	case KindCSV:
		return &CSVFile{Path: path, X: s.X, Y: s.Y, TimeLayout: s.TimeLayout}, nil
	case KindXLSX:
		return &Workbook{Path: path, Sheet: s.Sheet, X: s.X, Y: s.Y, TimeLayout: s.TimeLayout}, nil
	case KindMongo:
		return &Mongo{URI: s.URI, Database: s.Database, Collection: s.Collection,
			Filter: s.Filter, Limit: s.Limit, X: s.X, Y: s.Y}, nil
	case KindPrometheus:
		return &Prometheus{URL: s.URL, Query: s.Query, Range: s.Range.Duration, Step: s.Step.Duration}, nil
	}
	return nil, fmt.Errorf("unreachable source kind %q", s.Kind)
}
