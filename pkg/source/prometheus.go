package source

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/matzehuels/chartistry/pkg/errors"
	"github.com/matzehuels/chartistry/pkg/httputil"
)

// Prometheus runs a range query ending now. Every returned series becomes a
// column named after its label set.
type Prometheus struct {
	URL   string
	Query string
	// Range is how far back the query reaches; zero uses DefaultRange.
	Range time.Duration
	// Step is the resolution; zero divides Range into DefaultSteps.
	Step time.Duration
	// Now returns the end of the range; nil uses time.Now.
	Now func() time.Time
}

func (p *Prometheus) Kind() string { return KindPrometheus }

func (p *Prometheus) Describe() string {
	r, step := p.window()
	return fmt.Sprintf("%s|%s|%s|%s", p.URL, p.Query, r, step)
}

func (p *Prometheus) window() (time.Duration, time.Duration) {
	r := p.Range
	if r <= 0 {
		r = DefaultRange
	}
	step := p.Step
	if step <= 0 {
		step = max(r/DefaultSteps, time.Second)
	}
	return r, step
}

func (p *Prometheus) Load(ctx context.Context) (*Table, error) {
	client, err := api.NewClient(api.Config{Address: p.URL, RoundTripper: &httputil.Transport{}})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "prometheus client")
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	r, step := p.window()
	end := now()
	window := v1.Range{Start: end.Add(-r), End: end, Step: step}

	var value model.Value
	err = httputil.RetryWithBackoff(ctx, func() error {
		v, _, err := v1.NewAPI(client).QueryRange(ctx, p.Query, window)
		if err != nil {
			if transient(err) {
				return httputil.Retryable(err)
			}
			return err
		}
		value = v
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "query %s", p.URL)
	}

	matrix, ok := value.(model.Matrix)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidSource, "prometheus returned %s, want matrix", value.Type())
	}
	return fromMatrix(matrix), nil
}

// transient reports whether a query error is worth retrying. Bad queries are
// not.
func transient(err error) bool {
	var apiErr *v1.Error
	if stderrors.As(err, &apiErr) {
		return apiErr.Type == v1.ErrServer || apiErr.Type == v1.ErrTimeout
	}
	return true
}

// fromMatrix aligns the series of m on the union of their timestamps.
// Samples a series lacks are NaN.
func fromMatrix(m model.Matrix) *Table {
	seen := map[model.Time]bool{}
	var stamps []model.Time
	for _, s := range m {
		for _, v := range s.Values {
			if !seen[v.Timestamp] {
				seen[v.Timestamp] = true
				stamps = append(stamps, v.Timestamp)
			}
		}
	}
	slices.Sort(stamps)
	index := make(map[model.Time]int, len(stamps))
	t := &Table{Time: true, X: make([]float64, len(stamps))}
	for i, ts := range stamps {
		index[ts] = i
		t.X[i] = float64(ts) / 1000
	}

	for _, s := range m {
		col := Column{Name: s.Metric.String(), Values: make([]float64, len(stamps))}
		for i := range col.Values {
			col.Values[i] = math.NaN()
		}
		for _, v := range s.Values {
			col.Values[index[v.Timestamp]] = float64(v.Value)
		}
		t.Columns = append(t.Columns, col)
	}
	return t
}
