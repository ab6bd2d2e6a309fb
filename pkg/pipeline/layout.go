package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartistry/pkg/chart"
	"github.com/matzehuels/chartistry/pkg/config"
	"github.com/matzehuels/chartistry/pkg/errors"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/source"
)

// Mounted is a chart mounted in its own runtime and measured. Close it when
// done.
type Mounted struct {
	Definition *config.Definition
	Table      *source.Table
	DataHash   string
	Chart      chart.Handle
	Runtime    *reactive.Runtime

	scope *reactive.Scope
}

// Mount mounts def plotting tbl and observes a width × height container.
func Mount(def *config.Definition, tbl *source.Table, dataHash string, width, height float64, logger *log.Logger) (*Mounted, error) {
	rt := reactive.NewRuntime()
	scope := rt.NewScope()
	h, err := config.Mount(scope, def, tbl, logger)
	if err != nil {
		scope.Dispose()
		return nil, err
	}
	h.Observe(width, height)
	if _, ok := h.Layout(); !ok {
		scope.Dispose()
		return nil, errors.New(errors.ErrCodeInternal, "chart %s did not lay out", def.Name)
	}
	return &Mounted{
		Definition: def,
		Table:      tbl,
		DataHash:   dataHash,
		Chart:      h,
		Runtime:    rt,
		scope:      scope,
	}, nil
}

// Close unmounts the chart and disposes its runtime's nodes.
func (m *Mounted) Close() {
	m.Chart.Unmount()
	m.scope.Dispose()
}
