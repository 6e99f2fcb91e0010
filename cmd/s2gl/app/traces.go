package app

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/roman-kulish/doppler-if/internal/iq"
)

const (
	traceWidth  = 12 * vg.Inch
	traceHeight = 4 * vg.Inch
)

// TracePaths returns the IFI and IFQ plot file names for an output base.
func TracePaths(base string, format ImageFormat) (ifi, ifq string) {
	return fmt.Sprintf("%s_ifi.%s", base, format), fmt.Sprintf("%s_ifq.%s", base, format)
}

// WriteTraces plots the in-phase and quadrature projections of the signal
// against the sample number.
func WriteTraces(sig iq.Signal, base string, format ImageFormat) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if sig.Len() == 0 {
		return errors.New("nothing to plot: empty signal")
	}
	ifi, ifq := TracePaths(base, format)

	traces := []struct {
		title string
		path  string
		data  []float64
	}{
		{"IFI", ifi, sig.Real()},
		{"IFQ", ifq, sig.Imag()},
	}
	for _, tr := range traces {
		if err := writeTrace(tr.title, tr.path, tr.data); err != nil {
			return fmt.Errorf("plotting %s: %w", tr.title, err)
		}
	}

	return nil
}

func writeTrace(title, path string, data []float64) error {
	xys := make(plotter.XYs, len(data))
	for k, v := range data {
		xys[k].X = float64(k)
		xys[k].Y = v
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time [sample number]"
	p.Y.Label.Text = "Voltage (ADC level)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(traceWidth, traceHeight, path)
}
