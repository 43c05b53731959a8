package core

// Chart-configuration value types mirror the structure the browser-side
// charting collaborator (Chart.js) consumes, so they marshal straight to
// its constructor argument.

type ChartType string

const (
	ChartBar      ChartType = "bar"
	ChartDoughnut ChartType = "doughnut"
)

type (
	ChartConfig struct {
		Type    ChartType    `json:"type"`
		Data    ChartData    `json:"data"`
		Options ChartOptions `json:"options"`
	}

	ChartData struct {
		Labels   []string       `json:"labels"`
		Datasets []ChartDataset `json:"datasets"`
	}

	ChartDataset struct {
		Data            []float64 `json:"data"`
		BackgroundColor []string  `json:"backgroundColor"`
		BorderColor     []string  `json:"borderColor"`
		BorderWidth     int       `json:"borderWidth"`
	}

	ChartOptions struct {
		Plugins ChartPlugins `json:"plugins"`
	}

	ChartPlugins struct {
		Legend ChartLegend `json:"legend"`
	}

	ChartLegend struct {
		Display bool `json:"display"`
	}
)

// ChartConfig renders the dataset as a chart of the given type with the
// legend hidden. Labels are always non-nil so an empty dataset still
// serializes as a valid, empty chart.
func (d Dataset) ChartConfig(t ChartType) ChartConfig {
	labels := d.Labels
	if labels == nil {
		labels = []string{}
	}
	data := d.Values
	if data == nil {
		data = []float64{}
	}
	fills := make([]string, len(d.Colors))
	borders := make([]string, len(d.Colors))
	for i, c := range d.Colors {
		fills[i] = c.Fill
		borders[i] = c.Border
	}
	return ChartConfig{
		Type: t,
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{{
				Data:            data,
				BackgroundColor: fills,
				BorderColor:     borders,
				BorderWidth:     1,
			}},
		},
	}
}
