package fracdiff

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/google/uuid"
)

// WriteText renders the table as aligned columns.
func (t Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "d\tadfStat\tpVal\tcorr\tcriticalVal95\t")
	for _, r := range t {
		fmt.Fprintf(tw, "%.2f\t%s\t%s\t%s\t%s\t\n",
			r.D, formatMetric(r.ADFStat), formatMetric(r.PValue), formatMetric(r.Corr), formatMetric(r.CriticalValue95))
	}
	return tw.Flush()
}

func formatMetric(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.6f", v)
}

// jsonRow mirrors Row with undefined metrics encoded as null.
type jsonRow struct {
	D               float64  `json:"d"`
	ADFStat         *float64 `json:"adfStat"`
	PValue          *float64 `json:"pVal"`
	Corr            *float64 `json:"corr"`
	CriticalValue95 *float64 `json:"criticalVal95"`
}

func optional(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func fromOptional(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

// MarshalJSON encodes NaN metrics as null.
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonRow{
		D:               r.D,
		ADFStat:         optional(r.ADFStat),
		PValue:          optional(r.PValue),
		Corr:            optional(r.Corr),
		CriticalValue95: optional(r.CriticalValue95),
	})
}

// UnmarshalJSON decodes null metrics as NaN.
func (r *Row) UnmarshalJSON(data []byte) error {
	var jr jsonRow
	if err := json.Unmarshal(data, &jr); err != nil {
		return err
	}
	*r = Row{
		D:               jr.D,
		ADFStat:         fromOptional(jr.ADFStat),
		PValue:          fromOptional(jr.PValue),
		Corr:            fromOptional(jr.Corr),
		CriticalValue95: fromOptional(jr.CriticalValue95),
	}
	return nil
}

// Report is the JSON document written for external plotting.
type Report struct {
	RunID             string   `json:"runId"`
	Source            string   `json:"source"`
	Significance      float64  `json:"significance"`
	Threshold         float64  `json:"threshold"`
	MinimumOrder      *float64 `json:"minimumOrder"`
	MeanCriticalValue *float64 `json:"meanCriticalVal95"`
	Results           Table    `json:"results"`
}

// NewReport builds a report from a search result.
func NewReport(res *Result, threshold float64) *Report {
	rep := &Report{
		RunID:             uuid.NewString(),
		Source:            res.Source,
		Significance:      res.Significance,
		Threshold:         threshold,
		MeanCriticalValue: optional(res.Table.MeanCriticalValue()),
		Results:           res.Table,
	}
	if res.Found {
		d := res.Order
		rep.MinimumOrder = &d
	}
	return rep
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
