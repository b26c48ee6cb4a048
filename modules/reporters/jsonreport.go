package reporters

import (
	"encoding/json"
	"io"
	"sort"
)

// JSONReport renders results as an indented JSON array. Registered under
// the service name "jsonreport".
type JSONReport struct{}

// Report implements Reporter.
func (j *JSONReport) Report(w io.Writer, results []Result) error {
	rows := append([]Result(nil), results...)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Manager != rows[j].Manager {
			return rows[i].Manager < rows[j].Manager
		}
		if rows[i].Service != rows[j].Service {
			return rows[i].Service < rows[j].Service
		}
		return rows[i].Config < rows[j].Config
	})
	if rows == nil {
		rows = []Result{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
