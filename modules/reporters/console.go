package reporters

import (
	"fmt"
	"io"
	"sort"
)

// Console renders results as aligned plain text, one row per service.
// Registered under the service name "console".
type Console struct{}

// Report implements Reporter.
func (c *Console) Report(w io.Writer, results []Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "(no services)")
		return err
	}

	// Sort for consistent output: manager first, then service, then config.
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

	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s/%s  (config %q, scope %q)\n",
			r.Manager, r.Service, r.Config, r.Scope); err != nil {
			return err
		}
	}
	return nil
}
