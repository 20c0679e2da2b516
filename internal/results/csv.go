package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

// ExportCSV writes the full (unfiltered) result set to a timestamped CSV
// file in dir, using encoding/csv the way ted's database.go does for its
// spill files. Returns the path written. The filename follows §6's
// Persisted state contract (query_results_YYYYMMDD_HHMMSS.csv), matching
// the original's format!("query_results_{}.csv", timestamp).
func (n *Navigator) ExportCSV(dir string) (string, error) {
	name := fmt.Sprintf("query_results_%s.csv", time.Now().Format("20060102_150405"))
	path := name
	if dir != "" {
		path = dir + string(os.PathSeparator) + name
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(n.Set.Headers); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range n.Set.Rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, nil
}
