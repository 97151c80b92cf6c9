package benchhash

import (
	"fmt"
	"io"
)

// Report writes benchmark results as a tab-separated table.
//
// Words and Hashmap are printed in millions of keys per second, Bulk64K and
// Bulk16M in GB/s, all with two decimals.
type Report struct {
	w io.Writer
}

// NewReport writes the table header naming source and returns a Report
// ready for rows.
func NewReport(w io.Writer, source string) (*Report, error) {
	if _, err := fmt.Fprintf(w, "Benchmarking\t%s\nHashFunction\tWords\tHashmap\tBulk64K\tBulk16M\n", source); err != nil {
		return nil, err
	}
	return &Report{w: w}, nil
}

// Add writes one row for r.
func (rep *Report) Add(r Result) error {
	sep := "\t"
	if len(r.Name) < 8 {
		sep = "\t\t"
	}
	_, err := fmt.Fprintf(rep.w, "%s%s%.2f\t%.2f\t%.2f\t%.2f\n",
		r.Name, sep, 1e-6*r.Words, 1e-6*r.Hashmap, 1e-9*r.Bulk64K, 1e-9*r.Bulk16M)
	return err
}
