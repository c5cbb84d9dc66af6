package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/poiesic/prospect/core"
)

// WriteCSV writes the corpus to w as CSV with a header row.
// Columns are source, title, url and, when includeDescription is set,
// description. Rows appear in corpus insertion order.
func WriteCSV(w io.Writer, corpus *core.Corpus, includeDescription bool) error {
	cw := csv.NewWriter(w)

	header := []string{"source", "title", "url"}
	if includeDescription {
		header = append(header, "description")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, record := range corpus.Records() {
		row := []string{record.Source, record.Title, record.URL}
		if includeDescription {
			row = append(row, record.Description)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTable writes the corpus to w as an aligned text table.
func WriteTable(w io.Writer, corpus *core.Corpus) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "SOURCE\tTITLE\tURL")
	for _, record := range corpus.Records() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", record.Source, record.Title, record.URL)
	}

	return tw.Flush()
}

// WriteResults writes query results to w as an aligned text table,
// one row per hit with its similarity score.
func WriteResults(w io.Writer, results []*core.SearchResult) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "SCORE\tSOURCE\tTITLE\tURL")
	for _, result := range results {
		fmt.Fprintf(tw, "%.4f\t%s\t%s\t%s\n",
			result.Score, result.Record.Source, result.Record.Title, result.Record.URL)
	}

	return tw.Flush()
}
