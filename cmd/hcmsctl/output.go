package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cmlabs-hris/hcms-backend-go/internal/client/store"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable writes tab separated rows aligned into columns.
func printTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func printPagination(w io.Writer, p store.Pagination, count int) {
	fmt.Fprintf(w, "\n%d of %d (page %d/%d)\n", count, p.TotalElements, p.Page+1, max(p.TotalPages, 1))
}

func pageInfo[T any](p page.Page[T]) store.Pagination {
	return store.Pagination{
		Page:          p.Number,
		Size:          p.Size,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
	}
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func idOrDash(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprint(*id)
}

func fullName(first string, last *string) string {
	if last == nil || *last == "" {
		return first
	}
	return first + " " + *last
}

func minutesLabel(total int) string {
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}
