// Command aggregate builds a crime report from a saved crimes.json response,
// using the same decoder and aggregator as the service. Useful for checking
// report output against captured upstream data without network access.
//
// Usage:
//
//	go run ./cmd/aggregate -in testdata/crimes.json
//	curl -s "$CRIME_API_URL?lat=37.334164&lon=-121.884301&radius=0.002&key=." | go run ./cmd/aggregate
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/couchcryptid/crime-report-service/internal/adapter/spotcrime"
	"github.com/couchcryptid/crime-report-service/internal/domain"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("aggregate", flag.ContinueOnError)
	in := fs.String("in", "", "path to a crimes.json response (default stdin)")
	resultKey := fs.String("result-key", "crimes", "response member holding the record array")
	addressKey := fs.String("address-key", domain.DefaultFieldKeys.Address, "record field holding the address")
	typeKey := fs.String("type-key", domain.DefaultFieldKeys.Category, "record field holding the category")
	dateKey := fs.String("date-key", domain.DefaultFieldKeys.OccurredAt, "record field holding the timestamp")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r := stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	incidents, err := spotcrime.DecodeIncidents(r, *resultKey)
	if err != nil {
		return err
	}

	agg := domain.NewAggregator(domain.FieldKeys{Address: *addressKey, Category: *typeKey, OccurredAt: *dateKey})
	report := agg.Aggregate(incidents)
	if report.UnparsedTimes > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d of %d incidents have no usable time\n", report.UnparsedTimes, report.TotalCount)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
