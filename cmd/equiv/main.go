package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	equiv "github.com/reoring/equiv"
	"github.com/reoring/equiv/dataset"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "diff":
		diffCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "equiv CLI\n\nUsage:\n  equiv diff [-exclude-table name[,name...]] [-exclude member[,member...]] [-allow-mismatched-types] [-fail-fast] <expected> <actual>\n\nNotes:\n  - Input files are datasets in JSON or YAML (chosen by extension).\n  - Exit code is 1 when the datasets differ.")
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	var excludeTables string
	var excludeMembers string
	var allowMismatched bool
	var failFast bool
	fs.StringVar(&excludeTables, "exclude-table", "", "comma-separated table names to skip entirely")
	fs.StringVar(&excludeMembers, "exclude", "", "comma-separated member names to skip")
	fs.BoolVar(&allowMismatched, "allow-mismatched-types", false, "tolerate differing concrete types")
	fs.BoolVar(&failFast, "fail-fast", false, "stop at the first difference")
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(2)
	}

	expected := loadDataSet(fs.Arg(0))
	actual := loadDataSet(fs.Arg(1))

	opts := []equiv.Option{equiv.WithRootLabel("DataSet")}
	if ts := splitCSV(excludeTables); len(ts) > 0 {
		opts = append(opts, equiv.WithExcludedTable(ts...))
	}
	if ms := splitCSV(excludeMembers); len(ms) > 0 {
		opts = append(opts, equiv.WithExcludedMembers(ms...))
	}
	if allowMismatched {
		opts = append(opts, equiv.WithAllowMismatchedTypes())
	}

	ctx := context.Background()
	if failFast {
		ctx = equiv.WithFailFast(ctx, true)
	}

	err := equiv.Compare(ctx, actual, expected, opts...)
	if err == nil {
		fmt.Println("datasets are equivalent")
		return
	}
	if ff, ok := equiv.AsFailures(err); ok {
		fmt.Print(equiv.Render(ff))
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "equiv:", err)
	os.Exit(2)
}

func loadDataSet(name string) *dataset.DataSet {
	data, err := os.ReadFile(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "equiv:", err)
		os.Exit(2)
	}
	ds, err := dataset.Decode(name, data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "equiv:", err)
		os.Exit(2)
	}
	return ds
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
