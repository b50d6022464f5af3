package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ghuser/stockroom/pkg/errhttp"
	catalogdomain "github.com/ghuser/stockroom/services/catalog/domain"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// Exit codes.
const (
	exitFailure  = 1
	exitUsage    = 2
	exitRejected = 3 // validation, conflict, integrity or denial
	exitNotFound = 4
)

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func exitCode(err error) int {
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		return exitUsage
	case errors.Is(err, catalogdomain.ErrCategoryNotFound), errors.Is(err, catalogdomain.ErrItemNotFound):
		return exitNotFound
	case errors.Is(err, catalogdomain.ErrInvalidInput),
		errors.Is(err, catalogdomain.ErrCategoryNameTaken),
		errors.Is(err, catalogdomain.ErrCategoryMissing),
		errors.Is(err, catalogdomain.ErrDeletionDenied):
		return exitRejected
	default:
		return exitFailure
	}
}

// printError writes err in the same shape the API uses for error bodies.
func printError(w io.Writer, err error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(errhttp.Body(err))
}

// render writes v as indented JSON, or calls table with a tabwriter.
func render(cmd *cobra.Command, opts *RootOptions, v any, table func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	if opts.Output == formatJSON || table == nil {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}
