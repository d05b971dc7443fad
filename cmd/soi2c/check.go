package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/notecard-tools/soi2c-go/internal/vectors"
)

// runCheck runs every decode vector under path and reports the results
// to w. It returns the number of failed vectors.
func runCheck(ctx context.Context, path string, w io.Writer, logger *slog.Logger) (int, error) {
	vs, err := vectors.Load(path)
	if err != nil {
		return 0, err
	}
	if len(vs) == 0 {
		return 0, fmt.Errorf("no vectors found in %s", path)
	}

	failed := 0
	for _, v := range vs {
		r, err := v.Run(ctx, logger)
		if err != nil {
			return failed, err
		}
		if r.Passed() {
			fmt.Fprintf(w, "PASS  %-14s %s\n", v.ID, v.Name)
			continue
		}
		failed++
		fmt.Fprintf(w, "FAIL  %-14s %s\n", v.ID, v.Name)
		for _, m := range r.Mismatches {
			fmt.Fprintf(w, "      - %s\n", m)
		}
	}

	fmt.Fprintf(w, "\n%d passed, %d failed\n", len(vs)-failed, failed)
	return failed, nil
}
