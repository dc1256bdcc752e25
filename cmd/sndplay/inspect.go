// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audmgr/formats/wav"
)

// inspectFiles prints the chunk list of each WAVE file and whether the
// canonical decoder can read it.
func inspectFiles(w io.Writer, paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := inspectFile(w, p); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
		}
	}

	return errors.Join(errs...)
}

func inspectFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer f.Close()

	chunks, err := wav.Chunks(f)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s (canonical: %t)\n", path, wav.IsCanonical(chunks))
	for _, c := range chunks {
		fmt.Fprintf(w, "  %-4s %d\n", c.ID, c.Size)
	}

	return nil
}
