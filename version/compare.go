// Package version compares the running build against the latest published release.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Compare orders two semantic version strings. It returns 1 when a is
// newer than b, -1 when a is older and 0 when both are equal.
func Compare(a, b string) (int, error) {
	av, err := fields(a)
	if err != nil {
		return 0, err
	}

	bv, err := fields(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		switch {
		case av[i] > bv[i]:
			return 1, nil
		case av[i] < bv[i]:
			return -1, nil
		}
	}

	return 0, nil
}

// fields splits a version string into its numeric major.minor.patch
// parts. A leading "v" is tolerated.
func fields(s string) ([3]int, error) {
	var v [3]int

	parts := strings.SplitN(strings.TrimPrefix(s, "v"), ".", 3)
	if len(parts) != 3 {
		return v, fmt.Errorf("malformed version %q", s)
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return v, fmt.Errorf("malformed version %q: %w", s, err)
		}

		v[i] = n
	}

	return v, nil
}
