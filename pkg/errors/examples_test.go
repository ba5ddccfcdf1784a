package errors_test

import (
	"fmt"

	"github.com/EthanYidong/rehost/pkg/errors"
)

// Example demonstrates branching on the kind of a startup failure.
func Example() {
	err := fmt.Errorf("assembling file 2: %w",
		errors.NewFetchError("https://example.com/readme.md", 503, "unexpected status", nil))

	switch {
	case errors.IsConfigError(err):
		fmt.Println("fix the configuration file")
	case errors.IsFetchError(err):
		fmt.Println("remote source unavailable")
	case errors.IsIOError(err):
		fmt.Println("local source unreadable")
	}

	// Output: remote source unavailable
}

// Example_bindError demonstrates extracting the failing address.
func Example_bindError() {
	err := errors.WrapBind("0.0.0.0:8000", errors.New("address already in use"))

	var bindErr *errors.BindError
	if errors.As(err, &bindErr) {
		fmt.Println(bindErr.Address)
	}

	// Output: 0.0.0.0:8000
}
