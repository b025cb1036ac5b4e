package main

import (
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/mpgranch/gridveg-tools/datefix/domain"
)

// Exit codes for scripting around the tool.
const (
	exitOK         = 0
	exitError      = 1
	exitBackup     = 2
	exitValidation = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		switch {
		case errors.Is(err, domain.ErrBackupFailed):
			return exitBackup
		case isValidationError(err):
			return exitValidation
		default:
			return exitError
		}
	}

	return exitOK
}

func isValidationError(err error) bool {
	var merr *multierror.Error
	return errors.As(err, &merr)
}
