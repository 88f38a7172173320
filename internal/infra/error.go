package infra

import (
	"errors"

	"detailing-api/internal/pkg/errs"
)

type StoreErrorKind string

// Infrastructure-specific error kinds
const (
	KindNotConfigured StoreErrorKind = "NOT_CONFIGURED"
	KindMissingTable  StoreErrorKind = "MISSING_TABLE"
	KindUpstream      StoreErrorKind = "UPSTREAM_FAILURE"
)

type StoreError struct {
	Kind StoreErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e StoreError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e StoreError) Unwrap() error {
	return e.err
}

func WrapStoreErr(msg string, err error, kind ...StoreErrorKind) error {
	k := KindUpstream
	if len(kind) > 0 {
		k = kind[0]
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return StoreError{Kind: k, msg: msg, err: err}
}

func IsKind(err error, kind StoreErrorKind) bool {
	var e StoreError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
