package model

import "errors"

var (
	ErrSiteNotFound   = errors.New("site not found")
	ErrWebAppNotFound = errors.New("webapp not found")
	ErrDomainNotFound = errors.New("domain not found")
	ErrRecordNotFound = errors.New("record not found")

	ErrSiteInvalid   = errors.New("invalid site")
	ErrWebAppInvalid = errors.New("invalid webapp")
	ErrDomainInvalid = errors.New("invalid domain")
	ErrRecordInvalid = errors.New("invalid record")

	// ErrSerialExhausted is returned when a zone serial cannot be
	// increased any further on the same calendar day.
	ErrSerialExhausted = errors.New("no more serial numbers for today")

	// ErrUnknownDirective is returned when a content mapping references
	// a directive name with no registered handler.
	ErrUnknownDirective = errors.New("unknown directive")

	// ErrLockNotAcquired is returned when the restart coordination lock
	// could not be acquired within the retry budget.
	ErrLockNotAcquired = errors.New("coordination lock not acquired")
)
