package importjob

import "errors"

var (
	ErrUnknownJobType    = errors.New("unknown job type")
	ErrJobNotFound       = errors.New("import job not found")
	ErrJobAlreadyExists  = errors.New("import job already exists")
	ErrJobTerminal       = errors.New("import job is terminal")
	ErrJobNotPending     = errors.New("import job is no longer pending")
	ErrInvalidTransition = errors.New("invalid import job transition")
	ErrRowOverflow       = errors.New("processed rows exceed total rows")
	ErrUnprocessedRows   = errors.New("import job has unprocessed rows")
	ErrRecordNotFound    = errors.New("record not found")
	ErrInvalidItem       = errors.New("invalid import item")
)
