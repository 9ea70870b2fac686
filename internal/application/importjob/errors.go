package importjob

import "errors"

var (
	ErrInvalidJobSpec      = errors.New("invalid import job")
	ErrDuplicateImportJob  = errors.New("import job already exists")
	ErrCreateImportJob     = errors.New("failed to create import job")
	ErrEnqueueImportJob    = errors.New("failed to enqueue import job")
	ErrUpdateImportJob     = errors.New("failed to update import job")
	ErrInvalidJobID        = errors.New("invalid import job id")
	ErrImportJobNotFound   = errors.New("import job not found")
	ErrGetImportJob        = errors.New("failed to get import job")
	ErrStorageNotAvailable = errors.New("target storage not configured")
)
