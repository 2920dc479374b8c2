package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Groups configuration errors
	GroupsConfigError
	GroupsNotFoundError
	BaselineError

	// Fetch errors
	FetchSearchError
	FetchSummaryError
	FetchAllGroupsFailedError

	// Name resolution errors
	ResolverRequestError
	ResolverResponseError

	// Enrich errors
	EnrichInputError
	EnrichOutputError
	EnrichAllGroupsFailedError

	// Data file errors
	CSVReadError
	CSVWriteError
	CSVHeaderError

	// Report errors
	ReportRenderError
	ReportWriteError
	ReportNoGroupsError
)
