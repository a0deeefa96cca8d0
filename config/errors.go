package config

import "github.com/danielbiegler/timebox/internal/apperr"

var (
	errUnknownBackend = &apperr.Error{
		Message: "unknown storage backend: %s (must be json or bolt)",
	}

	errUnknownFormat = &apperr.Error{
		Message: "unknown json format: %s (must be pretty or compact)",
	}

	errInvalidListLimit = &apperr.Error{
		Message: "list limit must be greater than zero",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}
)
