package store

import "github.com/danielbiegler/timebox/internal/apperr"

var (
	// ErrAlreadyActive is reported by Begin while a time box is active.
	ErrAlreadyActive = &apperr.Error{
		Message: "a time box is already active: end or cancel it before beginning a new one",
	}

	// ErrNoActiveBox is reported by operations that require an active time box.
	ErrNoActiveBox = &apperr.Error{
		Message: "no active time box: begin one first",
	}

	// ErrNoFinishedBoxes is reported by Resume when nothing has been finished yet.
	ErrNoFinishedBoxes = &apperr.Error{
		Message: "no finished time boxes to resume",
	}

	// ErrActiveBoxPresent is reported by Clear while a time box is active.
	ErrActiveBoxPresent = &apperr.Error{
		Message: "clearing is not allowed while a time box is active",
	}

	// ErrInvalidListOptions is reported by List for unusable pagination values.
	ErrInvalidListOptions = &apperr.Error{
		Message: "invalid list options: limit must be greater than zero",
	}

	// ErrInvalidDateSpec is reported when a date filter token cannot be parsed.
	ErrInvalidDateSpec = &apperr.Error{
		Message: "invalid date filter %q: expected today, yesterday, this-week, last-week, this-month, last-month, YYYY-MM-DD, or YYYY-MM-DD..YYYY-MM-DD",
	}

	// errUnknownFilterKind guards the exhaustive filter switch; reaching it
	// means a ListFilter was constructed outside this package's constructors.
	errUnknownFilterKind = &apperr.Error{
		Message: "unknown date filter kind %d",
	}

	// ErrInvalidRange is reported when a custom range starts after it ends.
	ErrInvalidRange = &apperr.Error{
		Message: "invalid date range: the start date must not be later than the end date",
	}

	// ErrAlreadyExists is reported by init strategies when the backing
	// resource is already present.
	ErrAlreadyExists = &apperr.Error{
		Message: "time tracking store already exists at %q",
	}

	// ErrNotFound is reported by loading strategies when there is no prior
	// state to load.
	ErrNotFound = &apperr.Error{
		Message: "no time tracking store found at %q: run init first",
	}

	// ErrCorrupt is reported by loading strategies when persisted state
	// cannot be decoded or violates the entity invariants.
	ErrCorrupt = &apperr.Error{
		Message: "persisted state is corrupt",
	}

	// ErrIO wraps filesystem and database failures during init, load, and save.
	ErrIO = &apperr.Error{
		Message: "storage failure",
	}
)
