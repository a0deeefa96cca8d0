package store

import (
	"time"

	"github.com/danielbiegler/timebox/internal/models"
)

// SortOrder controls the direction of listed time boxes.
type SortOrder int

const (
	// Ascending preserves chronological order, earliest box first.
	Ascending SortOrder = iota
	// Descending reverses the final sequence, latest box first.
	Descending
)

// DefaultListLimit is the page size used when none is specified.
const DefaultListLimit = 25

// ListOptions selects which finished time boxes a listing returns.
// Pagination applies only when no date filter is set: a bounded date window
// is already a natural limit, so filtered queries return the full match.
type ListOptions struct {
	Filter ListFilter
	Order  SortOrder
	Page   uint
	Limit  uint
}

// NewListOptions returns options matching everything, ascending, with the
// default page size.
func NewListOptions() ListOptions {
	return ListOptions{
		Order: Ascending,
		Limit: DefaultListLimit,
	}
}

// ListResult is a page of finished time boxes plus the total count of
// finished boxes in the store.
type ListResult struct {
	Total int
	Items []models.TimeBox
}

// applyListOptions runs the list query over the finished boxes: resolve the
// date filter against now and retain boxes whose start instant falls within
// the window, or paginate when unfiltered, then apply the sort order.
func applyListOptions(
	finished []models.TimeBox,
	opts ListOptions,
	now time.Time,
) (*ListResult, error) {
	if opts.Limit == 0 {
		return nil, ErrInvalidListOptions
	}

	var items []models.TimeBox

	if opts.Filter.IsNone() {
		items = paginate(finished, opts.Page, opts.Limit)
	} else {
		start, end, err := opts.Filter.Resolve(now)
		if err != nil {
			return nil, err
		}

		for i := range finished {
			st := finished[i].StartTime()
			if !st.Before(start) && st.Before(end) {
				items = append(items, finished[i].Clone())
			}
		}
	}

	if opts.Order == Descending {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}

	return &ListResult{
		Total: len(finished),
		Items: items,
	}, nil
}

// paginate slices out page*limit..page*limit+limit, clamped to the bounds.
// An out-of-range page yields an empty result rather than an error. The
// offset math stays in uint64 so huge page values clamp instead of wrapping.
func paginate(boxes []models.TimeBox, page, limit uint) []models.TimeBox {
	offset := uint64(page) * uint64(limit)
	if limit != 0 && offset/uint64(limit) != uint64(page) {
		offset = uint64(len(boxes))
	}

	if offset > uint64(len(boxes)) {
		offset = uint64(len(boxes))
	}

	lo := int(offset)

	hi := lo + int(limit)
	if hi > len(boxes) || hi < lo {
		hi = len(boxes)
	}

	items := make([]models.TimeBox, 0, hi-lo)
	for i := lo; i < hi; i++ {
		items = append(items, boxes[i].Clone())
	}

	return items
}
