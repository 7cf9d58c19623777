package generation

import "errors"

var (
	// ErrInvalidDimensions is returned for sizes that are not positive multiples of the bucket size
	ErrInvalidDimensions = errors.New("invalid world dimensions")
	// ErrEmptyItemCatalog is returned when there is nothing to spawn
	ErrEmptyItemCatalog = errors.New("empty item catalog")
	// ErrSafehouseSelectionTimeout is returned when no far enough plaza pair was found
	ErrSafehouseSelectionTimeout = errors.New("safehouse selection timed out")
	// ErrRegionTooSmall is returned when a region cannot host what was asked of it
	ErrRegionTooSmall = errors.New("region too small")
)
