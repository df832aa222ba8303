package domain

import "errors"

// Sentinel errors for the indent domain. Use errors.Is() to check these.
var (
	// ErrIndentNotFound indicates no submitted indent exists for the requested MRN.
	ErrIndentNotFound = errors.New("indent not found")

	// ErrRowNotFound indicates the draft has no row with the given id.
	ErrRowNotFound = errors.New("line item row not found")

	// ErrItemNotFound indicates the item name is not present in the reference data.
	ErrItemNotFound = errors.New("item not found in reference data")

	// ErrDuplicateItems indicates the draft contains the same item on more than one row.
	ErrDuplicateItems = errors.New("duplicate items in request")

	// ErrNoValidLines indicates the draft has no submittable line item.
	ErrNoValidLines = errors.New("no valid line items")

	// ErrDepartmentRequired indicates no department has been selected.
	ErrDepartmentRequired = errors.New("department is required")

	// ErrInvalidDepartment indicates the department is not one of the known departments.
	ErrInvalidDepartment = errors.New("unknown department")

	// ErrRequesterRequired indicates the requester name is blank.
	ErrRequesterRequired = errors.New("requester name is required")

	// ErrPastRequiredDate indicates the required date is before today.
	ErrPastRequiredDate = errors.New("required date must not be in the past")

	// ErrInvalidQuantity indicates a quantity that is zero or negative.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrAllocatorUnavailable indicates the request number allocator could not
	// read the log and produced an error-sentinel identifier. Submissions must
	// abort without writing.
	ErrAllocatorUnavailable = errors.New("request number allocator unavailable")

	// ErrReferenceUnavailable indicates the reference dataset could not be loaded.
	ErrReferenceUnavailable = errors.New("reference data unavailable")
)
