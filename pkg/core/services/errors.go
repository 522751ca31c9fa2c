package services

import "fmt"

// ValidationError reports malformed, missing or out-of-range input.
// Nothing has been written when one is returned. SlotNumber and
// SectionNumber are zero when the error is not tied to a coordinate.
type ValidationError struct {
	Message       string
	SlotNumber    int
	SectionNumber int
}

func (e *ValidationError) Error() string {
	switch {
	case e.SlotNumber != 0 && e.SectionNumber != 0:
		return fmt.Sprintf("%s (slot %d, section %d)", e.Message, e.SlotNumber, e.SectionNumber)
	case e.SlotNumber != 0:
		return fmt.Sprintf("%s (slot %d)", e.Message, e.SlotNumber)
	default:
		return e.Message
	}
}

// NotFoundError reports a referenced entity that does not exist.
// Nothing has been written when one is returned.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError reports a request that contradicts current state, such
// as a duplicate pending swap request or a replacement already assigned
// to the target section.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
