package scheduler

import "fmt"

// CapacityError reports a slot whose eligible pool is smaller than the
// number of faculty it needs. It carries enough detail for an admin to
// fill the slot by hand.
type CapacityError struct {
	SlotNumber int
	Subject    string
	Date       string
	Needed     int
	Available  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("not enough faculty available for slot %d (%s on %s): need %d, have %d",
		e.SlotNumber, e.Subject, e.Date, e.Needed, e.Available)
}

// RequiresManualAssignment distinguishes capacity faults from generic
// failures: the slot exists and is valid, it just cannot be auto-filled.
func (e *CapacityError) RequiresManualAssignment() bool {
	return true
}
