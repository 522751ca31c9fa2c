package services

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v4"
)

// examLocks holds one mutex per exam ID. Confirmations, swap approvals,
// manual reassignments and fan-out all mutate the same nested exam
// document plus its flat projection with no store-level transaction, so
// mutations of one exam are serialized within the process.
var examLocks = xsync.NewMap[string, *sync.Mutex]()

// lockExam acquires the mutex for an exam and returns the unlock func
func lockExam(examID string) func() {
	mu, _ := examLocks.LoadOrStore(examID, &sync.Mutex{})
	mu.Lock()
	return mu.Unlock
}
