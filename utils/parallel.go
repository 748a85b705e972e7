package utils

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// ParallelFactor controls the default max level of parallelization.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

type (
	// MemberWorkFunc runs for each work item (member) of a group.
	MemberWorkFunc func(memberNum, workNum int)
	// GroupWorkDoneFunc runs when a single group's work is done; helpful for merge stages.
	GroupWorkDoneFunc func()
	// GroupWorkFunc runs to determine what work members should do, if any.
	GroupWorkFunc func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc)
)

// GroupWorkParallel parallelizes the given size of work over at most workers groups. A
// non-positive workers value uses ParallelFactor. Work items are split into contiguous ranges and
// every item is visited exactly once; the call returns once all groups are done. A group that
// panics stops early and its panic is returned as an error.
func GroupWorkParallel(ctx context.Context, totalSize, workers int, groupWork GroupWorkFunc) error {
	if totalSize <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = ParallelFactor
	}
	numGroups := workers
	if numGroups > totalSize {
		numGroups = totalSize
	}
	groupSize := totalSize / numGroups
	extra := totalSize % numGroups

	var (
		wait     sync.WaitGroup
		panicsMu sync.Mutex
		panics   error
	)
	wait.Add(numGroups)
	for groupNum := 0; groupNum < numGroups; groupNum++ {
		groupNumCopy := groupNum
		utils.PanicCapturingGo(func() {
			defer wait.Done()
			groupNum := groupNumCopy
			defer func() {
				if r := recover(); r != nil {
					panicsMu.Lock()
					panics = multierr.Append(panics, errors.Errorf("group %d panicked: %v", groupNum, r))
					panicsMu.Unlock()
				}
			}()

			from := groupSize * groupNum
			to := groupSize * (groupNum + 1)
			if groupNum == numGroups-1 {
				to += extra
			}
			memberWork, groupWorkDone := groupWork(groupNum, to-from, from, to)
			if memberWork != nil {
				memberNum := 0
				for workNum := from; workNum < to; workNum++ {
					memberWork(memberNum, workNum)
					memberNum++
				}
			}
			if groupWorkDone != nil {
				groupWorkDone()
			}
		})
	}
	wait.Wait()
	return multierr.Combine(panics, ctx.Err())
}
