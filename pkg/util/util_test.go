package util

import (
	"testing"
)

func TestQuickSort(t *testing.T) {

	arr := []int{4, 3, 2, 1, 10, 5555, -1, 20, 100, -100}
	arr = QuickSortG(arr, func(a, b int) int {
		if a < b {
			return -1
		} else if a > b {
			return 1
		} else {
			return 0
		}
	})

	for i := 0; i < len(arr); i++ {
		if i == 0 {
			continue
		}
		if arr[i] < arr[i-1] {
			t.Errorf("Error in sorting")
		}
	}
}

func TestReverseG(t *testing.T) {
	arr := []int{1, 2, 3}
	rev := ReverseG(arr)

	if rev[0] != 3 || rev[1] != 2 || rev[2] != 1 {
		t.Errorf("expected reversed slice, got %v", rev)
	}
	if arr[0] != 1 {
		t.Errorf("ReverseG must not mutate its argument")
	}
}

func TestAssertPanicOK(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("unexpected panic: %v", r)
		}
	}()
	AssertPanic(true, "should not panic")
}

func TestAssertPanicFires(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic")
		}
	}()
	AssertPanic(false, "should panic")
}
