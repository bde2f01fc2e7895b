package domain

import "testing"

func TestTaskPriorityRankOrder(t *testing.T) {
	order := []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Fatalf("expected %s to rank below %s, got %d >= %d",
				order[i-1], order[i], order[i-1].Rank(), order[i].Rank())
		}
	}
	if TaskPriority("desconocida").Rank() != 0 {
		t.Fatalf("unknown priorities must rank 0")
	}
}
