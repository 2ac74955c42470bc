package orchestration

import (
	"testing"
)

func TestNewProgressAggregator_Positive(t *testing.T) {
	agg := NewProgressAggregator(3)
	if agg == nil {
		t.Fatal("expected non-nil aggregator for total=3")
	}
	if agg.Total() != 3 {
		t.Errorf("expected Total()=3, got %d", agg.Total())
	}
}

func TestNewProgressAggregator_Zero(t *testing.T) {
	if agg := NewProgressAggregator(0); agg != nil {
		t.Error("expected nil aggregator for total=0")
	}
	if agg := NewProgressAggregator(-1); agg != nil {
		t.Error("expected nil aggregator for total=-1")
	}
}

func TestProgressAggregator_Update(t *testing.T) {
	agg := NewProgressAggregator(4)

	if agg.Fraction() != 0 {
		t.Errorf("expected initial fraction=0, got %f", agg.Fraction())
	}

	ap := agg.Update(ProgressUpdate{Done: 1, Total: 4})
	if ap.Done != 1 || ap.Total != 4 {
		t.Errorf("expected 1/4, got %d/%d", ap.Done, ap.Total)
	}
	if ap.Fraction != 0.25 {
		t.Errorf("expected Fraction=0.25, got %f", ap.Fraction)
	}

	// Out-of-order updates still advance by one.
	agg.Update(ProgressUpdate{Done: 3, Total: 4})
	ap = agg.Update(ProgressUpdate{Done: 2, Total: 4})
	if ap.Done != 3 {
		t.Errorf("expected Done=3, got %d", ap.Done)
	}

	ap = agg.Update(ProgressUpdate{Done: 4, Total: 4})
	if ap.Fraction != 1 || ap.ETA != 0 {
		t.Errorf("finished batch: fraction=%f eta=%v", ap.Fraction, ap.ETA)
	}
}

func TestDrainChannel(t *testing.T) {
	ch := make(chan ProgressUpdate, 3)
	ch <- ProgressUpdate{Done: 1, Total: 3}
	ch <- ProgressUpdate{Done: 2, Total: 3}
	close(ch)
	DrainChannel(ch)
	if _, ok := <-ch; ok {
		t.Error("channel not drained")
	}
}
