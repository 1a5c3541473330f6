package conecta

import "testing"

func TestResolveOptions(t *testing.T) {
	o := resolveOptions([]Option{
		WithPartitionOn("id"),
		WithPartitionNum(4),
		WithPreallocation(),
		WithMaxPoolSize(8),
	})

	if o.partitionOn == nil || *o.partitionOn != "id" {
		t.Errorf("partitionOn = %v, want \"id\"", o.partitionOn)
	}
	if o.partitionNum == nil || *o.partitionNum != 4 {
		t.Errorf("partitionNum = %v, want 4", o.partitionNum)
	}
	if !o.preallocation {
		t.Error("preallocation = false, want true")
	}
	if o.maxPoolSize != 8 {
		t.Errorf("maxPoolSize = %d, want 8", o.maxPoolSize)
	}
}

func TestWithPartitionRange(t *testing.T) {
	o := resolveOptions([]Option{WithPartitionRange(0, 100)})
	if o.partitionRangeMin == nil || *o.partitionRangeMin != 0 {
		t.Errorf("partitionRangeMin = %v, want 0", o.partitionRangeMin)
	}
	if o.partitionRangeMax == nil || *o.partitionRangeMax != 100 {
		t.Errorf("partitionRangeMax = %v, want 100", o.partitionRangeMax)
	}
}

func TestNoOptionsLeavesZeroValues(t *testing.T) {
	o := resolveOptions(nil)
	if o.partitionOn != nil || o.partitionNum != nil || o.preallocation || o.maxPoolSize != 0 {
		t.Errorf("resolveOptions(nil) = %+v, want the zero value", o)
	}
}
