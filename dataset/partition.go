package dataset

import "github.com/kbukum/speechprep/sample"

// Split names an output partition.
type Split string

// Splits, in the order their files are written.
const (
	Train Split = "train"
	Dev   Split = "dev"
	Test  Split = "test"
)

// Splits lists every partition.
var Splits = []Split{Train, Dev, Test}

// SplitFor assigns position i: every tenth sample starting at 0 goes to
// test, the one after it to dev, the rest to train.
func SplitFor(i int) Split {
	switch i % 10 {
	case 0:
		return Test
	case 1:
		return Dev
	default:
		return Train
	}
}

// Partitions holds the samples of each split in input order.
type Partitions map[Split][]sample.Sample

// Partition splits samples round-robin by position. The assignment depends
// only on order, so callers must sort first for a reproducible split.
func Partition(samples []sample.Sample) Partitions {
	p := Partitions{Train: nil, Dev: nil, Test: nil}
	for i, s := range samples {
		split := SplitFor(i)
		p[split] = append(p[split], s)
	}
	return p
}

// Len returns the number of samples across all splits.
func (p Partitions) Len() int {
	n := 0
	for _, s := range p {
		n += len(s)
	}
	return n
}
