package object

import (
	"github.com/teranos/predef/errors"
)

// Linearize computes the linearized inheritance order of cls: the C3
// linearization of the class and its bases, starting with cls itself.
// The result is deterministic for a given hierarchy. A hierarchy that
// admits no monotonic order returns an error naming the class.
func Linearize(cls Class) ([]Class, error) {
	return linearize(cls, make(map[Class][]Class), make(map[Class]bool))
}

func linearize(cls Class, memo map[Class][]Class, visiting map[Class]bool) ([]Class, error) {
	if mro, ok := memo[cls]; ok {
		return mro, nil
	}
	if visiting[cls] {
		return nil, errors.Newf("inheritance cycle through class %q", cls.Name())
	}
	visiting[cls] = true
	defer delete(visiting, cls)

	bases := cls.Bases()
	seqs := make([][]Class, 0, len(bases)+1)
	for _, base := range bases {
		mro, err := linearize(base, memo, visiting)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, append([]Class(nil), mro...))
	}
	if len(bases) > 0 {
		seqs = append(seqs, append([]Class(nil), bases...))
	}

	merged, err := mergeOrders(seqs)
	if err != nil {
		return nil, errors.Wrapf(err, "linearizing class %q", cls.Name())
	}
	mro := append([]Class{cls}, merged...)
	memo[cls] = mro
	return mro, nil
}

// mergeOrders is the C3 merge: repeatedly take the first head that occurs
// in no other sequence's tail, then strip it from every head position.
func mergeOrders(seqs [][]Class) ([]Class, error) {
	var out []Class
	for {
		live := seqs[:0]
		for _, s := range seqs {
			if len(s) > 0 {
				live = append(live, s)
			}
		}
		seqs = live
		if len(seqs) == 0 {
			return out, nil
		}

		head := pickHead(seqs)
		if head == nil {
			return nil, errors.New("inconsistent hierarchy: no valid linearization")
		}
		out = append(out, head)
		for i, s := range seqs {
			if s[0] == head {
				seqs[i] = s[1:]
			}
		}
	}
}

func pickHead(seqs [][]Class) Class {
	for _, s := range seqs {
		if !inAnyTail(seqs, s[0]) {
			return s[0]
		}
	}
	return nil
}

func inAnyTail(seqs [][]Class, cls Class) bool {
	for _, s := range seqs {
		for _, c := range s[1:] {
			if c == cls {
				return true
			}
		}
	}
	return false
}
