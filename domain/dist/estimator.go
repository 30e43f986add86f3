package dist

// EmpiricalJoint builds the empirical joint PMF from raw columns. Each column
// holds one variable's observations; all columns must be equally long. An
// empty sample yields an empty PMF.
func EmpiricalJoint(columns [][]string) PMF {
	arity := len(columns)
	pmf := NewPMF(arity)
	if arity == 0 || len(columns[0]) == 0 {
		return pmf
	}

	n := len(columns[0])
	tuple := make(Tuple, arity)
	for i := 0; i < n; i++ {
		for v := range columns {
			tuple[v] = columns[v][i]
		}
		pmf.P[tuple.Key()]++
	}

	inv := 1.0 / float64(n)
	for k := range pmf.P {
		pmf.P[k] *= inv
	}
	return pmf
}

// Marginal sums a joint PMF over all positions except keepIndices, re-keying
// each entry by its sub-tuple. Entries whose key arity does not match the
// joint's arity are skipped rather than treated as a hard error.
func Marginal(joint PMF, keepIndices []int) PMF {
	out := NewPMF(len(keepIndices))
	for k, prob := range joint.P {
		t := k.Tuple()
		if len(t) != joint.Arity {
			continue
		}
		out.P[t.Sub(keepIndices).Key()] += prob
	}
	return out
}

// Conditional computes the conditional distributions of the target variable
// given each value of the conditioning variable. Conditioning values whose
// marginal probability is at or below ProbEpsilon are omitted instead of
// divided by zero. Every returned distribution is normalized.
//
// marginalGiven must be the 1-ary marginal of the conditioning variable under
// the same joint.
func Conditional(joint PMF, marginalGiven PMF, targetIdx, givenIdx int) map[string]PMF {
	// Accumulate joint mass per (given value, target value); positions other
	// than targetIdx and givenIdx are summed out implicitly.
	sliced := make(map[string]PMF)
	for k, prob := range joint.P {
		t := k.Tuple()
		if len(t) != joint.Arity {
			continue
		}
		given := t.At(givenIdx)
		target := t.At(targetIdx)
		slice, ok := sliced[given]
		if !ok {
			slice = NewPMF(1)
			sliced[given] = slice
		}
		slice.P[Tuple{target}.Key()] += prob
	}

	out := make(map[string]PMF, len(sliced))
	for given, slice := range sliced {
		pGiven := marginalGiven.Prob(Tuple{given})
		if pGiven <= ProbEpsilon {
			continue
		}
		cond := NewPMF(1)
		for k, mass := range slice.P {
			cond.P[k] = mass / pGiven
		}
		out[given] = cond
	}
	return out
}
