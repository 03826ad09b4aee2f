package workload

import "github.com/pavanmanishd/memres"

// Func is a benchmark body. Every dynamic allocation it performs goes
// through res; a nil res selects the builtin Go path.
type Func func(res memres.Resource) error

// VectorPushBack pushes n ints into a single vector.
func VectorPushBack(res memres.Resource, n int) error {
	v := NewVector[int](res)
	defer v.Release()
	for i := 0; i < n; i++ {
		if err := v.Push(i); err != nil {
			return err
		}
	}
	return nil
}

// NestedVectors builds n inner vectors of m ints each. The inner vectors
// are held until the end of the run so their buffers stay live together,
// matching the nested-container allocation pattern.
func NestedVectors(res memres.Resource, n, m int) error {
	inners := make([]*Vector[int], 0, n)
	defer func() {
		for _, v := range inners {
			v.Release()
		}
	}()
	for i := 0; i < n; i++ {
		v := NewVector[int](res)
		inners = append(inners, v)
		for j := 0; j < m; j++ {
			if err := v.Push(j); err != nil {
				return err
			}
		}
	}
	return nil
}

// TableInsert inserts n distinct keys into a single table.
func TableInsert(res memres.Resource, n int) error {
	t := NewTable(res)
	defer t.Release()
	for i := 0; i < n; i++ {
		if err := t.Put(KeyOf(i), i); err != nil {
			return err
		}
	}
	return nil
}

// NestedTables builds n inner tables of m keys each, all live until the end
// of the run.
func NestedTables(res memres.Resource, n, m int) error {
	inners := make([]*Table, 0, n)
	defer func() {
		for _, t := range inners {
			t.Release()
		}
	}()
	for i := 0; i < n; i++ {
		t := NewTable(res)
		inners = append(inners, t)
		for j := 0; j < m; j++ {
			if err := t.Put(KeyOf(j), j); err != nil {
				return err
			}
		}
	}
	return nil
}

// MatrixMultiply multiplies two n x n matrices, allocating all three
// through res.
func MatrixMultiply(res memres.Resource, n int) error {
	a, err := NewMatrix(res, n, n)
	if err != nil {
		return err
	}
	defer a.Release()
	b, err := NewMatrix(res, n, n)
	if err != nil {
		return err
	}
	defer b.Release()

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, float64(i+j))
			b.Set(i, j, float64(i-j))
		}
	}

	c, err := a.Mul(b)
	if err != nil {
		return err
	}
	c.Release()
	return nil
}
