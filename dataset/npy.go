package dataset

import (
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/pkg/errors"
	"github.com/groveml/grove/tree"
)

// ReadNpy loads a two-dimensional NumPy array from path as a dense
// matrix.
func ReadNpy(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading npy header of %s", path)
	}

	m := &mat.Dense{}
	if err := r.Read(m); err != nil {
		return nil, errors.Wrapf(err, "reading npy data of %s", path)
	}
	return m, nil
}

// WriteNpy saves a matrix to path in NumPy .npy format.
func WriteNpy(path string, m mat.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	if err := npyio.Write(f, m); err != nil {
		return errors.Wrapf(err, "writing npy data to %s", path)
	}
	return nil
}

// MatrixSamples converts each row of a numeric matrix into a sample.
// NaN entries become missing values.
func MatrixSamples(m mat.Matrix) []tree.Sample {
	r, c := m.Dims()
	samples := make([]tree.Sample, r)
	for i := 0; i < r; i++ {
		s := make(tree.Sample, c)
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if v != v {
				s[j] = tree.NA
			} else {
				s[j] = tree.Num(v)
			}
		}
		samples[i] = s
	}
	return samples
}
