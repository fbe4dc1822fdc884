// Package store persists the weights of trained approximators
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeu5/linear-td/fa"
	"gonum.org/v1/gonum/mat"
)

var ErrNotFound = errors.New("no weights stored under key")

// Record is a weight matrix stored row-major, with the description of the
// projector it was learned with
type Record struct {
	Projector string    `json:"projector"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	Data      []float64 `json:"data"`
}

// WeightStore saves and loads records by key
type WeightStore interface {
	Save(context.Context, string, Record) error
	Load(context.Context, string) (*Record, error)
}

// FromLFA copies the weights of q
func FromLFA(q *fa.LFA) Record {
	w := q.Weights()
	rows, cols := w.Dims()
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		data = append(data, w.RawRowView(i)...)
	}
	return Record{
		Projector: q.Projector().String(),
		Rows:      rows,
		Cols:      cols,
		Data:      data,
	}
}

// Restore overwrites the weights of q. The projector of q must match the
// one the record was saved with.
func (r *Record) Restore(q *fa.LFA) error {
	if r.Projector != q.Projector().String() {
		return fmt.Errorf("%w: record of %s for approximator over %s", fa.ErrDimensionMismatch, r.Projector, q.Projector())
	}
	if len(r.Data) != r.Rows*r.Cols {
		return fmt.Errorf("%w: %d values for %dx%d weights", fa.ErrDimensionMismatch, len(r.Data), r.Rows, r.Cols)
	}
	return q.SetWeights(mat.NewDense(r.Rows, r.Cols, r.Data))
}

// SaveLFA stores the weights of q under key
func SaveLFA(ctx context.Context, s WeightStore, key string, q *fa.LFA) error {
	return s.Save(ctx, key, FromLFA(q))
}

// LoadLFA restores the weights stored under key into q
func LoadLFA(ctx context.Context, s WeightStore, key string, q *fa.LFA) error {
	r, err := s.Load(ctx, key)
	if err != nil {
		return err
	}
	return r.Restore(q)
}
