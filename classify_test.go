/*
Copyright © 2026 the LSMap authors.
This file is part of LSMap.

LSMap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

LSMap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with LSMap.  If not, see <http://www.gnu.org/licenses/>.
*/

package lsmap

import (
	"math"
	"testing"

	"github.com/ctessum/sparse"
)

var giriThresholds = []float64{0.3, 2.0, 3.7, 5.0}

// The default classifier reproduces the GIRI reference behavior: the
// class boundaries are the threshold ordinal indices 0, 1, 2, 3, not
// the configured threshold magnitudes.
func TestClassify_literalIndex(t *testing.T) {
	c := Classifier{Thresholds: giriThresholds}
	cases := []struct {
		norm, class float64
	}{
		{-3, 1},
		{0, 1},
		{0.5, 2},
		{1, 2},
		{1.5, 3},
		{2, 3},
		{2.5, 4},
		{3, 4},
		{3.2, 5},
		{100, 5},
	}
	norm := sparse.ZerosDense(1, len(cases))
	for i, c := range cases {
		norm.Elements[i] = c.norm
	}
	classes, err := c.Classify(norm)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range cases {
		if have := classes.Elements[i]; have != c.class {
			t.Errorf("normalized %g: have class %g, want %g", c.norm, have, c.class)
		}
	}
}

func TestClassify_byThresholdValue(t *testing.T) {
	c := Classifier{Thresholds: giriThresholds, ByThresholdValue: true}
	cases := []struct {
		norm, class float64
	}{
		{0.3, 1},
		{0.31, 2},
		{2.0, 2},
		{3.2, 3},
		{3.7, 3},
		{4.9, 4},
		{5.0, 4},
		{5.1, 5},
	}
	norm := sparse.ZerosDense(1, len(cases))
	for i, c := range cases {
		norm.Elements[i] = c.norm
	}
	classes, err := c.Classify(norm)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range cases {
		if have := classes.Elements[i]; have != c.class {
			t.Errorf("normalized %g: have class %g, want %g", c.norm, have, c.class)
		}
	}
}

// Every finite cell must receive a class in {1..5}, and NaN cells
// must stay NaN rather than falling through to a spurious class.
func TestClassify_total(t *testing.T) {
	c := Classifier{Thresholds: giriThresholds}
	norm := sparse.ZerosDense(1, 203)
	for i := 0; i < 201; i++ {
		norm.Elements[i] = -5 + float64(i)*0.05 // -5 through 5
	}
	norm.Elements[201] = math.NaN()
	norm.Elements[202] = math.Inf(1)

	classes, err := c.Classify(norm)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range classes.Elements {
		in := norm.Elements[i]
		if math.IsNaN(in) {
			if !math.IsNaN(v) {
				t.Errorf("NaN input: have class %g, want NaN", v)
			}
			continue
		}
		if v < 1 || v > 5 || v != math.Trunc(v) {
			t.Errorf("input %g: class %g out of range", in, v)
		}
	}
}

func TestClassify_badThresholds(t *testing.T) {
	for _, thresholds := range [][]float64{
		nil,
		{1, 2, 3},
		{1, 2, 3, 4, 5},
		{5, 2, 3.7, 0.3},
	} {
		c := Classifier{Thresholds: thresholds}
		if _, err := c.Classify(sparse.ZerosDense(1, 1)); err == nil {
			t.Errorf("thresholds %v: want error", thresholds)
		}
	}
}
