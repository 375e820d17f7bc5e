/*
Copyright © 2026 the photoevap authors.
This file is part of photoevap.

photoevap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

photoevap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with photoevap.  If not, see <http://www.gnu.org/licenses/>.
*/

package photoevap

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ctessum/cdf"
)

func TestSnapshotterCadence(t *testing.T) {
	d, err := NewDisk(testDiskConfig())
	if err != nil {
		t.Fatal(err)
	}
	s := &Simulation{Disk: d}
	sn := NewSnapshotter(filepath.Join(t.TempDir(), "out.nc"), 100*Year)
	record := sn.Record()

	// Snapshots land at t=0 and then every interval, regardless of how
	// often Record runs in between.
	for _, tNow := range []float64{0, 10 * Year, 50 * Year, 100 * Year, 150 * Year, 210 * Year} {
		s.T = tNow
		if err := record(s); err != nil {
			t.Fatal(err)
		}
	}
	want := []float64{0, 100 * Year, 210 * Year}
	if !reflect.DeepEqual(sn.times, want) {
		t.Errorf("snapshot times %v, want %v", sn.times, want)
	}
}

func TestSnapshotterWrite(t *testing.T) {
	d, err := NewDisk(testDiskConfig())
	if err != nil {
		t.Fatal(err)
	}
	s := &Simulation{Disk: d}
	path := filepath.Join(t.TempDir(), "out.nc")
	sn := NewSnapshotter(path, 100*Year)
	record := sn.Record()

	d.MLost = 1e20
	if err := record(s); err != nil {
		t.Fatal(err)
	}
	s.T = 100 * Year
	d.MLost = 3e20
	if err := record(s); err != nil {
		t.Fatal(err)
	}
	if err := sn.Write()(s); err != nil {
		t.Fatal(err)
	}

	ff, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	f, err := cdf.Open(ff)
	if err != nil {
		t.Fatal(err)
	}

	if dims := f.Header.Lengths("SigmaGas"); !reflect.DeepEqual(dims, []int{2, len(d.R)}) {
		t.Errorf("SigmaGas dimensions %v, want %v", dims, []int{2, len(d.R)})
	}

	read := func(v string, n int) []float64 {
		data := make([]float64, n)
		if _, err := f.Reader(v, nil, nil).Read(data); err != nil {
			t.Fatal(err)
		}
		return data
	}

	times := read("time", 2)
	if times[0] != 0 || times[1] != 100*Year {
		t.Errorf("times %v, want [0 %g]", times, 100*Year)
	}
	mLost := read("MLost", 2)
	if mLost[0] != 1e20 || mLost[1] != 3e20 {
		t.Errorf("MLost %v, want [1e20 3e20]", mLost)
	}
	r := read("r", len(d.R))
	for i := range r {
		if r[i] != d.R[i] {
			t.Fatalf("cell %d: r=%g, want %g", i, r[i], d.R[i])
		}
	}
	σ := read("SigmaGas", 2*len(d.R))
	for i := range d.R {
		if σ[i] != d.SigmaGas[i] || σ[len(d.R)+i] != d.SigmaGas[i] {
			t.Fatalf("cell %d: stored surface density does not match the disk state", i)
		}
	}
}

func TestSnapshotterWriteEmpty(t *testing.T) {
	d, err := NewDisk(testDiskConfig())
	if err != nil {
		t.Fatal(err)
	}
	s := &Simulation{Disk: d}
	path := filepath.Join(t.TempDir(), "out.nc")
	sn := NewSnapshotter(path, 100*Year)
	// With no recorded snapshots, Write is a no-op and creates no file.
	if err := sn.Write()(s); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected no output file for an empty snapshot list")
	}
}
