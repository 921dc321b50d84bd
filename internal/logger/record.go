package logger

import (
	"fmt"
	"io"
	"strings"
)

// MaxLoggedDimension is the largest dimension whose coordinates are written
// into data records. Wider problems log fitness columns only.
const MaxLoggedDimension = 21

// dataHeaderFormat is shared by the .dat, .tdat and .rdat files.
const dataHeaderFormat = "%% function evaluation | " +
	"noise-free fitness - Fopt (%13.12e) | " +
	"best noise-free fitness - Fopt | " +
	"measured fitness | " +
	"best measured fitness | " +
	"x1 | " +
	"x2...\n"

// Record is one line of a data file.
type Record struct {
	Evaluations int64
	F           float64   // fitness of the evaluated point
	BestF       float64   // best fitness so far
	Optimum     float64   // known optimal fitness
	X           []float64 // evaluated point
}

// WriteHeader writes the column description line of a data file.
func WriteHeader(w io.Writer, optimum float64) error {
	_, err := fmt.Fprintf(w, dataHeaderFormat, optimum)
	return err
}

// WriteRecord appends r as one line to w.
func WriteRecord(w io.Writer, r Record) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %+10.9e %+10.9e %+10.9e %+10.9e",
		r.Evaluations, r.F-r.Optimum, r.BestF-r.Optimum, r.F, r.BestF)
	if len(r.X) <= MaxLoggedDimension {
		for _, v := range r.X {
			fmt.Fprintf(&sb, " %+5.4e", v)
		}
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}
