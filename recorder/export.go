package recorder

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

var (
	ErrNoTests       = errors.New("no test data")
	ErrInvalidImport = errors.New("invalid test data: missing tests array")
)

var csvHeader = []string{
	"Test ID",
	"Timestamp",
	"Session Time (ms)",
	"Wind Speed (MPH)",
	"Car Angle (degrees)",
	"Car Type",
	"Drag Force (N)",
	"Lift Force (N)",
	"Pressure (kPa)",
	"Notes",
}

func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// WriteCSV writes tests in the export column layout. Forces and pressure carry three decimals.
func WriteCSV(w io.Writer, tests []TestResult) (err error) {
	if len(tests) == 0 {
		return ErrNoTests
	}
	cw := csv.NewWriter(w)
	if err = cw.Write(csvHeader); err != nil {
		return
	}
	for _, tr := range tests {
		row := []string{
			strconv.Itoa(tr.ID),
			tr.Timestamp.UTC().Format(timestampFormat),
			strconv.FormatInt(tr.SessionTime, 10),
			formatNumber(tr.WindSpeed),
			formatNumber(tr.CarAngle),
			tr.CarType,
			strconv.FormatFloat(tr.DragForce, 'f', 3, 64),
			strconv.FormatFloat(tr.LiftForce, 'f', 3, 64),
			strconv.FormatFloat(tr.Pressure, 'f', 3, 64),
			tr.Notes,
		}
		if err = cw.Write(row); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

func (h *History) WriteCSV(w io.Writer) error {
	return WriteCSV(w, h.Tests())
}

type SessionInfo struct {
	Name       string    `json:"name"`
	StartTime  time.Time `json:"startTime"`
	Duration   int64     `json:"duration"` // ms
	TotalTests int       `json:"totalTests"`
}

// Export is the JSON export document
type Export struct {
	SessionInfo SessionInfo  `json:"sessionInfo"`
	Tests       []TestResult `json:"tests"`
}

func (h *History) Export() (ex Export) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ex = Export{
		SessionInfo: SessionInfo{
			Name:       h.name,
			StartTime:  h.start.UTC(),
			Duration:   h.now().Sub(h.start).Milliseconds(),
			TotalTests: len(h.tests),
		},
		Tests: append([]TestResult(nil), h.tests...),
	}
	return
}

func (h *History) WriteJSON(w io.Writer) error {
	ex := h.Export()
	if len(ex.Tests) == 0 {
		return ErrNoTests
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ex)
}

// ImportJSON appends the tests of an exported document, continues numbering after the
// highest id and keeps the newest MaxHistory tests. It returns the number imported.
func (h *History) ImportJSON(r io.Reader) (n int, err error) {
	var doc struct {
		Tests *[]TestResult `json:"tests"`
	}
	if err = json.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decoding test data: %w", err)
	}
	if doc.Tests == nil {
		return 0, ErrInvalidImport
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, tr := range *doc.Tests {
		if tr.Session == "" {
			tr.Session = h.session
		}
		h.tests = append(h.tests, tr)
	}
	for _, tr := range h.tests {
		if tr.ID >= h.nextID {
			h.nextID = tr.ID + 1
		}
	}
	h.trim()
	return len(*doc.Tests), nil
}

// Report is the plain text session summary
func (h *History) Report() (string, error) {
	st, ok := h.Statistics()
	if !ok {
		return "", ErrNoTests
	}
	var (
		b       strings.Builder
		best, _ = h.Best()
	)
	fmt.Fprintf(&b, "WIND TUNNEL TEST REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", h.now().Format("1/2/2006"))
	fmt.Fprintf(&b, "Session Duration: %d minutes\n\n", int(st.SessionDuration.Minutes()))
	fmt.Fprintf(&b, "SUMMARY:\n")
	fmt.Fprintf(&b, "- Total Tests: %d\n", st.TotalTests)
	fmt.Fprintf(&b, "- Average Wind Speed: %.1f MPH\n", st.AverageWindSpeed)
	fmt.Fprintf(&b, "- Average Drag Force: %.2f N\n", st.AverageDrag)
	fmt.Fprintf(&b, "- Average Lift Force: %.2f N\n\n", st.AverageLift)
	fmt.Fprintf(&b, "PERFORMANCE RANGE:\n")
	fmt.Fprintf(&b, "- Drag: %.2f - %.2f N\n", st.MinDrag, st.MaxDrag)
	fmt.Fprintf(&b, "- Lift: %.2f - %.2f N\n", st.MinLift, st.MaxLift)
	fmt.Fprintf(&b, "- Wind Speed: %s - %s MPH\n\n",
		formatNumber(st.MinWindSpeed), formatNumber(st.MaxWindSpeed))
	fmt.Fprintf(&b, "BEST TEST:\n")
	fmt.Fprintf(&b, "Test #%d - %s with %.2fN drag", best.ID, best.CarType, best.DragForce)
	return b.String(), nil
}
