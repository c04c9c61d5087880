package recorder

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/gowindtunnel/aerodynamics"
)

const (
	MaxHistory         = 100
	DefaultSessionName = "Wind Tunnel Session"
)

// TestResult is one recorded test. Pressure is in kPa, forces in N.
type TestResult struct {
	ID          int       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Session     string    `json:"session,omitempty" gorm:"primaryKey;size:36"`
	Timestamp   time.Time `json:"timestamp" gorm:"column:recorded_at;index"`
	SessionTime int64     `json:"sessionTime"` // ms since the session started
	WindSpeed   float64   `json:"windSpeed"`   // mph
	CarAngle    float64   `json:"carAngle"`    // degrees
	CarType     string    `json:"carType"`
	DragForce   float64   `json:"dragForce"`
	LiftForce   float64   `json:"liftForce"`
	Pressure    float64   `json:"pressure"`
	Notes       string    `json:"notes"`
}

func (TestResult) TableName() string { return "test_results" }

type Statistics struct {
	TotalTests       int
	AverageDrag      float64
	MaxDrag          float64
	MinDrag          float64
	AverageLift      float64
	MaxLift          float64
	MinLift          float64
	AverageWindSpeed float64
	MaxWindSpeed     float64
	MinWindSpeed     float64
	SessionDuration  time.Duration
}

// History keeps the most recent MaxHistory tests of one session
type History struct {
	mu      sync.Mutex
	name    string
	session string
	start   time.Time
	nextID  int
	tests   []TestResult
	now     func() time.Time
}

func NewHistory(name string) (h *History) {
	if name == "" {
		name = DefaultSessionName
	}
	h = &History{name: name, now: time.Now}
	h.reset()
	return
}

func (h *History) reset() {
	h.session = uuid.NewString()
	h.start = h.now()
	h.nextID = 1
	h.tests = nil
}

func (h *History) Name() string { return h.name }

func (h *History) SessionID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session
}

func (h *History) StartTime() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.start
}

// Record appends a test built from the inputs and the force report, dropping the
// oldest once the history is full.
func (h *History) Record(windSpeed, carAngle float64, carType string, fr aerodynamics.ForceReport) (tr TestResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.now()
	tr = TestResult{
		ID:          h.nextID,
		Session:     h.session,
		Timestamp:   now.UTC(),
		SessionTime: now.Sub(h.start).Milliseconds(),
		WindSpeed:   windSpeed,
		CarAngle:    carAngle,
		CarType:     carType,
		DragForce:   fr.Drag,
		LiftForce:   fr.Lift,
		Pressure:    fr.Pressure,
	}
	h.nextID++
	h.tests = append(h.tests, tr)
	h.trim()
	return
}

func (h *History) trim() {
	if n := len(h.tests); n > MaxHistory {
		h.tests = append([]TestResult(nil), h.tests[n-MaxHistory:]...)
	}
}

// AddNote annotates the most recent test. It returns the annotated test, if any.
func (h *History) AddNote(note string) (tr TestResult, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.tests) == 0 {
		return
	}
	last := &h.tests[len(h.tests)-1]
	last.Notes = note
	return *last, true
}

// Clear drops every test and starts a new session
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reset()
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tests)
}

// Tests returns a copy of the history, oldest first
func (h *History) Tests() []TestResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]TestResult(nil), h.tests...)
}

func (h *History) ByCarType(carType string) (tests []TestResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, tr := range h.tests {
		if tr.CarType == carType {
			tests = append(tests, tr)
		}
	}
	return
}

// Best is the lowest drag test; ties go to the earliest
func (h *History) Best() (best TestResult, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, tr := range h.tests {
		if i == 0 || tr.DragForce < best.DragForce {
			best, ok = tr, true
		}
	}
	return
}

func (h *History) Statistics() (st Statistics, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.tests) == 0 {
		return
	}
	st = Compute(h.tests)
	st.SessionDuration = h.now().Sub(h.start)
	return st, true
}

// Compute summarizes a non-empty set of tests. SessionDuration is left zero.
func Compute(tests []TestResult) (st Statistics) {
	var (
		n    = len(tests)
		drag = make([]float64, n)
		lift = make([]float64, n)
		wind = make([]float64, n)
	)
	if n == 0 {
		return
	}
	for i, tr := range tests {
		drag[i], lift[i], wind[i] = tr.DragForce, tr.LiftForce, tr.WindSpeed
	}
	st = Statistics{
		TotalTests:       n,
		AverageDrag:      stat.Mean(drag, nil),
		MaxDrag:          floats.Max(drag),
		MinDrag:          floats.Min(drag),
		AverageLift:      stat.Mean(lift, nil),
		MaxLift:          floats.Max(lift),
		MinLift:          floats.Min(lift),
		AverageWindSpeed: stat.Mean(wind, nil),
		MaxWindSpeed:     floats.Max(wind),
		MinWindSpeed:     floats.Min(wind),
	}
	return
}
