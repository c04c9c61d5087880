package cars

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/notargets/gowindtunnel/aerodynamics"
	"github.com/notargets/gowindtunnel/flowfield"
)

const (
	DefaultCarType      = "sedan"
	PressureCoefficient = 0.5
)

// Editor bounds for car type parameters
const (
	MinDragCoefficient = 0.
	MaxDragCoefficient = 2.
	MinLiftCoefficient = -3.
	MaxLiftCoefficient = 2.
	MinFrontalArea     = 0.5
	MaxFrontalArea     = 10.
	MinWeight          = 500.
	MaxWeight          = 5000.
)

var ErrUnknownCarType = errors.New("unknown car type")

type CarType struct {
	Key          string                    `json:"key"`
	Name         string                    `json:"name"`
	Description  string                    `json:"description"`
	Coefficients aerodynamics.Coefficients `json:"coefficients"`
	Weight       float64                   `json:"weight"` // kg
	Size         flowfield.BoundingSize    `json:"size"`
	Enabled      bool                      `json:"enabled"`
}

func newCarType(key, name, description string, cd, cl, area, weight float64) CarType {
	return CarType{
		Key:         key,
		Name:        name,
		Description: description,
		Coefficients: aerodynamics.Coefficients{
			DragBase:     cd,
			LiftBase:     cl,
			PressureBase: PressureCoefficient,
			FrontalArea:  area,
		},
		Weight:  weight,
		Size:    flowfield.DefaultCarSize,
		Enabled: true,
	}
}

// DefaultCarTypes returns a fresh copy of the built-in catalog
func DefaultCarTypes() []CarType {
	return []CarType{
		newCarType("f1", "F1 Race Car", "Formula 1 racing car with maximum downforce", 0.7, -2.5, 1.8, 740),
		newCarType("sedan", "Sedan", "Standard passenger car with good aerodynamics", 0.3, 0.1, 2.2, 1500),
		newCarType("sports", "Sports Car", "Low-profile car with aggressive aerodynamics", 0.35, -0.2, 2.0, 1300),
		newCarType("suv", "SUV", "Tall vehicle with higher drag coefficient", 0.45, 0.2, 2.8, 2200),
		newCarType("truck", "Truck", "Large vehicle with poor aerodynamics", 0.8, 0.1, 3.5, 3500),
		newCarType("custom", "Custom Car", "User supplied model", 0.3, 0.1, 2.2, 1500),
	}
}

func DefaultKeys() (keys []string) {
	for _, ct := range DefaultCarTypes() {
		keys = append(keys, ct.Key)
	}
	return
}

// Validate checks the editable parameters against the editor bounds
func (ct CarType) Validate() error {
	var (
		errs []error
		c    = ct.Coefficients
	)
	check := func(name string, v, lo, hi float64) {
		if !(v >= lo && v <= hi) {
			errs = append(errs, fmt.Errorf("%s %g outside [%g,%g]", name, v, lo, hi))
		}
	}
	if ct.Key == "" {
		errs = append(errs, errors.New("car type key is empty"))
	}
	check("drag coefficient", c.DragBase, MinDragCoefficient, MaxDragCoefficient)
	check("lift coefficient", c.LiftBase, MinLiftCoefficient, MaxLiftCoefficient)
	check("frontal area", c.FrontalArea, MinFrontalArea, MaxFrontalArea)
	check("weight", ct.Weight, MinWeight, MaxWeight)
	return errors.Join(errs...)
}

// Catalog is the set of selectable car types
type Catalog struct {
	mu    sync.RWMutex
	types map[string]CarType
}

func NewCatalog() (c *Catalog) {
	c = &Catalog{types: make(map[string]CarType)}
	for _, ct := range DefaultCarTypes() {
		c.types[ct.Key] = ct
	}
	return
}

func (c *Catalog) Get(key string) (CarType, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ct, ok := c.types[key]
	if !ok {
		return CarType{}, fmt.Errorf("%w: %q", ErrUnknownCarType, key)
	}
	return ct, nil
}

// Keys returns every car type key in sorted order
func (c *Catalog) Keys() (keys []string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k := range c.types {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

func (c *Catalog) EnabledKeys() (keys []string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, ct := range c.types {
		if ct.Enabled {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return
}

func (c *Catalog) SetEnabled(key string, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ct, ok := c.types[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCarType, key)
	}
	ct.Enabled = enabled
	c.types[key] = ct
	return nil
}

// Put validates and stores ct, adding it if the key is new
func (c *Catalog) Put(ct CarType) error {
	if err := ct.Validate(); err != nil {
		return fmt.Errorf("car type %q: %w", ct.Key, err)
	}
	if ct.Size == (flowfield.BoundingSize{}) {
		ct.Size = flowfield.DefaultCarSize
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[ct.Key] = ct
	return nil
}

// Reset restores a built-in car type to its defaults
func (c *Catalog) Reset(key string) error {
	for _, ct := range DefaultCarTypes() {
		if ct.Key == key {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.types[key] = ct
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCarType, key)
}
