package cars

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Vec3 is a rotation in degrees or a position in scene units
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) R3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func FromR3(v r3.Vec) Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }

type Placement struct {
	Rotation Vec3 `json:"rotation"`
	Position Vec3 `json:"position"`
}

// DefaultPlacement is where a car type sits in the test section before any edit
func DefaultPlacement(carType string) (p Placement) {
	p.Position = Vec3{Y: -1.5}
	if carType == "f1" {
		p.Rotation = Vec3{Y: 90}
	}
	return
}

// Settings is the portable export format of every placement
type Settings struct {
	Rotations    map[string]Vec3 `json:"rotations"`
	Positions    map[string]Vec3 `json:"positions"`
	LastModified time.Time       `json:"lastModified"`
}

type placementRecord struct {
	CarType   string `gorm:"primaryKey"`
	RotX      float64
	RotY      float64
	RotZ      float64
	PosX      float64
	PosY      float64
	PosZ      float64
	UpdatedAt time.Time
}

func (placementRecord) TableName() string { return "car_placements" }

func (r placementRecord) placement() Placement {
	return Placement{
		Rotation: Vec3{r.RotX, r.RotY, r.RotZ},
		Position: Vec3{r.PosX, r.PosY, r.PosZ},
	}
}

func newPlacementRecord(carType string, p Placement) placementRecord {
	return placementRecord{
		CarType: carType,
		RotX:    p.Rotation.X, RotY: p.Rotation.Y, RotZ: p.Rotation.Z,
		PosX: p.Position.X, PosY: p.Position.Y, PosZ: p.Position.Z,
	}
}

// Store persists per car type placements
type Store struct {
	db   *gorm.DB
	keys []string
	log  zerolog.Logger
}

// NewStore migrates the placement table and fills in defaults for the given car
// types that have no saved placement.
func NewStore(db *gorm.DB, keys []string, log zerolog.Logger) (*Store, error) {
	s := &Store{
		db:   db,
		keys: keys,
		log:  log.With().Str("component", "placements").Logger(),
	}
	if err := db.AutoMigrate(&placementRecord{}); err != nil {
		return nil, fmt.Errorf("migrating car placements: %w", err)
	}
	for _, k := range keys {
		var rec placementRecord
		err := db.Where("car_type = ?", k).Take(&rec).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err = s.put(k, DefaultPlacement(k)); err != nil {
				return nil, err
			}
		case err != nil:
			return nil, fmt.Errorf("loading placement for %q: %w", k, err)
		}
	}
	return s, nil
}

func (s *Store) known(carType string) error {
	for _, k := range s.keys {
		if k == carType {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCarType, carType)
}

func (s *Store) put(carType string, p Placement) error {
	rec := newPlacementRecord(carType, p)
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		return fmt.Errorf("saving placement for %q: %w", carType, err)
	}
	return nil
}

func (s *Store) Get(carType string) (p Placement, err error) {
	if err = s.known(carType); err != nil {
		return
	}
	var rec placementRecord
	if err = s.db.Where("car_type = ?", carType).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultPlacement(carType), nil
		}
		return p, fmt.Errorf("loading placement for %q: %w", carType, err)
	}
	return rec.placement(), nil
}

func (s *Store) update(carType string, fn func(p *Placement)) error {
	p, err := s.Get(carType)
	if err != nil {
		return err
	}
	fn(&p)
	if err = s.put(carType, p); err != nil {
		return err
	}
	s.log.Debug().Str("car_type", carType).Interface("placement", p).Msg("placement saved")
	return nil
}

func (s *Store) SetRotation(carType string, rot Vec3) error {
	return s.update(carType, func(p *Placement) { p.Rotation = rot })
}

func (s *Store) SetPosition(carType string, pos Vec3) error {
	return s.update(carType, func(p *Placement) { p.Position = pos })
}

func (s *Store) ResetRotation(carType string) error {
	return s.update(carType, func(p *Placement) { p.Rotation = DefaultPlacement(carType).Rotation })
}

func (s *Store) ResetPosition(carType string) error {
	return s.update(carType, func(p *Placement) { p.Position = DefaultPlacement(carType).Position })
}

func (s *Store) Reset(carType string) error {
	return s.update(carType, func(p *Placement) { *p = DefaultPlacement(carType) })
}

// ClearAll restores the defaults of every car type
func (s *Store) ClearAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&placementRecord{}).Error; err != nil {
			return fmt.Errorf("clearing placements: %w", err)
		}
		for _, k := range s.keys {
			rec := newPlacementRecord(k, DefaultPlacement(k))
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("restoring placement for %q: %w", k, err)
			}
		}
		return nil
	})
}

func (s *Store) Settings() (st Settings, err error) {
	st = Settings{
		Rotations: make(map[string]Vec3),
		Positions: make(map[string]Vec3),
	}
	var recs []placementRecord
	if err = s.db.Order("car_type").Find(&recs).Error; err != nil {
		return st, fmt.Errorf("listing placements: %w", err)
	}
	for _, r := range recs {
		st.Rotations[r.CarType] = Vec3{r.RotX, r.RotY, r.RotZ}
		st.Positions[r.CarType] = Vec3{r.PosX, r.PosY, r.PosZ}
		if r.UpdatedAt.After(st.LastModified) {
			st.LastModified = r.UpdatedAt
		}
	}
	return
}

// Export returns every placement as indented JSON
func (s *Store) Export() ([]byte, error) {
	st, err := s.Settings()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(st, "", "  ")
}

// Import replaces the saved placements with those in data. Known car types missing
// from data get their defaults.
func (s *Store) Import(data []byte) error {
	var st Settings
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("parsing placement settings: %w", err)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, k := range s.keys {
			p := DefaultPlacement(k)
			if rot, ok := st.Rotations[k]; ok {
				p.Rotation = rot
			}
			if pos, ok := st.Positions[k]; ok {
				p.Position = pos
			}
			rec := newPlacementRecord(k, p)
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
				return fmt.Errorf("importing placement for %q: %w", k, err)
			}
		}
		return nil
	})
}
