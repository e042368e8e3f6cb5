package delivery

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/metalldk/storefront/pkg/config"
	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/logger"
	"github.com/metalldk/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Router measures the road distance between two points.
type Router interface {
	DistanceKm(ctx context.Context, origin, destination types.Coordinate) (float64, error)
}

// Estimate is the result of one destination pick. Price is nil outside the
// city box, where delivery is quoted by a manager.
type Estimate struct {
	Vehicle     VehicleProfile   `json:"vehicle"`
	Destination types.Coordinate `json:"destination"`
	DistanceKm  float64          `json:"distance_km"`
	InCity      bool             `json:"in_city"`
	Price       *int64           `json:"price,omitempty"`
}

// Price is (base + km*rate) * (capacity/divisor), rounded to whole roubles.
func Price(base, distanceKm, capacityTons, ratePerKm, divisor float64) int64 {
	if divisor <= 0 {
		return 0
	}
	amount := decimal.NewFromFloat(base).
		Add(decimal.NewFromFloat(distanceKm).Mul(decimal.NewFromFloat(ratePerKm))).
		Mul(decimal.NewFromFloat(capacityTons).Div(decimal.NewFromFloat(divisor)))
	return amount.Round(0).IntPart()
}

// Estimator prices deliveries from the warehouse for the selected vehicle.
type Estimator struct {
	router  Router
	origin  types.Coordinate
	bounds  types.BoundingBox
	rate    float64
	divisor float64
	fleet   []VehicleProfile
	logg    *logger.Logger

	mu          sync.Mutex
	selected    *VehicleProfile
	destination *types.Coordinate
}

// NewEstimator builds an estimator from the delivery settings. A nil fleet
// uses DefaultFleet.
func NewEstimator(router Router, cfg config.DeliveryConfig, fleet []VehicleProfile, logg *logger.Logger) (*Estimator, error) {
	if router == nil {
		return nil, fmt.Errorf("delivery router required")
	}
	if fleet == nil {
		fleet = DefaultFleet()
	}
	for _, v := range fleet {
		if err := validate.Struct(v); err != nil {
			return nil, fmt.Errorf("vehicle %q: %w", v.Title, err)
		}
	}
	if cfg.CapacityDivisor <= 0 {
		return nil, fmt.Errorf("capacity divisor must be positive")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Estimator{
		router: router,
		origin: types.Coordinate{Lat: cfg.OriginLat, Lng: cfg.OriginLng},
		bounds: types.BoundingBox{
			North: cfg.BoundsNorth,
			South: cfg.BoundsSouth,
			West:  cfg.BoundsWest,
			East:  cfg.BoundsEast,
		},
		rate:    cfg.RatePerKm,
		divisor: cfg.CapacityDivisor,
		fleet:   fleet,
		logg:    logg,
	}, nil
}

func (e *Estimator) Fleet() []VehicleProfile {
	out := make([]VehicleProfile, len(e.fleet))
	copy(out, e.fleet)
	return out
}

func (e *Estimator) Origin() types.Coordinate { return e.origin }

// Select makes v the vehicle used by later estimates.
func (e *Estimator) Select(v VehicleProfile) error {
	if err := validate.Struct(v); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle")
	}
	e.mu.Lock()
	e.selected = &v
	e.mu.Unlock()
	return nil
}

// Switch selects v and, when a destination was already estimated, prices the
// same trip again for the new vehicle. It returns nil when there is nothing
// to re-estimate yet.
func (e *Estimator) Switch(ctx context.Context, v VehicleProfile) (*Estimate, error) {
	if err := e.Select(v); err != nil {
		return nil, err
	}
	dest, ok := e.LastDestination()
	if !ok {
		return nil, nil
	}
	return e.Estimate(ctx, dest)
}

// LastDestination returns the destination of the last successful estimate.
func (e *Estimator) LastDestination() (types.Coordinate, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destination == nil {
		return types.Coordinate{}, false
	}
	return *e.destination, true
}

func (e *Estimator) Selected() (VehicleProfile, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected == nil {
		return VehicleProfile{}, false
	}
	return *e.selected, true
}

// Estimate routes from the warehouse to destination and prices the trip
// when destination lies inside the city box.
func (e *Estimator) Estimate(ctx context.Context, destination types.Coordinate) (*Estimate, error) {
	vehicle, ok := e.Selected()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "select a vehicle first")
	}
	if !destination.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination is out of range")
	}

	km, err := e.router.DistanceKm(ctx, e.origin, destination)
	if err != nil {
		e.logg.Warn(e.logg.WithField(ctx, "error", err.Error()), "delivery.route.failed")
		return nil, err
	}

	est := &Estimate{
		Vehicle:     vehicle,
		Destination: destination,
		DistanceKm:  km,
		InCity:      e.bounds.Contains(destination),
	}
	if est.InCity {
		price := Price(vehicle.BasePrice, km, vehicle.CapacityTons, e.rate, e.divisor)
		est.Price = &price
	}
	e.mu.Lock()
	e.destination = &destination
	e.mu.Unlock()
	e.logg.Debug(e.logg.WithFields(ctx, map[string]any{
		"vehicle":     vehicle.Title,
		"distance_km": km,
		"in_city":     est.InCity,
	}), "delivery.estimated")
	return est, nil
}
