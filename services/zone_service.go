package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront/models"
	"storefront/repository"
)

// ZoneService resolves a delivery coordinate to the zone that serves
// it, if any.
type ZoneService interface {
	Resolve(ctx context.Context, point models.Coordinate) (*models.DeliveryZone, error)
}

type zoneService struct {
	zones  repository.ZoneRepository
	logger *zap.Logger
}

// NewZoneService creates a ZoneService backed by the zone repository.
func NewZoneService(zones repository.ZoneRepository, logger *zap.Logger) ZoneService {
	return &zoneService{zones: zones, logger: logger}
}

// Resolve walks active zones in priority order and returns the first
// one that contains the point. A nil zone with nil error means the
// address is outside every delivery area.
func (s *zoneService) Resolve(ctx context.Context, point models.Coordinate) (*models.DeliveryZone, error) {
	zones, err := s.zones.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load delivery zones: %w", err)
	}

	for i := range zones {
		zone := &zones[i]
		switch zone.Type {
		case models.ZoneTypePolygon:
			if containsPoint(zone.Ring, point) {
				return zone, nil
			}
		default:
			// radius and postal_code zones are stored but not yet
			// matchable; skip rather than misroute.
			s.logger.Debug("skipping zone with unsupported type",
				zap.String("zone_id", zone.ID.String()),
				zap.String("type", string(zone.Type)))
		}
	}
	return nil, nil
}

// containsPoint runs an even-odd ray cast against the polygon ring.
// A point exactly on an edge counts as inside.
func containsPoint(ring models.PolygonRing, p models.Coordinate) bool {
	if len(ring) < 3 {
		return false
	}
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		a, b := ring[i], ring[j]
		intersects := (a.Lat > p.Lat) != (b.Lat > p.Lat) &&
			p.Lng < (b.Lng-a.Lng)*(p.Lat-a.Lat)/(b.Lat-a.Lat)+a.Lng
		if intersects {
			inside = !inside
		}
		if onSegment(a, b, p) {
			return true
		}
		j = i
	}
	return inside
}

func onSegment(a, b, p models.Coordinate) bool {
	cross := (b.Lng-a.Lng)*(p.Lat-a.Lat) - (b.Lat-a.Lat)*(p.Lng-a.Lng)
	if cross != 0 {
		return false
	}
	withinLat := (p.Lat >= a.Lat && p.Lat <= b.Lat) || (p.Lat >= b.Lat && p.Lat <= a.Lat)
	withinLng := (p.Lng >= a.Lng && p.Lng <= b.Lng) || (p.Lng >= b.Lng && p.Lng <= a.Lng)
	return withinLat && withinLng
}
