package timezone

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/david5010/AetherGrid/internal/types"
	"github.com/ringsaturn/tzf"
)

var ErrNotFound = errors.New("timezone not found")

// Service provides timezone lookup functionality
type Service interface {
	GetTimezone(latitude, longitude float64) (string, error)
	// ForLocations resolves every location and joins the names with commas, in order,
	// the form Open-Meteo accepts for a multi-location timezone option.
	ForLocations(locations []types.LocationKey) (string, error)
}

type finder interface {
	GetTimezoneName(lng, lat float64) string
}

// service implements timezone lookup using tzf
type service struct {
	finder finder
	mu     sync.RWMutex
}

var (
	instance *service
	once     sync.Once
	initErr  error
)

// NewService creates or returns the singleton timezone service
// Uses singleton pattern because tzf.Finder loads timezone data into memory (~50MB)
func NewService() (Service, error) {
	once.Do(func() {
		f, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{finder: f}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// GetTimezone returns the IANA timezone name for the given coordinates
// Returns timezone names like "America/Denver", "Europe/London", etc.
func (s *service) GetTimezone(latitude, longitude float64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	timezone := s.finder.GetTimezoneName(longitude, latitude)
	if timezone == "" {
		return "", fmt.Errorf("%w: lat=%f, lon=%f", ErrNotFound, latitude, longitude)
	}

	return timezone, nil
}

func (s *service) ForLocations(locations []types.LocationKey) (string, error) {
	names := make([]string, 0, len(locations))
	for _, loc := range locations {
		name, err := s.GetTimezone(loc.Latitude, loc.Longitude)
		if err != nil {
			return "", err
		}
		names = append(names, name)
	}
	return strings.Join(names, ","), nil
}
