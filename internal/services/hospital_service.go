package services

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/zamanlabs/medicare/internal/models"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

const (
	earthRadiusKM         = 6371.0
	nearbyHospitalMin     = 5
	nearbyHospitalMax     = 8
	nearbySpreadDegrees   = 0.05
	coordinateSeedScale   = 1000
	hospitalPhonePrefix   = "+1-555-"
	emergencyHospitalRate = 0.6
)

var hospitalNames = []string{
	"City General Hospital",
	"St. Mary's Medical Center",
	"Riverside Community Hospital",
	"Mercy Health Clinic",
	"Lakeside Regional Hospital",
	"Green Valley Medical Center",
	"Northside Children's Hospital",
	"Sunrise Heart Institute",
	"Harbor View Hospital",
	"Central Care Clinic",
}

var hospitalStreets = []string{
	"Main Street",
	"Oak Avenue",
	"Park Road",
	"Hospital Drive",
	"Elm Street",
	"Cedar Lane",
	"Lake Boulevard",
	"Hillcrest Road",
}

type HospitalService struct{}

func NewHospitalService() *HospitalService {
	return &HospitalService{}
}

// Nearby returns a mock list of hospitals around the coordinate, closest
// first. The same coordinate (to three decimals) always yields the same list.
func (service *HospitalService) Nearby(latitude float64, longitude float64) ([]models.Hospital, error) {
	if err := ValidateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}

	random := rand.New(rand.NewPCG(coordinateSeed(latitude), coordinateSeed(longitude)))
	count := nearbyHospitalMin + random.IntN(nearbyHospitalMax-nearbyHospitalMin+1)
	names := random.Perm(len(hospitalNames))[:count]

	hospitals := make([]models.Hospital, 0, count)
	for _, nameIndex := range names {
		hospitalLatitude := clampLatitude(latitude + (random.Float64()*2-1)*nearbySpreadDegrees)
		hospitalLongitude := wrapLongitude(longitude + (random.Float64()*2-1)*nearbySpreadDegrees)

		hospitals = append(hospitals, models.Hospital{
			Name:       hospitalNames[nameIndex],
			Address:    fmt.Sprintf("%d %s", 100+random.IntN(9900), hospitalStreets[random.IntN(len(hospitalStreets))]),
			Phone:      fmt.Sprintf("%s%04d", hospitalPhonePrefix, random.IntN(10000)),
			Latitude:   hospitalLatitude,
			Longitude:  hospitalLongitude,
			DistanceKM: roundTo(HaversineKM(latitude, longitude, hospitalLatitude, hospitalLongitude), 2),
			Emergency:  random.Float64() < emergencyHospitalRate,
		})
	}

	sort.SliceStable(hospitals, func(i, j int) bool {
		return hospitals[i].DistanceKM < hospitals[j].DistanceKM
	})
	return hospitals, nil
}

func ValidateCoordinates(latitude float64, longitude float64) error {
	if math.IsNaN(latitude) || math.IsNaN(longitude) {
		return ErrInvalidCoordinates
	}
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// HaversineKM is the great-circle distance between two points in kilometres.
func HaversineKM(lat1 float64, lng1 float64, lat2 float64, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func coordinateSeed(value float64) uint64 {
	return uint64(int64(math.Round(value * coordinateSeedScale)))
}

func clampLatitude(value float64) float64 {
	return math.Max(-90, math.Min(90, value))
}

func wrapLongitude(value float64) float64 {
	switch {
	case value > 180:
		return value - 360
	case value < -180:
		return value + 360
	default:
		return value
	}
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
