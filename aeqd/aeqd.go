// Package aeqd provides an azimuthal equidistant projection on the authalic
// sphere, parameterized per subgrid by the static dataset. It serves as the
// default geodetic/planar conversion capability; a proj-backed implementation
// built from the dataset's WKT strings can be substituted where ellipsoidal
// accuracy matters.
package aeqd

import (
	"math"

	"github.com/gridworks-geo/equi7grid/geodata"
)

const (
	// mean Earth radius of the sphere approximating the WGS84 ellipsoid
	sphereRadius = 6371008.7714
	// WGS84 semi-major axis, used for the distortion factor
	semiMajorAxis = 6378137.0
)

// Projection is an azimuthal equidistant projection centred on one subgrid's
// projection centre. Immutable and safe for concurrent use.
type Projection struct {
	lat0, lon0    float64 // radians
	sinLat0       float64
	cosLat0       float64
	falseEasting  float64
	falseNorthing float64
}

func New(params geodata.AEQDParams) *Projection {
	lat0 := params.LatitudeOfOrigin * math.Pi / 180
	return &Projection{
		lat0:          lat0,
		lon0:          params.CentralMeridian * math.Pi / 180,
		sinLat0:       math.Sin(lat0),
		cosLat0:       math.Cos(lat0),
		falseEasting:  params.FalseEasting,
		falseNorthing: params.FalseNorthing,
	}
}

// Forward projects a geodetic coordinate in degrees to planar metres.
func (p *Projection) Forward(lon, lat float64) (x, y float64) {
	phi := lat * math.Pi / 180
	dLam := normalizeLon(lon*math.Pi/180 - p.lon0)
	sinPhi, cosPhi := math.Sincos(phi)
	cosDLam := math.Cos(dLam)

	cosC := p.sinLat0*sinPhi + p.cosLat0*cosPhi*cosDLam
	c := math.Acos(math.Max(-1, math.Min(1, cosC)))
	kPrime := 1.0
	if c != 0 {
		kPrime = c / math.Sin(c)
	}

	x = sphereRadius*kPrime*cosPhi*math.Sin(dLam) + p.falseEasting
	y = sphereRadius*kPrime*(p.cosLat0*sinPhi-p.sinLat0*cosPhi*cosDLam) + p.falseNorthing
	return x, y
}

// Inverse projects a planar coordinate in metres back to geodetic degrees.
func (p *Projection) Inverse(x, y float64) (lon, lat float64) {
	dx := (x - p.falseEasting) / sphereRadius
	dy := (y - p.falseNorthing) / sphereRadius
	c := math.Hypot(dx, dy)
	if c == 0 {
		return p.lon0 * 180 / math.Pi, p.lat0 * 180 / math.Pi
	}
	sinC, cosC := math.Sincos(c)

	phi := math.Asin(cosC*p.sinLat0 + dy*sinC*p.cosLat0/c)
	lam := p.lon0 + math.Atan2(dx*sinC, c*p.cosLat0*cosC-dy*p.sinLat0*sinC)
	return normalizeLon(lam) * 180 / math.Pi, phi * 180 / math.Pi
}

// LengthDistortion returns the local maximum length distortion k at a planar
// coordinate, which equals the local areal distortion: the azimuthal
// equidistant projection keeps h=1 along the radius, so only the direction
// perpendicular to it stretches, by k = (c/a) / sin(c/a) with c the distance
// to the projection centre.
func (p *Projection) LengthDistortion(x, y float64) float64 {
	d := math.Hypot(x-p.falseEasting, y-p.falseNorthing)
	if d == 0 {
		return 1
	}
	c := d / semiMajorAxis
	return c / math.Sin(c)
}

func normalizeLon(lam float64) float64 {
	for lam > math.Pi {
		lam -= 2 * math.Pi
	}
	for lam < -math.Pi {
		lam += 2 * math.Pi
	}
	return lam
}
