package equi7

import "fmt"

// UnsupportedSamplingError is returned for a sampling that no tile class
// serves. It aborts grid construction.
type UnsupportedSamplingError struct {
	Sampling int
}

func (e *UnsupportedSamplingError) Error() string {
	return fmt.Sprintf("sampling %dm is not supported, supported samplings: %v", e.Sampling, Samplings)
}

// MalformedTileNameError is returned when a tile name fails structural
// parsing or one of the decode cross-checks. Reason names the failed check.
type MalformedTileNameError struct {
	Name   string
	Reason string
}

func (e *MalformedTileNameError) Error() string {
	return fmt.Sprintf("tile name %q is not properly defined: %s", e.Name, e.Reason)
}

// UnalignedCornerError is returned when a tile name's lower-left corner is
// not a multiple of its tile class's extent.
type UnalignedCornerError struct {
	Name string
	Axis string // "east" or "north"
	// Ordinate in 100 km units
	Ordinate int
	// Unit is the required multiple in 100 km units
	Unit int
}

func (e *UnalignedCornerError) Error() string {
	return fmt.Sprintf("tile name %q: %s ordinate %d must be a multiple of %d00km", e.Name, e.Axis, e.Ordinate, e.Unit)
}

// UnresolvedPointError is returned when a geodetic point lies within zero or
// more than one subgrid zone. Matches carries the ambiguous tags, empty for
// an unmatched point.
type UnresolvedPointError struct {
	Lon, Lat float64
	Matches  []string
}

func (e *UnresolvedPointError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("point (%v, %v) is not within any subgrid zone", e.Lon, e.Lat)
	}
	return fmt.Sprintf("point (%v, %v) is ambiguous between subgrid zones %v", e.Lon, e.Lat, e.Matches)
}
