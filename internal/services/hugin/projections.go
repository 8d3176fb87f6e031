package hugin

import (
	"fmt"

	"pano/internal/services"
)

// projections lists the output projections pano_modify understands, indexed
// by the numeric id the tool expects.
var projections = []string{
	"rectilinear",
	"circular",
	"equirectangular",
	"fisheye_ff",
	"stereographic",
	"mercator",
	"trans_mercator",
	"sinusoidal",
	"lambert_equal_area_conic",
	"lambert_azimuthal",
	"albers_equal_area_conic",
	"miller_cylindrical",
	"panini",
	"architectural",
	"orthographic",
	"equisolid",
	"equi_panini",
	"biplane",
	"triplane",
	"panini_general",
	"thoby",
	"hammer",
}

// Projections returns all known projection names in id order.
func Projections() []string {
	out := make([]string, len(projections))
	copy(out, projections)
	return out
}

// ProjectionIndex resolves a projection name to its pano_modify id.
func ProjectionIndex(name string) (int, error) {
	for i, known := range projections {
		if known == name {
			return i, nil
		}
	}
	return 0, services.Wrap(services.ErrValidation, "hugin", "projection",
		fmt.Sprintf("unknown projection %q", name), nil)
}
