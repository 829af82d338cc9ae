//go:build verify_shading
// +build verify_shading

package raytrace

import (
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"
)

const (
	lengthEpsilon = 1e-6
	angleEpsilon  = 1e-6
)

func init() {
	fmt.Println("Shading verification enabled.")
}

func verifyReflectionLaw(incident, normal, reflected pt.Vector) {
	verifyUnit("reflection normal", normal)
	// Angle of incidence should equal angle of reflection
	if math.Abs(incident.Dot(normal)+reflected.Dot(normal)) > angleEpsilon {
		panic("angle of incidence should equal angle of reflection")
	}
}

func verifyUnit(what string, v pt.Vector) {
	if math.Abs(v.Length()-1) > lengthEpsilon {
		panic(fmt.Sprintf("%s is not unit length: %v", what, v))
	}
}

func verifyFresnel(R float64) {
	if R < 0 || R > 1 || math.IsNaN(R) {
		panic(fmt.Sprintf("fresnel reflectance out of range: %f", R))
	}
}
