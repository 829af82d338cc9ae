//go:build !verify_shading
// +build !verify_shading

package raytrace

import "github.com/fogleman/pt/pt"

// Empty stubs that will be optimized out
func verifyReflectionLaw(incident, normal, reflected pt.Vector) {}

func verifyUnit(what string, v pt.Vector) {}

func verifyFresnel(R float64) {}
