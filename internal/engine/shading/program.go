package shading

import "fmt"

// Program identifies one GPU shader pipeline.
type Program int

const (
	ProgramDebug Program = iota
	ProgramLambert
	ProgramToonDiffuse
	ProgramXToon
	ProgramPhong
	ProgramBlinnPhong
	ProgramToonSpecular
	ProgramShadow
	ProgramLightMarker

	programCount
)

// Programs lists every pipeline, in creation order.
func Programs() []Program {
	out := make([]Program, 0, programCount)
	for p := Program(0); p < programCount; p++ {
		out = append(out, p)
	}
	return out
}

func (p Program) String() string {
	switch p {
	case ProgramDebug:
		return "debug"
	case ProgramLambert:
		return "lambert"
	case ProgramToonDiffuse:
		return "toon-diffuse"
	case ProgramXToon:
		return "x-toon"
	case ProgramPhong:
		return "phong"
	case ProgramBlinnPhong:
		return "blinn-phong"
	case ProgramToonSpecular:
		return "toon-specular"
	case ProgramShadow:
		return "shadow"
	case ProgramLightMarker:
		return "light-marker"
	default:
		return fmt.Sprintf("Program(%d)", int(p))
	}
}

// Plan is the set of pipelines the lighting pass runs for one light.
type Plan struct {
	// Lit is false for the unlit debug path, which skips the depth
	// pre-pass, shadow sampling and per-light shading entirely.
	Lit      bool
	Diffuse  Program
	Specular Program
	// HasSpecular is false when the specular mode is none.
	HasSpecular bool
}

// Programs returns the pipelines in draw order.
func (p Plan) Programs() []Program {
	out := []Program{p.Diffuse}
	if p.HasSpecular {
		out = append(out, p.Specular)
	}
	return out
}

// PlanFor picks the pipelines for a diffuse/specular combination.
func PlanFor(d DiffuseMode, s SpecularMode) Plan {
	var plan Plan
	switch d {
	case DiffuseDebug:
		return Plan{Lit: false, Diffuse: ProgramDebug}
	case DiffuseLambert:
		plan.Diffuse = ProgramLambert
	case DiffuseToon:
		plan.Diffuse = ProgramToonDiffuse
	case DiffuseXToon:
		plan.Diffuse = ProgramXToon
	default:
		return Plan{Lit: false, Diffuse: ProgramDebug}
	}
	plan.Lit = true

	switch s {
	case SpecularNone:
	case SpecularPhong:
		plan.Specular, plan.HasSpecular = ProgramPhong, true
	case SpecularBlinnPhong:
		plan.Specular, plan.HasSpecular = ProgramBlinnPhong, true
	case SpecularToon:
		plan.Specular, plan.HasSpecular = ProgramToonSpecular, true
	}
	return plan
}
