package shading

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModesRoundTrip(t *testing.T) {
	for _, m := range DiffuseModes {
		got, err := ParseDiffuseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	for _, m := range SpecularModes {
		got, err := ParseSpecularMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestParseUnknownMode(t *testing.T) {
	_, err := ParseDiffuseMode("gouraud")
	assert.True(t, errors.Is(err, ErrUnknownMode))

	_, err = ParseSpecularMode("cook-torrance")
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestNextWraps(t *testing.T) {
	assert.Equal(t, DiffuseDebug, DiffuseXToon.Next())
	assert.Equal(t, DiffuseLambert, DiffuseDebug.Next())
	assert.Equal(t, SpecularNone, SpecularToon.Next())
	assert.Equal(t, SpecularBlinnPhong, SpecularPhong.Next())
}

func TestPlanDebugIgnoresSpecular(t *testing.T) {
	for _, s := range SpecularModes {
		plan := PlanFor(DiffuseDebug, s)
		assert.False(t, plan.Lit, "specular %s", s)
		assert.Equal(t, []Program{ProgramDebug}, plan.Programs(), "specular %s", s)
	}
}

func TestPlanLitCombinations(t *testing.T) {
	diffuse := map[DiffuseMode]Program{
		DiffuseLambert: ProgramLambert,
		DiffuseToon:    ProgramToonDiffuse,
		DiffuseXToon:   ProgramXToon,
	}
	specular := map[SpecularMode]Program{
		SpecularPhong:      ProgramPhong,
		SpecularBlinnPhong: ProgramBlinnPhong,
		SpecularToon:       ProgramToonSpecular,
	}

	for d, dp := range diffuse {
		plan := PlanFor(d, SpecularNone)
		assert.True(t, plan.Lit)
		assert.Equal(t, []Program{dp}, plan.Programs())

		for s, sp := range specular {
			plan := PlanFor(d, s)
			assert.True(t, plan.Lit)
			assert.Equal(t, []Program{dp, sp}, plan.Programs(), "%s/%s", d, s)
		}
	}
}

func TestMaterialClamp(t *testing.T) {
	m := Material{ToonDiscretize: 0, ToonSpecularThreshold: 1.5, Shininess: -2}.Clamp()
	assert.Equal(t, int32(MinToonDiscretize), m.ToonDiscretize)
	assert.Equal(t, float32(1), m.ToonSpecularThreshold)
	assert.Equal(t, float32(0), m.Shininess)

	m = Material{ToonDiscretize: 42, ToonSpecularThreshold: -1}.Clamp()
	assert.Equal(t, int32(MaxToonDiscretize), m.ToonDiscretize)
	assert.Equal(t, float32(0), m.ToonSpecularThreshold)

	d := DefaultMaterial()
	assert.Equal(t, d, d.Clamp())
}

func TestProgramsCoverEveryPipeline(t *testing.T) {
	ps := Programs()
	require.Len(t, ps, int(programCount))
	seen := map[string]bool{}
	for _, p := range ps {
		assert.False(t, seen[p.String()], "duplicate name %s", p)
		seen[p.String()] = true
	}
}
