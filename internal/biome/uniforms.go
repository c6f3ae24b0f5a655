package biome

import "github.com/Faultbox/riverscape/internal/config"

// Uniforms returns the shader uniforms for the terrain material, keyed by
// GLSL name. Colors are [3]float32; everything else is float32.
func (e *Evaluator) Uniforms() map[string]any {
	c := &e.cfg
	p := &e.palette

	return map[string]any{
		"fbmScale1":        float32(c.Noise.FBM1),
		"fbmScale2":        float32(c.Noise.FBM2),
		"largeNoiseScale":  float32(c.Noise.Large),
		"detailNoiseScale": float32(c.Noise.Detail),

		"pathFreq1Y":      float32(c.Paths.Frequency1Y),
		"pathFreq1X":      float32(c.Paths.Frequency1X),
		"pathFreq2X":      float32(c.Paths.Frequency2X),
		"pathFreq2Y":      float32(c.Paths.Frequency2Y),
		"pathNoiseScale1": float32(c.Paths.NoiseScale1),
		"pathNoiseScale2": float32(c.Paths.NoiseScale2),
		"pathNoiseAmp1":   float32(c.Paths.NoiseAmplitude1),
		"pathNoiseAmp2":   float32(c.Paths.NoiseAmplitude2),
		"pathWidthMin":    float32(c.Paths.Width.Min),
		"pathWidthMax":    float32(c.Paths.Width.Max),
		"pathStrength":    float32(c.Paths.Strength),

		"grassThresh1Min": float32(c.GrassMask.Threshold1.Min),
		"grassThresh1Max": float32(c.GrassMask.Threshold1.Max),
		"grassThresh2Min": float32(c.GrassMask.Threshold2.Min),
		"grassThresh2Max": float32(c.GrassMask.Threshold2.Max),
		"grassContrast":   float32(c.GrassMask.Contrast),

		"forestThreshMin": float32(c.ForestMask.Range.Min),
		"forestThreshMax": float32(c.ForestMask.Range.Max),
		"forestStrength":  float32(c.ForestMask.Strength),

		"riverGrassMin":      float32(c.RiverGrass.Range.Min),
		"riverGrassMax":      float32(c.RiverGrass.Range.Max),
		"riverGrassStrength": float32(c.RiverGrass.Strength),
		"mudRangeMin":        float32(c.Mud.Range.Min),
		"mudRangeMax":        float32(c.Mud.Range.Max),
		"mudStrength":        float32(c.Mud.Strength),
		"riverGridWidth":     float32(e.gridWidth),

		"heightBands":        boolUniform(c.Heights.Enabled),
		"beachMax":           float32(c.Heights.BeachMax),
		"beachBlend":         float32(c.Heights.BeachBlend),
		"rockSlopeThreshold": float32(c.Heights.RockSlopeThreshold),
		"snowMin":            float32(c.Heights.SnowMin),
		"snowBlend":          float32(c.Heights.SnowBlend),
		"contrast":           float32(c.Contrast),

		"dirtColor":       vec3(p.Dirt),
		"dirtPathColor":   vec3(p.DirtPath),
		"grassColor":      vec3(p.Grass),
		"darkGrassColor":  vec3(p.DarkGrass),
		"forestColor":     vec3(p.Forest),
		"mudColor":        vec3(p.Mud),
		"riverGrassColor": vec3(p.RiverGrass),
		"sandColor":       vec3(p.Sand),
		"rockColor":       vec3(p.Rock),
		"snowColor":       vec3(p.Snow),
		"warmTint":        vec3(p.WarmTint),
	}
}

func vec3(c config.Color) [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

func boolUniform(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
