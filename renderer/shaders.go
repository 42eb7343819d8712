package renderer

// The std140 block declarations below are the GPU-side half of the layout
// contract in the uniforms package. Field order and types must track the Go
// structs exactly; the offset tests over there are written against these.

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// Shared pattern library. Both layout versions compile this after their own
// FrameState block declaration and a COMPACT_LAYOUT define.
const patternLibrary = `
layout(std140) uniform Palette {
    vec4 paletteColors[6];
    int  paletteCount;
};

in vec2 frag_uv;
out vec4 fragColor;

float hash(vec2 p, float seed) {
    return fract(sin(dot(p, vec2(127.1, 311.7)) + seed) * 43758.5453);
}

vec3 paletteAt(float t) {
    if (paletteCount <= 0) {
        // Fallback ramp when no inspiration pack is loaded.
        return 0.5 + 0.5 * cos(6.28318 * (t + vec3(0.0, 0.33, 0.67)));
    }
    float x = fract(t) * float(paletteCount);
    int i = int(x) % paletteCount;
    int j = (i + 1) % paletteCount;
    return mix(paletteColors[i].rgb, paletteColors[j].rgb, fract(x));
}

vec3 renderPattern(int pattern, vec2 uv, vec2 centered, float t, float seed) {
    float bassKick = audioBass * pulseStrength;
    if (pattern == 0) {
        float w = sin(centered.x * 8.0 + t * 2.0) * 0.2 * (0.5 + audioLevel);
        float d = abs(centered.y - w);
        return paletteAt(colorShift + uv.x * 0.2) * smoothstep(0.2 + bassKick * 0.2, 0.0, d);
    } else if (pattern == 1) {
        float r = length(centered);
        float rings = sin(r * 24.0 - t * 4.0 - bassKick * 6.0);
        return paletteAt(colorShift + r) * smoothstep(0.2, 0.8, rings);
    } else if (pattern == 2) {
        float a = atan(centered.y, centered.x);
        float r = length(centered) + 0.001;
        float tunnel = sin(1.0 / r * (1.0 + audioMid * 2.0) + a * 3.0 - t * 3.0);
        return paletteAt(colorShift + tunnel * 0.25) * (0.5 + 0.5 * tunnel) * (0.4 + audioLevel);
    } else if (pattern == 3) {
        float v = sin(uv.x * 10.0 + t) + sin(uv.y * 12.0 - t * 1.3)
                + sin((uv.x + uv.y) * 9.0 + t * 0.7) * (1.0 + audioHigh);
        return paletteAt(colorShift + v * 0.1);
    } else if (pattern == 4) {
        float a = atan(centered.y, centered.x);
        float folded = abs(fract(a / 6.28318 * 6.0) - 0.5) * 2.0;
        float beam = smoothstep(0.4 + bassKick * 0.3, 0.0, folded * length(centered));
        return paletteAt(colorShift + folded) * beam;
    } else if (pattern == 5) {
        vec2 cell = floor(uv * (8.0 + audioMid * 16.0));
        float h = hash(cell, seed);
        float on = step(1.0 - audioLevel * 0.8 - 0.1, h);
        return paletteAt(colorShift + h) * on;
    } else if (pattern == 6) {
        float n = 0.0;
        vec2 p = centered * (2.0 + audioBass * 2.0);
        for (int i = 0; i < 4; i++) {
            n += hash(floor(p * float(2 << i)), seed) / float(2 << i);
        }
        return paletteAt(colorShift + n) * n * (0.6 + audioLevel);
    }
    float bar = step(fract(uv.y * 24.0 + t * 2.0), 0.5 * (0.3 + audioFreqBand));
    return paletteAt(colorShift + uv.y) * bar;
}

void main() {
    vec2 uv = frag_uv;
    vec2 centered = (uv - 0.5) * vec2(resolution.x / resolution.y, 1.0);
    float seed = float(randomSeed % 1024u) * 0.013;

    float t = time * speed;
#ifndef COMPACT_LAYOUT
    // Stutter effect: hold the pattern clock during a glitch window and
    // shear the sampling coordinates.
    if (time < lastGlitchTime + glitchHoldTime) {
        t = lastGlitchTime * speed;
        float row = floor(uv.y * 32.0);
        uv.x += (hash(vec2(row, lastGlitchTime), seed) - 0.5) * glitchAmount * 0.3;
        centered = (uv - 0.5) * vec2(resolution.x / resolution.y, 1.0);
    }
#endif

    vec3 color = renderPattern(activePattern, uv, centered, t, seed);
    color *= intensity;
#ifndef COMPACT_LAYOUT
    color *= 1.0 + audioPeak * pulseStrength * 0.5;
#endif

    if (isMonochrome == 1) {
        float luma = dot(color, vec3(0.2126, 0.7152, 0.0722));
        color = vec3(luma);
    }
    fragColor = vec4(color, 1.0);
}
`

// Expanded layout (V2): matches uniforms.FrameUniforms, 96 bytes.
const frameStateBlockV2 = `#version 410 core
layout(std140) uniform FrameState {
    float time;
    float deltaTime;
    float audioLevel;
    float audioBass;
    float audioMid;
    float audioHigh;
    float audioFreqBand;
    float audioPeak;
    float audioSmooth;
    float intensity;
    float glitchAmount;
    float speed;
    float colorShift;
    float pulseStrength;
    int   isMonochrome;
    vec2  resolution;
    uint  randomSeed;
    int   textureCount;
    int   activePattern;
    float lastGlitchTime;
    float glitchHoldTime;
};
`

// Legacy compact layout (V1): matches uniforms.CompactUniforms, 72 bytes.
// The fields the old layout lacks are stubbed so the pattern library
// compiles; audioLevel stands in for the missing band/smooth signals.
const frameStateBlockV1 = `#version 410 core
#define COMPACT_LAYOUT 1
layout(std140) uniform FrameState {
    float time;
    float deltaTime;
    float audioLevel;
    float audioBass;
    float audioMid;
    float audioHigh;
    float intensity;
    float glitchAmount;
    float speed;
    float colorShift;
    float pulseStrength;
    int   isMonochrome;
    vec2  resolution;
    uint  randomSeed;
    int   textureCount;
    int   activePattern;
};
#define audioFreqBand audioLevel
#define audioSmooth   audioLevel
`

func fragmentShaderSource(compact bool) string {
	if compact {
		return frameStateBlockV1 + patternLibrary
	}
	return frameStateBlockV2 + patternLibrary
}
