package shader

import (
	"fmt"
	"sort"
	"strings"
)

// BlurTaps is the number of samples taken on each side of the centre texel.
const BlurTaps = 12

const vertexSource = `
attribute vec3 vertexPosition;
attribute vec2 vertexTexCoord;
attribute vec4 vertexColor;
varying vec2 fragTexCoord;
varying vec4 fragColor;
uniform mat4 mvp;
void main() {
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// One axis of a separable gaussian. g_Radius is the kernel half width in
// texels, the standard deviation is a third of it.
const blurSource = `
varying vec2 fragTexCoord;
uniform sampler2D texture0;
uniform vec2 g_TexelSize;
uniform vec2 g_Direction;
uniform float g_Radius;
void main() {
    float sigma = max(g_Radius / 3.0, 0.0001);
    vec4 sum = vec4(0.0);
    float total = 0.0;
    for (int i = -TAPS; i <= TAPS; i++) {
        float x = float(i) * g_Radius / float(TAPS);
        float w = exp(-(x * x) / (2.0 * sigma * sigma));
        sum += texture2D(texture0, fragTexCoord + g_Direction * g_TexelSize * x) * w;
        total += w;
    }
    gl_FragColor = sum / total;
}
`

const thresholdSource = `
varying vec2 fragTexCoord;
uniform sampler2D texture0;
uniform float g_Threshold;
uniform vec4 g_Color;
void main() {
    vec4 color = texture2D(texture0, fragTexCoord);
    if (color.a > g_Threshold) {
        gl_FragColor = g_Color;
    } else {
        gl_FragColor = vec4(0.0);
    }
}
`

// Preprocess prepends the GLSL 120 header and one #define per entry, sorted
// so the same inputs always produce the same program text.
func Preprocess(source string, defines map[string]int) string {
	var sb strings.Builder
	sb.WriteString("#version 120\n")

	keys := make([]string, 0, len(defines))
	for k := range defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("#define %s %d\n", k, defines[k]))
	}

	sb.WriteString("#define saturate(x) clamp(x, 0.0, 1.0)\n")
	sb.WriteString(strings.TrimLeft(source, "\n"))
	return sb.String()
}
