package scene

const gridVertexShader = `#version 410 core

in vec3 a_position;
in vec3 a_normal;
in vec4 a_color;
in vec2 a_texCoords;
in vec2 a_tilePosition;

uniform mat4 uViewProj;

out vec3 vNormal;
out vec4 vColor;
out vec2 vTexCoords;
out vec2 vTile;

void main() {
    vNormal = a_normal;
    vColor = a_color;
    vTexCoords = a_texCoords;
    vTile = a_tilePosition;
    gl_Position = uViewProj * vec4(a_position, 1.0);
}
`

const gridFragmentShader = `#version 410 core

in vec3 vNormal;
in vec4 vColor;
in vec2 vTexCoords;
in vec2 vTile;

uniform vec3 uLightDir;
uniform float uAmbient;

out vec4 FragColor;

void main() {
    float diffuse = 1.0;
    if (length(vNormal) > 0.0) {
        diffuse = abs(dot(normalize(vNormal), normalize(uLightDir)));
    }
    float checker = mod(floor(vTile.x) + floor(vTile.y), 2.0) * 0.08;
    vec2 edge = abs(fract(vTexCoords) - 0.5);
    float line = step(0.48, max(edge.x, edge.y)) * 0.15;
    vec3 color = vColor.rgb * (uAmbient + (1.0 - uAmbient) * diffuse);
    FragColor = vec4(color - checker - line, vColor.a);
}
`
