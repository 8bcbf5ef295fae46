package assets

// Built-in shader sources. Attribute locations: 0 position, 1 normal, 2 uv.

// Globe surface: texture plus a blue rim that brightens toward the limb
const globeVertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 position;
layout (location = 1) in vec3 normal;
layout (location = 2) in vec2 uv;

uniform mat4 modelMatrix;
uniform mat4 viewMatrix;
uniform mat4 projectionMatrix;
uniform mat3 normalMatrix;

out vec2 vertexUV;
out vec3 vertexNormal;

void main() {
    vertexUV = uv;
    vertexNormal = normalize(normalMatrix * normal);
    gl_Position = projectionMatrix * viewMatrix * modelMatrix * vec4(position, 1.0);
}
`

const globeFragmentShaderSource = `
#version 410 core
in vec2 vertexUV;
in vec3 vertexNormal;
out vec4 FragColor;

uniform sampler2D globeTexture;

void main() {
    float intensity = 1.05 - dot(vertexNormal, vec3(0.0, 0.0, 1.0));
    vec3 atmosphere = vec3(0.3, 0.6, 1.0) * pow(intensity, 1.5);

    FragColor = vec4(atmosphere + texture(globeTexture, vertexUV).xyz, 1.0);
}
`

// Atmosphere halo, drawn on back faces with additive blending
const atmosphereVertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 position;
layout (location = 1) in vec3 normal;

uniform mat4 modelMatrix;
uniform mat4 viewMatrix;
uniform mat4 projectionMatrix;
uniform mat3 normalMatrix;

out vec3 vertexNormal;

void main() {
    vertexNormal = normalize(normalMatrix * normal);
    gl_Position = projectionMatrix * viewMatrix * modelMatrix * vec4(position, 1.0);
}
`

const atmosphereFragmentShaderSource = `
#version 410 core
in vec3 vertexNormal;
out vec4 FragColor;

uniform vec3 color;

void main() {
    float intensity = pow(0.75 - dot(vertexNormal, vec3(0.0, 0.0, 1.0)), 2.0);
    FragColor = vec4(color, 1.0) * intensity;
}
`

// Star points with size attenuation
const starVertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 position;

uniform mat4 modelMatrix;
uniform mat4 viewMatrix;
uniform mat4 projectionMatrix;
uniform float size;
uniform float scale;

void main() {
    vec4 mvPosition = viewMatrix * modelMatrix * vec4(position, 1.0);
    gl_PointSize = max(size * (scale / -mvPosition.z), 1.0);
    gl_Position = projectionMatrix * mvPosition;
}
`

const starFragmentShaderSource = `
#version 410 core
out vec4 FragColor;

uniform vec3 color;

void main() {
    vec2 p = gl_PointCoord - vec2(0.5);
    if (dot(p, p) > 0.25) {
        discard;
    }
    FragColor = vec4(color, 1.0);
}
`
