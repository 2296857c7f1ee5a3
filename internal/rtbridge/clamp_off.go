//go:build !clamp

package rtbridge

// Built without the clamp tag: any finite value is published as is
const ClampEnabled bool = false
