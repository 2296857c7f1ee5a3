//go:build clamp

package rtbridge

// Built with the clamp tag: published values are restricted to [ClampMin, ClampMax]
const ClampEnabled bool = true
