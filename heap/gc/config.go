package gc

import "fmt"

// Config holds every tunable of the collector.
type Config struct {
	RegionCapacityBytes int64 // Fixed size of one region
	RegionCount         int   // Total heap regions

	// Objects larger than RegionCapacityBytes*OversizedThresholdFraction take
	// the oversized path.
	OversizedThresholdFraction float64

	// Fill ratios at or above which a region of the role is treated as full.
	EdenFillCeiling     float64
	SurvivorFillCeiling float64
	OldFillCeiling      float64

	PromotionAgeThreshold int // Young survivals before promotion to Old

	// Old-region fraction above which a Young cycle chains into a Mixed cycle.
	MixedTriggerOldFraction float64

	MixedRegionCap int // Max Old regions reclaimed per Mixed cycle
}

// DefaultConfig returns the defaults: 2048 regions of 1 MiB.
func DefaultConfig() Config {
	return Config{
		RegionCapacityBytes:        1 << 20,
		RegionCount:                2048,
		OversizedThresholdFraction: 0.5,
		EdenFillCeiling:            0.9,
		SurvivorFillCeiling:        0.8,
		OldFillCeiling:             0.8,
		PromotionAgeThreshold:      15,
		MixedTriggerOldFraction:    0.45,
		MixedRegionCap:             3,
	}
}

// Validate checks that every field is in range.
func (c Config) Validate() error {
	switch {
	case c.RegionCapacityBytes <= 0:
		return fmt.Errorf("%w: region capacity %d must be positive", ErrInvalidConfig, c.RegionCapacityBytes)
	case c.RegionCount <= 0:
		return fmt.Errorf("%w: region count %d must be positive", ErrInvalidConfig, c.RegionCount)
	case c.PromotionAgeThreshold < 1:
		return fmt.Errorf("%w: promotion age %d must be at least 1", ErrInvalidConfig, c.PromotionAgeThreshold)
	case c.MixedRegionCap < 1:
		return fmt.Errorf("%w: mixed region cap %d must be at least 1", ErrInvalidConfig, c.MixedRegionCap)
	case c.MixedTriggerOldFraction < 0 || c.MixedTriggerOldFraction > 1:
		return fmt.Errorf("%w: mixed trigger fraction %v outside [0,1]", ErrInvalidConfig, c.MixedTriggerOldFraction)
	}

	fractions := []struct {
		name string
		v    float64
	}{
		{"oversized threshold fraction", c.OversizedThresholdFraction},
		{"eden fill ceiling", c.EdenFillCeiling},
		{"survivor fill ceiling", c.SurvivorFillCeiling},
		{"old fill ceiling", c.OldFillCeiling},
	}
	for _, f := range fractions {
		if f.v <= 0 || f.v > 1 {
			return fmt.Errorf("%w: %s %v outside (0,1]", ErrInvalidConfig, f.name, f.v)
		}
	}
	return nil
}

// oversizedLimit is the largest size that still takes the normal path.
func (c Config) oversizedLimit() int64 {
	return int64(float64(c.RegionCapacityBytes) * c.OversizedThresholdFraction)
}

// regionsFor returns ceil(size / RegionCapacityBytes) for a positive size.
// It does not overflow for sizes near math.MaxInt64.
func (c Config) regionsFor(size int64) int64 {
	return (size-1)/c.RegionCapacityBytes + 1
}
