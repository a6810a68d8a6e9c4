package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ayusman/abhinaya/internal/face"
	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/rig"
)

// Keys of the stored settings that shape the rig.
const (
	SettingSource      = "source"
	SettingSmoothBlink = "smooth_blink"
	SettingBlinkLow    = "blink_low"
	SettingBlinkHigh   = "blink_high"
	SettingEnableLegs  = "enable_legs"
)

// ErrInvalidSetting is returned when a stored setting cannot be parsed.
var ErrInvalidSetting = errors.New("config: invalid setting")

// ApplySettings overlays stored settings on opts. Unknown keys are ignored.
// Setting both blink keys to "" clears the blink override.
func ApplySettings(opts rig.Options, settings map[string]string) (rig.Options, error) {
	if v, ok := settings[SettingSource]; ok {
		src, err := landmark.ParseSource(v)
		if err != nil {
			return rig.Options{}, fmt.Errorf("%w: %s: %v", ErrInvalidSetting, SettingSource, err)
		}
		opts = opts.WithSource(src)
	}

	for key, dst := range map[string]*bool{
		SettingSmoothBlink: &opts.Face.SmoothBlink,
		SettingEnableLegs:  &opts.Pose.EnableLegs,
	} {
		v, ok := settings[key]
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return rig.Options{}, fmt.Errorf("%w: %s=%q", ErrInvalidSetting, key, v)
		}
		*dst = b
	}

	band, err := blinkBand(opts.Face.BlinkSettings, settings)
	if err != nil {
		return rig.Options{}, err
	}
	opts.Face.BlinkSettings = band
	return opts, nil
}

// blinkBand merges the blink keys into the current override.
func blinkBand(cur *face.Thresholds, settings map[string]string) (*face.Thresholds, error) {
	lowStr, hasLow := settings[SettingBlinkLow]
	highStr, hasHigh := settings[SettingBlinkHigh]
	if !hasLow && !hasHigh {
		return cur, nil
	}
	if hasLow && hasHigh && lowStr == "" && highStr == "" {
		return nil, nil
	}

	var band face.Thresholds
	if cur != nil {
		band = *cur
	} else if !hasLow || !hasHigh {
		return nil, ErrBlinkBand
	}

	for key, dst := range map[string]*float64{SettingBlinkLow: &band.Low, SettingBlinkHigh: &band.High} {
		v, ok := settings[key]
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidSetting, key, v)
		}
		*dst = f
	}
	if band.Low >= band.High {
		return nil, ErrBlinkBand
	}
	return &band, nil
}
