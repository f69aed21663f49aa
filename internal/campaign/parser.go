// Package campaign reads the per-campaign key-value file into a typed config.
package campaign

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/ds124wfegd/WB_L3/promo/internal/pkg/compose"
)

const (
	ConfigFileName = "config.txt"

	colorMapPrefix = "color_map_"
	textColorKey   = "text_color"
	skusCenterKey  = "skus_center"
	skusScaleKey   = "skus_scale"
)

// Load reads and parses a campaign config file. A missing file is reported
// as entity.ErrConfigMissing; parse problems come back as warnings.
func Load(path string) (*entity.CampaignConfig, []error, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%s: %w", path, entity.ErrConfigMissing)
		}
		return nil, nil, err
	}
	defer file.Close()

	cfg, warnings := Parse(file)
	return cfg, warnings, nil
}

// Parse never fails: a malformed entry is dropped (or defaulted) and
// reported in the returned warnings.
func Parse(r io.Reader) (*entity.CampaignConfig, []error) {
	keys, values := readPairs(r)
	cfg := entity.NewCampaignConfig()
	var warnings []error

	for _, key := range keys {
		if !strings.HasPrefix(key, colorMapPrefix) {
			continue
		}
		mapping, err := parseColorMapping(key, values[key])
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		cfg.ColorMappings = append(cfg.ColorMappings, mapping)
	}

	if v, ok := values[textColorKey]; ok && v != "" {
		if err := validateTextColor(v); err != nil {
			warnings = append(warnings, fmt.Errorf("%s: %w", textColorKey, err))
		} else {
			cfg.TextColor = v
		}
	}

	for _, role := range []*entity.TextRole{&cfg.MainTitle, &cfg.SubTitle} {
		if err := parseTextRole(role, values); err != nil {
			warnings = append(warnings, err)
		}
	}

	if v, ok := values[skusCenterKey]; ok {
		center, err := parseRatio(v)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("%s: %w", skusCenterKey, err))
		} else {
			cfg.Placement.Center = center
		}
	}
	if v, ok := values[skusScaleKey]; ok {
		scale, err := parsePositive(v)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("%s: %w", skusScaleKey, err))
		} else {
			cfg.Placement.Scale = scale
		}
	}

	return cfg, warnings
}

// readPairs splits each line on its first colon. Keys keep their first-seen
// order; a repeated key overwrites the value but not the position.
func readPairs(r io.Reader) ([]string, map[string]string) {
	var keys []string
	values := make(map[string]string)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		k, v, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if _, seen := values[k]; !seen {
			keys = append(keys, k)
		}
		values[k] = strings.TrimSpace(v)
	}
	return keys, values
}

func parseColorMapping(key, value string) (entity.ColorMapping, error) {
	mapping := entity.ColorMapping{Key: key}

	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return mapping, fmt.Errorf("%s %q: %w", key, value, entity.ErrMalformedMapping)
	}

	channels := strings.Split(strings.TrimSpace(parts[0]), ",")
	if len(channels) != 3 {
		return mapping, fmt.Errorf("%s %q: source needs 3 channels: %w", key, value, entity.ErrMalformedMapping)
	}
	var src [3]uint8
	for i, ch := range channels {
		n, err := strconv.Atoi(strings.TrimSpace(ch))
		if err != nil || n < 0 || n > 255 {
			return mapping, fmt.Errorf("%s %q: bad channel %q: %w", key, value, ch, entity.ErrMalformedMapping)
		}
		src[i] = uint8(n)
	}
	mapping.Source = entity.RGB{R: src[0], G: src[1], B: src[2]}

	target := strings.TrimSpace(parts[1])
	if strings.EqualFold(target, entity.SkipColor) {
		mapping.Skip = true
		return mapping, nil
	}
	c, err := compose.ParseColor(target)
	if err != nil {
		return mapping, fmt.Errorf("%s %q: %w: %w", key, value, entity.ErrMalformedMapping, err)
	}
	mapping.Target = entity.RGB{R: c.R, G: c.G, B: c.B}
	return mapping, nil
}

// parseTextRole fills the role from <name>, <name>_size and <name>_pos. A
// malformed size or position disables the role.
func parseTextRole(role *entity.TextRole, values map[string]string) error {
	role.Content = values[role.Name]

	if v, ok := values[role.Name+"_size"]; ok && v != "" {
		size, err := parsePositive(v)
		if err != nil {
			role.Content = ""
			return fmt.Errorf("%s_size: %w", role.Name, err)
		}
		role.SizeRatio = size
	}

	if v, ok := values[role.Name+"_pos"]; ok && v != "" {
		pos, err := parseRatio(v)
		if err != nil {
			role.Content = ""
			return fmt.Errorf("%s_pos: %w", role.Name, err)
		}
		role.Position = pos
	}
	return nil
}

func parseRatio(value string) (entity.Ratio, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return entity.Ratio{}, fmt.Errorf("%q: %w", value, entity.ErrMalformedPosition)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return entity.Ratio{}, fmt.Errorf("%q: %w", value, entity.ErrMalformedPosition)
	}
	return entity.Ratio{X: x, Y: y}, nil
}

func parsePositive(value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%q: %w", value, entity.ErrMalformedNumber)
	}
	return f, nil
}

func validateTextColor(value string) error {
	if strings.EqualFold(value, compose.AutoColor) {
		return nil
	}
	_, err := compose.ParseColor(value)
	return err
}
