package subtitle

import (
	"fmt"
	"strconv"
	"strings"

	"scenecast/logger"
	"scenecast/models"
)

const defaultASSColor = "&H00FFFFFF" // white

// parseColor converts "#RRGGBB" to the ASS "&H00BBGGRR" form (ASS stores
// channels in BGR order). Invalid input falls back to white; styling mistakes
// are never fatal.
func parseColor(hexColor string) string {
	h := strings.TrimPrefix(hexColor, "#")
	if len(h) != 6 {
		logger.Warnf("Invalid color format: %s, using white", hexColor)
		return defaultASSColor
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		logger.Warnf("Invalid color format: %s, using white", hexColor)
		return defaultASSColor
	}
	r, g, b := h[0:2], h[2:4], h[4:6]
	return fmt.Sprintf("&H00%s%s%s", b, g, r)
}

// alignment maps a position name to the ASS numpad alignment code.
func alignment(position string) int {
	codes := map[string]int{
		"left-bottom":   1,
		"center-bottom": 2,
		"right-bottom":  3,
		"left-center":   4,
		"center-center": 5,
		"right-center":  6,
		"left-top":      7,
		"center-top":    8,
		"right-top":     9,
	}
	if code, ok := codes[position]; ok {
		return code
	}
	return 2
}

func isValidHexColor(color string) bool {
	if !strings.HasPrefix(color, "#") || len(color) != 7 {
		return false
	}
	_, err := strconv.ParseUint(color[1:], 16, 32)
	return err == nil
}

// ValidateStyle checks styling ranges and color syntax. It reports issues as
// strings and never fails; callers decide what to do with them.
func ValidateStyle(style models.SubtitleStyle) []string {
	var issues []string

	if style.FontSize < 10 || style.FontSize > 200 {
		issues = append(issues, fmt.Sprintf("Font size %d out of range (10-200)", style.FontSize))
	}
	for name, value := range map[string]string{
		"word_color":    style.WordColor,
		"line_color":    style.LineColor,
		"outline_color": style.OutlineColor,
		"box_color":     style.BoxColor,
	} {
		if !isValidHexColor(value) {
			issues = append(issues, fmt.Sprintf("Invalid %s: %s", name, value))
		}
	}
	if style.OutlineWidth < 0 || style.OutlineWidth > 10 {
		issues = append(issues, fmt.Sprintf("Outline width %d out of range (0-10)", style.OutlineWidth))
	}
	if style.ShadowOffset < 0 || style.ShadowOffset > 10 {
		issues = append(issues, fmt.Sprintf("Shadow offset %d out of range (0-10)", style.ShadowOffset))
	}
	return issues
}
