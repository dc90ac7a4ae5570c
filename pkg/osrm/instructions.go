package osrm

import "strings"

var compass = []string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}

// describe picks the text shown for a step: the maneuver instruction, then the
// road name, then a sentence built from the maneuver type and modifier.
func describe(s responseStep) string {
	if text := strings.TrimSpace(s.Maneuver.Instruction); text != "" {
		return text
	}
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return synthesize(s.Maneuver)
}

func synthesize(m maneuver) string {
	modifier := m.Modifier
	switch m.Type {
	case "depart":
		return "Head " + heading(m.BearingAfter)
	case "arrive":
		return "Arrive at destination"
	case "turn", "end of road":
		if modifier == "" || modifier == "straight" {
			return "Continue straight"
		}
		if m.Type == "end of road" {
			return "Turn " + modifier + " at the end of the road"
		}
		if modifier == "uturn" {
			return "Make a U-turn"
		}
		return "Turn " + modifier
	case "roundabout", "rotary", "roundabout turn":
		return "Enter the roundabout"
	case "exit roundabout", "exit rotary":
		return "Exit the roundabout"
	case "merge":
		return withModifier("Merge", modifier)
	case "on ramp":
		return withModifier("Take the ramp", modifier)
	case "off ramp":
		return withModifier("Take the exit", modifier)
	case "fork":
		if modifier == "" {
			return "Keep straight at the fork"
		}
		return "Keep " + strings.TrimPrefix(modifier, "slight ") + " at the fork"
	default:
		return "Continue"
	}
}

func withModifier(action, modifier string) string {
	if modifier == "" || modifier == "straight" {
		return action
	}
	return action + " on the " + strings.TrimPrefix(modifier, "slight ")
}

// heading names the compass sector of a bearing in degrees
func heading(bearing int) string {
	b := ((bearing % 360) + 360) % 360
	return compass[((b*2+45)/90)%len(compass)]
}
