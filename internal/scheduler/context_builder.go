package scheduler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Solifugus/storysplicer/internal/domain/area"
	"github.com/Solifugus/storysplicer/internal/domain/character"
	"github.com/Solifugus/storysplicer/internal/domain/item"
)

// systemPromptTemplate is the fixed instruction every cycle's call shares:
// it enumerates the six action shapes and forbids non-JSON output
// (spec.md §4.6).
const systemPromptTemplate = `You are roleplaying as a character in a simulated world.
Respond with exactly one JSON object describing your next action, and nothing else.
Valid actions:
  {"action":"move","direction":"<direction>"}
  {"action":"speak","text":"<words>"}
  {"action":"pickup","item":"<item name>"}
  {"action":"drop","item":"<item name>"}
  {"action":"wait"}
  {"action":"sleep"}
Output only the JSON object.`

const storySuffix = "\nYou favor vivid, narratively rich action and dialogue over passivity."

// SystemPrompt returns the fixed system prompt for a character class,
// appending the story-tier's narrative-emphasis suffix when applicable.
func SystemPrompt(class character.Class) string {
	if class == character.ClassStory {
		return systemPromptTemplate + storySuffix
	}
	return systemPromptTemplate
}

// BuildPrompt renders the per-cycle user prompt: identity, physical state,
// inventory, location, and recent memory, in that order (spec.md §4.6).
func BuildPrompt(c *character.Character, a *area.Area, inventory []item.Item, othersInArea []character.Character, itemsInArea []item.Item) string {
	var b strings.Builder
	writeIdentity(&b, c)
	writePhysicalState(&b, c)
	writeInventory(&b, inventory)
	writeLocation(&b, a, othersInArea, itemsInArea)
	writeMemory(&b, c)
	b.WriteString("\nRespond with a single JSON action object as instructed.\n")
	return b.String()
}

func writeIdentity(b *strings.Builder, c *character.Character) {
	b.WriteString(fmt.Sprintf("# %s\n", c.Name))
	fields := []struct{ label, value string }{
		{"Age", c.Age}, {"Gender", c.Gender}, {"Species", c.Species},
		{"Description", c.Description}, {"Backstory", c.Backstory},
		{"Interests", c.Interests}, {"Likes", c.Likes}, {"Dislikes", c.Dislikes},
		{"Beliefs", c.Beliefs}, {"Internal conflict", c.InternalConflict},
	}
	for _, f := range fields {
		if f.value != "" {
			b.WriteString(fmt.Sprintf("%s: %s\n", f.label, f.value))
		}
	}
}

func writePhysicalState(b *strings.Builder, c *character.Character) {
	b.WriteString("\n## Physical state\n")
	b.WriteString(fmt.Sprintf("Nutrition: %.0f%% (%s)\n", c.Nutrition, hungerNote(c.Nutrition)))
	b.WriteString(fmt.Sprintf("Hydration: %.0f%% (%s)\n", c.Hydration, thirstNote(c.Hydration)))
	b.WriteString(fmt.Sprintf("Tiredness: %.0f%% (%s)\n", c.Tiredness, tirednessNote(c.Tiredness)))
	b.WriteString(fmt.Sprintf("Alertness: %.0f%% (%s)\n", c.Alertness, alertnessNote(c.Alertness)))
	for _, d := range c.Damage {
		b.WriteString(fmt.Sprintf("Injury: %s (%s, %.0f%%)\n", d.Part, d.Type, d.Severity))
	}
}

func hungerNote(v float64) string {
	if v < 30 {
		return "very hungry"
	}
	if v < 60 {
		return "somewhat hungry"
	}
	return "sated"
}

func thirstNote(v float64) string {
	if v < 30 {
		return "very thirsty"
	}
	if v < 60 {
		return "somewhat thirsty"
	}
	return "hydrated"
}

func tirednessNote(v float64) string {
	if v > 80 {
		return "extremely tired"
	}
	if v > 60 {
		return "tired"
	}
	return "rested"
}

func alertnessNote(v float64) string {
	if v < 20 {
		return "asleep"
	}
	if v < 50 {
		return "drowsy"
	}
	return "alert"
}

func writeInventory(b *strings.Builder, inventory []item.Item) {
	b.WriteString("\n## Inventory\n")
	right, left := "empty", "empty"
	var others []string
	for _, i := range inventory {
		switch i.HeldLocation {
		case item.RightHand:
			right = i.Name
		case item.LeftHand:
			left = i.Name
		default:
			others = append(others, fmt.Sprintf("%s (%s)", i.Name, i.HeldLocation))
		}
	}
	b.WriteString(fmt.Sprintf("Right hand: %s\n", right))
	b.WriteString(fmt.Sprintf("Left hand: %s\n", left))
	if len(others) > 0 {
		b.WriteString(fmt.Sprintf("Also carrying: %s\n", strings.Join(others, ", ")))
	}
}

func writeLocation(b *strings.Builder, a *area.Area, others []character.Character, items []item.Item) {
	b.WriteString("\n## Location\n")
	if a == nil {
		b.WriteString("You are not currently in any specific location.\n")
		return
	}
	b.WriteString(fmt.Sprintf("%s: %s\n", a.Name, a.Description))
	b.WriteString(fmt.Sprintf("Temperature: %.0f\n", a.Temperature))

	dirs := make([]string, 0, len(a.Exits))
	for dir := range a.Exits {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	exits := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		exits = append(exits, fmt.Sprintf("%s (to area %s)", dir, a.Exits[dir]))
	}
	if len(exits) > 0 {
		b.WriteString(fmt.Sprintf("Exits: %s\n", strings.Join(exits, ", ")))
	}

	if len(others) > 0 {
		var names []string
		for _, o := range others {
			names = append(names, o.Name)
		}
		b.WriteString(fmt.Sprintf("Others here: %s\n", strings.Join(names, ", ")))
	}
	if len(items) > 0 {
		var names []string
		for _, i := range items {
			names = append(names, i.Name)
		}
		b.WriteString(fmt.Sprintf("Items here: %s\n", strings.Join(names, ", ")))
	}
}

func writeMemory(b *strings.Builder, c *character.Character) {
	b.WriteString("\n## Recent memory\n")
	n := c.Class.MemoryCap()
	start := 0
	if len(c.Memory) > n {
		start = len(c.Memory) - n
	}
	for _, m := range c.Memory[start:] {
		b.WriteString(fmt.Sprintf("%s -> %s\n", m.Action, m.Result))
	}
}
