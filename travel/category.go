package travel

import "strings"

// Category tags a leg with its mode of carriage. Modes only differ in
// their display label, so a single tag plus a label table is enough.
type Category int

const (
	Flight Category = iota
	Rail
	Coach
	Ferry
)

var categoryLabels = map[Category]string{
	Flight: "Flight",
	Rail:   "Rail",
	Coach:  "Coach",
	Ferry:  "Ferry",
}

var categoryByLabel = map[string]Category{
	"flight": Flight,
	"rail":   Rail,
	"coach":  Coach,
	"ferry":  Ferry,
}

// Categories returns all categories in declaration order.
func Categories() []Category {
	return []Category{Flight, Rail, Coach, Ferry}
}

func (c Category) String() string {
	if s, ok := categoryLabels[c]; ok {
		return s
	}
	return "Unknown"
}

// ParseCategory resolves a category label case-insensitively. The second
// return is false for unknown labels.
func ParseCategory(s string) (Category, bool) {
	c, ok := categoryByLabel[strings.ToLower(s)]
	return c, ok
}
