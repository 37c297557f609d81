package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ChartSet maps divisional-chart labels ("D1", "D9", ...) to their house
// occupant lists, preserving insertion order. Order matters to clients that
// render charts in sequence, and Go maps marshal key-sorted (which would put
// D10 before D2), so marshalling is done by hand over the label slice.
type ChartSet struct {
	labels []string
	charts map[string][][]string
}

func NewChartSet() *ChartSet {
	return &ChartSet{charts: make(map[string][][]string)}
}

// Add appends a chart under label. Re-adding an existing label replaces its
// houses without changing its position.
func (c *ChartSet) Add(label string, houses [][]string) {
	if _, ok := c.charts[label]; !ok {
		c.labels = append(c.labels, label)
	}
	c.charts[label] = houses
}

func (c *ChartSet) Len() int { return len(c.labels) }

// Labels returns chart labels in insertion order.
func (c *ChartSet) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Houses returns the house occupant lists for label.
func (c *ChartSet) Houses(label string) ([][]string, bool) {
	houses, ok := c.charts[label]
	return houses, ok
}

// MarshalJSON emits a JSON object whose keys appear in insertion order.
func (c *ChartSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range c.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(c.charts[label])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ReshapeCharts turns the engine's ordered chart tables into a labelled
// ChartSet. Labels are "D"+factor over the engine's factor list and pair with
// tables by position; iteration stops without error as soon as either side
// runs out, so a short raw result yields a smaller set. The engine emits the
// primary chart at position 0 regardless of the factor list's first entry;
// that pairing is its documented contract and is taken as given here.
func ReshapeCharts(tables [][]string, factors []int) *ChartSet {
	set := NewChartSet()
	for i, factor := range factors {
		if i >= len(tables) {
			break
		}
		houses := make([][]string, 0, len(tables[i]))
		for _, house := range tables[i] {
			houses = append(houses, splitHouse(house))
		}
		set.Add("D"+strconv.Itoa(factor), houses)
	}
	return set
}

// splitHouse breaks a newline-delimited house cell into clean occupant names.
// Fragments that are empty after cleaning are dropped, not kept as "".
func splitHouse(house string) []string {
	occupants := make([]string, 0, 4)
	for _, part := range strings.Split(house, "\n") {
		if name := CleanText(part); name != "" {
			occupants = append(occupants, name)
		}
	}
	return occupants
}

// NormalizePlacements cleans every key and value of the raw placement map.
// Collisions after cleaning are last-write-wins; upstream keys differ in
// their ASCII core, not only in glyphs, so none are expected.
func NormalizePlacements(raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[CleanText(k)] = CleanText(v)
	}
	return out
}
