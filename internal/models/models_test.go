package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTaskIcon(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  Icon
	}{
		{name: "stretch", title: "Morning stretches", want: IconStretch},
		{name: "exercise uppercase", title: "EXERCISE with Emma", want: IconStretch},
		{name: "walk", title: "Walk the dog", want: IconWalk},
		{name: "steps", title: "10000 steps", want: IconWalk},
		{name: "water", title: "Glass of water", want: IconWater},
		{name: "drink", title: "Drink tea", want: IconWater},
		{name: "medication", title: "Evening medication", want: IconMedication},
		{name: "pill", title: "Take pill", want: IconMedication},
		{name: "first rule wins", title: "Stretch then walk", want: IconStretch},
		{name: "walk beats water", title: "walk to the water fountain", want: IconWalk},
		{name: "no keyword", title: "Call Sarah", want: IconDefault},
		{name: "empty", title: "", want: IconDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTaskIcon(tt.title))
		})
	}
}

func TestSummarize(t *testing.T) {
	tasks := []Task{
		{ID: "1", Points: 10, Completed: true},
		{ID: "2", Points: 15},
		{ID: "3", Points: 5, Completed: true},
	}

	got := Summarize(tasks)
	assert.Equal(t, TaskSummary{Completed: 2, Remaining: 1, Points: 15}, got)
	assert.Equal(t, TaskSummary{}, Summarize(nil))
}

func TestIconGlyph(t *testing.T) {
	assert.NotEqual(t, IconDefault.Glyph(), IconWalk.Glyph())
	assert.Equal(t, IconDefault.Glyph(), Icon("unknown").Glyph())
}
