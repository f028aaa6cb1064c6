package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyteller-server/shared/models"
)

func baseRequest() *models.StoryRequest {
	return &models.StoryRequest{
		ChildName:      "Mila",
		ChildAge:       5,
		Interests:      []string{"dinosaurs", "space"},
		IncludeChild:   true,
		Length:         models.StoryLengthShort,
		AdventureLevel: models.AdventureGentle,
		Style:          models.StyleDescriptive,
	}
}

func TestResolveWordCount(t *testing.T) {
	assert.Equal(t, 450, ResolveWordCount(models.StoryLengthShort, 0))
	assert.Equal(t, 750, ResolveWordCount(models.StoryLengthMedium, 0))
	assert.Equal(t, 1500, ResolveWordCount(models.StoryLengthLong, 0))

	// Known lengths ignore the override.
	assert.Equal(t, 450, ResolveWordCount(models.StoryLengthShort, 9000))

	// Unknown lengths use the override, then the default.
	assert.Equal(t, 600, ResolveWordCount(models.StoryLength(7), 600))
	assert.Equal(t, DefaultWordCount, ResolveWordCount(models.StoryLength(7), 0))
}

func TestCompose_ChildClause(t *testing.T) {
	t.Run("child as protagonist", func(t *testing.T) {
		doc := Compose(baseRequest())
		assert.True(t, strings.HasPrefix(doc.Text, "Write a magical bedtime story for Mila, who is 5 years old and loves dinosaurs, space. Mila should be the main character."))
	})

	t.Run("child excluded", func(t *testing.T) {
		req := baseRequest()
		req.IncludeChild = false
		doc := Compose(req)
		assert.Contains(t, doc.Text, "suitable for a 5 year old child. The child is NOT a character")
		assert.NotContains(t, doc.Text, "Mila")
	})

	t.Run("no interests", func(t *testing.T) {
		req := baseRequest()
		req.Interests = nil
		doc := Compose(req)
		assert.Contains(t, doc.Text, "for Mila, who is 5 years old. Mila should be the main character.")
	})
}

func TestCompose_WorldAndTheme(t *testing.T) {
	req := baseRequest()
	req.Theme = "kindness"
	req.World = &models.WorldContext{Name: "Glimmerwood", Setting: "a forest where the trees glow at night"}

	doc := Compose(req)
	assert.Contains(t, doc.Text, "Setting: Glimmerwood - a forest where the trees glow at night")
	// Theme is dropped once a world is present.
	assert.NotContains(t, doc.Text, "Theme: kindness")

	req.World = nil
	doc = Compose(req)
	assert.Contains(t, doc.Text, "Theme: kindness")
}

func TestCompose_Saga(t *testing.T) {
	req := baseRequest()
	req.Saga = &models.SagaContext{
		Name:          "The Moon Garden",
		Description:   "a garden that only blooms at night",
		EpisodeNumber: 3,
		PreviousEpisodes: []models.EpisodeSummary{
			{Episode: 1, Summary: "Mila finds the hidden gate"},
			{Episode: 2, Summary: "The silver fox shows her the fountain"},
		},
	}

	doc := Compose(req)
	assert.Contains(t, doc.Text, `This is Episode 3 of "The Moon Garden". About: a garden that only blooms at night`)
	assert.Contains(t, doc.Text, "Previous episodes:\n- Episode 1: Mila finds the hidden gate\n- Episode 2: The silver fox shows her the fountain")
	assert.Contains(t, doc.Text, "Continue with new adventures while maintaining continuity.")
}

func TestCompose_Characters(t *testing.T) {
	req := baseRequest()
	req.Characters = []models.Character{
		{Name: "Pip", Role: "a brave mouse"},
		{Name: "Willow"},
	}

	doc := Compose(req)
	assert.Contains(t, doc.Text, "Characters to include:\n- Pip (a brave mouse)\n- Willow")
}

func TestCompose_ToneAndStyleTemplates(t *testing.T) {
	t.Run("gentle descriptive defaults", func(t *testing.T) {
		doc := Compose(baseRequest())
		assert.Equal(t, "gentle", doc.ToneTemplateID)
		assert.Equal(t, "descriptive", doc.StyleTemplateID)
		assert.Contains(t, doc.Text, "TONE: GENTLE & SOOTHING")
		assert.Contains(t, doc.Text, "STYLE: DESCRIPTIVE & IMMERSIVE")
		assert.NotContains(t, doc.Text, "TONE: ADVENTUROUS")
	})

	t.Run("adventurous playful", func(t *testing.T) {
		req := baseRequest()
		req.AdventureLevel = models.AdventureAdventurous
		req.Style = models.StylePlayful
		doc := Compose(req)
		assert.Equal(t, "adventurous", doc.ToneTemplateID)
		assert.Equal(t, "playful", doc.StyleTemplateID)
		assert.Contains(t, doc.Text, "TONE: ADVENTUROUS")
		assert.Contains(t, doc.Text, "STYLE: PLAYFUL & DIALOGUE-HEAVY")
	})
}

func TestCompose_Requirements(t *testing.T) {
	req := baseRequest()
	req.Length = models.StoryLengthMedium

	doc := Compose(req)
	require.Equal(t, 750, doc.TargetWordCount)
	assert.Contains(t, doc.Text, "Write approximately 750 words")
	assert.Contains(t, doc.Text, "Use simple language appropriate for a 5 year old")
	assert.True(t, strings.HasSuffix(doc.Text, "End with a satisfying conclusion"))
}

func TestCompose_Deterministic(t *testing.T) {
	req := baseRequest()
	req.CustomPrompt = "a kite that learns to dance"

	first := Compose(req)
	second := Compose(req)
	assert.Equal(t, first, second)
}

func TestWithNegativeConstraint(t *testing.T) {
	doc := Compose(baseRequest())
	retry := doc.WithNegativeConstraint("elsa")

	assert.True(t, strings.HasSuffix(retry.Text, "\n\nCRITICAL: Do NOT include \"elsa\". Create 100% original content."))
	assert.True(t, strings.HasPrefix(retry.Text, doc.Text))
	// Original document unchanged.
	assert.False(t, strings.Contains(doc.Text, "CRITICAL: Do NOT include"))
}
