package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyteller-server/shared/models"
)

func TestCheckProtectedIP(t *testing.T) {
	f := DefaultFilter()

	t.Run("clean text passes", func(t *testing.T) {
		v := f.CheckProtectedIP("a brave fox explores the sparkling forest")
		assert.False(t, v.Violated)
		assert.Equal(t, models.ViolationNone, v.Kind)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		v := f.CheckProtectedIP("A story about ELSA and her castle")
		require.True(t, v.Violated)
		assert.Equal(t, models.ViolationIP, v.Kind)
		assert.Contains(t, v.MatchedPhrases, "elsa")
	})

	t.Run("substring match inside a word", func(t *testing.T) {
		// "mario" occurs inside "marionette"
		v := f.CheckProtectedIP("a marionette dances on strings")
		require.True(t, v.Violated)
		assert.Contains(t, v.MatchedPhrases, "mario")
	})

	t.Run("matches preserve list order", func(t *testing.T) {
		v := f.CheckProtectedIP("moana meets elsa on the beach")
		require.True(t, v.Violated)
		assert.Equal(t, []string{"elsa", "moana"}, v.MatchedPhrases)
	})
}

func TestCheckHarmful(t *testing.T) {
	f := DefaultFilter()

	v := f.CheckHarmful("a story where the dragon wants to KILL everyone")
	require.True(t, v.Violated)
	assert.Equal(t, models.ViolationHarmful, v.Kind)
	assert.Contains(t, v.MatchedPhrases, "kill")

	v = f.CheckHarmful("a gentle story about clouds")
	assert.False(t, v.Violated)
}

func TestCheckRequest_Order(t *testing.T) {
	f := DefaultFilter()

	t.Run("harmful wins over protected in custom prompt", func(t *testing.T) {
		v := f.CheckRequest(&models.StoryRequest{
			CustomPrompt: "elsa fights a zombie",
		})
		require.True(t, v.Violated)
		assert.Equal(t, models.ViolationHarmful, v.Kind)
	})

	t.Run("protected phrase in custom prompt", func(t *testing.T) {
		v := f.CheckRequest(&models.StoryRequest{
			CustomPrompt: "an adventure with pikachu",
		})
		require.True(t, v.Violated)
		assert.Equal(t, models.ViolationIP, v.Kind)
	})

	t.Run("character name and role are checked together", func(t *testing.T) {
		v := f.CheckRequest(&models.StoryRequest{
			Characters: []models.Character{
				{Name: "Fluffy", Role: "friendly gruffalo"},
			},
		})
		require.True(t, v.Violated)
		assert.Equal(t, models.ViolationIP, v.Kind)
		assert.Contains(t, v.MatchedPhrases, "gruffalo")
	})

	t.Run("clean request passes", func(t *testing.T) {
		v := f.CheckRequest(&models.StoryRequest{
			CustomPrompt: "a kite that learns to dance",
			Characters: []models.Character{
				{Name: "Momo", Role: "a curious otter"},
			},
		})
		assert.False(t, v.Violated)
	})
}

func TestCheckGenerated(t *testing.T) {
	f := DefaultFilter()

	t.Run("protected phrase wins over harmful", func(t *testing.T) {
		v := f.CheckGenerated("elsa ran from the zombie")
		require.True(t, v.Violated)
		assert.Equal(t, models.ViolationIP, v.Kind)
	})

	t.Run("harmful content alone is flagged", func(t *testing.T) {
		v := f.CheckGenerated("the knight set out to kill the dragon")
		require.True(t, v.Violated)
		assert.Equal(t, models.ViolationHarmful, v.Kind)
	})

	t.Run("clean story passes", func(t *testing.T) {
		assert.False(t, f.CheckGenerated("the otter found a glowing pebble").Violated)
	})
}

func TestSuggestAlternative(t *testing.T) {
	assert.Equal(t, "a brave ice princess with magical frost powers", SuggestAlternative("queen elsa"))
	assert.Equal(t, "a young wizard learning magic at a special school", SuggestAlternative("Harry Potter"))
	assert.Equal(t, "a cute electric creature", SuggestAlternative("pikachu"))
	assert.Equal(t, FallbackSuggestion, SuggestAlternative("hogwarts"))
	assert.Equal(t, FallbackSuggestion, SuggestAlternative("gandalf"))
}

func TestNewFilter_CustomPhrases(t *testing.T) {
	f := NewFilter([]string{"Captain Nimbus"}, []string{"thunderstorm"})

	v := f.CheckProtectedIP("a tale of captain nimbus at sea")
	require.True(t, v.Violated)
	assert.Equal(t, []string{"captain nimbus"}, v.MatchedPhrases)

	assert.False(t, f.CheckProtectedIP("a tale of elsa").Violated)
	assert.True(t, f.CheckHarmful("a loud THUNDERSTORM rolls in").Violated)
}
