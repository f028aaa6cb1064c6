package prompt

import (
	"fmt"
	"strings"

	"storyteller-server/shared/models"
)

// Word targets for the enumerated story lengths.
var lengthWordCounts = map[models.StoryLength]int{
	models.StoryLengthShort:  450,
	models.StoryLengthMedium: 750,
	models.StoryLengthLong:   1500,
}

// DefaultWordCount is used when the length is unknown and the caller
// supplied no override.
const DefaultWordCount = 450

const toneAdventurous = `
TONE: ADVENTUROUS (Think Julia Donaldson's storytelling style)
- Build tension through repetition and rhythm, like "The Gruffalo" does
- Include a clever twist or reversal where the small/unlikely hero outwits the threat
- Use cumulative storytelling - each new challenge builds on the last
- Create memorable, slightly scary-but-not-too-scary antagonists
- The hero should use wit and cleverness, not strength
- Include satisfying poetic justice for any baddies
- Repetitive refrains that children can anticipate ("Silly old fox, doesn't he know...")
- Build to a climactic moment, then resolve with warmth
- Rhyming couplets or rhythmic prose in key moments
- The adventure should have real stakes but age-appropriate resolution
- Characters face genuine challenges but triumph through courage and smarts`

const toneGentle = `
TONE: GENTLE & SOOTHING
- Keep the story calm and peaceful throughout
- No real conflict or danger
- Focus on friendship, discovery, and wonder
- Soft, dreamy atmosphere perfect for bedtime
- Gentle emotions - happiness, curiosity, warmth
- End with peaceful, sleepy conclusion`

const stylePlayful = `
STYLE: PLAYFUL & DIALOGUE-HEAVY (Blend of Bluey, Roald Dahl, and David Walliams)

DIALOGUE STYLE (like Bluey):
- Natural, realistic conversations between characters
- Characters play imaginative games and get carried away
- Warm family dynamics with gentle teasing
- Kids and adults talk TO each other, not AT each other
- Moments of emotional truth wrapped in play
- Characters have their own agendas that playfully collide
- "But DAAAAD!" / "Hang on, hang on..." type exchanges
- Inside jokes and callbacks

HUMOR STYLE (like Roald Dahl & David Walliams):
- Gleefully subversive and slightly naughty (but never mean)
- Adults can be ridiculous, pompous, or wonderfully silly
- Delicious made-up words and funny names
- Gross-out moments that make kids giggle (burps, smells, slime - but tasteful!)
- Unexpected reversals - the small defeats the big, the meek surprises everyone
- Wicked wordplay and puns
- Characters with exaggerated quirks played for comedy
- Knowing winks to the audience
- Villains/antagonists who are more silly than scary
- Satisfying comeuppance for anyone too full of themselves

STRUCTURE:
- 70% dialogue, 30% description
- Snappy back-and-forth exchanges
- Build running gags that pay off
- Moments of silliness punctuated by heart
- Catchphrases and repeated funny phrases
- Sound effects and onomatopoeia ("SPLOOOSH!", "FWAAAARP!", "Boing-oing-oing!")
- Let the characters' personalities drive the comedy
- End with warmth underneath the laughs`

const styleDescriptive = `
STYLE: DESCRIPTIVE & IMMERSIVE
- Rich, vivid descriptions of settings and scenes
- Paint pictures with words
- Describe colors, textures, sounds, smells
- Create atmosphere and mood
- Balance description with some dialogue
- Use sensory details to bring the world alive`

// ResolveWordCount maps a story length to its word target. Unknown
// lengths use the caller's override, then the default.
func ResolveWordCount(length models.StoryLength, override int) int {
	if wc, ok := lengthWordCounts[length]; ok {
		return wc
	}
	if override > 0 {
		return override
	}
	return DefaultWordCount
}

// Compose assembles the generation prompt from a normalized request.
// Assembly is deterministic: the same request always produces the same
// document. Clause order is fixed and omitted inputs skip their clause
// entirely.
func Compose(req *models.StoryRequest) models.PromptDocument {
	targetWordCount := ResolveWordCount(req.Length, req.WordCountOverride)

	var b strings.Builder
	b.WriteString("Write a magical bedtime story")

	if req.IncludeChild && req.ChildName != "" {
		fmt.Fprintf(&b, " for %s, who is %d years old", req.ChildName, req.ChildAge)
		if len(req.Interests) > 0 {
			fmt.Fprintf(&b, " and loves %s", strings.Join(req.Interests, ", "))
		}
		fmt.Fprintf(&b, ". %s should be the main character.", req.ChildName)
	} else {
		fmt.Fprintf(&b, " suitable for a %d year old child. The child is NOT a character - focus entirely on the world characters.", req.ChildAge)
	}

	if req.World != nil && req.World.Name != "" && req.World.Setting != "" {
		fmt.Fprintf(&b, "\n\nSetting: %s - %s", req.World.Name, req.World.Setting)
	}

	if req.Saga != nil && req.Saga.Name != "" {
		fmt.Fprintf(&b, "\n\nThis is Episode %d of %q.", req.Saga.EpisodeNumber, req.Saga.Name)
		if req.Saga.Description != "" {
			fmt.Fprintf(&b, " About: %s", req.Saga.Description)
		}
		if len(req.Saga.PreviousEpisodes) > 0 {
			b.WriteString("\n\nPrevious episodes:")
			for _, ep := range req.Saga.PreviousEpisodes {
				fmt.Fprintf(&b, "\n- Episode %d: %s", ep.Episode, ep.Summary)
			}
			b.WriteString("\n\nContinue with new adventures while maintaining continuity.")
		}
	}

	if len(req.Characters) > 0 {
		b.WriteString("\n\nCharacters to include:")
		for _, ch := range req.Characters {
			fmt.Fprintf(&b, "\n- %s", ch.Name)
			if ch.Role != "" {
				fmt.Fprintf(&b, " (%s)", ch.Role)
			}
		}
	}

	if req.Theme != "" && !req.HasWorld() {
		fmt.Fprintf(&b, "\n\nTheme: %s", req.Theme)
	}

	if req.CustomPrompt != "" {
		fmt.Fprintf(&b, "\n\nStory idea: %s", req.CustomPrompt)
	}

	tone := toneGentle
	toneID := string(models.AdventureGentle)
	if req.AdventureLevel == models.AdventureAdventurous {
		tone = toneAdventurous
		toneID = string(models.AdventureAdventurous)
	}

	style := styleDescriptive
	styleID := string(models.StyleDescriptive)
	if req.Style == models.StylePlayful {
		style = stylePlayful
		styleID = string(models.StylePlayful)
	}

	fmt.Fprintf(&b, "\n\n%s\n\n%s\n\nREQUIREMENTS:\n- Write approximately %d words\n- Create ONLY original content - no copyrighted characters, names, or settings\n- Never reference Disney, Pixar, Harry Potter, Gruffalo, Bluey, or any existing franchises by name\n- You're inspired by these authors' STYLES, not their specific characters or stories\n- Use simple language appropriate for a %d year old\n- End with a satisfying conclusion", tone, style, targetWordCount, req.ChildAge)

	return models.PromptDocument{
		Text:            b.String(),
		TargetWordCount: targetWordCount,
		ToneTemplateID:  toneID,
		StyleTemplateID: styleID,
	}
}
