// File: internal/services/persona/prompt.go
package persona

import (
	"fmt"
	"strings"

	"literarychat/internal/domain"
)

// PromptInput carries everything the builder needs for one turn. Passages
// must already be in retrieval rank order; History may be empty (the
// current chat flow supplies none, but prior turns are rendered when given).
type PromptInput struct {
	Character   *domain.Character
	Book        *domain.Book
	Passages    []string
	History     []domain.Message
	UserMessage string
}

// BuildPrompt composes the persona prompt that conditions the language
// model to answer as the character, grounded in the retrieved passages.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s from %q by %s.\n\n", in.Character.Name, in.Book.Title, in.Book.Author)

	fmt.Fprintf(&b, "WHO YOU ARE:\n%s\n\n", in.Character.Description)
	fmt.Fprintf(&b, "YOUR PERSONALITY:\n%s\n\n", in.Character.PersonalityTraits)

	fmt.Fprintf(&b, "RELEVANT PASSAGES FROM THE BOOK:\n%s\n\n", strings.Join(in.Passages, "\n\n"))

	if len(in.History) > 0 {
		b.WriteString("CONVERSATION SO FAR:\n")
		for _, m := range in.History {
			speaker := "User"
			if m.Role == domain.RoleCharacter {
				speaker = in.Character.Name
			}
			fmt.Fprintf(&b, "%s: %s\n", speaker, m.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, `CRITICAL INSTRUCTIONS:
- Respond AS %s in first person ("I", "my")
- Do NOT use generic greetings like "Sir/Madam" or "Good day"
- Speak naturally as if in a real conversation
- Use the time period's language but keep it conversational
- Stay true to your character's personality and emotions
- Do NOT write letters or formal correspondence - this is a spoken conversation

User says: %s

Respond directly in character. Do NOT include your character name or labels in your response - just speak as %s would speak:`,
		in.Character.Name, in.UserMessage, in.Character.Name)

	return b.String()
}
