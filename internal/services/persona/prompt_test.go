package persona

import (
	"strings"
	"testing"

	"literarychat/internal/domain"
)

func promptInput() PromptInput {
	return PromptInput{
		Character: &domain.Character{
			Name:              "Elizabeth Bennet",
			Description:       "The witty second daughter of the Bennet family.",
			PersonalityTraits: "Sharp, playful, quick to judge and quick to laugh.",
		},
		Book: &domain.Book{
			Title:  "Pride and Prejudice",
			Author: "Jane Austen",
		},
		Passages:    []string{"first retrieved passage", "second retrieved passage"},
		UserMessage: "What do you think of Mr. Darcy?",
	}
}

func TestBuildPromptContainsPersonaAndMessage(t *testing.T) {
	prompt := BuildPrompt(promptInput())

	for _, want := range []string{
		`You are Elizabeth Bennet from "Pride and Prejudice" by Jane Austen.`,
		"WHO YOU ARE:\nThe witty second daughter of the Bennet family.",
		"YOUR PERSONALITY:\nSharp, playful, quick to judge and quick to laugh.",
		"User says: What do you think of Mr. Darcy?",
		"first person",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptPreservesPassageOrder(t *testing.T) {
	prompt := BuildPrompt(promptInput())

	block := "RELEVANT PASSAGES FROM THE BOOK:\nfirst retrieved passage\n\nsecond retrieved passage"
	if !strings.Contains(prompt, block) {
		t.Fatalf("passages not joined in rank order with blank lines:\n%s", prompt)
	}
}

func TestBuildPromptOmitsHistoryWhenEmpty(t *testing.T) {
	prompt := BuildPrompt(promptInput())
	if strings.Contains(prompt, "CONVERSATION SO FAR") {
		t.Fatal("history block rendered for an empty history")
	}
}

func TestBuildPromptRendersHistoryWhenSupplied(t *testing.T) {
	in := promptInput()
	in.History = []domain.Message{
		{Role: domain.RoleUser, Content: "Good evening."},
		{Role: domain.RoleCharacter, Content: "Good evening to you."},
	}
	prompt := BuildPrompt(in)

	if !strings.Contains(prompt, "CONVERSATION SO FAR:\nUser: Good evening.\nElizabeth Bennet: Good evening to you.") {
		t.Fatalf("history not rendered with speaker attribution:\n%s", prompt)
	}
}
