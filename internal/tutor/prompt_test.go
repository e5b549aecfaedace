package tutor

import (
	"strings"
	"testing"
)

func TestBuildResponsePrompt(t *testing.T) {
	got := buildResponsePrompt("Hola", "Spanish", "You're at a market buying fruit.")

	want := "Generate a response to 'Hola' in 'Spanish', staying consistent with the scene: You're at a market buying fruit..\n" +
		"Use the same writing system as the input."
	if got != want {
		t.Errorf("prompt mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestBuildCorrectionPrompt(t *testing.T) {
	got := buildCorrectionPrompt("Hola como estas", "Spanish", "English", "You're greeting a neighbor in your new town.")

	for _, want := range []string{
		"The user said: 'Hola como estas' in Spanish.",
		"Correct any mistakes WITHOUT changing the writing system (Latin, Cyrillic, Devanagari, etc).",
		"Make corrections based on the context: You're greeting a neighbor in your new town..",
		"If correct, reply exactly 'Correct!'.",
		"Briefly explain corrections in English.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q\nfull prompt:\n%s", want, got)
		}
	}
}
